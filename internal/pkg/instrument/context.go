package instrument

import "context"

type ctxKey int

const (
	correlationIDKey ctxKey = iota
	auditTraceIDKey
)

// SetCorrelationID stores the request correlation ID in ctx.
func SetCorrelationID(ctx context.Context, cID string) context.Context {
	return context.WithValue(ctx, correlationIDKey, cID)
}

// GetCorrelationID returns the correlation ID stored in ctx, or "".
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	cID, _ := ctx.Value(correlationIDKey).(string)
	return cID
}

// SetAuditTraceID stores the audit trace ID of the current operation in ctx.
func SetAuditTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, auditTraceIDKey, traceID)
}

// GetAuditTraceID returns the audit trace ID stored in ctx, or "".
func GetAuditTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	tID, _ := ctx.Value(auditTraceIDKey).(string)
	return tID
}
