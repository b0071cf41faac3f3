package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otplogin/internal/login/entity"
	"github.com/shandysiswandi/otplogin/internal/pkg/goerror"
	"github.com/shandysiswandi/otplogin/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// auditTrail writes the audit events of one external call. Writes are best
// effort and never change the outcome of the call.
type auditTrail struct {
	uc      *Usecase
	api     entity.APIName
	traceID string
}

func (s *Usecase) newAuditTrail(ctx context.Context, api entity.APIName) (context.Context, *auditTrail) {
	tID := s.uuid.Generate()
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("audit.trace_id", tID))

	return instrument.SetAuditTraceID(ctx, tID), &auditTrail{uc: s, api: api, traceID: tID}
}

func (a *auditTrail) start(ctx context.Context, msg string) {
	a.write(ctx, entity.AuditStepStart, entity.AuditStatusInfo, msg)
}

func (a *auditTrail) info(ctx context.Context, msg string) {
	a.write(ctx, entity.AuditStepInfo, entity.AuditStatusInfo, msg)
}

func (a *auditTrail) finish(ctx context.Context, err error, successMsg string) {
	if err != nil {
		a.write(ctx, entity.AuditStepInfo, entity.AuditStatusFailure, goerror.Message(err))
		return
	}
	a.write(ctx, entity.AuditStepInfo, entity.AuditStatusSuccess, successMsg)
}

func (a *auditTrail) write(ctx context.Context, step entity.AuditStep, status entity.AuditStatus, msg string) {
	ev := entity.AuditEvent{
		ID:        a.uc.uid.Generate(),
		APIName:   a.api,
		Step:      step,
		Status:    status,
		Message:   msg,
		TraceID:   a.traceID,
		CreatedAt: a.uc.clock.Now(),
	}

	if err := a.uc.repoDB.CreateAuditEvent(context.WithoutCancel(ctx), ev); err != nil {
		slog.ErrorContext(ctx, "failed to repo create audit event",
			"api_name", string(a.api), "step", string(step), "status", string(status), "error", err)
	}
}
