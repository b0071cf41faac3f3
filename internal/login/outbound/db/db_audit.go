package db

import (
	"context"

	"github.com/shandysiswandi/otplogin/internal/login/entity"
)

const queryInsertAuditEvent = `insert into audit_events (id, api_name, step, status, message, trace_id, created_at)
values ($1, $2, $3, $4, $5, $6, $7)`

// CreateAuditEvent appends through the pool so the event outlives any
// transaction that is rolled back.
func (s *DB) CreateAuditEvent(ctx context.Context, in entity.AuditEvent) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAuditEvent")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryInsertAuditEvent,
		in.ID, string(in.APIName), string(in.Step), string(in.Status), in.Message, in.TraceID, in.CreatedAt,
	)
	return s.mapError(err)
}

// ListAuditEvents returns the events of one call in insertion order.
func (s *DB) ListAuditEvents(ctx context.Context, traceID string) (out []entity.AuditEvent, err error) {
	ctx, span := s.startSpan(ctx, "ListAuditEvents")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `select id, api_name, step, status, message, trace_id, created_at
from audit_events
where trace_id = $1
order by created_at, id`, traceID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var ev entity.AuditEvent
		var apiName, step, status string
		if err := rows.Scan(&ev.ID, &apiName, &step, &status, &ev.Message, &ev.TraceID, &ev.CreatedAt); err != nil {
			return nil, err
		}
		ev.APIName = entity.APIName(apiName)
		ev.Step = entity.AuditStep(step)
		ev.Status = entity.AuditStatus(status)
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Ping checks the pool can reach the database.
func (s *DB) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}
