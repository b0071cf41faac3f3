package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/otplogin/internal/login/entity"
	"github.com/shandysiswandi/otplogin/internal/pkg/goerror"
)

type repoAudit interface {
	ListAuditEvents(ctx context.Context, traceID string) ([]entity.AuditEvent, error)
}

type AuditTrailInput struct {
	TraceID string `validate:"required,uuid"`
}

type AuditTrailOutput struct {
	Events []entity.AuditEvent
}

// AuditTrail returns the audit events recorded for one call.
func (s *Usecase) AuditTrail(ctx context.Context, in AuditTrailInput) (*AuditTrailOutput, error) {
	ctx, span := s.startSpan(ctx, "AuditTrail")
	defer span.End()

	in.TraceID = strings.TrimSpace(in.TraceID)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	events, err := s.repoAudit.ListAuditEvents(ctx, in.TraceID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list audit events", "trace_id", in.TraceID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if len(events) == 0 {
		return nil, goerror.NewBusiness("Audit trail not found", goerror.CodeNotFound)
	}

	return &AuditTrailOutput{Events: events}, nil
}
