package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/otplogin/internal/login/entity"
	"github.com/shandysiswandi/otplogin/internal/pkg/goerror"
	"github.com/shandysiswandi/otplogin/internal/pkg/idempotency"
)

// once runs fn at most once per (api, key) when a key is given and a tracker
// is configured. Otherwise fn just runs.
func (s *Usecase) once(ctx context.Context, api entity.APIName, key string, fn func(ctx context.Context) error) error {
	if key == "" || s.idemp == nil {
		return fn(ctx)
	}

	var (
		ran   bool
		fnErr error
	)
	err := s.idemp.Exec(ctx, string(api)+":"+key, func(ctx context.Context) error {
		ran = true
		fnErr = fn(ctx)
		return fnErr
	},
		idempotency.WithLockDuration(s.cfg.GetSecond("modules.login.idempotency.lock_seconds")),
		idempotency.WithStateTTL(s.cfg.GetMinute("modules.login.idempotency.ttl_minutes")),
	)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		return entity.ErrRequestInProgress
	case errors.Is(err, idempotency.ErrAlreadyCompleted):
		return entity.ErrRequestProcessed
	case fnErr != nil:
		if err != fnErr {
			slog.WarnContext(ctx, "failed to release idempotency key", "api_name", string(api), "error", err)
		}
		return fnErr
	case ran:
		slog.WarnContext(ctx, "failed to mark idempotency key completed", "api_name", string(api), "error", err)
		return nil
	default:
		slog.ErrorContext(ctx, "failed to track idempotency key", "api_name", string(api), "error", err)
		return goerror.NewServer(err)
	}
}
