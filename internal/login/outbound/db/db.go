package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/otplogin/internal/pkg/goerror"
	"github.com/shandysiswandi/otplogin/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SQLSTATE codes the transaction retry cares about.
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

type DB struct {
	conn  *pgxpool.Pool
	ins   instrument.Instrumentation
	retry RetryPolicy
}

// RetryPolicy bounds how Atomic re-runs a transaction after a conflict.
type RetryPolicy struct {
	Base       time.Duration
	Cap        time.Duration
	MaxRetries uint64
}

type Option func(*DB)

func WithRetryPolicy(p RetryPolicy) Option {
	return func(d *DB) {
		if p.Base > 0 {
			d.retry.Base = p.Base
		}
		if p.Cap > 0 {
			d.retry.Cap = p.Cap
		}
		d.retry.MaxRetries = p.MaxRetries
	}
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation, opts ...Option) *DB {
	d := &DB{
		conn: conn,
		ins:  ins,
		retry: RetryPolicy{
			Base:       20 * time.Millisecond,
			Cap:        500 * time.Millisecond,
			MaxRetries: 3,
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// - 23505 unique violation → goerror.ErrConflict (retried by Atomic)
// - 40001 serialization_failure / 40P01 deadlock_detected → kept raw, retried by Atomic
func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		return goerror.ErrConflict
	}

	return err
}

func isRetryable(err error) bool {
	if errors.Is(err, goerror.ErrConflict) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected, codeUniqueViolation:
			return true
		}
	}
	return false
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("login.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
