package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/otplogin/internal/login/usecase"
)

// Atomic runs fn inside one read-committed transaction. Rows read with
// forUpdate stay locked until commit. Conflicts (serialization failure,
// deadlock, the one-pending-record index) roll back and re-run fn.
func (s *DB) Atomic(ctx context.Context, fn func(ctx context.Context, tx usecase.TxStore) error) (err error) {
	ctx, span := s.startSpan(ctx, "Atomic")
	defer func() { s.endSpan(span, err) }()

	b := retry.NewFibonacci(s.retry.Base)
	b = retry.WithMaxRetries(s.retry.MaxRetries, b)
	b = retry.WithCappedDuration(s.retry.Cap, b)

	attempt := 0
	return retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		err := s.atomic(ctx, fn)
		if err != nil && isRetryable(err) {
			slog.WarnContext(ctx, "transaction conflict, retrying", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
}

func (s *DB) atomic(ctx context.Context, fn func(ctx context.Context, tx usecase.TxStore) error) error {
	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	if err := fn(ctx, &txStore{db: s, tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

// txStore implements usecase.TxStore on one pgx transaction.
type txStore struct {
	db *DB
	tx pgx.Tx
}
