package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/otplogin/internal/login/entity"
	"github.com/shandysiswandi/otplogin/internal/pkg/goerror"
)

const (
	queryGetPendingOTP = `select id, identity_id, otp_hash, expires_at, attempts, resends, status, created_at, updated_at
from otp_records
where identity_id = $1 and status = 'pending'`

	queryInsertOTP = `insert into otp_records
(id, identity_id, otp_hash, expires_at, attempts, resends, status, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	// created_at and identity_id are never rewritten.
	queryUpdateOTP = `update otp_records
set otp_hash = $2, expires_at = $3, attempts = $4, resends = $5, status = $6, updated_at = $7
where id = $1`
)

func scanOTP(row pgx.Row) (*entity.OTPRecord, error) {
	var (
		out    entity.OTPRecord
		status string
	)
	if err := row.Scan(
		&out.ID, &out.IdentityID, &out.OTPHash, &out.ExpiresAt,
		&out.Attempts, &out.Resends, &status, &out.CreatedAt, &out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	out.Status = entity.ParseOTPStatus(status)
	return &out, nil
}

func (t *txStore) GetPendingOTP(ctx context.Context, identityID int64, forUpdate bool) (out *entity.OTPRecord, err error) {
	ctx, span := t.db.startSpan(ctx, "GetPendingOTP")
	defer func() { t.db.endSpan(span, err) }()

	query := queryGetPendingOTP
	if forUpdate {
		query += " for update"
	}

	out, err = scanOTP(t.tx.QueryRow(ctx, query, identityID))
	if err != nil {
		return nil, t.db.mapError(err)
	}
	return out, nil
}

func (t *txStore) CreateOTP(ctx context.Context, in entity.OTPRecord) (err error) {
	ctx, span := t.db.startSpan(ctx, "CreateOTP")
	defer func() { t.db.endSpan(span, err) }()

	_, err = t.tx.Exec(ctx, queryInsertOTP,
		in.ID, in.IdentityID, in.OTPHash, in.ExpiresAt,
		in.Attempts, in.Resends, in.Status.String(), in.CreatedAt, in.UpdatedAt,
	)
	return t.db.mapError(err)
}

func (t *txStore) UpdateOTP(ctx context.Context, in entity.OTPRecord) (err error) {
	ctx, span := t.db.startSpan(ctx, "UpdateOTP")
	defer func() { t.db.endSpan(span, err) }()

	tag, err := t.tx.Exec(ctx, queryUpdateOTP,
		in.ID, in.OTPHash, in.ExpiresAt, in.Attempts, in.Resends, in.Status.String(), in.UpdatedAt,
	)
	if err != nil {
		return t.db.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}
	return nil
}
