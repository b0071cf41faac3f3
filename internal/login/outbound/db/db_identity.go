package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/otplogin/internal/login/entity"
)

const (
	queryInsertIdentity = `insert into identities (id, identifier, is_email, created_at)
values ($1, $2, $3, $4)
on conflict (identifier) do nothing
returning id`

	queryGetIdentity = `select id, identifier, is_email, created_at
from identities
where identifier = $1`
)

func (t *txStore) UpsertIdentity(ctx context.Context, in entity.Identity) (out *entity.Identity, created bool, err error) {
	ctx, span := t.db.startSpan(ctx, "UpsertIdentity")
	defer func() { t.db.endSpan(span, err) }()

	var id int64
	err = t.tx.QueryRow(ctx, queryInsertIdentity, in.ID, in.Identifier, in.IsEmail, in.CreatedAt).Scan(&id)
	switch {
	case err == nil:
		created = true
	case errors.Is(err, pgx.ErrNoRows):
		// identifier already taken, first-seen row wins
	default:
		return nil, false, t.db.mapError(err)
	}

	out, err = t.getIdentity(ctx, in.Identifier, true)
	if err != nil {
		return nil, false, err
	}
	return out, created, nil
}

func (t *txStore) GetIdentityByIdentifier(ctx context.Context, identifier string, forUpdate bool) (out *entity.Identity, err error) {
	ctx, span := t.db.startSpan(ctx, "GetIdentityByIdentifier")
	defer func() { t.db.endSpan(span, err) }()

	return t.getIdentity(ctx, identifier, forUpdate)
}

func (t *txStore) getIdentity(ctx context.Context, identifier string, forUpdate bool) (*entity.Identity, error) {
	query := queryGetIdentity
	if forUpdate {
		query += " for update"
	}

	var out entity.Identity
	if err := t.tx.QueryRow(ctx, query, identifier).Scan(&out.ID, &out.Identifier, &out.IsEmail, &out.CreatedAt); err != nil {
		return nil, t.db.mapError(err)
	}
	return &out, nil
}
