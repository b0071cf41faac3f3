package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otplogin/internal/login/entity"
	"github.com/shandysiswandi/otplogin/internal/pkg/goerror"
)

type SendOTPInput struct {
	Identifier     string
	IsEmail        bool
	IdempotencyKey string
}

type SendOTPOutput struct {
	Message string
}

func (s *Usecase) SendOTP(ctx context.Context, in SendOTPInput) (*SendOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "SendOTP")
	defer span.End()

	ctx, trail := s.newAuditTrail(ctx, entity.APISendOTP)
	trail.start(ctx, "Validating identifier: "+in.Identifier)

	err := s.once(ctx, entity.APISendOTP, in.IdempotencyKey, func(ctx context.Context) error {
		return s.sendOTP(ctx, trail, in)
	})
	trail.finish(ctx, err, "OTP sent successfully")
	if err != nil {
		return nil, err
	}

	return &SendOTPOutput{Message: "OTP sent successfully"}, nil
}

func (s *Usecase) sendOTP(ctx context.Context, trail *auditTrail, in SendOTPInput) error {
	identifier := normalizeIdentifier(in.Identifier, in.IsEmail)
	if err := s.validateIdentifier(identifier, in.IsEmail); err != nil {
		return err
	}

	code, err := s.code.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return goerror.NewServer(err)
	}

	codeHash, err := s.hasher.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "error", err)
		return goerror.NewServer(err)
	}

	pol := s.policy()

	var (
		ident   *entity.Identity
		created bool
		record  entity.OTPRecord
	)
	err = s.repoDB.Atomic(ctx, func(ctx context.Context, tx TxStore) error {
		now := s.clock.Now()

		var err error
		ident, created, err = tx.UpsertIdentity(ctx, entity.Identity{
			ID:         s.uid.Generate(),
			Identifier: identifier,
			IsEmail:    in.IsEmail,
			CreatedAt:  now,
		})
		if err != nil {
			return err
		}

		prev, err := tx.GetPendingOTP(ctx, ident.ID, true)
		switch {
		case err == nil:
			prev.Status = entity.OTPStatusInvalidated
			prev.UpdatedAt = now
			if err := tx.UpdateOTP(ctx, *prev); err != nil {
				return err
			}
		case !isNotFound(err):
			return err
		}

		record = entity.OTPRecord{
			ID:         s.uid.Generate(),
			IdentityID: ident.ID,
			OTPHash:    string(codeHash),
			ExpiresAt:  now.Add(pol.ttl),
			Status:     entity.OTPStatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return tx.CreateOTP(ctx, record)
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo issue otp", "identifier_kind", kindOf(in.IsEmail), "error", err)
		return goerror.NewServer(err)
	}

	if created {
		trail.info(ctx, "User not found, creating new user")
	}

	s.dispatch(ctx, OTPDelivery{
		IdentityID: ident.ID,
		Identifier: ident.Identifier,
		IsEmail:    ident.IsEmail,
		Code:       code,
		Purpose:    entity.APISendOTP,
		ExpiresAt:  record.ExpiresAt,
	})
	trail.info(ctx, "OTP generated and dispatched")

	return nil
}

func kindOf(isEmail bool) string {
	return entity.Identity{IsEmail: isEmail}.Kind()
}
