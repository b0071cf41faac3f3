package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otplogin/internal/login/entity"
	"github.com/shandysiswandi/otplogin/internal/pkg/goerror"
)

type ResendOTPInput struct {
	Identifier     string `validate:"required"`
	IdempotencyKey string
}

type ResendOTPOutput struct {
	Message string
}

func (s *Usecase) ResendOTP(ctx context.Context, in ResendOTPInput) (*ResendOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "ResendOTP")
	defer span.End()

	ctx, trail := s.newAuditTrail(ctx, entity.APIResendOTP)
	trail.start(ctx, "Resending OTP for: "+in.Identifier)

	err := s.once(ctx, entity.APIResendOTP, in.IdempotencyKey, func(ctx context.Context) error {
		return s.resendOTP(ctx, trail, in)
	})
	trail.finish(ctx, err, "OTP resent successfully")
	if err != nil {
		return nil, err
	}

	return &ResendOTPOutput{Message: "OTP resent successfully"}, nil
}

func (s *Usecase) resendOTP(ctx context.Context, trail *auditTrail, in ResendOTPInput) error {
	in.Identifier = normalizeLookup(in.Identifier)
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
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
		outcome error
		ident   *entity.Identity
		record  *entity.OTPRecord
	)
	err = s.repoDB.Atomic(ctx, func(ctx context.Context, tx TxStore) error {
		outcome = nil

		var err error
		ident, err = tx.GetIdentityByIdentifier(ctx, in.Identifier, true)
		if isNotFound(err) {
			outcome = entity.ErrIdentityNotFound
			return nil
		}
		if err != nil {
			return err
		}

		record, err = tx.GetPendingOTP(ctx, ident.ID, true)
		if isNotFound(err) {
			outcome = entity.ErrNoPendingOTPToResend
			return nil
		}
		if err != nil {
			return err
		}

		if record.Resends >= pol.maxResends {
			outcome = entity.ErrResendLimit
			return nil
		}

		now := s.clock.Now()
		if now.Before(record.ResendAvailableAt(pol.cooldown)) {
			outcome = entity.ErrResendCooldown
			return nil
		}

		record.OTPHash = string(codeHash)
		record.ExpiresAt = now.Add(pol.ttl)
		record.Resends++
		record.Attempts = 0
		record.UpdatedAt = now

		return tx.UpdateOTP(ctx, *record)
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo resend otp", "error", err)
		return goerror.NewServer(err)
	}

	if outcome != nil {
		slog.WarnContext(ctx, "otp resend rejected", "reason", goerror.Message(outcome))
		return outcome
	}

	s.dispatch(ctx, OTPDelivery{
		IdentityID: ident.ID,
		Identifier: ident.Identifier,
		IsEmail:    ident.IsEmail,
		Code:       code,
		Purpose:    entity.APIResendOTP,
		ExpiresAt:  record.ExpiresAt,
	})
	trail.info(ctx, "OTP resent")

	return nil
}
