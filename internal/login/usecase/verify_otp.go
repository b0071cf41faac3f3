package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otplogin/internal/login/entity"
	"github.com/shandysiswandi/otplogin/internal/pkg/goerror"
)

type VerifyOTPInput struct {
	Identifier string `validate:"required"`
	OTP        string
}

type VerifyOTPOutput struct {
	Message string
}

func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*VerifyOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	ctx, trail := s.newAuditTrail(ctx, entity.APIVerifyOTP)
	trail.start(ctx, "Verifying OTP for: "+in.Identifier)

	err := s.verifyOTP(ctx, trail, in)
	trail.finish(ctx, err, "OTP verified successfully")
	if err != nil {
		return nil, err
	}

	return &VerifyOTPOutput{Message: "Login successful"}, nil
}

func (s *Usecase) verifyOTP(ctx context.Context, trail *auditTrail, in VerifyOTPInput) error {
	in.Identifier = normalizeLookup(in.Identifier)
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	pol := s.policy()

	// outcome is the caller-facing result. The closure returns nil for
	// business failures so the state change that goes with them commits.
	var outcome error
	err := s.repoDB.Atomic(ctx, func(ctx context.Context, tx TxStore) error {
		outcome = nil

		ident, err := tx.GetIdentityByIdentifier(ctx, in.Identifier, true)
		if isNotFound(err) {
			outcome = entity.ErrIdentityNotFound
			return nil
		}
		if err != nil {
			return err
		}

		rec, err := tx.GetPendingOTP(ctx, ident.ID, true)
		if isNotFound(err) {
			outcome = entity.ErrNoPendingOTP
			return nil
		}
		if err != nil {
			return err
		}

		now := s.clock.Now()
		rec.UpdatedAt = now

		switch {
		case rec.IsExpired(now):
			rec.Status = entity.OTPStatusExpired
			outcome = entity.ErrOTPExpired

		case rec.Attempts >= pol.maxAttempts:
			rec.Status = entity.OTPStatusBlocked
			outcome = entity.ErrOTPBlocked

		case !s.hasher.Verify(rec.OTPHash, in.OTP):
			rec.Attempts++
			outcome = entity.ErrOTPInvalid
			if pol.blockImmediately && rec.Attempts >= pol.maxAttempts {
				rec.Status = entity.OTPStatusBlocked
				outcome = entity.ErrOTPBlocked
			}

		default:
			rec.Status = entity.OTPStatusVerified
		}

		return tx.UpdateOTP(ctx, *rec)
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo verify otp", "error", err)
		return goerror.NewServer(err)
	}

	if outcome != nil {
		slog.WarnContext(ctx, "otp verification rejected", "reason", goerror.Message(outcome))
		return outcome
	}

	trail.info(ctx, "OTP verified")
	return nil
}
