package usecase

import (
	"context"
	"log/slog"
)

// dispatch hands the code to the delivery channel. Failures are logged only:
// the record is already committed and the caller can ask for a resend.
func (s *Usecase) dispatch(ctx context.Context, msg OTPDelivery) {
	send := func(ctx context.Context) error {
		ctx, span := s.startSpan(ctx, "DeliverOTP")
		defer span.End()

		if err := s.delivery.Send(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "failed to deliver otp",
				"identity_id", msg.IdentityID, "purpose", string(msg.Purpose), "error", err)
			return err
		}
		return nil
	}

	if s.cfg.GetBool("modules.login.delivery.async") {
		if s.goroutine.Go(context.WithoutCancel(ctx), send) {
			return
		}
		slog.WarnContext(ctx, "async delivery refused, delivering inline", "identity_id", msg.IdentityID)
	}

	_ = send(ctx)
}
