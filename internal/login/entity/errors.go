package entity

import "github.com/shandysiswandi/otplogin/internal/pkg/goerror"

var (
	ErrIdentityNotFound     = goerror.NewBusiness("User not found", goerror.CodeNotFound)
	ErrNoPendingOTP         = goerror.NewBusiness("No active OTP found", goerror.CodeNotFound)
	ErrNoPendingOTPToResend = goerror.NewBusiness("No active OTP to resend", goerror.CodeNotFound)
	ErrOTPExpired           = goerror.NewBusiness("OTP expired", goerror.CodeExpired)
	ErrOTPBlocked           = goerror.NewBusiness("Max attempts reached, OTP blocked", goerror.CodeLocked)
	ErrOTPInvalid           = goerror.NewBusiness("Invalid OTP", goerror.CodeUnauthorized)
	ErrResendLimit          = goerror.NewBusiness("Max resends reached", goerror.CodeTooManyRequest)
	ErrResendCooldown       = goerror.NewBusiness("Cooldown period active, try later", goerror.CodeTooManyRequest)

	ErrRequestInProgress = goerror.NewBusiness("Request already in progress", goerror.CodeConflict)
	ErrRequestProcessed  = goerror.NewBusiness("Request already processed", goerror.CodeConflict)
)
