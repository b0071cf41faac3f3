package inbound

import (
	"context"

	"github.com/shandysiswandi/otplogin/internal/login/usecase"
	"github.com/shandysiswandi/otplogin/internal/pkg/router"
)

type uc interface {
	SendOTP(ctx context.Context, in usecase.SendOTPInput) (*usecase.SendOTPOutput, error)
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*usecase.VerifyOTPOutput, error)
	ResendOTP(ctx context.Context, in usecase.ResendOTPInput) (*usecase.ResendOTPOutput, error)

	AuditTrail(ctx context.Context, in usecase.AuditTrailInput) (*usecase.AuditTrailOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/otp/send", end.SendOTP)
	r.POST("/api/v1/otp/verify", end.VerifyOTP)
	r.POST("/api/v1/otp/resend", end.ResendOTP)
	r.GET("/api/v1/otp/audit/:trace_id", end.AuditTrail)

	// legacy paths
	r.POST("/send_otp", end.SendOTP)
	r.POST("/verify_otp", end.VerifyOTP)
	r.POST("/resend_otp", end.ResendOTP)
}
