package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/otplogin/internal/login/entity"
	"github.com/shandysiswandi/otplogin/internal/login/usecase"
	"github.com/shandysiswandi/otplogin/internal/pkg/goerror"
	"github.com/shandysiswandi/otplogin/internal/pkg/router"
)

const headerIdempotencyKey = "Idempotency-Key"

// HTTPEndpoint exposes the OTP login workflow over HTTP.
type HTTPEndpoint struct {
	uc uc
}

// SendOTP issues a new code for an email or phone identifier.
// @Summary Send OTP
// @Description Creates the identity on first use, replaces any pending code and dispatches a fresh one.
// @Tags OTP
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Deduplicates client retries"
// @Param request body SendOTPRequest true "Send OTP payload"
// @Success 200 {object} router.successResponse "OTP sent successfully"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Request already processed"
// @Failure 422 {object} router.errorResponse "Invalid email format"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/otp/send [post]
func (h *HTTPEndpoint) SendOTP(r *router.Request) (any, error) {
	var req SendOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}
	if req.IsEmail == nil {
		return nil, goerror.NewInvalidInput(nil, "is_email", "is_email is required")
	}

	resp, err := h.uc.SendOTP(r.Context(), usecase.SendOTPInput{
		Identifier:     req.Identifier,
		IsEmail:        *req.IsEmail,
		IdempotencyKey: r.GetHeader(headerIdempotencyKey),
	})
	if err != nil {
		return nil, err
	}

	return MessageResponse{message: resp.Message}, nil
}

// VerifyOTP checks a submitted code against the pending one.
// @Summary Verify OTP
// @Tags OTP
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "Verify OTP payload"
// @Success 200 {object} router.successResponse "Login successful"
// @Failure 401 {object} router.errorResponse "Invalid OTP"
// @Failure 404 {object} router.errorResponse "No active OTP found"
// @Failure 410 {object} router.errorResponse "OTP expired"
// @Failure 423 {object} router.errorResponse "Max attempts reached, OTP blocked"
// @Router /api/v1/otp/verify [post]
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{
		Identifier: req.Identifier,
		OTP:        req.OTP,
	})
	if err != nil {
		return nil, err
	}

	return MessageResponse{message: resp.Message}, nil
}

// ResendOTP replaces the pending code with a new one.
// @Summary Resend OTP
// @Tags OTP
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Deduplicates client retries"
// @Param request body ResendOTPRequest true "Resend OTP payload"
// @Success 200 {object} router.successResponse "OTP resent successfully"
// @Failure 404 {object} router.errorResponse "No active OTP to resend"
// @Failure 429 {object} router.errorResponse "Cooldown period active, try later"
// @Router /api/v1/otp/resend [post]
func (h *HTTPEndpoint) ResendOTP(r *router.Request) (any, error) {
	var req ResendOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ResendOTP(r.Context(), usecase.ResendOTPInput{
		Identifier:     req.Identifier,
		IdempotencyKey: r.GetHeader(headerIdempotencyKey),
	})
	if err != nil {
		return nil, err
	}

	return MessageResponse{message: resp.Message}, nil
}

// AuditTrail lists the audit events of one call.
// @Summary Audit trail
// @Tags OTP
// @Produce json
// @Param trace_id path string true "Trace ID"
// @Success 200 {object} router.successResponse{data=AuditTrailResponse}
// @Failure 404 {object} router.errorResponse "Audit trail not found"
// @Router /api/v1/otp/audit/{trace_id} [get]
func (h *HTTPEndpoint) AuditTrail(r *router.Request) (any, error) {
	traceID := r.GetParam("trace_id")

	resp, err := h.uc.AuditTrail(r.Context(), usecase.AuditTrailInput{TraceID: traceID})
	if err != nil {
		return nil, err
	}

	return AuditTrailResponse{
		TraceID: traceID,
		Events: lo.Map(resp.Events, func(ev entity.AuditEvent, _ int) AuditEventResponse {
			return AuditEventResponse{
				APIName:   string(ev.APIName),
				Step:      string(ev.Step),
				Status:    string(ev.Status),
				Message:   ev.Message,
				CreatedAt: ev.CreatedAt,
			}
		}),
	}, nil
}
