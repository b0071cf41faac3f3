package inbound

import "time"

type SendOTPRequest struct {
	Identifier string `json:"identifier" example:"user@example.com"`
	IsEmail    *bool  `json:"is_email" example:"true"`
}

type VerifyOTPRequest struct {
	Identifier string `json:"identifier" example:"user@example.com"`
	OTP        string `json:"otp" example:"123456"`
}

type ResendOTPRequest struct {
	Identifier string `json:"identifier" example:"user@example.com"`
}

// MessageResponse is the {"message": "..."} body every OTP call returns.
type MessageResponse struct {
	message string
}

func (m MessageResponse) Message() string { return m.message }
func (MessageResponse) MessageOnly()       {}

type AuditEventResponse struct {
	APIName   string    `json:"api_name"`
	Step      string    `json:"step"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type AuditTrailResponse struct {
	TraceID string               `json:"trace_id"`
	Events  []AuditEventResponse `json:"events"`
}

func (AuditTrailResponse) Message() string { return "Audit trail found" }
