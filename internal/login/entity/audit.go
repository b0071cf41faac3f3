package entity

import "time"

type APIName string

const (
	APISendOTP   APIName = "send_otp"
	APIVerifyOTP APIName = "verify_otp"
	APIResendOTP APIName = "resend_otp"
)

type AuditStep string

const (
	AuditStepStart AuditStep = "start"
	AuditStepInfo  AuditStep = "info"
)

type AuditStatus string

const (
	AuditStatusInfo    AuditStatus = "info"
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// AuditEvent is an append-only record of one step of an operation. Events of
// the same call share TraceID.
type AuditEvent struct {
	ID        int64
	APIName   APIName
	Step      AuditStep
	Status    AuditStatus
	Message   string
	TraceID   string
	CreatedAt time.Time
}
