package entity

import "time"

// OTPRecord is one issued code and its lifecycle. OTPHash is the slow hash
// of the code; the plaintext is never stored.
type OTPRecord struct {
	ID         int64
	IdentityID int64
	OTPHash    string
	ExpiresAt  time.Time
	Attempts   int
	Resends    int
	Status     OTPStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsExpired reports whether now is strictly after ExpiresAt.
func (r *OTPRecord) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// ResendAvailableAt is the earliest instant a resend is accepted. The wait
// grows by cooldown per prior resend and is anchored to the first issuance.
func (r *OTPRecord) ResendAvailableAt(cooldown time.Duration) time.Time {
	return r.CreatedAt.Add(cooldown * time.Duration(r.Resends))
}
