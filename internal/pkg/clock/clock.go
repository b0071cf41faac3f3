// Package clock hides time.Now behind Clocker so OTP expiry and resend
// cooldowns can be tested against a fixed instant.
package clock

import "time"

// Clocker abstracts time so callers can replace real time in tests.
type Clocker interface {
	Now() time.Time
}

// TimeClocker is the production clock implementation backed by time.Now.
type TimeClocker struct{}

// New returns a TimeClocker that reads the current system time.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the current UTC time truncated to microseconds, the precision
// postgres keeps for timestamptz. Values read back from storage therefore
// compare equal to the ones that were written.
func (*TimeClocker) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
