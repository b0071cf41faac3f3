package entity

import "strings"

type OTPStatus int16

const (
	// OTPStatusUnknown is mean status is not known / not set.
	OTPStatusUnknown OTPStatus = 0

	// OTPStatusPending mean the code was issued and can still be verified or resent.
	OTPStatusPending OTPStatus = 1

	// OTPStatusVerified mean the code was accepted.
	OTPStatusVerified OTPStatus = 2

	// OTPStatusExpired mean verification was attempted after expires_at.
	OTPStatusExpired OTPStatus = 3

	// OTPStatusBlocked mean too many wrong codes were submitted.
	OTPStatusBlocked OTPStatus = 4

	// OTPStatusInvalidated mean a newer code replaced this one.
	OTPStatusInvalidated OTPStatus = 5
)

func (s OTPStatus) String() string {
	switch s {
	case OTPStatusPending:
		return "pending"
	case OTPStatusVerified:
		return "verified"
	case OTPStatusExpired:
		return "expired"
	case OTPStatusBlocked:
		return "blocked"
	case OTPStatusInvalidated:
		return "invalidated"
	default:
		return "unknown"
	}
}

func (s OTPStatus) IsUnknown() bool {
	switch s {
	case OTPStatusPending, OTPStatusVerified, OTPStatusExpired, OTPStatusBlocked, OTPStatusInvalidated:
		return false
	default:
		return true
	}
}

// IsTerminal reports whether no operation may change the record any more.
func (s OTPStatus) IsTerminal() bool {
	switch s {
	case OTPStatusVerified, OTPStatusExpired, OTPStatusBlocked, OTPStatusInvalidated:
		return true
	default:
		return false
	}
}

// ParseOTPStatus reads the persisted form. Unrecognized values map to OTPStatusUnknown.
func ParseOTPStatus(raw string) OTPStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return OTPStatusPending
	case "verified":
		return OTPStatusVerified
	case "expired":
		return OTPStatusExpired
	case "blocked":
		return OTPStatusBlocked
	case "invalidated":
		return OTPStatusInvalidated
	default:
		return OTPStatusUnknown
	}
}
