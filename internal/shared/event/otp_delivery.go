package event

import "time"

const OTPDeliveryDestination string = "otp.delivery"

// OTPDeliveryMessage asks an external sender to deliver a one-time code.
// Code is plaintext and exists only in this message.
type OTPDeliveryMessage struct {
	IdentityID int64     `json:"identity_id"`
	Identifier string    `json:"identifier"`
	Channel    string    `json:"channel"`
	Code       string    `json:"code"`
	Purpose    string    `json:"purpose"`
	ExpiresAt  time.Time `json:"expires_at"`
}

const (
	ChannelEmail string = "email"
	ChannelSMS   string = "sms"
)
