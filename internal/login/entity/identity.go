package entity

import "time"

// Identity is a contact point (email or phone) that can receive codes.
type Identity struct {
	ID         int64
	Identifier string
	IsEmail    bool
	CreatedAt  time.Time
}

// Kind names the identifier type for logs and messages.
func (i Identity) Kind() string {
	if i.IsEmail {
		return "email"
	}
	return "phone"
}
