// Package mail sends plain email messages through a provider-agnostic
// interface.
package mail

import (
	"context"
	"io"
)

// Message is one email. TextBody is used when HTMLBody is empty.
type Message struct {
	From     string
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}
