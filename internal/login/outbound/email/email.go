// Package email delivers codes for email identities over SMTP. Other
// identities go to the fallback channel.
package email

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	texttemplate "text/template"
	"time"

	"github.com/shandysiswandi/otplogin/internal/login/usecase"
	"github.com/shandysiswandi/otplogin/internal/pkg/mail"
)

const subject = "Your login code"

var (
	textTmpl = texttemplate.Must(texttemplate.New("text").Parse(
		"Your login code is {{.Code}}. It expires at {{.ExpiresAt}}.\r\n" +
			"If you did not request it, ignore this email.\r\n"))
	htmlTmpl = htmltemplate.Must(htmltemplate.New("html").Parse(
		`<p>Your login code is <strong>{{.Code}}</strong>.</p>` +
			`<p>It expires at {{.ExpiresAt}}. If you did not request it, ignore this email.</p>`))
)

type delivery interface {
	Send(ctx context.Context, msg usecase.OTPDelivery) error
}

type Email struct {
	mail     mail.Mail
	fallback delivery
}

func NewEmail(m mail.Mail, fallback delivery) *Email {
	return &Email{mail: m, fallback: fallback}
}

func (e *Email) Send(ctx context.Context, msg usecase.OTPDelivery) error {
	if !msg.IsEmail {
		if e.fallback == nil {
			return fmt.Errorf("email: no channel for identity %d", msg.IdentityID)
		}
		return e.fallback.Send(ctx, msg)
	}

	data := struct {
		Code      string
		ExpiresAt string
	}{Code: msg.Code, ExpiresAt: msg.ExpiresAt.UTC().Format(time.RFC1123)}

	var text, html bytes.Buffer
	if err := textTmpl.Execute(&text, data); err != nil {
		return err
	}
	if err := htmlTmpl.Execute(&html, data); err != nil {
		return err
	}

	if err := e.mail.Send(ctx, mail.Message{
		To:       []string{msg.Identifier},
		Subject:  subject,
		TextBody: text.String(),
		HTMLBody: html.String(),
	}); err != nil {
		return err
	}

	slog.InfoContext(ctx, "otp email sent", "identity_id", msg.IdentityID, "purpose", string(msg.Purpose))
	return nil
}
