package mail

import (
	"context"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTP(t *testing.T) {
	_, err := NewSMTP(SMTPConfig{Host: "localhost"})
	assert.ErrorIs(t, err, ErrSMTPHostPortRequired)

	s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 1025})
	require.NoError(t, err)
	assert.Equal(t, "localhost:1025", s.addr)
	assert.Nil(t, s.auth)
}

func TestSMTP_Send(t *testing.T) {
	s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 1025, From: "noreply@example.com"})
	require.NoError(t, err)

	var (
		gotFrom string
		gotTo   []string
		gotRaw  string
	)
	s.send = func(_ string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotFrom, gotTo, gotRaw = from, to, string(msg)
		return nil
	}

	err = s.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "Your code", TextBody: "123456"})
	require.NoError(t, err)

	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"a@example.com"}, gotTo)
	assert.Contains(t, gotRaw, "Subject: Your code\r\n")
	assert.Contains(t, gotRaw, "Content-Type: text/plain; charset=UTF-8")
	assert.True(t, strings.HasSuffix(gotRaw, "\r\n\r\n123456"))
}

func TestSMTP_SendRejects(t *testing.T) {
	s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 1025})
	require.NoError(t, err)
	s.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("must not dial")
		return nil
	}

	assert.ErrorIs(t, s.Send(context.Background(), Message{TextBody: "x"}), ErrSMTPNoRecipients)
	assert.ErrorIs(t, s.Send(context.Background(), Message{To: []string{"a@example.com"}}), ErrSMTPNoSender)
	assert.ErrorIs(t, s.Send(context.Background(), Message{
		From:    "noreply@example.com",
		To:      []string{"a@example.com"},
		Subject: "hi\r\nBcc: victim@example.com",
	}), ErrSMTPHeaderInjection)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, Message{To: []string{"a@example.com"}}), context.Canceled)
}

func TestBuildBody_Multipart(t *testing.T) {
	body, contentType := buildBody(Message{TextBody: "plain", HTMLBody: "<b>html</b>"})

	require.True(t, strings.HasPrefix(contentType, "multipart/alternative; boundary=otplogin-"))
	boundary := strings.TrimPrefix(contentType, "multipart/alternative; boundary=")
	assert.Contains(t, body, "Content-Type: text/plain; charset=UTF-8\r\n\r\nplain\r\n")
	assert.Contains(t, body, "Content-Type: text/html; charset=UTF-8\r\n\r\n<b>html</b>\r\n")
	assert.True(t, strings.HasSuffix(body, "--"+boundary+"--"))

	body, contentType = buildBody(Message{HTMLBody: "<p>x</p>"})
	assert.Equal(t, "<p>x</p>", body)
	assert.Equal(t, "text/html; charset=UTF-8", contentType)
}
