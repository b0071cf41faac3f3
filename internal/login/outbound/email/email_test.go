package email

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/otplogin/internal/login/entity"
	"github.com/shandysiswandi/otplogin/internal/login/usecase"
	"github.com/shandysiswandi/otplogin/internal/pkg/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMail struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMail) Close() error { return nil }

type fakeFallback struct {
	got []usecase.OTPDelivery
}

func (f *fakeFallback) Send(_ context.Context, msg usecase.OTPDelivery) error {
	f.got = append(f.got, msg)
	return nil
}

func TestEmail_Send(t *testing.T) {
	m := &fakeMail{}
	fb := &fakeFallback{}
	e := NewEmail(m, fb)

	err := e.Send(context.Background(), usecase.OTPDelivery{
		IdentityID: 7,
		Identifier: "a@example.com",
		IsEmail:    true,
		Code:       "123456",
		Purpose:    entity.APISendOTP,
		ExpiresAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, m.sent, 1)
	assert.Equal(t, []string{"a@example.com"}, m.sent[0].To)
	assert.Equal(t, "Your login code", m.sent[0].Subject)
	assert.Contains(t, m.sent[0].TextBody, "123456")
	assert.Contains(t, m.sent[0].HTMLBody, "<strong>123456</strong>")
	assert.Contains(t, m.sent[0].TextBody, "Fri, 02 Jan 2026 03:04:05 UTC")
	assert.Empty(t, fb.got)
}

func TestEmail_SendPhoneUsesFallback(t *testing.T) {
	m := &fakeMail{}
	fb := &fakeFallback{}
	e := NewEmail(m, fb)

	err := e.Send(context.Background(), usecase.OTPDelivery{IdentityID: 8, Identifier: "+6281234567890", Code: "654321"})
	require.NoError(t, err)

	assert.Empty(t, m.sent)
	require.Len(t, fb.got, 1)
	assert.Equal(t, "+6281234567890", fb.got[0].Identifier)

	assert.Error(t, NewEmail(m, nil).Send(context.Background(), usecase.OTPDelivery{IdentityID: 8}))
}

func TestEmail_SendMailError(t *testing.T) {
	boom := errors.New("smtp down")
	e := NewEmail(&fakeMail{err: boom}, nil)

	err := e.Send(context.Background(), usecase.OTPDelivery{Identifier: "a@example.com", IsEmail: true, Code: "1"})
	assert.ErrorIs(t, err, boom)
}
