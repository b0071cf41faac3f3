package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/otplogin/internal/login/entity"
	"github.com/shandysiswandi/otplogin/internal/login/usecase"
	"github.com/shandysiswandi/otplogin/internal/pkg/instrument"
	"github.com/shandysiswandi/otplogin/internal/pkg/messaging"
	"github.com/shandysiswandi/otplogin/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	destination string
	msg         messaging.OutgoingMessage
	err         error
}

func (f *fakePublisher) Publish(_ context.Context, destination string, msg messaging.OutgoingMessage) (messaging.PublishResult, error) {
	f.destination = destination
	f.msg = msg
	if f.err != nil {
		return messaging.PublishResult{}, f.err
	}
	return messaging.PublishResult{Driver: "fake", Topic: destination, Timestamp: time.Now()}, nil
}

func (f *fakePublisher) Close() error { return nil }

func TestMessaging_Send(t *testing.T) {
	pub := &fakePublisher{}
	m := NewMessaging(pub, instrument.NewNoop())

	ctx := instrument.SetCorrelationID(context.Background(), "cid-1")
	ctx = instrument.SetAuditTraceID(ctx, "tid-1")
	exp := time.Date(2026, 3, 1, 9, 5, 0, 0, time.UTC)

	err := m.Send(ctx, usecase.OTPDelivery{
		IdentityID: 42,
		Identifier: "+16502530000",
		Code:       "012345",
		Purpose:    entity.APIResendOTP,
		ExpiresAt:  exp,
	})
	require.NoError(t, err)

	assert.Equal(t, event.OTPDeliveryDestination, pub.destination)
	assert.Equal(t, []byte("42"), pub.msg.Key)
	require.Len(t, pub.msg.Headers, 2)
	assert.Equal(t, "cid-1", string(pub.msg.Headers[0].Value))
	assert.Equal(t, "tid-1", string(pub.msg.Headers[1].Value))

	var got event.OTPDeliveryMessage
	require.NoError(t, json.Unmarshal(pub.msg.Body, &got))
	assert.Equal(t, event.ChannelSMS, got.Channel)
	assert.Equal(t, "012345", got.Code)
	assert.Equal(t, "resend_otp", got.Purpose)
	assert.True(t, exp.Equal(got.ExpiresAt))
}

func TestMessaging_SendError(t *testing.T) {
	errBroker := errors.New("broker down")
	m := NewMessaging(&fakePublisher{err: errBroker}, instrument.NewNoop())

	err := m.Send(context.Background(), usecase.OTPDelivery{IdentityID: 1, IsEmail: true, Code: "123456"})
	assert.ErrorIs(t, err, errBroker)
}
