package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/shandysiswandi/otplogin/internal/login/usecase"
	"github.com/shandysiswandi/otplogin/internal/pkg/instrument"
	"github.com/shandysiswandi/otplogin/internal/pkg/messaging"
	"github.com/shandysiswandi/otplogin/internal/shared/event"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	keyOfCorrelationID string = "cID"
	keyOfAuditTraceID  string = "tID"
)

// Messaging delivers codes by publishing them for an external sender.
type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) Send(ctx context.Context, msg usecase.OTPDelivery) error {
	ctx, span := m.ins.Tracer("login.outbound.mq").Start(ctx, "PublishOTPDelivery")
	defer span.End()

	channel := event.ChannelSMS
	if msg.IsEmail {
		channel = event.ChannelEmail
	}

	body, err := json.Marshal(event.OTPDeliveryMessage{
		IdentityID: msg.IdentityID,
		Identifier: msg.Identifier,
		Channel:    channel,
		Code:       msg.Code,
		Purpose:    string(msg.Purpose),
		ExpiresAt:  msg.ExpiresAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	res, err := m.client.Publish(ctx, event.OTPDeliveryDestination, messaging.OutgoingMessage{
		Body: body,
		Key:  []byte(strconv.FormatInt(msg.IdentityID, 10)),
		Headers: []messaging.Header{
			{Key: keyOfCorrelationID, Value: []byte(instrument.GetCorrelationID(ctx))},
			{Key: keyOfAuditTraceID, Value: []byte(instrument.GetAuditTraceID(ctx))},
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.String("messaging.system", res.Driver), attribute.String("messaging.destination", res.Topic))
	return nil
}
