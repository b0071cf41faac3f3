package login

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/otplogin/internal/login/inbound"
	"github.com/shandysiswandi/otplogin/internal/login/outbound/db"
	"github.com/shandysiswandi/otplogin/internal/login/outbound/email"
	"github.com/shandysiswandi/otplogin/internal/login/outbound/mq"
	"github.com/shandysiswandi/otplogin/internal/login/outbound/stub"
	"github.com/shandysiswandi/otplogin/internal/login/usecase"
	"github.com/shandysiswandi/otplogin/internal/pkg/clock"
	"github.com/shandysiswandi/otplogin/internal/pkg/config"
	"github.com/shandysiswandi/otplogin/internal/pkg/goroutine"
	"github.com/shandysiswandi/otplogin/internal/pkg/hash"
	"github.com/shandysiswandi/otplogin/internal/pkg/idempotency"
	"github.com/shandysiswandi/otplogin/internal/pkg/instrument"
	"github.com/shandysiswandi/otplogin/internal/pkg/mail"
	"github.com/shandysiswandi/otplogin/internal/pkg/messaging"
	"github.com/shandysiswandi/otplogin/internal/pkg/otp"
	"github.com/shandysiswandi/otplogin/internal/pkg/router"
	"github.com/shandysiswandi/otplogin/internal/pkg/uid"
	"github.com/shandysiswandi/otplogin/internal/pkg/validator"
)

// Delivery drivers for modules.login.delivery.driver.
const (
	DeliveryLog       = "log"
	DeliveryMessaging = "messaging"
	DeliverySMTP      = "smtp"
)

var (
	ErrMessagingRequired = errors.New("login: messaging delivery needs a publisher")
	ErrMailRequired      = errors.New("login: smtp delivery needs a mailer")
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Hasher     hash.Hash                  `validate:"required"`
	Code       otp.Generator              `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`

	// Optional: nil disables Idempotency-Key handling.
	Idempotency idempotency.Idempotency
	// Optional unless the messaging delivery driver is selected.
	Messaging messaging.Publisher
	// Optional unless the smtp delivery driver is selected.
	Mail mail.Mail
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument, db.WithRetryPolicy(db.RetryPolicy{
		Base:       dep.Config.GetMillisecond("database.retry.base_ms"),
		Cap:        dep.Config.GetMillisecond("database.retry.cap_ms"),
		MaxRetries: uint64(max(dep.Config.GetInt("database.retry.max_retries"), 0)),
	}))

	deliver, err := newDelivery(dep)
	if err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:      repoDB,
		RepoAudit:   repoDB,
		Delivery:    deliver,
		Idempotency: dep.Idempotency,
		Validator:   dep.Validator,
		Config:      dep.Config,
		Hasher:      dep.Hasher,
		Code:        dep.Code,
		UID:         dep.UID,
		UUID:        dep.UUID,
		Clock:       dep.Clock,
		Instrument:  dep.Instrument,
		Goroutine:   dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

type delivery interface {
	Send(ctx context.Context, msg usecase.OTPDelivery) error
}

func newDelivery(dep Dependency) (delivery, error) {
	driver := strings.ToLower(strings.TrimSpace(dep.Config.GetString("modules.login.delivery.driver")))

	logStub := stub.NewLog(dep.Config.GetBool("modules.login.delivery.log_reveal_code"))

	switch driver {
	case "", DeliveryLog:
		return logStub, nil
	case DeliverySMTP:
		if dep.Mail == nil {
			return nil, ErrMailRequired
		}
		// no sms gateway yet, phone codes are only logged
		return email.NewEmail(dep.Mail, logStub), nil
	case DeliveryMessaging:
		if dep.Messaging == nil {
			return nil, ErrMessagingRequired
		}
		return mq.NewMessaging(dep.Messaging, dep.Instrument), nil
	default:
		return nil, fmt.Errorf("login: unknown delivery driver %q", driver)
	}
}
