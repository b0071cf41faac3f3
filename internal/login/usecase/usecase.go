package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/otplogin/internal/login/entity"
	"github.com/shandysiswandi/otplogin/internal/pkg/clock"
	"github.com/shandysiswandi/otplogin/internal/pkg/config"
	"github.com/shandysiswandi/otplogin/internal/pkg/goroutine"
	"github.com/shandysiswandi/otplogin/internal/pkg/hash"
	"github.com/shandysiswandi/otplogin/internal/pkg/idempotency"
	"github.com/shandysiswandi/otplogin/internal/pkg/instrument"
	"github.com/shandysiswandi/otplogin/internal/pkg/otp"
	"github.com/shandysiswandi/otplogin/internal/pkg/uid"
	"github.com/shandysiswandi/otplogin/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// TxStore is the storage surface available inside one transaction. Reads
// with forUpdate lock the returned row until the transaction ends.
type TxStore interface {
	// UpsertIdentity inserts in unless its identifier exists, then returns the
	// stored row locked. created reports whether the insert happened.
	UpsertIdentity(ctx context.Context, in entity.Identity) (identity *entity.Identity, created bool, err error)
	GetIdentityByIdentifier(ctx context.Context, identifier string, forUpdate bool) (*entity.Identity, error)
	GetPendingOTP(ctx context.Context, identityID int64, forUpdate bool) (*entity.OTPRecord, error)
	CreateOTP(ctx context.Context, in entity.OTPRecord) error
	UpdateOTP(ctx context.Context, in entity.OTPRecord) error
}

type repoDB interface {
	// Atomic runs fn in one transaction, committing when fn returns nil. fn
	// may run more than once when the database reports a serialization conflict.
	Atomic(ctx context.Context, fn func(ctx context.Context, tx TxStore) error) error
	CreateAuditEvent(ctx context.Context, in entity.AuditEvent) error
}

// OTPDelivery carries a freshly issued code to the delivery channel.
type OTPDelivery struct {
	IdentityID int64
	Identifier string
	IsEmail    bool
	Code       string
	Purpose    entity.APIName
	ExpiresAt  time.Time
}

type delivery interface {
	Send(ctx context.Context, msg OTPDelivery) error
}

type Usecase struct {
	repoDB    repoDB
	repoAudit repoAudit
	delivery  delivery
	idemp     idempotency.Idempotency
	validator validator.Validator
	cfg       config.Config
	hasher    hash.Hash
	code      otp.Generator
	uid       uid.NumberID
	uuid      uid.StringID
	clock     clock.Clocker
	ins       instrument.Instrumentation
	goroutine *goroutine.Manager
}

type Dependency struct {
	RepoDB    repoDB
	RepoAudit repoAudit
	Delivery  delivery
	// Idempotency is optional; without it Idempotency-Key is ignored.
	Idempotency idempotency.Idempotency
	Validator   validator.Validator
	Config      config.Config
	Hasher      hash.Hash
	Code        otp.Generator
	UID         uid.NumberID
	UUID        uid.StringID
	Clock       clock.Clocker
	Instrument  instrument.Instrumentation
	Goroutine   *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		repoAudit: dep.RepoAudit,
		delivery:  dep.Delivery,
		idemp:     dep.Idempotency,
		validator: dep.Validator,
		cfg:       dep.Config,
		hasher:    dep.Hasher,
		code:      dep.Code,
		uid:       dep.UID,
		uuid:      dep.UUID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
		goroutine: dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("login.usecase").Start(ctx, name)
}
