package usecase

import (
	"context"
	"errors"
	"maps"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/otplogin/internal/login/entity"
	"github.com/shandysiswandi/otplogin/internal/pkg/config"
	"github.com/shandysiswandi/otplogin/internal/pkg/goerror"
	"github.com/shandysiswandi/otplogin/internal/pkg/goroutine"
	"github.com/shandysiswandi/otplogin/internal/pkg/hash"
	"github.com/shandysiswandi/otplogin/internal/pkg/idempotency"
	"github.com/shandysiswandi/otplogin/internal/pkg/instrument"
	"github.com/shandysiswandi/otplogin/internal/pkg/otp"
	"github.com/shandysiswandi/otplogin/internal/pkg/uid"
	"github.com/shandysiswandi/otplogin/internal/pkg/validator"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memStore is an in-memory repoDB. Atomic serializes transactions and rolls
// back on error, which is enough to emulate row locks for these tests.
type memStore struct {
	txMu sync.Mutex

	mu         sync.Mutex
	identities map[string]entity.Identity
	records    map[int64]entity.OTPRecord
	audits     []entity.AuditEvent

	atomicErr error
	auditErr  error
	txCalls   int
}

func newMemStore() *memStore {
	return &memStore{
		identities: map[string]entity.Identity{},
		records:    map[int64]entity.OTPRecord{},
	}
}

func (m *memStore) Atomic(ctx context.Context, fn func(ctx context.Context, tx TxStore) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	m.txCalls++
	if m.atomicErr != nil {
		m.mu.Unlock()
		return m.atomicErr
	}
	idents := maps.Clone(m.identities)
	recs := maps.Clone(m.records)
	m.mu.Unlock()

	if err := fn(ctx, &memTx{m: m}); err != nil {
		m.mu.Lock()
		m.identities, m.records = idents, recs
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memStore) CreateAuditEvent(_ context.Context, in entity.AuditEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.auditErr != nil {
		return m.auditErr
	}
	m.audits = append(m.audits, in)
	return nil
}

func (m *memStore) ListAuditEvents(_ context.Context, traceID string) ([]entity.AuditEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.AuditEvent
	for _, ev := range m.audits {
		if ev.TraceID == traceID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *memStore) auditEvents() []entity.AuditEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.AuditEvent(nil), m.audits...)
}

func (m *memStore) identity(identifier string) (entity.Identity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.identities[identifier]
	return i, ok
}

func (m *memStore) recordsOf(identityID int64) []entity.OTPRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.OTPRecord
	for _, r := range m.records {
		if r.IdentityID == identityID {
			out = append(out, r)
		}
	}
	return out
}

func (m *memStore) pendingOf(identityID int64) []entity.OTPRecord {
	var out []entity.OTPRecord
	for _, r := range m.recordsOf(identityID) {
		if r.Status == entity.OTPStatusPending {
			out = append(out, r)
		}
	}
	return out
}

type memTx struct {
	m *memStore
}

func (t *memTx) UpsertIdentity(_ context.Context, in entity.Identity) (*entity.Identity, bool, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	if cur, ok := t.m.identities[in.Identifier]; ok {
		return &cur, false, nil
	}
	t.m.identities[in.Identifier] = in
	return &in, true, nil
}

func (t *memTx) GetIdentityByIdentifier(_ context.Context, identifier string, _ bool) (*entity.Identity, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	cur, ok := t.m.identities[identifier]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &cur, nil
}

func (t *memTx) GetPendingOTP(_ context.Context, identityID int64, _ bool) (*entity.OTPRecord, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	for _, r := range t.m.records {
		if r.IdentityID == identityID && r.Status == entity.OTPStatusPending {
			return &r, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (t *memTx) CreateOTP(_ context.Context, in entity.OTPRecord) error {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	for _, r := range t.m.records {
		if r.IdentityID == in.IdentityID && r.Status == entity.OTPStatusPending {
			return goerror.ErrConflict
		}
	}
	t.m.records[in.ID] = in
	return nil
}

func (t *memTx) UpdateOTP(_ context.Context, in entity.OTPRecord) error {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	if _, ok := t.m.records[in.ID]; !ok {
		return goerror.ErrNotFound
	}
	t.m.records[in.ID] = in
	return nil
}

type fakeDelivery struct {
	mu   sync.Mutex
	sent []OTPDelivery
	err  error
}

func (f *fakeDelivery) Send(_ context.Context, msg OTPDelivery) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.err
}

func (f *fakeDelivery) last(t *testing.T) OTPDelivery {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent, "nothing was delivered")
	return f.sent[len(f.sent)-1]
}

func (f *fakeDelivery) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type seqID struct {
	mu sync.Mutex
	n  int64
}

func (s *seqID) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.n
}

type failingCode struct{}

func (failingCode) Generate() (string, error) { return "", errors.New("entropy exhausted") }

// memIdempotency mirrors the redis tracker semantics without redis.
type memIdempotency struct {
	mu     sync.Mutex
	states map[string]idempotency.State
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{states: map[string]idempotency.State{}}
}

func (m *memIdempotency) Acquire(_ context.Context, key string, _ time.Duration) (idempotency.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.states[key]; ok {
		return st, nil
	}
	m.states[key] = idempotency.StateInProgress
	return idempotency.StateNone, nil
}

func (m *memIdempotency) MarkCompleted(_ context.Context, key string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[key] = idempotency.StateCompleted
	return nil
}

func (m *memIdempotency) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, key)
	return nil
}

func (m *memIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	st, err := m.Acquire(ctx, key, 0)
	if err != nil {
		return err
	}
	switch st {
	case idempotency.StateInProgress:
		return idempotency.ErrAlreadyInProgress
	case idempotency.StateCompleted:
		return idempotency.ErrAlreadyCompleted
	}
	if err := fn(ctx); err != nil {
		_ = m.Release(ctx, key)
		return err
	}
	return m.MarkCompleted(ctx, key, 0)
}

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type harness struct {
	uc       *Usecase
	store    *memStore
	delivery *fakeDelivery
	clock    *fakeClock
	idemp    *memIdempotency
	gor      *goroutine.Manager
}

type harnessOption func(*Dependency)

func newHarness(t *testing.T, yaml string, opts ...harnessOption) *harness {
	t.Helper()

	if yaml == "" {
		yaml = "app:\n  name: otplogin\n"
	}
	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	h := &harness{
		store:    newMemStore(),
		delivery: &fakeDelivery{},
		clock:    &fakeClock{now: epoch},
		idemp:    newMemIdempotency(),
		gor:      goroutine.NewManager(4),
	}

	dep := Dependency{
		RepoDB:      h.store,
		RepoAudit:   h.store,
		Delivery:    h.delivery,
		Idempotency: h.idemp,
		Validator:   v,
		Config:      cfg,
		Hasher:      hash.NewBcrypt(bcrypt.MinCost, "pepper"),
		Code:        otp.NewNumeric(6),
		UID:         &seqID{},
		UUID:        uid.NewUUID(),
		Clock:       h.clock,
		Instrument:  instrument.NewNoop(),
		Goroutine:   h.gor,
	}
	for _, opt := range opts {
		opt(&dep)
	}

	h.uc = New(dep)
	return h
}

func (h *harness) send(t *testing.T, identifier string, isEmail bool) string {
	t.Helper()
	out, err := h.uc.SendOTP(context.Background(), SendOTPInput{Identifier: identifier, IsEmail: isEmail})
	require.NoError(t, err)
	require.Equal(t, "OTP sent successfully", out.Message)
	return h.delivery.last(t).Code
}

func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}
	return "000000"
}
