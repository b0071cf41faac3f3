package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx := context.Background()
	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(ctr) })

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)

	opt, err := redis.ParseURL(uri)
	require.NoError(t, err)

	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestStateTracker_Exec(t *testing.T) {
	client := newRedis(t)
	tracker := New(client, "otp-send")
	ctx := context.Background()

	calls := 0
	run := func(context.Context) error { calls++; return nil }

	require.NoError(t, tracker.Exec(ctx, "k1", run))
	assert.ErrorIs(t, tracker.Exec(ctx, "k1", run), ErrAlreadyCompleted)
	assert.Equal(t, 1, calls)

	val, err := client.Get(ctx, "idempotency:otp-send:k1").Result()
	require.NoError(t, err)
	assert.Equal(t, StateCompleted.String(), val)
}

func TestStateTracker_FailureReleases(t *testing.T) {
	tracker := New(newRedis(t), "")
	ctx := context.Background()
	errBoom := errors.New("boom")

	assert.ErrorIs(t, tracker.Exec(ctx, "k2", func(context.Context) error { return errBoom }), errBoom)
	assert.NoError(t, tracker.Exec(ctx, "k2", func(context.Context) error { return nil }))
}

func TestStateTracker_InProgress(t *testing.T) {
	tracker := New(newRedis(t), "")
	ctx := context.Background()

	state, err := tracker.Acquire(ctx, "k3", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, StateNone, state)

	err = tracker.Exec(ctx, "k3", func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrAlreadyInProgress)

	require.NoError(t, tracker.Release(ctx, "k3"))
	state, err = tracker.Acquire(ctx, "k3", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, StateNone, state)
}
