package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPolicy(t *testing.T) {
	h := newHarness(t, "")
	p := h.uc.policy()
	assert.Equal(t, 5*time.Minute, p.ttl)
	assert.Equal(t, time.Minute, p.cooldown)
	assert.Equal(t, 3, p.maxAttempts)
	assert.Equal(t, 3, p.maxResends)
	assert.False(t, p.blockImmediately)

	h = newHarness(t, `
modules:
  login:
    otp:
      ttl_minutes: 10
      cooldown_minutes: 2
      max_attempts: 5
      max_resends: 1
      block_immediately: true
`)
	p = h.uc.policy()
	assert.Equal(t, 10*time.Minute, p.ttl)
	assert.Equal(t, 2*time.Minute, p.cooldown)
	assert.Equal(t, 5, p.maxAttempts)
	assert.Equal(t, 1, p.maxResends)
	assert.True(t, p.blockImmediately)
}

func TestNormalizeIdentifier(t *testing.T) {
	assert.Equal(t, "a@b.com", normalizeIdentifier(" A@B.com ", true))
	assert.Equal(t, "+16502530000", normalizeIdentifier("+1 650 253 0000", false))
	assert.Equal(t, "garbage", normalizeIdentifier(" garbage ", false))
	assert.Equal(t, "a@b.com", normalizeLookup("A@b.COM"))
	assert.Equal(t, "+442070313000", normalizeLookup("+44 20 7031 3000"))
}
