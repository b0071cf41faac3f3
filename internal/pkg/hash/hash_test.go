package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNew(t *testing.T) {
	h, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, &Bcrypt{}, h)

	h, err = New(Config{Driver: " Argon2id "})
	require.NoError(t, err)
	assert.IsType(t, &Argon2id{}, h)

	_, err = New(Config{Driver: "md5"})
	assert.Error(t, err)
}

func TestHashers(t *testing.T) {
	hashers := map[string]Hash{
		"bcrypt":   NewBcrypt(bcrypt.MinCost, "pepper"),
		"argon2id": NewArgon2id("pepper"),
	}

	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			hashed, err := h.Hash("012345")
			require.NoError(t, err)
			assert.NotContains(t, string(hashed), "012345")

			assert.True(t, h.Verify(string(hashed), "012345"))
			assert.False(t, h.Verify(string(hashed), "012346"))
			assert.False(t, h.Verify("", "012345"))
			assert.False(t, h.Verify("garbage", "012345"))

			again, err := h.Hash("012345")
			require.NoError(t, err)
			assert.NotEqual(t, hashed, again, "hashes are salted")
		})
	}
}

func TestPepperMismatch(t *testing.T) {
	hashed, err := NewBcrypt(bcrypt.MinCost, "a").Hash("123456")
	require.NoError(t, err)
	assert.False(t, NewBcrypt(bcrypt.MinCost, "b").Verify(string(hashed), "123456"))

	phc, err := NewArgon2id("a").Hash("123456")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(phc), "$argon2id$v="))
	assert.False(t, NewArgon2id("b").Verify(string(phc), "123456"))
}

func TestNewBcrypt_CostFallback(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(0, "").cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(99, "").cost)
	assert.Equal(t, 12, NewBcrypt(12, "").cost)
}
