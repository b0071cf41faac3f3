package hash

import (
	"fmt"
	"strings"
)

// Hash hashes secrets and verifies plaintext against a stored hash.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}

// Supported drivers for New.
const (
	DriverBcrypt   = "bcrypt"
	DriverArgon2id = "argon2id"
)

// Config selects and tunes a Hash implementation.
type Config struct {
	Driver     string
	Pepper     string
	BcryptCost int
}

// New returns the Hash implementation named by cfg.Driver.
func New(cfg Config) (Hash, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverBcrypt:
		return NewBcrypt(cfg.BcryptCost, cfg.Pepper), nil
	case DriverArgon2id:
		return NewArgon2id(cfg.Pepper), nil
	default:
		return nil, fmt.Errorf("hash: unsupported driver %q", cfg.Driver)
	}
}
