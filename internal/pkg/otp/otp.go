package otp

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pquerna/otp"
)

// Generator produces fresh plaintext passcodes.
type Generator interface {
	Generate() (string, error)
}

// Numeric generates uniformly distributed decimal codes of a fixed length.
type Numeric struct {
	digits otp.Digits
	upper  *big.Int
	rand   io.Reader
}

// NewNumeric returns a generator for codes of the given length. Lengths other
// than 6 or 8 fall back to 6.
func NewNumeric(digits otp.Digits) *Numeric {
	if digits != otp.DigitsSix && digits != otp.DigitsEight {
		digits = otp.DigitsSix
	}

	upper := big.NewInt(1)
	for range digits.Length() {
		upper.Mul(upper, big.NewInt(10))
	}

	return &Numeric{digits: digits, upper: upper, rand: rand.Reader}
}

// Length reports how many digits each generated code has.
func (n *Numeric) Length() int {
	return n.digits.Length()
}

// Generate returns a code in [0, 10^digits) zero padded to the full length.
func (n *Numeric) Generate() (string, error) {
	v, err := rand.Int(n.rand, n.upper)
	if err != nil {
		return "", err
	}

	return n.digits.Format(int32(v.Int64())), nil
}
