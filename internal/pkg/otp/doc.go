// Package otp generates numeric one-time passcodes.
//
// Codes are drawn from crypto/rand and rendered with a fixed width, so a code
// such as 000042 keeps its leading zeros.
package otp
