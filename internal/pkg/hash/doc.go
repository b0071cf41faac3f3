// Package hash provides slow, salted one-way hashing for short-lived secrets
// such as one-time passcodes.
//
// Only the hash is stored. Verification recomputes it from the submitted
// plaintext and compares in constant time.
package hash
