// Package config exposes typed, read-only access to application settings.
package config

import (
	"io"
	"time"
)

// Config defines a set of methods for retrieving configuration values of various types.
// Missing keys resolve to the registered default, or the zero value when no
// default exists.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt32(key string) int32
	GetFloat64(key string) float64

	// GetMillisecond reads an integer value and scales it to milliseconds.
	GetMillisecond(key string) time.Duration
	// GetSecond reads an integer value and scales it to seconds.
	GetSecond(key string) time.Duration
	// GetMinute reads an integer value and scales it to minutes.
	GetMinute(key string) time.Duration

	// GetArray reads a comma separated value (or a native list) as trimmed,
	// non-empty strings.
	GetArray(key string) []string
}
