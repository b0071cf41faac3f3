// Package uid generates identifiers: UUID strings for traces and correlation,
// and time-ordered snowflake integers for primary keys.
package uid

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates positive, time-ordered integer identifiers.
type NumberID interface {
	Generate() int64
}
