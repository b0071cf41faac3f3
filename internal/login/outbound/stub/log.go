// Package stub delivers codes nowhere: it only logs that a delivery happened.
// It is the default channel for local runs and tests.
package stub

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otplogin/internal/login/usecase"
)

type Log struct {
	// reveal logs the plaintext code; local development only.
	reveal bool
}

func NewLog(reveal bool) *Log {
	return &Log{reveal: reveal}
}

func (l *Log) Send(ctx context.Context, msg usecase.OTPDelivery) error {
	args := []any{
		"identity_id", msg.IdentityID,
		"identifier", maskIdentifier(msg.Identifier),
		"purpose", string(msg.Purpose),
		"expires_at", msg.ExpiresAt,
	}
	if l.reveal {
		args = append(args, "dev_code", msg.Code)
	}

	slog.InfoContext(ctx, "simulated otp delivery", args...)
	return nil
}

// maskIdentifier keeps the first two and the last two characters.
func maskIdentifier(s string) string {
	r := []rune(s)
	if len(r) <= 4 {
		return "****"
	}
	masked := make([]rune, len(r))
	for i := range r {
		if i < 2 || i >= len(r)-2 || r[i] == '@' {
			masked[i] = r[i]
			continue
		}
		masked[i] = '*'
	}
	return string(masked)
}
