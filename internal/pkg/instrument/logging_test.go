package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer, fields ...string) *slog.Logger {
	return slog.New(&contextHandler{
		Handler: &maskHandler{
			handler:  slog.NewJSONHandler(buf, &slog.HandlerOptions{ReplaceAttr: replaceAttr}),
			maskKeys: MaskKeys(fields),
		},
		serviceName: "otplogin",
	})
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestLogging_ContextIDs(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	ctx := SetCorrelationID(context.Background(), "cid-1")
	ctx = SetAuditTraceID(ctx, "tid-1")
	log.InfoContext(ctx, "hello")

	line := decodeLine(t, &buf)
	assert.Equal(t, "cid-1", line["_cID"])
	assert.Equal(t, "tid-1", line["_tID"])
	assert.Equal(t, "otplogin", line["service"])
	assert.Equal(t, "INFO", line["severity"])
	assert.Contains(t, line, "ts")
}

func TestLogging_Masks(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, "otp", "code")

	log.Info("request received",
		"otp", "123456",
		"body", `{"identifier":"a@example.com","otp":"123456"}`,
		slog.Group("delivery", "code", "654321", "purpose", "send_otp"),
	)

	line := decodeLine(t, &buf)
	assert.Equal(t, Masked, line["otp"])
	assert.JSONEq(t, `{"identifier":"a@example.com","otp":"***"}`, line["body"].(string))

	group, ok := line["delivery"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, Masked, group["code"])
	assert.Equal(t, "send_otp", group["purpose"])
}

func TestLogging_WithAttrsMasks(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, "code").With("code", "111111")

	log.Info("x")

	assert.Equal(t, Masked, decodeLine(t, &buf)["code"])
}

func TestMaskKeys(t *testing.T) {
	keys := MaskKeys([]string{" OTP ", "", "Code"})

	assert.Len(t, keys, 2)
	assert.Contains(t, keys, "otp")
	assert.Contains(t, keys, "code")
}

func TestMaskData_Nested(t *testing.T) {
	out := MaskData(map[string]any{
		"items": []any{map[string]any{"OTP": "1"}, "plain"},
		"keep":  1.0,
	}, MaskKeys([]string{"otp"}))

	assert.Equal(t, map[string]any{
		"items": []any{map[string]any{"OTP": Masked}, "plain"},
		"keep":  1.0,
	}, out)

	_, ok := MaskJSON([]byte("not json"), MaskKeys([]string{"otp"}))
	assert.False(t, ok)
}

func TestContext_Empty(t *testing.T) {
	//nolint:staticcheck // nil context is part of the contract
	assert.Empty(t, GetCorrelationID(nil))
	assert.Empty(t, GetAuditTraceID(context.Background()))
}
