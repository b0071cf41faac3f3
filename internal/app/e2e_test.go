package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The end-to-end tests run against a live server (make run) when
// OTPLOGIN_REAL_BASE_URL is set, for example http://localhost:8080.

var httpClient = &http.Client{Timeout: 5 * time.Second}

type envelope struct {
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

func realBaseURL(t *testing.T) string {
	t.Helper()

	base := strings.TrimRight(strings.TrimSpace(os.Getenv("OTPLOGIN_REAL_BASE_URL")), "/")
	if base == "" || testing.Short() {
		t.Skip("OTPLOGIN_REAL_BASE_URL is not set")
	}
	return base
}

func doJSON(t *testing.T, method, url string, payload any) (int, envelope) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		require.NoError(t, json.NewEncoder(buf).Encode(payload))
		body = buf
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env))
	}

	return resp.StatusCode, env
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

func TestE2E_Health(t *testing.T) {
	base := realBaseURL(t)

	status, env := doJSON(t, http.MethodGet, base+"/health", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", env.Message)
}

func TestE2E_SendOTP(t *testing.T) {
	base := realBaseURL(t)

	t.Run("Success", func(t *testing.T) {
		status, env := doJSON(t, http.MethodPost, base+"/api/v1/otp/send", map[string]any{
			"identifier": uniqueEmail("send"),
			"is_email":   true,
		})

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "OTP sent successfully", env.Message)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		status, env := doJSON(t, http.MethodPost, base+"/api/v1/otp/send", map[string]any{
			"identifier": "not-an-email",
			"is_email":   true,
		})

		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, "Invalid email format", env.Message)
	})

	t.Run("LegacyPath", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, base+"/send_otp", map[string]any{
			"identifier": uniqueEmail("legacy"),
			"is_email":   true,
		})

		assert.Equal(t, http.StatusOK, status)
	})
}

func TestE2E_VerifyOTP(t *testing.T) {
	base := realBaseURL(t)

	t.Run("UnknownIdentity", func(t *testing.T) {
		status, env := doJSON(t, http.MethodPost, base+"/api/v1/otp/verify", map[string]any{
			"identifier": uniqueEmail("ghost"),
			"otp":        "123456",
		})

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "User not found", env.Message)
	})

	t.Run("WrongCode", func(t *testing.T) {
		email := uniqueEmail("verify")
		status, _ := doJSON(t, http.MethodPost, base+"/api/v1/otp/send", map[string]any{
			"identifier": email,
			"is_email":   true,
		})
		require.Equal(t, http.StatusOK, status)

		// one in a million chance of hitting the real code
		status, env := doJSON(t, http.MethodPost, base+"/api/v1/otp/verify", map[string]any{
			"identifier": email,
			"otp":        "000000",
		})

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid OTP", env.Message)
	})
}

func TestE2E_ResendOTP(t *testing.T) {
	base := realBaseURL(t)

	t.Run("UnknownIdentity", func(t *testing.T) {
		status, env := doJSON(t, http.MethodPost, base+"/api/v1/otp/resend", map[string]any{
			"identifier": uniqueEmail("nothing"),
		})

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "User not found", env.Message)
	})

	t.Run("Cooldown", func(t *testing.T) {
		email := uniqueEmail("cooldown")
		status, _ := doJSON(t, http.MethodPost, base+"/api/v1/otp/send", map[string]any{
			"identifier": email,
			"is_email":   true,
		})
		require.Equal(t, http.StatusOK, status)

		// the first resend is free, the second waits one cooldown step
		status, _ = doJSON(t, http.MethodPost, base+"/api/v1/otp/resend", map[string]any{
			"identifier": email,
		})
		require.Equal(t, http.StatusOK, status)

		status, env := doJSON(t, http.MethodPost, base+"/api/v1/otp/resend", map[string]any{
			"identifier": email,
		})

		assert.Equal(t, http.StatusTooManyRequests, status)
		assert.Equal(t, "Cooldown period active, try later", env.Message)
	})
}
