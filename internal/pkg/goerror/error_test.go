package goerror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NewServer(errors.New("db down")), http.StatusInternalServerError},
		{NewInvalidFormat(), http.StatusBadRequest},
		{NewInvalidInput(errors.New("bad")), http.StatusUnprocessableEntity},
		{NewBusiness("User not found", CodeNotFound), http.StatusNotFound},
		{NewBusiness("OTP expired", CodeExpired), http.StatusGone},
		{NewBusiness("Max attempts reached, OTP blocked", CodeLocked), http.StatusLocked},
		{NewBusiness("Invalid OTP", CodeUnauthorized), http.StatusUnauthorized},
		{NewBusiness("Max resends reached", CodeTooManyRequest), http.StatusTooManyRequests},
		{NewBusiness("busy", CodeConflict), http.StatusConflict},
		{NewBusiness("draining", CodeUnavailable), http.StatusServiceUnavailable},
		{NewBusiness("odd", Code(999)), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		gerr, ok := As(tt.err)
		require.True(t, ok)
		assert.Equal(t, tt.want, gerr.StatusCode(), gerr.String())
	}
}

func TestSentinelIdentity(t *testing.T) {
	errExpired := NewBusiness("OTP expired", CodeExpired)
	wrapped := fmt.Errorf("verify: %w", errExpired)

	assert.ErrorIs(t, wrapped, errExpired)
	assert.NotErrorIs(t, wrapped, NewBusiness("OTP expired", CodeExpired))
	assert.Equal(t, "OTP expired", Message(wrapped))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "Internal server error", Message(errors.New("raw driver error")))
	assert.Equal(t, "Invalid email format", Message(NewValidation(errors.New("x"), "Invalid email format")))
}

func TestNewInvalidInput_Fields(t *testing.T) {
	gerr, ok := As(NewInvalidInput(nil, "identifier", "Invalid mobile number"))
	require.True(t, ok)
	assert.Equal(t, TypeValidation, gerr.Type())
	assert.Equal(t, CodeInvalidInput, gerr.Code())
	assert.Equal(t, map[string]string{"identifier": "Invalid mobile number"}, gerr.Fields())

	gerr, ok = As(NewInvalidInput(nil, "dangling"))
	require.True(t, ok)
	assert.Equal(t, CodeInvalidFormat, gerr.Code())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewServer(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "connection reset", err.Error())
	assert.Equal(t, "Internal server error", Message(err))
}

func TestCodeAndTypeString(t *testing.T) {
	assert.Equal(t, "ERROR_CODE_LOCKED", CodeLocked.String())
	assert.Equal(t, "ERROR_CODE_INTERNAL", Code(-1).String())
	assert.Equal(t, "ERROR_TYPE_BUSINESS", TypeBusiness.String())
	assert.Equal(t, "ERROR_TYPE_UNKNOWN", Type(42).String())
}
