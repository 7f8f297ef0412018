package firebase

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienduca/pkg/errors"
)

func TestMapProviderError(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		wantCode   string
		wantStatus int
	}{
		{"unknown email", "EMAIL_NOT_FOUND", "UNAUTHORIZED", http.StatusUnauthorized},
		{"wrong password", "INVALID_PASSWORD", "UNAUTHORIZED", http.StatusUnauthorized},
		{"merged credential code", "INVALID_LOGIN_CREDENTIALS", "UNAUTHORIZED", http.StatusUnauthorized},
		{"disabled account", "USER_DISABLED", "FORBIDDEN", http.StatusForbidden},
		{"throttled", "TOO_MANY_ATTEMPTS_TRY_LATER", "TOO_MANY_REQUESTS", http.StatusTooManyRequests},
		{"throttled with suffix", "TOO_MANY_ATTEMPTS_TRY_LATER : Access to this account has been temporarily disabled.", "TOO_MANY_REQUESTS", http.StatusTooManyRequests},
		{"unrecognized code", "SOMETHING_NEW", "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapProviderError(tt.code)
			require.Error(t, err)

			appErr, ok := err.(*errors.AppError)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, tt.wantStatus, appErr.Status)
		})
	}
}

func TestMapProviderErrorNeverLeaksWhichFieldFailed(t *testing.T) {
	// Bad email and bad password must be indistinguishable to a caller.
	emailErr := mapProviderError("EMAIL_NOT_FOUND")
	passErr := mapProviderError("INVALID_PASSWORD")
	assert.Equal(t, emailErr.Error(), passErr.Error())
}

func TestSignInRequiresAPIKey(t *testing.T) {
	client := &FirebaseAuthClient{}

	_, _, err := client.SignInWithEmailPassword("someone@example.com", "secret")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "INTERNAL_ERROR"))
}
