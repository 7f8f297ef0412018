package firebase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"tienduca/pkg/errors"
)

// The Admin SDK cannot check a password, so sign-in goes through the
// Identity Toolkit REST endpoint with the project's web API key.
const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	LocalID      string `json:"localId"`
}

type signInErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// mapProviderError translates the provider's error code into the fixed
// set of user-facing messages.
func mapProviderError(code string) error {
	// Codes can carry a suffix, e.g. "TOO_MANY_ATTEMPTS_TRY_LATER : ...".
	base := strings.TrimSpace(strings.SplitN(code, ":", 2)[0])

	switch base {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return errors.Unauthorized("Invalid email or password", nil)
	case "USER_DISABLED":
		return errors.Forbidden("This account has been disabled", nil)
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return errors.TooManyRequests("Too many sign-in attempts, try again later")
	default:
		return errors.Internal("Authentication provider error", fmt.Errorf("provider code: %s", code))
	}
}

// SignInWithEmailPassword verifies credentials and returns the ID token
// and refresh token issued by the provider.
func (f *FirebaseAuthClient) SignInWithEmailPassword(email, password string) (string, string, error) {
	if f.apiKey == "" {
		return "", "", errors.Internal("Firebase API key is not configured", nil)
	}

	body, err := json.Marshal(signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return "", "", err
	}

	url := fmt.Sprintf("%s?key=%s", signInEndpoint, f.apiKey)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", "", errors.Internal("Failed to reach authentication provider", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp signInErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return "", "", errors.Internal(fmt.Sprintf("Sign-in failed with status %d", resp.StatusCode), err)
		}
		return "", "", mapProviderError(errResp.Error.Message)
	}

	var result signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", "", errors.Internal("Failed to decode sign-in response", err)
	}

	return result.IDToken, result.RefreshToken, nil
}
