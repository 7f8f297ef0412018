package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"tienduca/internal/usecase/session"
)

type AuthMiddleware struct {
	authClient *auth.Client
	watcher    *session.InactivityWatcher
}

func NewAuthMiddleware(authClient *auth.Client, watcher *session.InactivityWatcher) *AuthMiddleware {
	return &AuthMiddleware{
		authClient: authClient,
		watcher:    watcher,
	}
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// Authenticate rejects requests without a valid ID token. Every
// authenticated request also counts as activity for the inactivity
// countdown.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		idToken, ok := bearerToken(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		token, err := m.authClient.VerifyIDToken(c.Request().Context(), idToken)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set("uid", token.UID)
		if m.watcher != nil {
			m.watcher.Touch(token.UID)
		}

		return next(c)
	}
}

// OptionalAuthenticate sets the uid when a valid token is present and
// lets the request through anonymously otherwise.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		idToken, ok := bearerToken(c)
		if !ok {
			return next(c)
		}

		token, err := m.authClient.VerifyIDToken(c.Request().Context(), idToken)
		if err != nil {
			return next(c)
		}

		c.Set("uid", token.UID)
		if m.watcher != nil {
			m.watcher.Touch(token.UID)
		}

		return next(c)
	}
}
