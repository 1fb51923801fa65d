package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"sesi-membership/internal/domain/user"

	"github.com/labstack/echo/v4"
)

const userContextKey = "auth.user"

var (
	errNotAuthenticated = errors.New("not authenticated")
	errInactiveUser     = errors.New("user account is disabled")
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

// BearerAuth rejects requests without a valid "Authorization: Bearer" token
// with 401 and stores the authenticated user on the context.
func BearerAuth(a Authenticator, inactive error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, ok := strings.Cut(raw, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": errNotAuthenticated.Error()})
			}
			u, err := a.Authenticate(c.Request().Context(), strings.TrimSpace(token))
			if err != nil {
				if inactive != nil && errors.Is(err, inactive) {
					return c.JSON(http.StatusForbidden, map[string]string{"error": errInactiveUser.Error()})
				}
				slog.DebugContext(c.Request().Context(), "bearer auth rejected", "path", c.Path(), "err", err)
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			c.Set(userContextKey, u)
			return next(c)
		}
	}
}

// CurrentUser returns the user set by BearerAuth, or nil.
func CurrentUser(c echo.Context) *user.User {
	u, _ := c.Get(userContextKey).(*user.User)
	return u
}
