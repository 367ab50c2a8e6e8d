package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dealerhub/dealership-system/internal/core/ports"
	"github.com/dealerhub/dealership-system/internal/infrastructure/session"
)

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(raw string) (*ports.SessionUser, error)
}

// Session attaches the caller identified by the bearer token to the request
// context. A request without an Authorization header passes through
// anonymously; whether that is acceptable is decided by the service it
// reaches. A malformed header or a token that fails verification is rejected
// with 401.
func Session(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := tokens.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			req := c.Request()
			c.SetRequest(req.WithContext(session.WithUser(req.Context(), user)))
			c.Set("user_id", user.ID)
			return next(c)
		}
	}
}
