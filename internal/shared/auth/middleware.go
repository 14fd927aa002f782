package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Middleware gates a route group behind bearer-token validation. A nil
// validator disables the gate, which keeps local development runnable without
// an auth service.
func Middleware(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if validator == nil {
				return next(c)
			}
			token := bearerToken(c)
			claims, err := validator.Validate(token)
			if err != nil {
				slog.Warn("request token rejected", slog.String("path", c.Path()), slog.Any("error", err))
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			c.Set("claims", claims)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	authz := strings.TrimSpace(c.Request().Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return strings.TrimSpace(c.QueryParam("token"))
}
