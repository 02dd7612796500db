package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// TokenAuthMiddleware guards the API with a single static bearer token.
// An empty configured token disables the check entirely, which is the
// normal single-user local setup.
func TokenAuthMiddleware(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token == "" || c.Path() == "/health" {
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorizedError(c, "Missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return unauthorizedError(c, "Invalid authorization header format")
			}

			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(token)) != 1 {
				log.Debug().Str("client_ip", c.RealIP()).Msg("Rejected invalid API token")
				return unauthorizedError(c, "Invalid API token")
			}

			return next(c)
		}
	}
}

func unauthorizedError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, map[string]interface{}{
		"type":   "https://planvida.app/errors/unauthorized",
		"title":  "Unauthorized",
		"status": 401,
		"detail": detail,
	})
}
