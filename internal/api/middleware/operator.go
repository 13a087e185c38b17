package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const operatorPrefix = "/ops/"

// Operator returns Echo middleware that guards the app-wide /ops/ endpoints
// (scheduler control, eBay budget) with a static operator bearer token.
// Storefront session tokens are not accepted there. An empty token closes
// the operator endpoints entirely.
func Operator(token string, log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !strings.HasPrefix(req.URL.Path, operatorPrefix) {
				return next(c)
			}

			if token == "" {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "operator endpoints are disabled"})
			}

			got, ok := bearerToken(req.Header.Get(echo.HeaderAuthorization))
			if !ok {
				return unauthorized(c, "missing bearer token")
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				log.WarnContext(req.Context(), "operator token rejected",
					"path", req.URL.Path,
					"remote_ip", c.RealIP(),
				)
				return c.JSON(http.StatusForbidden, map[string]string{"error": "operator token required"})
			}
			return next(c)
		}
	}
}
