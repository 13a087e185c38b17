package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/ebay-catalog-importer/internal/auth"
)

const protectedPrefix = "/api/"

// TokenVerifier resolves a bearer token to the shop it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Session returns Echo middleware that authenticates every /api/ request
// with a storefront session token and stores the shop domain in the
// request context. Health checks, metrics and API docs stay public.
func Session(v TokenVerifier, log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !strings.HasPrefix(req.URL.Path, protectedPrefix) {
				return next(c)
			}

			token, ok := bearerToken(req.Header.Get(echo.HeaderAuthorization))
			if !ok {
				return unauthorized(c, "missing bearer token")
			}

			shop, err := v.Verify(token)
			if err != nil {
				log.DebugContext(req.Context(), "session token rejected",
					"path", req.URL.Path,
					"error", err,
				)
				if errors.Is(err, auth.ErrInvalidToken) {
					return unauthorized(c, "invalid session token")
				}
				return unauthorized(c, "unauthorized")
			}

			c.SetRequest(req.WithContext(auth.WithShop(req.Context(), shop)))
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": msg})
}
