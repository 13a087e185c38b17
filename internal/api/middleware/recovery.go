package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/danielgtaylor/huma/v2"
	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/ebay-catalog-importer/internal/auth"
	"github.com/donaldgifford/ebay-catalog-importer/internal/metrics"
)

const problemContentType = "application/problem+json"

// Recovery returns Echo middleware that turns a handler panic into a 500
// problem response shaped like the ones Huma operations return. The panic
// is logged with the request ID and, on tenant routes, the shop.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if e, ok := r.(error); ok && errors.Is(e, http.ErrAbortHandler) {
					panic(r)
				}

				req := c.Request()
				route := routeLabel(c)
				metrics.HTTPPanicsTotal.WithLabelValues(route).Inc()

				attrs := []any{
					"panic", fmt.Sprint(r),
					"method", req.Method,
					"route", route,
				}
				if id, ok := c.Get(requestIDKey).(string); ok {
					attrs = append(attrs, "request_id", id)
				}
				if shop, ok := auth.ShopFrom(req.Context()); ok {
					attrs = append(attrs, "shop", shop)
				}
				attrs = append(attrs, "stack", string(debug.Stack()))
				log.ErrorContext(req.Context(), "handler panicked", attrs...)

				if c.Response().Committed {
					err = nil
					return
				}
				err = writeProblem(c, http.StatusInternalServerError,
					"unexpected server error; quote the X-Request-ID header when reporting it")
			}()
			return next(c)
		}
	}
}

func writeProblem(c echo.Context, status int, detail string) error {
	body, err := json.Marshal(&huma.ErrorModel{
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
	if err != nil {
		return fmt.Errorf("encoding problem response: %w", err)
	}
	return c.Blob(status, problemContentType, body)
}
