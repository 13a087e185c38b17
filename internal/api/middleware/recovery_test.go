package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-catalog-importer/internal/auth"
	"github.com/donaldgifford/ebay-catalog-importer/internal/metrics"
)

// newStack mounts h behind the same middleware order the router uses.
func newStack(buf *bytes.Buffer, route string, h echo.HandlerFunc) *echo.Echo {
	log := slog.New(slog.NewTextHandler(buf, nil))
	e := echo.New()
	e.Use(Recovery(log), RequestLog(log), Session(auth.NewVerifier(testSecret), log))
	e.Any(route, h)
	return e
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	token, err := auth.IssueSessionToken(testSecret, "acme.myshopify.com", "", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name       string
		route      string
		path       string
		token      string
		handler    echo.HandlerFunc
		wantStatus int
		wantLog    []string
		noLog      []string
	}{
		{
			name:       "tenant route panic carries shop and request id",
			route:      "/api/v1/imports/:id",
			path:       "/api/v1/imports/8d1c7c52-3f0e-4f6a-9a53-2f1b6f0c9e11",
			token:      token,
			handler:    func(echo.Context) error { panic("nil job snapshot") },
			wantStatus: http.StatusInternalServerError,
			wantLog: []string{
				`msg="handler panicked"`,
				`panic="nil job snapshot"`,
				"route=/api/v1/imports/:id",
				"request_id=req-recovery-1",
				"shop=acme.myshopify.com",
				"stack=",
			},
		},
		{
			name:       "public route panic has no shop",
			route:      "/webhooks/app-uninstalled",
			path:       "/webhooks/app-uninstalled",
			handler:    func(echo.Context) error { panic(errors.New("decoder state corrupted")) },
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{`panic="decoder state corrupted"`, "request_id=req-recovery-1"},
			noLog:      []string{"shop="},
		},
		{
			name:       "non-string panic value",
			route:      "/api/v1/lookup",
			path:       "/api/v1/lookup",
			token:      token,
			handler:    func(echo.Context) error { panic(42) },
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{"panic=42", "method=GET"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			e := newStack(&buf, tt.route, tt.handler)

			req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			req.Header.Set(requestIDHeader, "req-recovery-1")
			if tt.token != "" {
				req.Header.Set(echo.HeaderAuthorization, "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, problemContentType, rec.Header().Get(echo.HeaderContentType))
			assert.Equal(t, "req-recovery-1", rec.Header().Get(requestIDHeader))

			var problem huma.ErrorModel
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.Equal(t, http.StatusInternalServerError, problem.Status)
			assert.Equal(t, "Internal Server Error", problem.Title)
			assert.Contains(t, problem.Detail, "X-Request-ID")
			assert.NotContains(t, rec.Body.String(), "panic")

			for _, want := range tt.wantLog {
				assert.Contains(t, buf.String(), want)
			}
			for _, unwanted := range tt.noLog {
				assert.NotContains(t, buf.String(), unwanted)
			}
		})
	}
}

func TestRecovery_CountsPanicsPerRoute(t *testing.T) {
	t.Parallel()

	const route = "/api/v1/settings/panics-counted"
	before := testutil.ToFloat64(metrics.HTTPPanicsTotal.WithLabelValues(route))

	var buf bytes.Buffer
	e := newStack(&buf, route, func(echo.Context) error { panic("boom") })
	token, err := auth.IssueSessionToken(testSecret, "acme.myshopify.com", "", time.Minute)
	require.NoError(t, err)

	for range 2 {
		req := httptest.NewRequest(http.MethodPost, route, http.NoBody)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		e.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.InDelta(t, before+2, testutil.ToFloat64(metrics.HTTPPanicsTotal.WithLabelValues(route)), 0.001)
}

func TestRecovery_CommittedResponseIsLeftAlone(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := newStack(&buf, "/webhooks/orders", func(c echo.Context) error {
		c.Response().WriteHeader(http.StatusAccepted)
		panic("after header")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhooks/orders", http.NoBody))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Contains(t, buf.String(), `panic="after header"`)
}

func TestRecovery_AbortHandlerPropagates(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := newStack(&buf, "/webhooks/stream", func(echo.Context) error {
		panic(http.ErrAbortHandler)
	})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/webhooks/stream", http.NoBody))
	})
	assert.NotContains(t, buf.String(), "handler panicked")
}

func TestRecovery_NoPanicPassesThrough(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := newStack(&buf, "/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotContains(t, buf.String(), "handler panicked")
}
