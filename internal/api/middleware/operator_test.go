package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-catalog-importer/internal/auth"
)

func TestOperator(t *testing.T) {
	t.Parallel()

	tenant, err := auth.IssueSessionToken(testSecret, "random-merchant.myshopify.com", "", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name       string
		token      string
		path       string
		authHeader string
		wantStatus int
		wantRan    bool
	}{
		{
			name:       "operator token accepted",
			token:      "ops-token",
			path:       "/ops/v1/scheduler/runs/stuck_job_reaper",
			authHeader: "Bearer ops-token",
			wantStatus: http.StatusOK,
			wantRan:    true,
		},
		{
			name:       "tenant session token refused",
			token:      "ops-token",
			path:       "/ops/v1/scheduler/runs/stuck_job_reaper",
			authHeader: "Bearer " + tenant,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing header",
			token:      "ops-token",
			path:       "/ops/v1/ebay/quota",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "closed without a configured token",
			path:       "/ops/v1/ebay/quota",
			authHeader: "Bearer ",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "tenant paths pass through",
			token:      "ops-token",
			path:       "/api/v1/quota",
			wantStatus: http.StatusOK,
			wantRan:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			e.Use(Operator(tt.token, slog.New(slog.DiscardHandler)))

			ran := false
			e.POST(tt.path, func(c echo.Context) error {
				ran = true
				return c.NoContent(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, tt.path, http.NoBody)
			if tt.authHeader != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.authHeader)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRan, ran)
		})
	}
}
