package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-catalog-importer/internal/ebay"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

var fastRetry = RetryPolicy{Retries: 3, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}

func TestRetry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   bool
		wantHints int
	}{
		{
			name:      "succeeds first time",
			errs:      []error{nil},
			wantCalls: 1,
		},
		{
			name: "retries 503 then succeeds",
			errs: []error{
				&domain.HTTPStatusError{StatusCode: http.StatusServiceUnavailable, Kind: domain.ErrUpstreamUnavailable},
				nil,
			},
			wantCalls: 2,
			wantHints: 1,
		},
		{
			name: "retries network errors",
			errs: []error{
				fmt.Errorf("%w: dial tcp: refused", domain.ErrUpstreamUnavailable),
				nil,
			},
			wantCalls: 2,
		},
		{
			name: "does not retry 400",
			errs: []error{
				&domain.HTTPStatusError{StatusCode: http.StatusBadRequest, Kind: domain.ErrDownstreamForward},
			},
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name:      "does not retry credential errors",
			errs:      []error{domain.ErrCredentials},
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name:      "does not retry the daily limit",
			errs:      []error{ebay.ErrDailyLimitReached},
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name: "gives up after the policy",
			errs: []error{
				&domain.HTTPStatusError{StatusCode: http.StatusTooManyRequests, Kind: domain.ErrUpstreamUnavailable},
				&domain.HTTPStatusError{StatusCode: http.StatusTooManyRequests, Kind: domain.ErrUpstreamUnavailable},
				&domain.HTTPStatusError{StatusCode: http.StatusTooManyRequests, Kind: domain.ErrUpstreamUnavailable},
				&domain.HTTPStatusError{StatusCode: http.StatusTooManyRequests, Kind: domain.ErrUpstreamUnavailable},
			},
			wantCalls: 4,
			wantErr:   true,
			wantHints: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			calls, hints := 0, 0
			err := retry(context.Background(), fastRetry, func() error {
				e := tt.errs[calls]
				calls++
				return e
			}, func(time.Duration) { hints++ })

			assert.Equal(t, tt.wantCalls, calls)
			assert.Equal(t, tt.wantHints, hints)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRetry_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := retry(ctx, RetryPolicy{Retries: 10, InitialInterval: time.Hour, MaxInterval: time.Hour}, func() error {
		calls++
		cancel()
		return fmt.Errorf("%w: reset", domain.ErrUpstreamUnavailable)
	}, nil)

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestHintedBackOff(t *testing.T) {
	t.Parallel()

	h := &hintedBackOff{BackOff: constantBackOff(time.Millisecond)}
	h.hint = 2 * time.Second
	assert.Equal(t, 2*time.Second, h.NextBackOff())
	assert.Equal(t, time.Millisecond, h.NextBackOff(), "hint is consumed")
}

func TestTransient(t *testing.T) {
	t.Parallel()

	assert.True(t, transient(domain.ErrDownstreamForward))
	assert.False(t, transient(context.Canceled))
	assert.False(t, transient(domain.ErrUpstreamAuth))
	assert.False(t, transient(errors.New("something else")))
}

type constantBackOff time.Duration

func (c constantBackOff) NextBackOff() time.Duration { return time.Duration(c) }
func (constantBackOff) Reset()                       {}
