package engine

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/donaldgifford/ebay-catalog-importer/internal/ebay"
	"github.com/donaldgifford/ebay-catalog-importer/internal/sink"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// RetryPolicy bounds the retries of a single page fetch or product forward.
type RetryPolicy struct {
	Retries         int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultPageRetry and DefaultItemRetry are used when no policy is configured.
var (
	DefaultPageRetry = RetryPolicy{Retries: 3, InitialInterval: time.Second, MaxInterval: 30 * time.Second}
	DefaultItemRetry = RetryPolicy{Retries: 2, InitialInterval: 500 * time.Millisecond, MaxInterval: 10 * time.Second}
)

// hintedBackOff waits at least as long as the last Retry-After the remote
// side sent.
type hintedBackOff struct {
	backoff.BackOff
	hint time.Duration
}

func (h *hintedBackOff) NextBackOff() time.Duration {
	next := h.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	if h.hint > next {
		next = h.hint
	}
	h.hint = 0
	return next
}

// retry runs op until it succeeds, returns a non-transient error, the
// policy is exhausted, or ctx is done. onThrottle is called for every
// throttled attempt with the server's Retry-After.
func retry(
	ctx context.Context,
	policy RetryPolicy,
	op func() error,
	onThrottle func(retryAfter time.Duration),
) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = policy.InitialInterval
	exp.MaxInterval = policy.MaxInterval
	exp.MaxElapsedTime = 0

	hinted := &hintedBackOff{BackOff: exp}
	b := backoff.WithContext(backoff.WithMaxRetries(hinted, uint64(max(policy.Retries, 0))), ctx)

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}

		var statusErr *domain.HTTPStatusError
		if errors.As(err, &statusErr) {
			if statusErr.Throttled() {
				hinted.hint = statusErr.RetryAfter
				if onThrottle != nil {
					onThrottle(statusErr.RetryAfter)
				}
			}
			if statusErr.Retryable() {
				return err
			}
			return backoff.Permanent(err)
		}

		if transient(err) {
			return err
		}
		return backoff.Permanent(err)
	}, b)
}

// transient reports whether an error without an HTTP status is worth
// retrying: network failures are, configuration and budget errors are not.
func transient(err error) bool {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, ebay.ErrDailyLimitReached), errors.Is(err, sink.ErrProxyNotConfigured):
		return false
	case errors.Is(err, domain.ErrCredentials), errors.Is(err, domain.ErrUpstreamAuth):
		return false
	case errors.Is(err, domain.ErrUpstreamUnavailable), errors.Is(err, domain.ErrDownstreamForward):
		return true
	default:
		return false
	}
}
