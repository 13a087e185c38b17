package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Sentinel errors shared by the importer's layers.
var (
	// ErrNotConfigured means the tenant has no eBay seller configured.
	ErrNotConfigured = errors.New("tenant not configured")
	// ErrCredentials means eBay client credentials are missing.
	ErrCredentials = errors.New("eBay client credentials not configured")
	// ErrUpstreamAuth means the eBay token exchange was rejected.
	ErrUpstreamAuth = errors.New("eBay authentication failed")
	// ErrUpstreamUnavailable means eBay could not be reached or returned an error.
	ErrUpstreamUnavailable = errors.New("eBay unavailable")
	// ErrQuotaExceeded means the tenant's quota window is exhausted.
	ErrQuotaExceeded = errors.New("quota exceeded")
	// ErrQueuePublish means the durable enqueue of a job failed.
	ErrQueuePublish = errors.New("queue publish failed")
	// ErrDownstreamForward means the product proxy rejected or failed a product.
	ErrDownstreamForward = errors.New("product forward failed")
	// ErrTenantNotFound means no tenant row exists for the shop.
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrJobNotFound means no import job exists with the given id.
	ErrJobNotFound = errors.New("import job not found")
)

// QuotaExceededError carries the usage snapshot that caused a denial.
type QuotaExceededError struct {
	Used  int
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s (%d/%d)", ErrQuotaExceeded, e.Used, e.Limit)
}

// Unwrap lets errors.Is match ErrQuotaExceeded.
func (*QuotaExceededError) Unwrap() error {
	return ErrQuotaExceeded
}

// HTTPStatusError describes a non-success response from eBay or the
// product proxy. Kind is one of the sentinels above and is what errors.Is
// matches against.
type HTTPStatusError struct {
	Service    string
	StatusCode int
	RetryAfter time.Duration
	Body       string
	Kind       error
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s error (status %d)", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("%s error (status %d): %s", e.Service, e.StatusCode, e.Body)
}

func (e *HTTPStatusError) Unwrap() error {
	return e.Kind
}

// Retryable reports whether the same request may succeed later.
func (e *HTTPStatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// Throttled reports whether the remote side asked us to slow down.
func (e *HTTPStatusError) Throttled() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode == http.StatusServiceUnavailable
}

// ParseRetryAfter parses a Retry-After header given either as delay-seconds
// or as an HTTP date. It returns 0 when the header is absent or unparseable.
func ParseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

// ClassifyFailure maps an error onto the FailureKind recorded in a job.
func ClassifyFailure(err error) FailureKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCredentials):
		return FailureCredentials
	case errors.Is(err, ErrUpstreamAuth):
		return FailureUpstreamAuth
	case errors.Is(err, ErrQuotaExceeded):
		return FailureQuotaExceeded
	case errors.Is(err, ErrDownstreamForward):
		return FailureDownstream
	case errors.Is(err, ErrUpstreamUnavailable):
		return FailureUpstreamUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return FailureDeadlineExceeded
	default:
		return FailureUnknown
	}
}
