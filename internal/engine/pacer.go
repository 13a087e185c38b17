package engine

import (
	"context"
	"sync"
	"time"

	"github.com/donaldgifford/ebay-catalog-importer/internal/metrics"
)

const defaultMaxPageDelay = 30 * time.Second

// Pacer spaces out page fetches. Throttle signals from eBay or the product
// proxy double the delay (or jump to the server's Retry-After), and each
// clean page halves it back toward the base. One Pacer is shared by all
// workers in a process, because eBay's limits are per application.
type Pacer struct {
	mu      sync.Mutex
	base    time.Duration
	max     time.Duration
	current time.Duration
}

// NewPacer creates a Pacer. A max below base is raised to base.
func NewPacer(base, maxDelay time.Duration) *Pacer {
	if base < 0 {
		base = 0
	}
	if maxDelay < base {
		maxDelay = base
	}
	p := &Pacer{base: base, max: maxDelay, current: base}
	metrics.ImportPacerDelay.Set(base.Seconds())
	return p
}

// Delay returns the current inter-page delay.
func (p *Pacer) Delay() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Throttled records a throttle signal. retryAfter is the server's hint and
// may be zero.
func (p *Pacer) Throttled(retryAfter time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := p.current * 2
	if next == 0 {
		next = max(p.base, time.Second)
	}
	next = min(next, p.max)
	if retryAfter > next {
		next = retryAfter
	}
	p.current = next
	metrics.ImportPacerDelay.Set(next.Seconds())
}

// Clean records a page that went through without throttling.
func (p *Pacer) Clean() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = max(p.current/2, p.base)
	metrics.ImportPacerDelay.Set(p.current.Seconds())
}

// Wait sleeps for the current delay or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	d := p.Delay()
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
