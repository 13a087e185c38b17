package quota

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/donaldgifford/ebay-catalog-importer/internal/metrics"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// Store is the tenant persistence the ledger needs. UpdateTenant must run
// fn while holding an exclusive lock on the tenant row and persist the
// tenant only when fn reports a change.
type Store interface {
	GetTenant(ctx context.Context, shop string) (*domain.Tenant, error)
	UpdateTenant(ctx context.Context, shop string, fn func(t *domain.Tenant) (bool, error)) error
	ResetExpiredQuotas(ctx context.Context, now time.Time, window time.Duration) (int64, error)
}

// Decision is the outcome of a reservation attempt. Used is the usage after
// the reservation when Allowed, and the unchanged usage otherwise.
type Decision struct {
	Allowed bool
	Used    int
	Limit   int
	Cost    int
	ResetAt time.Time
}

// Usage is a read-only view of a tenant's quota window.
type Usage struct {
	Plan      domain.PlanTier
	Used      int
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Ledger reserves and refunds quota units against a tenant's window.
type Ledger struct {
	store   Store
	plans   Plans
	window  time.Duration
	logger  *slog.Logger
	nowFunc func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithPlans overrides the plan limits.
func WithPlans(p Plans) Option {
	return func(l *Ledger) {
		if len(p) > 0 {
			l.plans = p
		}
	}
}

// WithWindow overrides the quota window length.
func WithWindow(d time.Duration) Option {
	return func(l *Ledger) {
		if d > 0 {
			l.window = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// WithNowFunc overrides the clock for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(l *Ledger) {
		l.nowFunc = f
	}
}

// NewLedger creates a Ledger backed by store.
func NewLedger(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:   store,
		plans:   DefaultPlans(),
		window:  DefaultWindow,
		logger:  slog.Default(),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CheckAndReserve rolls the tenant's window over when it has lapsed, then
// charges cost units if they fit under the plan limit. The read and the
// write happen under the tenant row lock, so concurrent reservations can
// never push usage past the limit.
func (l *Ledger) CheckAndReserve(ctx context.Context, shop string, cost int) (Decision, error) {
	if cost < 0 {
		return Decision{}, fmt.Errorf("negative quota cost %d", cost)
	}

	var d Decision
	err := l.store.UpdateTenant(ctx, shop, func(t *domain.Tenant) (bool, error) {
		var changed bool
		d, changed = reserve(t, cost, l.plans.Limit(t.Plan), l.nowFunc(), l.window)
		return changed, nil
	})
	if err != nil {
		metrics.QuotaDecisionsTotal.WithLabelValues("error").Inc()
		return Decision{}, fmt.Errorf("reserving quota for %s: %w", shop, err)
	}

	if d.Allowed {
		metrics.QuotaDecisionsTotal.WithLabelValues("allowed").Inc()
	} else {
		metrics.QuotaDecisionsTotal.WithLabelValues("denied").Inc()
		l.logger.Info("quota denied", "shop", shop, "used", d.Used, "limit", d.Limit, "cost", cost)
	}
	return d, nil
}

// Release refunds an allowed reservation whose work never happened. It is
// a no-op when the window has rolled over since the reservation, and usage
// never drops below zero.
func (l *Ledger) Release(ctx context.Context, shop string, d Decision) error {
	if !d.Allowed || d.Cost == 0 {
		return nil
	}

	err := l.store.UpdateTenant(ctx, shop, func(t *domain.Tenant) (bool, error) {
		if !t.QuotaResetAt.Equal(d.ResetAt) {
			return false, nil
		}
		t.QuotaUsed = max(t.QuotaUsed-d.Cost, 0)
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("releasing quota for %s: %w", shop, err)
	}

	metrics.QuotaReleasesTotal.Inc()
	l.logger.Debug("quota released", "shop", shop, "cost", d.Cost)
	return nil
}

// Usage reports the tenant's effective usage without modifying it. A
// lapsed window reads as zero usage.
func (l *Ledger) Usage(ctx context.Context, shop string) (*Usage, error) {
	t, err := l.store.GetTenant(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("getting tenant %s: %w", shop, err)
	}

	now := l.nowFunc()
	u := &Usage{
		Plan:    t.Plan,
		Used:    t.QuotaUsed,
		Limit:   l.plans.Limit(t.Plan),
		ResetAt: t.QuotaResetAt,
	}
	if now.After(t.QuotaResetAt) {
		u.Used = 0
		u.ResetAt = now.Add(l.window)
	}
	u.Remaining = max(u.Limit-u.Used, 0)
	return u, nil
}

// SweepExpired rolls over every lapsed window in one pass and returns the
// number of tenants reset.
func (l *Ledger) SweepExpired(ctx context.Context) (int64, error) {
	n, err := l.store.ResetExpiredQuotas(ctx, l.nowFunc(), l.window)
	if err != nil {
		return 0, fmt.Errorf("sweeping expired quota windows: %w", err)
	}
	metrics.QuotaWindowResetsTotal.Add(float64(n))
	return n, nil
}

// reserve applies one reservation to t in memory. The boolean reports
// whether t was modified and must be persisted.
func reserve(
	t *domain.Tenant,
	cost, limit int,
	now time.Time,
	window time.Duration,
) (Decision, bool) {
	var changed bool
	if now.After(t.QuotaResetAt) {
		t.QuotaUsed = 0
		t.QuotaResetAt = now.Add(window)
		changed = true
		metrics.QuotaWindowResetsTotal.Inc()
	}

	d := Decision{Used: t.QuotaUsed, Limit: limit, Cost: cost, ResetAt: t.QuotaResetAt}
	if t.QuotaUsed+cost > limit {
		return d, changed
	}

	t.QuotaUsed += cost
	d.Allowed = true
	d.Used = t.QuotaUsed
	return d, changed || cost > 0
}
