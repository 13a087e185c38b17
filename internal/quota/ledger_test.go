package quota_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-catalog-importer/internal/quota"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// memStore serializes UpdateTenant calls the way a row lock would.
type memStore struct {
	mu      sync.Mutex
	tenants map[string]*domain.Tenant
	writes  int
	resets  int
}

func newMemStore(tenants ...domain.Tenant) *memStore {
	s := &memStore{tenants: make(map[string]*domain.Tenant)}
	for i := range tenants {
		t := tenants[i]
		s.tenants[t.ShopDomain] = &t
	}
	return s
}

func (s *memStore) GetTenant(_ context.Context, shop string) (*domain.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenants[shop]
	if !ok {
		return nil, domain.ErrTenantNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *memStore) UpdateTenant(
	_ context.Context,
	shop string,
	fn func(*domain.Tenant) (bool, error),
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenants[shop]
	if !ok {
		return domain.ErrTenantNotFound
	}
	cp := *t
	changed, err := fn(&cp)
	if err != nil {
		return err
	}
	if changed {
		s.tenants[shop] = &cp
		s.writes++
	}
	return nil
}

func (s *memStore) ResetExpiredQuotas(_ context.Context, now time.Time, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, t := range s.tenants {
		if now.After(t.QuotaResetAt) {
			t.QuotaUsed = 0
			t.QuotaResetAt = now.Add(window)
			n++
		}
	}
	s.resets += int(n)
	return n, nil
}

func (s *memStore) tenant(shop string) domain.Tenant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.tenants[shop]
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func tenant(shop string, plan domain.PlanTier, used int, resetAt time.Time) domain.Tenant {
	return domain.Tenant{
		ShopDomain:         shop,
		EbaySellerUsername: "seller",
		Plan:               plan,
		QuotaUsed:          used,
		QuotaResetAt:       resetAt,
	}
}

func TestLedger_CheckAndReserve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		tenant      domain.Tenant
		cost        int
		wantAllowed bool
		wantUsed    int
		wantLimit   int
	}{
		{
			name:        "fits under free limit",
			tenant:      tenant("a.myshopify.com", domain.PlanFree, 10, epoch.Add(time.Hour)),
			cost:        1,
			wantAllowed: true,
			wantUsed:    11,
			wantLimit:   250,
		},
		{
			name:        "exactly reaches the limit",
			tenant:      tenant("a.myshopify.com", domain.PlanFree, 249, epoch.Add(time.Hour)),
			cost:        1,
			wantAllowed: true,
			wantUsed:    250,
			wantLimit:   250,
		},
		{
			name:      "at limit is denied",
			tenant:    tenant("a.myshopify.com", domain.PlanFree, 250, epoch.Add(time.Hour)),
			cost:      1,
			wantUsed:  250,
			wantLimit: 250,
		},
		{
			name:        "pro tier limit",
			tenant:      tenant("a.myshopify.com", domain.PlanPro, 2600, epoch.Add(time.Hour)),
			cost:        1,
			wantAllowed: true,
			wantUsed:    2601,
			wantLimit:   25000,
		},
		{
			name:      "unknown tier falls back to free",
			tenant:    tenant("a.myshopify.com", domain.PlanTier("enterprise"), 250, epoch.Add(time.Hour)),
			cost:      1,
			wantUsed:  250,
			wantLimit: 250,
		},
		{
			name:        "lapsed window resets before charging",
			tenant:      tenant("a.myshopify.com", domain.PlanFree, 250, epoch.Add(-time.Minute)),
			cost:        1,
			wantAllowed: true,
			wantUsed:    1,
			wantLimit:   250,
		},
		{
			name:        "zero cost always allowed",
			tenant:      tenant("a.myshopify.com", domain.PlanFree, 250, epoch.Add(time.Hour)),
			cost:        0,
			wantAllowed: true,
			wantUsed:    250,
			wantLimit:   250,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newMemStore(tt.tenant)
			l := quota.NewLedger(store, quota.WithNowFunc(func() time.Time { return epoch }))

			d, err := l.CheckAndReserve(context.Background(), tt.tenant.ShopDomain, tt.cost)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAllowed, d.Allowed)
			assert.Equal(t, tt.wantUsed, d.Used)
			assert.Equal(t, tt.wantLimit, d.Limit)
			assert.Equal(t, tt.wantUsed, store.tenant(tt.tenant.ShopDomain).QuotaUsed)
		})
	}
}

func TestLedger_AllowedThenDenied(t *testing.T) {
	t.Parallel()

	store := newMemStore(tenant("shop.myshopify.com", domain.PlanFree, 249, epoch.Add(24*time.Hour)))
	l := quota.NewLedger(store, quota.WithNowFunc(func() time.Time { return epoch }))

	d, err := l.CheckAndReserve(context.Background(), "shop.myshopify.com", 1)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 250, d.Used)

	d, err = l.CheckAndReserve(context.Background(), "shop.myshopify.com", 1)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 250, d.Used)
	assert.Equal(t, 250, d.Limit)
}

func TestLedger_NoOvershootUnderConcurrency(t *testing.T) {
	t.Parallel()

	const limit = 40
	store := newMemStore(tenant("busy.myshopify.com", domain.PlanFree, 0, epoch.Add(time.Hour)))
	l := quota.NewLedger(store,
		quota.WithPlans(quota.Plans{domain.PlanFree: limit}),
		quota.WithNowFunc(func() time.Time { return epoch }),
	)

	const callers = 200
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := l.CheckAndReserve(context.Background(), "busy.myshopify.com", 1)
			assert.NoError(t, err)
			if d.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, allowed)
	assert.Equal(t, limit, store.tenant("busy.myshopify.com").QuotaUsed)
}

func TestLedger_ResetOncePerWindow(t *testing.T) {
	t.Parallel()

	clk := &clock{now: epoch}
	window := 30 * 24 * time.Hour
	store := newMemStore(tenant("shop.myshopify.com", domain.PlanFree, 100, epoch.Add(-time.Second)))
	l := quota.NewLedger(store, quota.WithNowFunc(clk.Now), quota.WithWindow(window))

	d, err := l.CheckAndReserve(context.Background(), "shop.myshopify.com", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Used)
	assert.Equal(t, epoch.Add(window), d.ResetAt)

	// Still inside the new window: no second reset.
	clk.Advance(window - time.Minute)
	d, err = l.CheckAndReserve(context.Background(), "shop.myshopify.com", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Used)
	assert.Equal(t, epoch.Add(window), d.ResetAt)

	clk.Advance(2 * time.Minute)
	d, err = l.CheckAndReserve(context.Background(), "shop.myshopify.com", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Used)
	assert.Equal(t, clk.Now().Add(window), d.ResetAt)
}

func TestLedger_DeniedStillPersistsReset(t *testing.T) {
	t.Parallel()

	store := newMemStore(tenant("shop.myshopify.com", domain.PlanFree, 250, epoch.Add(-time.Hour)))
	l := quota.NewLedger(store,
		quota.WithNowFunc(func() time.Time { return epoch }),
		quota.WithPlans(quota.Plans{domain.PlanFree: 5}),
	)

	d, err := l.CheckAndReserve(context.Background(), "shop.myshopify.com", 10)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Used)

	got := store.tenant("shop.myshopify.com")
	assert.Equal(t, 0, got.QuotaUsed)
	assert.True(t, got.QuotaResetAt.After(epoch))
}

func TestLedger_Release(t *testing.T) {
	t.Parallel()

	clk := &clock{now: epoch}
	store := newMemStore(tenant("shop.myshopify.com", domain.PlanFree, 10, epoch.Add(time.Hour)))
	l := quota.NewLedger(store, quota.WithNowFunc(clk.Now))

	d, err := l.CheckAndReserve(context.Background(), "shop.myshopify.com", 3)
	require.NoError(t, err)
	require.True(t, d.Allowed)
	assert.Equal(t, 13, store.tenant("shop.myshopify.com").QuotaUsed)

	require.NoError(t, l.Release(context.Background(), "shop.myshopify.com", d))
	assert.Equal(t, 10, store.tenant("shop.myshopify.com").QuotaUsed)

	// Denied decisions refund nothing.
	require.NoError(t, l.Release(context.Background(), "shop.myshopify.com", quota.Decision{Cost: 5}))
	assert.Equal(t, 10, store.tenant("shop.myshopify.com").QuotaUsed)
}

func TestLedger_ReleaseAfterRolloverIsNoop(t *testing.T) {
	t.Parallel()

	clk := &clock{now: epoch}
	store := newMemStore(tenant("shop.myshopify.com", domain.PlanFree, 0, epoch.Add(time.Hour)))
	l := quota.NewLedger(store, quota.WithNowFunc(clk.Now), quota.WithWindow(2*time.Hour))

	d, err := l.CheckAndReserve(context.Background(), "shop.myshopify.com", 1)
	require.NoError(t, err)

	clk.Advance(90 * time.Minute)
	next, err := l.CheckAndReserve(context.Background(), "shop.myshopify.com", 1)
	require.NoError(t, err)
	require.Equal(t, 1, next.Used)

	require.NoError(t, l.Release(context.Background(), "shop.myshopify.com", d))
	assert.Equal(t, 1, store.tenant("shop.myshopify.com").QuotaUsed)
}

func TestLedger_Usage(t *testing.T) {
	t.Parallel()

	store := newMemStore(
		tenant("live.myshopify.com", domain.PlanPlus, 500, epoch.Add(time.Hour)),
		tenant("lapsed.myshopify.com", domain.PlanPlus, 500, epoch.Add(-time.Hour)),
	)
	l := quota.NewLedger(store, quota.WithNowFunc(func() time.Time { return epoch }))

	u, err := l.Usage(context.Background(), "live.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, 500, u.Used)
	assert.Equal(t, 2500, u.Limit)
	assert.Equal(t, 2000, u.Remaining)

	u, err = l.Usage(context.Background(), "lapsed.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, 0, u.Used)
	assert.Equal(t, 2500, u.Remaining)
	assert.Equal(t, 500, store.tenant("lapsed.myshopify.com").QuotaUsed, "usage is read-only")

	_, err = l.Usage(context.Background(), "missing.myshopify.com")
	require.ErrorIs(t, err, domain.ErrTenantNotFound)
}

func TestLedger_SweepExpired(t *testing.T) {
	t.Parallel()

	store := newMemStore(
		tenant("a.myshopify.com", domain.PlanFree, 9, epoch.Add(-time.Hour)),
		tenant("b.myshopify.com", domain.PlanFree, 9, epoch.Add(time.Hour)),
	)
	l := quota.NewLedger(store, quota.WithNowFunc(func() time.Time { return epoch }))

	n, err := l.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 0, store.tenant("a.myshopify.com").QuotaUsed)
	assert.Equal(t, 9, store.tenant("b.myshopify.com").QuotaUsed)
}

func TestLedger_UnknownTenant(t *testing.T) {
	t.Parallel()

	l := quota.NewLedger(newMemStore())
	_, err := l.CheckAndReserve(context.Background(), "nobody.myshopify.com", 1)
	require.ErrorIs(t, err, domain.ErrTenantNotFound)

	_, err = l.CheckAndReserve(context.Background(), "nobody.myshopify.com", -1)
	require.Error(t, err)
}

func TestPlans_Limit(t *testing.T) {
	t.Parallel()

	p := quota.DefaultPlans()
	assert.Equal(t, 250, p.Limit(domain.PlanFree))
	assert.Equal(t, 2500, p.Limit(domain.PlanPlus))
	assert.Equal(t, 25000, p.Limit(domain.PlanPro))
	assert.Equal(t, 250, p.Limit("gold"))
}
