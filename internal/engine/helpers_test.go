package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/donaldgifford/ebay-catalog-importer/internal/ebay"
	"github.com/donaldgifford/ebay-catalog-importer/internal/quota"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// quietLogger returns a logger that discards output for tests.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeLedger is an in-memory QuotaReserver with a single tenant window.
type fakeLedger struct {
	mu         sync.Mutex
	used       int
	limit      int
	reserveErr error
	releases   []quota.Decision
}

func (f *fakeLedger) CheckAndReserve(_ context.Context, _ string, cost int) (quota.Decision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reserveErr != nil {
		return quota.Decision{}, f.reserveErr
	}
	d := quota.Decision{Used: f.used, Limit: f.limit, Cost: cost}
	if f.used+cost > f.limit {
		return d, nil
	}
	f.used += cost
	d.Allowed = true
	d.Used = f.used
	return d, nil
}

func (f *fakeLedger) Release(_ context.Context, _ string, d quota.Decision) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releases = append(f.releases, d)
	f.used = max(f.used-d.Cost, 0)
	return nil
}

func (f *fakeLedger) Used() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.used
}

// fakeCatalog serves a seller with total listings and can fail chosen pages.
type fakeCatalog struct {
	mu        sync.Mutex
	total     int
	pageSize  int
	failPages map[int]error
	probeErr  error
	calls     []int
}

func (c *fakeCatalog) Probe(context.Context, string) (int, error) {
	if c.probeErr != nil {
		return 0, c.probeErr
	}
	return c.total, nil
}

func (c *fakeCatalog) PageSize() int { return c.pageSize }

func (c *fakeCatalog) Page(_ context.Context, _ string, n, size int) (*ebay.SearchResponse, error) {
	c.mu.Lock()
	c.calls = append(c.calls, n)
	err := c.failPages[n]
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	offset := n * size
	count := min(size, c.total-offset)
	items := make([]ebay.ItemSummary, 0, max(count, 0))
	for i := range max(count, 0) {
		id := fmt.Sprintf("v1|%d|0", offset+i)
		items = append(items, ebay.ItemSummary{
			ItemID: id,
			Title:  "Listing " + id,
			Price:  &ebay.ItemPrice{Value: "10.00", Currency: "USD"},
		})
	}
	return &ebay.SearchResponse{Items: items, Total: c.total, Offset: offset, Limit: size}, nil
}

// fetchedPages returns the distinct page indexes requested, in order.
func (c *fakeCatalog) fetchedPages() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []int
	seen := map[int]bool{}
	for _, n := range c.calls {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// memJobs is an in-memory JobStore that applies progress like the
// Postgres store does.
type memJobs struct {
	mu       sync.Mutex
	jobs     map[string]*domain.ImportJob
	finished map[string]domain.JobStatus
}

func newMemJobs(jobs ...domain.ImportJob) *memJobs {
	m := &memJobs{jobs: map[string]*domain.ImportJob{}, finished: map[string]domain.JobStatus{}}
	for i := range jobs {
		j := jobs[i]
		m.jobs[j.ID] = &j
	}
	return m
}

func (m *memJobs) get(id string) domain.ImportJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.jobs[id]
}

func (m *memJobs) GetImportJob(_ context.Context, id string) (*domain.ImportJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	cp := *j
	return &cp, nil
}

func (m *memJobs) MarkJobRunning(_ context.Context, id string) (*domain.ImportJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	j.Status = domain.JobRunning
	j.Attempts++
	cp := *j
	return &cp, nil
}

func (m *memJobs) RecordPageProgress(_ context.Context, id string, p domain.PageProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j := m.jobs[id]
	j.NextPage = p.NextPage
	j.ItemsImported += p.ItemsImported
	j.ItemsFailed += p.ItemsFailed
	if p.Failure != nil {
		j.PageFailures = append(j.PageFailures, *p.Failure)
	}
	return nil
}

func (m *memJobs) FinishImportJob(_ context.Context, id string, status domain.JobStatus, errText string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j := m.jobs[id]
	j.Status = status
	j.ErrorText = errText
	m.finished[id] = status
	return nil
}

// recordingSink stores every product it receives, optionally taking delay
// per product like a slow proxy.
type recordingSink struct {
	mu       sync.Mutex
	products []domain.Product
	err      error
	delay    time.Duration
}

func (s *recordingSink) CreateProduct(_ context.Context, _ string, p domain.Product) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.products = append(s.products, p)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}

func (s *recordingSink) skus() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p.Variants[0].SKU)
	}
	return out
}
