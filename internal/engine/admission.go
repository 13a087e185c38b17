package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/donaldgifford/ebay-catalog-importer/internal/quota"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// TenantReader loads a tenant by shop domain.
type TenantReader interface {
	GetTenant(ctx context.Context, shop string) (*domain.Tenant, error)
}

// QuotaReserver is the part of quota.Ledger the engine uses.
type QuotaReserver interface {
	CheckAndReserve(ctx context.Context, shop string, cost int) (quota.Decision, error)
	Release(ctx context.Context, shop string, d quota.Decision) error
}

// Admission is a granted request: who to fetch from, and what was charged.
type Admission struct {
	SellerUsername string
	Decision       quota.Decision
}

// AdmissionController decides whether a tenant may run a billable
// operation. It never calls eBay.
type AdmissionController struct {
	tenants TenantReader
	ledger  QuotaReserver
	log     *slog.Logger
}

// NewAdmissionController creates an AdmissionController.
func NewAdmissionController(tenants TenantReader, ledger QuotaReserver, log *slog.Logger) *AdmissionController {
	if log == nil {
		log = slog.Default()
	}
	return &AdmissionController{tenants: tenants, ledger: ledger, log: log}
}

// Admit loads the tenant, requires a configured seller, and reserves cost
// units. A denial is returned as *domain.QuotaExceededError.
func (a *AdmissionController) Admit(ctx context.Context, shop string, cost int) (*Admission, error) {
	tenant, err := a.tenants.GetTenant(ctx, shop)
	if errors.Is(err, domain.ErrTenantNotFound) {
		return nil, domain.ErrNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("loading tenant %s: %w", shop, err)
	}
	if !tenant.Configured() {
		return nil, domain.ErrNotConfigured
	}

	d, err := a.ledger.CheckAndReserve(ctx, shop, cost)
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		return nil, &domain.QuotaExceededError{Used: d.Used, Limit: d.Limit}
	}

	return &Admission{SellerUsername: tenant.EbaySellerUsername, Decision: d}, nil
}

// Refund releases an admission whose work never happened. Failures are
// logged; the caller already has an error to report.
func (a *AdmissionController) Refund(ctx context.Context, shop string, adm *Admission) {
	if adm == nil {
		return
	}
	if err := a.ledger.Release(context.WithoutCancel(ctx), shop, adm.Decision); err != nil {
		a.log.Warn("quota refund failed", "shop", shop, "cost", adm.Decision.Cost, "error", err)
	}
}
