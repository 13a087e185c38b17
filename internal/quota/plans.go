// Package quota implements the per-tenant usage ledger that gates eBay
// lookups and catalog imports.
package quota

import (
	"time"

	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// DefaultWindow is the length of a tenant's quota window.
const DefaultWindow = 30 * 24 * time.Hour

// Plans maps a plan tier to the number of quota units allowed per window.
type Plans map[domain.PlanTier]int

// DefaultPlans returns the built-in plan limits.
func DefaultPlans() Plans {
	return Plans{
		domain.PlanFree: 250,
		domain.PlanPlus: 2500,
		domain.PlanPro:  25000,
	}
}

// Limit returns the allowance for tier, falling back to the free tier for
// tiers that are unknown or not configured.
func (p Plans) Limit(tier domain.PlanTier) int {
	if limit, ok := p[tier]; ok {
		return limit
	}
	return p[domain.PlanFree]
}

// Costs is the number of quota units charged per billable operation.
type Costs struct {
	Lookup       int
	ImportJob    int
	ImportedItem int
}

// DefaultCosts charges one unit per lookup and per import job, and nothing
// per imported item.
func DefaultCosts() Costs {
	return Costs{Lookup: 1, ImportJob: 1, ImportedItem: 0}
}
