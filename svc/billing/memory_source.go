package billing

import (
	"context"
	"maps"
	"strings"
	"sync"
)

type inMemSource struct {
	mu    sync.RWMutex
	plans map[string]Plan
}

// NewInMemSource returns an in-memory PlanSource. Panics when no plans are
// provided: a billing service without a catalog cannot serve a single
// checkout. Used by tests and static deployments.
func NewInMemSource(plans ...Plan) PlanSource {
	if len(plans) == 0 {
		panic("billing: at least one plan is required")
	}

	byName := make(map[string]Plan, len(plans))
	for _, plan := range plans {
		byName[strings.ToLower(plan.Name)] = plan
	}

	return &inMemSource{plans: byName}
}

// Load returns a copy of the catalog so callers cannot mutate the source.
func (s *inMemSource) Load(ctx context.Context) (map[string]Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.plans), nil
}

// DefaultPlans is the built-in catalog matching the product's pricing
// page. Prices in cents.
func DefaultPlans() []Plan {
	return []Plan{
		{
			Name:              "Personal",
			PriceMonthlyCents: 9900,
			PriceYearlyCents:  99000,
			ItemNameMonthly:   "Personal Plan - Monthly",
			ItemNameYearly:    "Personal Plan - Yearly",
		},
		{
			Name:              "Pro",
			PriceMonthlyCents: 44000,
			PriceYearlyCents:  440000,
			ItemNameMonthly:   "Pro Plan - Monthly",
			ItemNameYearly:    "Pro Plan - Yearly",
		},
		{
			Name:              "Business",
			PriceMonthlyCents: 89000,
			PriceYearlyCents:  890000,
			ItemNameMonthly:   "Business Plan - Monthly",
			ItemNameYearly:    "Business Plan - Yearly",
		},
	}
}
