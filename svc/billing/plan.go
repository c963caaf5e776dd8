package billing

import (
	"context"
	"fmt"

	"github.com/tapcard/tapcard/pkg/entitlements"
	"github.com/tapcard/tapcard/pkg/payfast"
)

// Plan is read-only reference data describing a sellable subscription
// plan. Prices are in the smallest currency unit.
type Plan struct {
	Name              string
	PriceMonthlyCents int64
	PriceYearlyCents  int64
	ItemNameMonthly   string
	ItemNameYearly    string
}

// Amount returns the price for a billing cycle.
func (p Plan) Amount(cycle payfast.BillingCycle) int64 {
	if cycle == payfast.CycleYearly {
		return p.PriceYearlyCents
	}
	return p.PriceMonthlyCents
}

// ItemName returns the gateway line-item name for a billing cycle,
// falling back to "<Name> Plan" when none is configured.
func (p Plan) ItemName(cycle payfast.BillingCycle) string {
	name := p.ItemNameMonthly
	if cycle == payfast.CycleYearly {
		name = p.ItemNameYearly
	}
	if name == "" {
		name = fmt.Sprintf("%s Plan", p.Name)
	}
	return name
}

// Tier resolves the entitlement tier this plan sells.
func (p Plan) Tier() entitlements.Tier {
	return entitlements.ParseTier(p.Name)
}

// PlanSource loads the plan catalog, keyed by lower-cased plan name.
type PlanSource interface {
	Load(ctx context.Context) (map[string]Plan, error)
}
