package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgPlanSource struct {
	pool *pgxpool.Pool
}

// NewPgPlanSource returns a PlanSource reading the subscription_plans
// reference table. The catalog is loaded once at service construction;
// plan changes ship as migrations and roll out with a restart.
func NewPgPlanSource(pool *pgxpool.Pool) PlanSource {
	if pool == nil {
		panic("billing: pg pool is required")
	}
	return &pgPlanSource{pool: pool}
}

func (s *pgPlanSource) Load(ctx context.Context) (map[string]Plan, error) {
	const query = `
		SELECT name, price_monthly, price_yearly, item_name_monthly, item_name_yearly
		FROM subscription_plans
		ORDER BY name`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load plans: %w", err)
	}

	plans, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Plan, error) {
		var p Plan
		err := row.Scan(&p.Name, &p.PriceMonthlyCents, &p.PriceYearlyCents, &p.ItemNameMonthly, &p.ItemNameYearly)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan plans: %w", err)
	}

	byName := make(map[string]Plan, len(plans))
	for _, p := range plans {
		byName[strings.ToLower(p.Name)] = p
	}
	return byName, nil
}
