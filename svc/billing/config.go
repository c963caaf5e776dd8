package billing

import "time"

// Config holds billing service settings sourced from the environment.
type Config struct {
	FounderEmails  []string      `env:"FOUNDER_EMAILS" envSeparator:","`   // privileged allow-list, full access without payment
	StatusCacheTTL time.Duration `env:"STATUS_CACHE_TTL" envDefault:"30s"` // entitlement snapshot cache lifetime
	PlanSource     string        `env:"PLAN_SOURCE" envDefault:"db"`       // "db" or "static"
}
