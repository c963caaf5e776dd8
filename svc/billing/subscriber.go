package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/tapcard/tapcard/pkg/entitlements"
)

// Subscriber is the persisted subscription state of one user. UserID is
// the natural key; Email is a denormalized attribute kept unique by the
// store but never used for lookups.
type Subscriber struct {
	UserID                uuid.UUID
	Email                 string
	Tier                  entitlements.Tier
	Subscribed            bool
	SubscriptionEnd       *time.Time // nil means never subscribed or non-expiring
	GatewayToken          string     // gateway billing token, for future cancellation
	GatewaySubscriptionID string     // gateway subscription identifier
	UpdatedAt             time.Time
}

// ActiveAt reports whether the stored entitlements are in force at the
// given instant: the subscribed flag holds and the expiry, when set, has
// not passed.
func (s *Subscriber) ActiveAt(now time.Time) bool {
	return s.Subscribed && (s.SubscriptionEnd == nil || s.SubscriptionEnd.After(now))
}

// Status is the effective entitlement snapshot served to the UI.
type Status struct {
	Subscribed      bool                `json:"subscribed"`
	Tier            entitlements.Tier   `json:"subscription_tier"`
	SubscriptionEnd *time.Time          `json:"subscription_end"`
	Limits          entitlements.Limits `json:"limits"`
}
