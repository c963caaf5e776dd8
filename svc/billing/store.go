package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tapcard/tapcard/pkg/entitlements"
)

// SubscriberStore persists subscriber records. Every write is a single
// atomic upsert keyed on the user ID: concurrent notifications for the
// same user must not interleave into a torn row, so implementations may
// not split writes into read-then-write at the application layer.
type SubscriberStore interface {
	// Get retrieves a subscriber by user ID.
	// Returns ErrSubscriberNotFound when no record exists.
	Get(ctx context.Context, userID uuid.UUID) (*Subscriber, error)

	// UpsertPending records a checkout attempt: the requested tier with
	// subscribed=false. Existing gateway references and expiry are left
	// untouched so a pending marker never destroys confirmed state.
	UpsertPending(ctx context.Context, userID uuid.UUID, email string, tier entitlements.Tier, at time.Time) error

	// UpsertActivation applies a verified notification: subscribed flag,
	// expiry, and gateway references in one atomic statement.
	UpsertActivation(ctx context.Context, sub Subscriber) error

	// MarkExpired flips subscribed to false for a row whose expiry has
	// passed. A no-op when the row is absent or already demoted.
	MarkExpired(ctx context.Context, userID uuid.UUID, at time.Time) error
}
