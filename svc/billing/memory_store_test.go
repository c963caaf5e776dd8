package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapcard/tapcard/pkg/entitlements"
	"github.com/tapcard/tapcard/svc/billing"
)

func TestInMemStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	end := now.Add(30 * 24 * time.Hour)

	t.Run("get unknown user", func(t *testing.T) {
		t.Parallel()

		store := billing.NewInMemStore()
		_, err := store.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, billing.ErrSubscriberNotFound)
	})

	t.Run("pending upsert preserves activation state", func(t *testing.T) {
		t.Parallel()

		store := billing.NewInMemStore()
		userID := uuid.New()

		require.NoError(t, store.UpsertActivation(ctx, billing.Subscriber{
			UserID:          userID,
			Email:           "user@example.com",
			Subscribed:      true,
			SubscriptionEnd: &end,
			GatewayToken:    "tok-1",
			UpdatedAt:       now,
		}))

		// A later checkout attempt must not clobber the live subscription.
		require.NoError(t, store.UpsertPending(ctx, userID, "user@example.com", entitlements.TierBusiness, now))

		sub, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, entitlements.TierBusiness, sub.Tier)
		assert.Equal(t, "tok-1", sub.GatewayToken)
		require.NotNil(t, sub.SubscriptionEnd)
		assert.Equal(t, end, *sub.SubscriptionEnd)
	})

	t.Run("activation upsert preserves tier", func(t *testing.T) {
		t.Parallel()

		store := billing.NewInMemStore()
		userID := uuid.New()

		require.NoError(t, store.UpsertPending(ctx, userID, "user@example.com", entitlements.TierPro, now))
		require.NoError(t, store.UpsertActivation(ctx, billing.Subscriber{
			UserID:          userID,
			Email:           "user@example.com",
			Subscribed:      true,
			SubscriptionEnd: &end,
			UpdatedAt:       now,
		}))

		sub, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, entitlements.TierPro, sub.Tier)
		assert.True(t, sub.Subscribed)
	})

	t.Run("activation without prior checkout defaults tier", func(t *testing.T) {
		t.Parallel()

		store := billing.NewInMemStore()
		userID := uuid.New()

		require.NoError(t, store.UpsertActivation(ctx, billing.Subscriber{
			UserID:     userID,
			Email:      "user@example.com",
			Subscribed: true,
			UpdatedAt:  now,
		}))

		sub, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, entitlements.TierFree, sub.Tier)
	})

	t.Run("mark expired flips only subscribed rows", func(t *testing.T) {
		t.Parallel()

		store := billing.NewInMemStore()
		userID := uuid.New()

		// Unknown user is a no-op.
		require.NoError(t, store.MarkExpired(ctx, userID, now))

		require.NoError(t, store.UpsertActivation(ctx, billing.Subscriber{
			UserID:          userID,
			Email:           "user@example.com",
			Subscribed:      true,
			SubscriptionEnd: &end,
			UpdatedAt:       now,
		}))
		require.NoError(t, store.MarkExpired(ctx, userID, now))

		sub, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.False(t, sub.Subscribed)
	})

	t.Run("get returns a copy", func(t *testing.T) {
		t.Parallel()

		store := billing.NewInMemStore()
		userID := uuid.New()

		require.NoError(t, store.UpsertActivation(ctx, billing.Subscriber{
			UserID:          userID,
			Email:           "user@example.com",
			Subscribed:      true,
			SubscriptionEnd: &end,
			UpdatedAt:       now,
		}))

		first, err := store.Get(ctx, userID)
		require.NoError(t, err)
		*first.SubscriptionEnd = first.SubscriptionEnd.Add(time.Hour)
		first.Subscribed = false

		second, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.True(t, second.Subscribed)
		assert.Equal(t, end, *second.SubscriptionEnd)
	})
}
