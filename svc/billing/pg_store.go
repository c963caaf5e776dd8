package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tapcard/tapcard/pkg/entitlements"
	"github.com/tapcard/tapcard/pkg/pg"
)

type pgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore returns a postgres-backed SubscriberStore. All writes are
// single-statement upserts on the user_id primary key, so concurrent
// notification deliveries for one user serialize at the row level inside
// postgres rather than in application code.
func NewPgStore(pool *pgxpool.Pool) SubscriberStore {
	if pool == nil {
		panic("billing: pg pool is required")
	}
	return &pgStore{pool: pool}
}

func (s *pgStore) Get(ctx context.Context, userID uuid.UUID) (*Subscriber, error) {
	const query = `
		SELECT email, subscription_tier, subscribed, subscription_end,
		       gateway_token, gateway_subscription_id, updated_at
		FROM subscribers
		WHERE user_id = $1`

	sub := Subscriber{UserID: userID}
	var tier string
	err := s.pool.QueryRow(ctx, query, userID).Scan(
		&sub.Email,
		&tier,
		&sub.Subscribed,
		&sub.SubscriptionEnd,
		&sub.GatewayToken,
		&sub.GatewaySubscriptionID,
		&sub.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("get subscriber: %w", err)
	}

	sub.Tier = entitlements.ParseTier(tier)
	return &sub, nil
}

func (s *pgStore) UpsertPending(ctx context.Context, userID uuid.UUID, email string, tier entitlements.Tier, at time.Time) error {
	// Pending markers never touch gateway references or expiry: a retried
	// checkout must not destroy a confirmed subscription's columns.
	const query = `
		INSERT INTO subscribers (user_id, email, subscription_tier, subscribed, updated_at)
		VALUES ($1, $2, $3, FALSE, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			email             = EXCLUDED.email,
			subscription_tier = EXCLUDED.subscription_tier,
			subscribed        = FALSE,
			updated_at        = EXCLUDED.updated_at`

	if _, err := s.pool.Exec(ctx, query, userID, email, string(tier), at); err != nil {
		return fmt.Errorf("upsert pending subscriber: %w", err)
	}
	return nil
}

func (s *pgStore) UpsertActivation(ctx context.Context, sub Subscriber) error {
	// Tier is deliberately absent from the update list: the tier was
	// recorded at checkout time and a notification confirms or rejects
	// it, it does not choose a plan.
	const query = `
		INSERT INTO subscribers (user_id, email, subscribed, subscription_end,
		                         gateway_token, gateway_subscription_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			email                   = EXCLUDED.email,
			subscribed              = EXCLUDED.subscribed,
			subscription_end        = EXCLUDED.subscription_end,
			gateway_token           = EXCLUDED.gateway_token,
			gateway_subscription_id = EXCLUDED.gateway_subscription_id,
			updated_at              = EXCLUDED.updated_at`

	_, err := s.pool.Exec(ctx, query,
		sub.UserID,
		sub.Email,
		sub.Subscribed,
		sub.SubscriptionEnd,
		sub.GatewayToken,
		sub.GatewaySubscriptionID,
		sub.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			// The email uniqueness constraint fired: the address is already
			// attached to a different user_id. Surface it, the gateway will
			// retry and the conflict needs operator attention.
			return fmt.Errorf("upsert activation: email already bound to another subscriber: %w", err)
		}
		return fmt.Errorf("upsert activation: %w", err)
	}
	return nil
}

func (s *pgStore) MarkExpired(ctx context.Context, userID uuid.UUID, at time.Time) error {
	const query = `
		UPDATE subscribers
		SET subscribed = FALSE, updated_at = $2
		WHERE user_id = $1 AND subscribed`

	if _, err := s.pool.Exec(ctx, query, userID, at); err != nil {
		return fmt.Errorf("mark subscriber expired: %w", err)
	}
	return nil
}
