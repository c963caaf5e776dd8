package billing

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tapcard/tapcard/pkg/entitlements"
)

type inMemStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]Subscriber
}

// NewInMemStore returns a mutex-guarded in-memory SubscriberStore. Each
// method holds the lock for its whole read-modify-write, matching the
// atomicity the pg implementation gets from single-statement upserts.
func NewInMemStore() SubscriberStore {
	return &inMemStore{rows: make(map[uuid.UUID]Subscriber)}
}

func (s *inMemStore) Get(ctx context.Context, userID uuid.UUID) (*Subscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[userID]
	if !ok {
		return nil, ErrSubscriberNotFound
	}
	copied := row
	if row.SubscriptionEnd != nil {
		end := *row.SubscriptionEnd
		copied.SubscriptionEnd = &end
	}
	return &copied, nil
}

func (s *inMemStore) UpsertPending(ctx context.Context, userID uuid.UUID, email string, tier entitlements.Tier, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.rows[userID]
	row.UserID = userID
	row.Email = email
	row.Tier = tier
	row.Subscribed = false
	row.UpdatedAt = at
	s.rows[userID] = row
	return nil
}

func (s *inMemStore) UpsertActivation(ctx context.Context, sub Subscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.rows[sub.UserID]
	row.UserID = sub.UserID
	row.Email = sub.Email
	row.Subscribed = sub.Subscribed
	row.SubscriptionEnd = sub.SubscriptionEnd
	row.GatewayToken = sub.GatewayToken
	row.GatewaySubscriptionID = sub.GatewaySubscriptionID
	row.UpdatedAt = sub.UpdatedAt
	if row.Tier == "" {
		row.Tier = entitlements.TierFree
	}
	s.rows[sub.UserID] = row
	return nil
}

func (s *inMemStore) MarkExpired(ctx context.Context, userID uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[userID]
	if !ok || !row.Subscribed {
		return nil
	}
	row.Subscribed = false
	row.UpdatedAt = at
	s.rows[userID] = row
	return nil
}
