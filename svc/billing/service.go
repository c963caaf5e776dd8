package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tapcard/tapcard/pkg/email"
	"github.com/tapcard/tapcard/pkg/entitlements"
	"github.com/tapcard/tapcard/pkg/logger"
	"github.com/tapcard/tapcard/pkg/payfast"
)

// Subscription durations granted per confirmed payment.
const (
	monthlyTerm = 30 * 24 * time.Hour
	yearlyTerm  = 365 * 24 * time.Hour
)

// Service implements the billing flow. Construct with NewService.
type Service struct {
	gateway  payfast.Config
	plans    map[string]Plan
	store    SubscriberStore
	founders map[string]struct{}
	mailer   email.Sender
	cache    StatusCache
	cacheTTL time.Duration
	log      *slog.Logger
	now      func() time.Time
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithLogger supplies the service logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMailer enables the best-effort activation email.
func WithMailer(m email.Sender) Option {
	return func(s *Service) { s.mailer = m }
}

// WithFounderEmails installs the privileged allow-list. Addresses are
// matched case-insensitively and the override runs before any store read.
func WithFounderEmails(emails []string) Option {
	return func(s *Service) {
		for _, e := range emails {
			e = strings.ToLower(strings.TrimSpace(e))
			if e != "" {
				s.founders[e] = struct{}{}
			}
		}
	}
}

// WithStatusCache enables entitlement snapshot caching with the given TTL.
func WithStatusCache(cache StatusCache, ttl time.Duration) Option {
	return func(s *Service) {
		if cache != nil {
			s.cache = cache
			s.cacheTTL = ttl
		}
	}
}

// WithClock overrides the time source; tests pin it to fixed instants.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService loads the plan catalog and wires the billing service.
// Panics when store or plan source are nil to fail fast at startup.
func NewService(ctx context.Context, gateway payfast.Config, src PlanSource, store SubscriberStore, opts ...Option) (*Service, error) {
	if src == nil {
		panic("billing: PlanSource is required")
	}
	if store == nil {
		panic("billing: SubscriberStore is required")
	}

	plans, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}
	if len(plans) == 0 {
		return nil, ErrNoPlansConfigured
	}

	s := &Service{
		gateway:  gateway,
		plans:    plans,
		store:    store,
		founders: make(map[string]struct{}),
		cache:    noopStatusCache{},
		log:      slog.New(slog.DiscardHandler),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// CheckoutInput is a subscribe intent from an authenticated user.
type CheckoutInput struct {
	UserID       uuid.UUID
	Email        string
	FirstName    string
	LastName     string
	PlanName     string
	BillingCycle string
}

// Checkout is a ready-to-follow redirect to the gateway's payment page
// plus the payment reference that its webhook will carry back.
type Checkout struct {
	URL       string
	PaymentID string
}

// CreateCheckout resolves the plan, builds and signs the gateway redirect,
// and records the attempt as a pending (unconfirmed) subscriber row.
func (s *Service) CreateCheckout(ctx context.Context, in CheckoutInput) (*Checkout, error) {
	if in.UserID == uuid.Nil || in.Email == "" {
		return nil, fmt.Errorf("%w: user identity is required", ErrInvalidInput)
	}
	if in.PlanName == "" {
		return nil, fmt.Errorf("%w: plan name is required", ErrInvalidInput)
	}

	cycle, err := payfast.ParseBillingCycle(in.BillingCycle)
	if err != nil {
		return nil, err
	}

	plan, ok := s.plans[strings.ToLower(in.PlanName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPlanNotFound, in.PlanName)
	}

	now := s.now()
	paymentID := payfast.NewPaymentReference(in.UserID, now)

	firstName := in.FirstName
	if firstName == "" {
		firstName = "User"
	}

	redirectURL, err := payfast.CheckoutURL(s.gateway, payfast.CheckoutRequest{
		PaymentID:       paymentID,
		PayerFirstName:  firstName,
		PayerLastName:   in.LastName,
		PayerEmail:      in.Email,
		AmountCents:     plan.Amount(cycle),
		ItemName:        plan.ItemName(cycle),
		ItemDescription: fmt.Sprintf("%s Plan - %s billing", plan.Name, cycle),
		Cycle:           cycle,
	})
	if err != nil {
		return nil, err
	}

	// Provisional marker, not confirmed state: the tier is recorded now so
	// the webhook only has to flip the subscribed flag.
	if err := s.store.UpsertPending(ctx, in.UserID, in.Email, plan.Tier(), now); err != nil {
		return nil, fmt.Errorf("record checkout attempt: %w", err)
	}
	s.cache.Invalidate(ctx, in.UserID)

	s.log.InfoContext(ctx, "checkout created",
		logger.Step("checkout"),
		logger.UserID(in.UserID),
		slog.String("plan", plan.Name),
		slog.String("cycle", string(cycle)),
		slog.String("payment_id", paymentID),
	)

	return &Checkout{URL: redirectURL, PaymentID: paymentID}, nil
}

// HandleNotification applies one gateway notification as a subscription
// state transition. The signature is verified before anything else; an
// unverified payload changes nothing.
//
// Redelivery-safe: expiry derives from the transaction time embedded in
// the payment reference, so an identical payload always produces an
// identical row.
func (s *Service) HandleNotification(ctx context.Context, form url.Values) error {
	n, err := payfast.ParseNotification(form, s.gateway.Passphrase)
	if err != nil {
		s.log.WarnContext(ctx, "notification rejected",
			logger.Step("verify"), logger.Error(err))
		return err
	}

	userID, txTime, err := payfast.ParsePaymentReference(n.PaymentID)
	if err != nil {
		s.log.WarnContext(ctx, "notification rejected",
			logger.Step("parse_reference"), logger.Error(err),
			slog.String("payment_id", n.PaymentID))
		return err
	}

	subscribed := n.Completed()
	var end *time.Time
	if subscribed {
		term := monthlyTerm
		if isYearlyItem(n.ItemName) {
			term = yearlyTerm
		}
		e := txTime.Add(term)
		end = &e
	}

	sub := Subscriber{
		UserID:                userID,
		Email:                 n.PayerEmail,
		Subscribed:            subscribed,
		SubscriptionEnd:       end,
		GatewayToken:          n.Token,
		GatewaySubscriptionID: n.SubscriptionID,
		UpdatedAt:             s.now(),
	}
	if err := s.store.UpsertActivation(ctx, sub); err != nil {
		s.log.ErrorContext(ctx, "notification persistence failed",
			logger.Step("persist"), logger.UserID(userID), logger.Error(err))
		return err
	}
	s.cache.Invalidate(ctx, userID)

	s.log.InfoContext(ctx, "subscription updated",
		logger.Step("persist"),
		logger.UserID(userID),
		slog.Bool("subscribed", subscribed),
		slog.String("payment_status", n.PaymentStatus),
	)

	if subscribed {
		s.sendActivationEmail(ctx, n, end)
	}

	return nil
}

// sendActivationEmail notifies the payer that their subscription is live.
// Strictly best-effort: a mail failure must never fail the webhook, the
// gateway would redeliver a payment that was applied correctly.
func (s *Service) sendActivationEmail(ctx context.Context, n *payfast.Notification, end *time.Time) {
	if s.mailer == nil || n.PayerEmail == "" {
		return
	}

	until := "your next billing date"
	if end != nil {
		until = end.Format("2 January 2006")
	}
	err := s.mailer.SendEmail(ctx, email.SendEmailParams{
		SendTo:  n.PayerEmail,
		Subject: "Your subscription is active",
		BodyHTML: fmt.Sprintf(
			"<p>Thanks for subscribing to %s.</p><p>Your plan is active until %s.</p>",
			n.ItemName, until),
		Tag: "subscription-activated",
	})
	if err != nil {
		s.log.WarnContext(ctx, "activation email failed",
			logger.Step("notify_email"), logger.Error(err))
	}
}

// Status resolves the effective entitlement snapshot for a user.
//
// Resolution order: founder override (no store access), cache, store. A
// stored row past its expiry reads back demoted; the write-back flipping
// the stored flag is best-effort and its failure never distorts the
// returned snapshot.
func (s *Service) Status(ctx context.Context, userID uuid.UUID, emailAddr string) (*Status, error) {
	if s.isFounder(emailAddr) {
		return &Status{
			Subscribed: true,
			Tier:       entitlements.TierFounder,
			Limits:     entitlements.ForTier(entitlements.TierFounder),
		}, nil
	}

	if st, ok := s.cache.Get(ctx, userID); ok {
		return st, nil
	}

	now := s.now()

	sub, err := s.store.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrSubscriberNotFound) {
			return nil, err
		}
		// First sighting of this user: bootstrap a free row so later
		// checkouts and admin views have something to hang off. The read
		// result does not depend on the write succeeding.
		if err := s.store.UpsertPending(ctx, userID, emailAddr, entitlements.TierFree, now); err != nil {
			s.log.WarnContext(ctx, "free tier bootstrap failed",
				logger.Step("bootstrap"), logger.UserID(userID), logger.Error(err))
		}
		st := &Status{
			Subscribed: false,
			Tier:       entitlements.TierFree,
			Limits:     entitlements.ForTier(entitlements.TierFree),
		}
		s.cache.Set(ctx, userID, st, s.cacheTTL)
		return st, nil
	}

	active := sub.ActiveAt(now)
	if sub.Subscribed && !active {
		if err := s.store.MarkExpired(ctx, userID, now); err != nil {
			s.log.WarnContext(ctx, "expiry demotion failed",
				logger.Step("demote"), logger.UserID(userID), logger.Error(err))
		}
	}

	tier := entitlements.TierFree
	if active {
		tier = sub.Tier
	}

	st := &Status{
		Subscribed:      active,
		Tier:            tier,
		SubscriptionEnd: sub.SubscriptionEnd,
		Limits:          entitlements.ForTier(tier),
	}

	// Cap the cache entry so a snapshot can never outlive the expiry it
	// was computed from.
	ttl := s.cacheTTL
	if active && sub.SubscriptionEnd != nil {
		if remaining := sub.SubscriptionEnd.Sub(now); remaining < ttl {
			ttl = remaining
		}
	}
	s.cache.Set(ctx, userID, st, ttl)

	return st, nil
}

// VerifyPlan reports whether a plan name resolves in the catalog.
func (s *Service) VerifyPlan(planName string) error {
	if _, ok := s.plans[strings.ToLower(planName)]; !ok {
		return fmt.Errorf("%w: %q", ErrPlanNotFound, planName)
	}
	return nil
}

func (s *Service) isFounder(emailAddr string) bool {
	if emailAddr == "" {
		return false
	}
	_, ok := s.founders[strings.ToLower(strings.TrimSpace(emailAddr))]
	return ok
}

// isYearlyItem recognizes yearly line items by the naming convention the
// plan catalog uses ("<Plan> Plan - Yearly").
func isYearlyItem(itemName string) bool {
	return strings.Contains(strings.ToLower(itemName), "yearly")
}
