// Command server runs the billing API: checkout creation, the payment
// gateway webhook, and subscription status lookups.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tapcard/tapcard/pkg/email"
	"github.com/tapcard/tapcard/pkg/httpserver"
	"github.com/tapcard/tapcard/pkg/jwt"
	"github.com/tapcard/tapcard/pkg/logger"
	"github.com/tapcard/tapcard/pkg/pg"
	"github.com/tapcard/tapcard/pkg/redis"
	"github.com/tapcard/tapcard/svc/billing"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("configuration error", logger.Error(err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logger, slog.String("app", cfg.AppName))
	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	tokens, err := jwt.New(cfg.JWTSigningKey)
	if err != nil {
		return err
	}

	var mailer email.Sender
	if cfg.Email.Configured() {
		mailer, err = email.NewPostmarkSender(cfg.Email)
		if err != nil {
			return err
		}
	} else {
		log.Warn("email provider not configured, using dev sender")
		mailer = email.NewDevSender(log)
	}

	var planSource billing.PlanSource
	if cfg.Billing.PlanSource == "static" {
		planSource = billing.NewInMemSource(billing.DefaultPlans()...)
	} else {
		planSource = billing.NewPgPlanSource(pool)
	}

	svc, err := billing.NewService(ctx, cfg.PayFast, planSource, billing.NewPgStore(pool),
		billing.WithLogger(log),
		billing.WithMailer(mailer),
		billing.WithFounderEmails(cfg.Billing.FounderEmails),
		billing.WithStatusCache(billing.NewRedisStatusCache(redisClient, log), cfg.Billing.StatusCacheTTL),
	)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", httpserver.HealthCheckHandler(log,
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	))
	r.Mount("/billing", billing.NewHandler(svc, tokens, log).Routes())

	return httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, r)
}
