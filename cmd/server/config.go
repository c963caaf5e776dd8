package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/tapcard/tapcard/pkg/email"
	"github.com/tapcard/tapcard/pkg/httpserver"
	"github.com/tapcard/tapcard/pkg/logger"
	"github.com/tapcard/tapcard/pkg/payfast"
	"github.com/tapcard/tapcard/pkg/pg"
	"github.com/tapcard/tapcard/pkg/redis"
	"github.com/tapcard/tapcard/svc/billing"
)

type config struct {
	AppName       string `env:"APP_NAME" envDefault:"tapcard-billing"`
	JWTSigningKey string `env:"JWT_SIGNING_KEY,required"` // shared secret with the auth provider

	Logger  logger.Config
	HTTP    httpserver.Config
	PG      pg.Config
	Redis   redis.Config
	Email   email.Config
	PayFast payfast.Config
	Billing billing.Config
}

// loadConfig reads .env when present, then the process environment.
func loadConfig() (config, error) {
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
