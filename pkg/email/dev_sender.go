package email

import (
	"context"
	"log/slog"
)

type devSender struct {
	log *slog.Logger
}

// NewDevSender returns a sender that logs messages instead of delivering
// them. Used when Postmark credentials are absent.
func NewDevSender(log *slog.Logger) Sender {
	return &devSender{log: log}
}

func (s *devSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "email suppressed (dev sender)",
		"to", params.SendTo,
		"subject", params.Subject,
		"tag", params.Tag,
	)
	return nil
}
