// Package notify sends the registration welcome email.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"schoolplanner/internal/config"
)

type Notifier interface {
	RegistrationEmail(ctx context.Context, email, username string) error
}

const registrationSubject = "Welcome to School Planner"

func registrationText(username string) string {
	return fmt.Sprintf("Hello %s,\r\n\r\nyour School Planner account is ready. You can log in now.\r\n", username)
}

// New returns the SendGrid notifier when an API key is configured and the
// console notifier otherwise.
func New(cfg config.MailConfig, log *slog.Logger) Notifier {
	if cfg.SendgridAPIKey == "" {
		return NewConsoleNotifier(log)
	}
	return NewSendgridNotifier(cfg, log)
}

type ConsoleNotifier struct {
	log *slog.Logger
}

func NewConsoleNotifier(log *slog.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{log: log}
}

func (n *ConsoleNotifier) RegistrationEmail(ctx context.Context, email, username string) error {
	n.log.InfoContext(ctx, "registration email",
		"to", email,
		"subject", registrationSubject,
		"body", registrationText(username),
	)
	return nil
}
