package notify

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"schoolplanner/internal/apperror"
	"schoolplanner/internal/config"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"
)

type SendgridNotifier struct {
	key     string
	host    string
	from    *sgmail.Email
	timeout time.Duration
	log     *slog.Logger
}

func NewSendgridNotifier(cfg config.MailConfig, log *slog.Logger) *SendgridNotifier {
	return &SendgridNotifier{
		key:     cfg.SendgridAPIKey,
		host:    host,
		from:    sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
		timeout: cfg.RequestTimeout(),
		log:     log,
	}
}

// WithHost points the notifier at another API host.
func (n *SendgridNotifier) WithHost(h string) *SendgridNotifier {
	n.host = h
	return n
}

func (n *SendgridNotifier) prepare(email, username string) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = registrationSubject
	p.AddTos(sgmail.NewEmail(username, email))

	m := sgmail.NewV3Mail()
	m.SetFrom(n.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", registrationText(username)))
	return m
}

func (n *SendgridNotifier) RegistrationEmail(ctx context.Context, email, username string) error {
	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	req := sendgrid.GetRequest(n.key, endpoint, n.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(n.prepare(email, username))

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return errors.Wrapf(apperror.ErrExternalService, "sending email: %v", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return errors.Wrapf(apperror.ErrExternalService, "sending email - status: %d - body: %s", res.StatusCode, res.Body)
	}

	n.log.DebugContext(ctx, "registration email sent", "to", email, "status", res.StatusCode)
	return nil
}
