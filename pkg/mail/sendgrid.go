package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Notifier delivers plain-text notifications to a recipient.
type Notifier interface {
	Send(ctx context.Context, toName, toEmail, subject, body string) error
}

// SendgridNotifier sends mail through the SendGrid v3 API.
type SendgridNotifier struct {
	key    string
	from   *sgmail.Email
	logger *zap.Logger
}

// NewSendgridNotifier builds a notifier. An empty API key yields a notifier
// that logs and drops messages, so callers never need a nil check.
func NewSendgridNotifier(key, fromName, fromEmail string, logger *zap.Logger) *SendgridNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SendgridNotifier{
		key:    key,
		from:   sgmail.NewEmail(fromName, fromEmail),
		logger: logger,
	}
}

// Send delivers a single plain-text message.
func (n *SendgridNotifier) Send(ctx context.Context, toName, toEmail, subject, body string) error {
	if n.key == "" {
		n.logger.Sugar().Debugw("mail delivery skipped, no api key", "to", toEmail, "subject", subject)
		return nil
	}

	message := sgmail.NewSingleEmail(n.from, subject, sgmail.NewEmail(toName, toEmail), body, "")
	req := sendgrid.GetRequest(n.key, "/v3/mail/send", "https://api.sendgrid.com")
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(message)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid rejected message: status %d", res.StatusCode)
	}
	n.logger.Sugar().Infow("mail delivered", "to", toEmail, "subject", subject)
	return nil
}
