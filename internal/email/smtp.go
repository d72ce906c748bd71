package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/worthtrust/market-api/internal/config"
	"github.com/worthtrust/market-api/internal/platform/logger"
)

// verificationSubject is the subject line of the verification message.
const verificationSubject = "Verify your email address"

// verificationTemplate renders the HTML body of the verification message.
var verificationTemplate = template.Must(template.New("verification").Parse(`<html>
<body>
	<p>Hi {{.GivenName}},</p>
	<p>Thanks for signing up. Please confirm your email address by following the link below:</p>
	<p><a href="{{.VerifyURL}}">Verify my email</a></p>
	<p>If you did not create an account, you can ignore this message.</p>
</body>
</html>`))

// SMTPNotifier implements Notifier over an SMTP transport using gomail.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

// Ensure SMTPNotifier implements Notifier
var _ Notifier = (*SMTPNotifier)(nil)

// NewSMTPNotifier creates a Notifier that delivers through the configured
// SMTP server. If logger is nil, a default logger will be used.
func NewSMTPNotifier(cfg config.SMTPConfig, logger *slog.Logger) *SMTPNotifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger.With(slog.String("component", "smtp_notifier")),
	}
}

// SendVerification implements Notifier.SendVerification
// It renders the verification template and hands the message to the
// SMTP dialer. The context is consulted for a request-scoped logger;
// gomail itself does not support cancellation.
func (n *SMTPNotifier) SendVerification(ctx context.Context, data VerificationData) error {
	log := logger.FromContextOrDefault(ctx, n.logger)

	var body bytes.Buffer
	if err := verificationTemplate.Execute(&body, data); err != nil {
		log.Error("failed to render verification template",
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to render verification template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", data.Email)
	m.SetHeader("Subject", verificationSubject)
	m.SetBody("text/html", body.String())

	if err := n.dialer.DialAndSend(m); err != nil {
		log.Error("failed to send verification email",
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	log.Info("verification email sent")
	return nil
}
