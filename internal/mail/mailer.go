package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"photoshare/api/internal/config"
)

// Mailer sends transactional mail through Resend. Without an API key it
// degrades to logging the message, which keeps local development working
// without external credentials.
type Mailer struct {
	client *resend.Client
	from   string
	appURL string
	log    zerolog.Logger
}

func NewMailer(cfg config.MailConfig, log zerolog.Logger) *Mailer {
	var client *resend.Client
	if cfg.APIKey != "" {
		client = resend.NewClient(cfg.APIKey)
	}
	return &Mailer{
		client: client,
		from:   cfg.From,
		appURL: cfg.AppURL,
		log:    log,
	}
}

// SendConfirmation mails the address verification link issued at signup.
func (m *Mailer) SendConfirmation(ctx context.Context, email, username, token string) error {
	link := fmt.Sprintf("%s/api/auth/confirmed_email/%s", m.appURL, token)
	body := fmt.Sprintf("Hi %s,\n\nConfirm your email address by opening the link below:\n\n%s\n\nIf you did not sign up, ignore this message.\n", username, link)

	if m.client == nil {
		m.log.Info().Str("to", email).Str("link", link).Msg("mail disabled, confirmation link logged")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{email},
		Subject: "Confirm your email",
		Text:    body,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send confirmation mail: %w", err)
	}
	m.log.Info().Str("to", email).Msg("confirmation mail sent")
	return nil
}
