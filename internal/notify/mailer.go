package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"os"
)

const defaultFrom = "examinations@university.local"

type Message struct {
	To      mail.Address
	Subject string
	HTML    string
}

func (m Message) Validate() error {
	if m.To.Address == "" {
		return fmt.Errorf("recipient address is required")
	}
	if _, err := mail.ParseAddress(m.To.Address); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", m.To.Address, err)
	}
	if m.Subject == "" {
		return fmt.Errorf("subject is required")
	}
	return nil
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ConsoleMailer logs messages instead of sending them.
type ConsoleMailer struct {
	From string
}

func (c ConsoleMailer) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	slog.Info("Mail not sent, no mail provider configured",
		"from", c.From,
		"to", msg.To.String(),
		"subject", msg.Subject,
		"bytes", len(msg.HTML),
	)
	return nil
}

// NewMailerFromEnv returns a SendgridMailer when SENDGRID_API_KEY is set and a ConsoleMailer otherwise.
func NewMailerFromEnv() Mailer {
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = defaultFrom
	}

	key := os.Getenv("SENDGRID_API_KEY")
	if key == "" {
		slog.Warn("SENDGRID_API_KEY not set, letters will only be logged")
		return ConsoleMailer{From: from}
	}
	return NewSendgridMailer(key, "Examination Section", from)
}
