package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type SendgridMailer struct {
	key  string
	from *sgmail.Email
	host string
}

type SendgridOption func(*SendgridMailer)

func WithHost(host string) SendgridOption {
	return func(m *SendgridMailer) {
		m.host = host
	}
}

func NewSendgridMailer(key, fromName, fromEmail string, opts ...SendgridOption) *SendgridMailer {
	m := &SendgridMailer{
		key:  key,
		from: sgmail.NewEmail(fromName, fromEmail),
		host: sendgridHost,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *SendgridMailer) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.To.Name, msg.To.Address))

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	v3.AddContent(sgmail.NewContent("text/html", msg.HTML))
	return v3
}

func (m *SendgridMailer) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	req := sendgrid.GetRequest(m.key, sendgridEndpoint, m.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.prepare(msg))

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid rejected message: status %d: %s", res.StatusCode, res.Body)
	}

	slog.Info("Mail sent", "to", msg.To.Address, "subject", msg.Subject, "status", res.StatusCode)
	return nil
}
