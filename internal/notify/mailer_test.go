package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var msg = Message{
	To:      mail.Address{Name: "City College", Address: "office@city.edu"},
	Subject: "Shortfall in fees",
	HTML:    "<p>Please remit</p>",
}

func TestMessage_Validate(t *testing.T) {
	assert.NoError(t, msg.Validate())

	noTo := msg
	noTo.To = mail.Address{}
	assert.Error(t, noTo.Validate())

	bad := msg
	bad.To.Address = "not an address"
	assert.Error(t, bad.Validate())

	noSubject := msg
	noSubject.Subject = ""
	assert.Error(t, noSubject.Validate())
}

func TestConsoleMailer(t *testing.T) {
	m := ConsoleMailer{From: "exams@uni.local"}
	assert.NoError(t, m.Send(context.Background(), msg))
	assert.Error(t, m.Send(context.Background(), Message{}))
}

func TestSendgridMailer_Send(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer sg-key", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := NewSendgridMailer("sg-key", "Exams", "exams@uni.local", WithHost(srv.URL))
	require.NoError(t, m.Send(context.Background(), msg))

	from := got["from"].(map[string]any)
	assert.Equal(t, "exams@uni.local", from["email"])
	personalizations := got["personalizations"].([]any)
	require.Len(t, personalizations, 1)
	p := personalizations[0].(map[string]any)
	assert.Equal(t, "Shortfall in fees", p["subject"])
	content := got["content"].([]any)[0].(map[string]any)
	assert.Equal(t, "text/html", content["type"])
	assert.Equal(t, "<p>Please remit</p>", content["value"])
}

func TestSendgridMailer_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	m := NewSendgridMailer("wrong", "Exams", "exams@uni.local", WithHost(srv.URL))
	err := m.Send(context.Background(), msg)
	assert.ErrorContains(t, err, "status 401")
}

func TestSendgridMailer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewSendgridMailer("k", "Exams", "exams@uni.local", WithHost("http://127.0.0.1:1"))
	assert.ErrorIs(t, m.Send(ctx, msg), context.Canceled)
}

func TestNewMailerFromEnv(t *testing.T) {
	t.Setenv("SENDGRID_API_KEY", "")
	t.Setenv("MAIL_FROM", "")
	assert.IsType(t, ConsoleMailer{}, NewMailerFromEnv())

	t.Setenv("SENDGRID_API_KEY", "sg-key")
	assert.IsType(t, &SendgridMailer{}, NewMailerFromEnv())
}
