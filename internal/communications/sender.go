package communications

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"hvac-ats-backend/internal/shared/telemetry"
	"hvac-ats-backend/internal/users"
)

// Email is a plain-text message to one recipient.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers email on behalf of an employer.
type Sender interface {
	Send(ctx context.Context, from users.User, e Email) error
}

// GmailSender sends through the employer's own Gmail account using the
// refresh token stored at Google sign-in.
type GmailSender struct {
	OAuth *oauth2.Config
	// Options are appended to the Gmail client options; tests point the
	// endpoint at a fake server.
	Options []option.ClientOption
}

func (g *GmailSender) Send(ctx context.Context, from users.User, e Email) error {
	if !from.GmailConnected() {
		return ErrNotConnected
	}
	httpClient := g.OAuth.Client(ctx, &oauth2.Token{RefreshToken: from.GoogleRefreshToken})
	opts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, g.Options...)
	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return fmt.Errorf("gmail client: %w", err)
	}
	raw, err := buildMessage(from, e, time.Now())
	if err != nil {
		return err
	}
	_, err = svc.Users.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail send: %w", err)
	}
	return nil
}

// LogSender only logs. It stands in when Google is not configured.
type LogSender struct {
	// From replaces the employer address in the log when set.
	From string
}

func (l LogSender) Send(ctx context.Context, from users.User, e Email) error {
	sender := from.Email
	if l.From != "" {
		sender = l.From
	}
	telemetry.Info("communications.log_sender", map[string]any{
		"from":    sender,
		"to":      e.To,
		"subject": e.Subject,
	})
	return nil
}

// buildMessage renders an RFC 822 message with a UTF-8 plain-text body.
func buildMessage(from users.User, e Email, now time.Time) ([]byte, error) {
	to, err := mail.ParseAddress(e.To)
	if err != nil {
		return nil, fmt.Errorf("recipient: %w", err)
	}
	sender := mail.Address{Name: from.Name, Address: from.Email}

	var b bytes.Buffer
	header := func(k, v string) { fmt.Fprintf(&b, "%s: %s\r\n", k, v) }
	header("From", sender.String())
	header("To", to.String())
	header("Subject", mime.QEncoding.Encode("utf-8", e.Subject))
	header("Date", now.UTC().Format(time.RFC1123Z))
	header("MIME-Version", "1.0")
	header("Content-Type", `text/plain; charset="UTF-8"`)
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(e.Body, "\r\n", "\n"), "\n", "\r\n"))
	return b.Bytes(), nil
}
