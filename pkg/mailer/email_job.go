package mailer

import (
	"context"
	"errors"

	"github.com/oksasatya/go-user-auth-api/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (+Data) or Subject with Text/HTML is set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// ErrInvalidJob marks jobs that can never be delivered and should not be retried.
var ErrInvalidJob = errors.New("invalid email job")

// Render returns the subject and bodies, rendering the template when set.
func (j EmailJob) Render() (subject, text, html string, err error) {
	if j.To == "" {
		return "", "", "", ErrInvalidJob
	}
	if j.Template == "" {
		if j.Subject == "" || (j.Text == "" && j.HTML == "") {
			return "", "", "", ErrInvalidJob
		}
		return j.Subject, j.Text, j.HTML, nil
	}
	subject, text, html, err = templates.Render(j.Template, j.Data)
	if err != nil {
		return "", "", "", errors.Join(ErrInvalidJob, err)
	}
	return subject, text, html, nil
}

// Deliver renders the job and hands it to s.
func (j EmailJob) Deliver(ctx context.Context, s Sender) error {
	subject, text, html, err := j.Render()
	if err != nil {
		return err
	}
	return s.Send(ctx, j.To, subject, text, html)
}
