package email

import (
	"context"

	"github.com/rs/zerolog/log"
)

// EmailSender delivers one plain text message.
type EmailSender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// LogSender writes messages to the request logger instead of delivering
// them. Development servers without SES credentials use it.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, recipient, subject, body string) error {
	log.Ctx(ctx).Info().
		Str("recipient", recipient).
		Str("subject", subject).
		Str("body", body).
		Msg("Email not delivered (log sender)")
	return nil
}
