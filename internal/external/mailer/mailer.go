// Package mailer delivers notifications over SMTP.
package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"caligold/internal/domain/notify"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPChannel implements notify.Channel on top of an SMTP relay.
type SMTPChannel struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg Config) *SMTPChannel {
	return &SMTPChannel{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (c *SMTPChannel) Send(ctx context.Context, msg notify.Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	// gomail has no context support, so the dial-and-send runs in its own
	// goroutine and the caller's deadline wins the race.
	done := make(chan error, 1)
	go func() {
		done <- c.dialer.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	}
}
