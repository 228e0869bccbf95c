package delivery

import (
	"context"
	"fmt"

	"triptacticx/internal/config"

	"github.com/wneessen/go-mail"
)

// Transport отправляет готовое письмо.
type Transport interface {
	Send(ctx context.Context, msg *mail.Msg) error
}

// SMTPTransport отправляет письма через SMTP с PLAIN-авторизацией.
type SMTPTransport struct {
	cfg config.SMTPConfig
}

// NewSMTPTransport создает транспорт; соединение открывается на каждую отправку.
func NewSMTPTransport(cfg config.SMTPConfig) *SMTPTransport {
	return &SMTPTransport{cfg: cfg}
}

func (t *SMTPTransport) options() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(t.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(t.cfg.Username),
		mail.WithPassword(t.cfg.Password),
	}
	if t.cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(t.cfg.Timeout))
	}
	if t.cfg.UseSSL {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	return opts
}

// Send открывает соединение, авторизуется и отправляет письмо.
func (t *SMTPTransport) Send(ctx context.Context, msg *mail.Msg) error {
	client, err := mail.NewClient(t.cfg.Host, t.options()...)
	if err != nil {
		return fmt.Errorf("create smtp client for %s:%d: %w", t.cfg.Host, t.cfg.Port, err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send via %s:%d: %w", t.cfg.Host, t.cfg.Port, err)
	}
	return nil
}
