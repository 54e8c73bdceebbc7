package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"blogCPT/internal/config"
)

type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password),
		from:   cfg.SMTP.From,
	}
}

// Send отправляет письмо через SMTP. Ретраев нет,
// ошибка транспорта уходит вызывающему как есть.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("ошибка отправки письма: %w", err)
	}

	return nil
}
