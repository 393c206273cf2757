package services

import (
	"fmt"
	"log"
	"net/smtp"
)

type MailerConfig struct {
	Host      string
	Port      string
	Username  string
	Password  string
	From      string
	StoreName string
}

// MailSender is the outbound mail transport boundary. Dispatch failures are
// logged by callers and never propagate to the request that triggered them.
type MailSender interface {
	Enabled() bool
	SendHTMLEmail(to, subject, htmlBody string) error
}

type Mailer struct {
	config MailerConfig
}

func NewMailer(cfg MailerConfig) *Mailer {
	return &Mailer{
		config: cfg,
	}
}

func (m *Mailer) Enabled() bool {
	return m.config.Host != "" && m.config.Username != "" && m.config.Password != ""
}

// SendHTMLEmail delivers one HTML message over SMTP. Missing transport
// configuration is a no-op, not an error.
func (m *Mailer) SendHTMLEmail(to, subject, htmlBody string) error {
	if !m.Enabled() {
		log.Printf("[mail] SMTP not configured, skipping %q to %s", subject, to)
		return nil
	}

	headers := map[string]string{
		"From":         fmt.Sprintf("%s <%s>", m.config.StoreName, m.config.From),
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=\"UTF-8\"",
	}

	var msg string
	for k, v := range headers {
		msg += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	msg += "\r\n" + htmlBody

	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg))
	if err != nil {
		log.Printf("[mail] failed to send %q to %s: %v", subject, to, err)
		return fmt.Errorf("failed to send HTML email: %w", err)
	}

	return nil
}
