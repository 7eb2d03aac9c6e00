package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/taskforge/taskforge-api/internal/config"
)

// SMTPSender delivers email over SMTP with STARTTLS when the server
// offers it.
type SMTPSender struct {
	addr string
	auth smtp.Auth
	from string
	name string
}

// NewSMTPSender creates a Sender that talks to the configured SMTP host.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	var auth smtp.Auth
	if cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}

	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		auth: auth,
		from: cfg.FromAddress,
		name: cfg.FromName,
	}
}

var _ Sender = (*SMTPSender)(nil)

// Send implements the Sender interface.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	// net/smtp has no context support; honor cancellation up front.
	if err := ctx.Err(); err != nil {
		return err
	}

	payload := s.encode(msg)
	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{msg.To}, payload); err != nil {
		return fmt.Errorf("failed to send email via smtp: %w", err)
	}
	return nil
}

func (s *SMTPSender) encode(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.name, s.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}
