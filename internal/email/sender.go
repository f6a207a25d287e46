// Package email sends transactional mail over SMTP.
package email

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	"leasewell_backend/platform/config"
	"leasewell_backend/platform/logger"

	gomail "github.com/wneessen/go-mail"
)

// Attachment is a file included with an outgoing email.
type Attachment struct {
	FileName string
	Content  []byte
}

// Sender delivers application email over a direct SMTP connection. When email
// is disabled in configuration it logs the message instead of sending, which
// keeps development setups working without an SMTP server.
type Sender struct {
	cfg config.EmailConfig
	log *logger.Logger
}

// NewSender creates an email sender.
func NewSender(cfg config.EmailConfig, log *logger.Logger) *Sender {
	return &Sender{cfg: cfg, log: log}
}

func (s *Sender) send(ctx context.Context, toEmail, subject, body string, attachments ...Attachment) error {
	if !s.cfg.GetEmailEnabled() {
		s.log.Info("email disabled, skipping send", "to", toEmail, "subject", subject)
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.cfg.GetEmailFromName(), s.cfg.GetEmailFromAddress()); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	for _, att := range attachments {
		msg.AttachReader(att.FileName, bytes.NewReader(att.Content))
	}

	client, err := gomail.NewClient(s.cfg.GetSMTPHost(),
		gomail.WithPort(s.cfg.GetSMTPPort()),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.GetSMTPUsername()),
		gomail.WithPassword(s.cfg.GetSMTPPassword()),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// SendInvite emails a tenant invitation with the accept link and a QR code
// of the same link attached as a PNG.
func (s *Sender) SendInvite(ctx context.Context, toEmail, landlordName, propertyAddress, acceptURL string, qrPNG []byte) error {
	subject := fmt.Sprintf("%s invited you to their tenant portal", landlordName)
	body := fmt.Sprintf(`Hello,

%s has invited you to join the tenant portal for %s.

Accept the invitation here: %s

You can also scan the attached QR code. The invitation expires in 7 days.
`, landlordName, propertyAddress, acceptURL)

	return s.send(ctx, toEmail, subject, body, Attachment{FileName: "invite-qr.png", Content: qrPNG})
}
