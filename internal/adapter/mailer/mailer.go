package mailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"sesi-membership/internal/domain/application"

	"gopkg.in/gomail.v2"
)

// Sender delivers composed messages; *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTP struct {
	d       Sender
	from    string
	admin   string
	siteURL string
}

func NewSMTP(host string, port int, username, password, from, admin, siteURL string) *SMTP {
	return NewSMTPWithSender(gomail.NewDialer(host, port, username, password), from, admin, siteURL)
}

func NewSMTPWithSender(d Sender, from, admin, siteURL string) *SMTP {
	return &SMTP{d: d, from: from, admin: admin, siteURL: strings.TrimRight(siteURL, "/")}
}

func (s *SMTP) message(to, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return m
}

// ApplicationReceived sends the applicant a receipt and the admin mailbox a notice.
func (s *SMTP) ApplicationReceived(ctx context.Context, a *application.MembershipApplication) error {
	receipt := s.message(a.Email, "SESI Membership Application Received", receiptBody(a))
	notice := s.message(s.admin, "New Membership Application - "+a.FullName, adminNoticeBody(a, s.siteURL))

	var errs []error
	for _, m := range []*gomail.Message{receipt, notice} {
		if err := s.d.DialAndSend(m); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to send application emails via gomail: %w", err)
	}
	return nil
}

// Approved sends the welcome email with the certificate attached.
func (s *SMTP) Approved(ctx context.Context, a *application.MembershipApplication, certName string, cert []byte) error {
	m := s.message(a.Email, "Welcome to SESI - Membership Approved", approvalBody(a))
	if len(cert) > 0 {
		m.Attach(certName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(cert)
			return err
		}))
	}
	if err := s.d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send approval email via gomail: %w", err)
	}
	return nil
}

// Log writes notifications to the structured log instead of sending them.
type Log struct{ l *slog.Logger }

func NewLog(l *slog.Logger) *Log {
	if l == nil {
		l = slog.Default()
	}
	return &Log{l: l}
}

func (m *Log) ApplicationReceived(ctx context.Context, a *application.MembershipApplication) error {
	m.l.InfoContext(ctx, "email notification", "to", a.Email, "subject", "SESI Membership Application Received", "application_id", a.ID)
	m.l.InfoContext(ctx, "email notification", "to", "admin", "subject", "New Membership Application - "+a.FullName, "application_id", a.ID)
	return nil
}

func (m *Log) Approved(ctx context.Context, a *application.MembershipApplication, certName string, cert []byte) error {
	m.l.InfoContext(ctx, "email notification",
		"to", a.Email,
		"subject", "Welcome to SESI - Membership Approved",
		"membership_number", a.Number(),
		"attachment", certName,
		"attachment_bytes", len(cert),
	)
	return nil
}
