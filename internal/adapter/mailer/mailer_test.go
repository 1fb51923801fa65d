package mailer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"sesi-membership/internal/domain/application"

	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func sampleApp() *application.MembershipApplication {
	n := "SESI-2025-0004"
	return &application.MembershipApplication{
		ID:               "3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
		FullName:         "Dr. Asha Rao",
		Email:            "asha@example.com",
		Mobile:           "9876543210",
		MembershipType:   application.MembershipTypeLife,
		RegionMembership: application.RegionNational,
		SubmittedAt:      time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		MembershipNumber: &n,
	}
}

func raw(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	return buf.String()
}

func TestSMTP_ApplicationReceived(t *testing.T) {
	f := &fakeSender{}
	s := NewSMTPWithSender(f, "noreply@sesi.co.in", "admin@sesi.co.in", "https://sesi.co.in/")
	a := sampleApp()

	if err := s.ApplicationReceived(context.Background(), a); err != nil {
		t.Fatalf("ApplicationReceived: %v", err)
	}
	if len(f.sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(f.sent))
	}
	if got := f.sent[0].GetHeader("To"); len(got) != 1 || got[0] != a.Email {
		t.Fatalf("receipt To = %v", got)
	}
	if !strings.Contains(raw(t, f.sent[0]), "Application ID: "+a.ID) {
		t.Fatalf("receipt body missing application id")
	}
	if got := f.sent[1].GetHeader("To"); len(got) != 1 || got[0] != "admin@sesi.co.in" {
		t.Fatalf("notice To = %v", got)
	}
	if got := f.sent[1].GetHeader("Subject"); got[0] != "New Membership Application - Dr. Asha Rao" {
		t.Fatalf("notice Subject = %v", got)
	}
}

func TestSMTP_ApplicationReceived_SendFailure(t *testing.T) {
	f := &fakeSender{err: errors.New("smtp down")}
	s := NewSMTPWithSender(f, "noreply@sesi.co.in", "admin@sesi.co.in", "https://sesi.co.in")
	err := s.ApplicationReceived(context.Background(), sampleApp())
	if err == nil || !strings.Contains(err.Error(), "smtp down") {
		t.Fatalf("want wrapped smtp error, got %v", err)
	}
	if len(f.sent) != 2 {
		t.Fatalf("admin notice should still be attempted, sent=%d", len(f.sent))
	}
}

func TestSMTP_Approved_AttachesCertificate(t *testing.T) {
	f := &fakeSender{}
	s := NewSMTPWithSender(f, "noreply@sesi.co.in", "admin@sesi.co.in", "https://sesi.co.in")

	err := s.Approved(context.Background(), sampleApp(), "SESI_Certificate_SESI-2025-0004.pdf", []byte("%PDF-1.3"))
	if err != nil {
		t.Fatalf("Approved: %v", err)
	}
	if len(f.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(f.sent))
	}
	body := raw(t, f.sent[0])
	if !strings.Contains(body, "SESI_Certificate_SESI-2025-0004.pdf") {
		t.Fatalf("attachment missing from message")
	}
	if !strings.Contains(body, "Membership Number: SESI-2025-0004") {
		t.Fatalf("membership number missing from body")
	}
}

func TestLog_NeverFails(t *testing.T) {
	m := NewLog(nil)
	if err := m.ApplicationReceived(context.Background(), sampleApp()); err != nil {
		t.Fatalf("ApplicationReceived: %v", err)
	}
	if err := m.Approved(context.Background(), sampleApp(), "c.pdf", nil); err != nil {
		t.Fatalf("Approved: %v", err)
	}
}
