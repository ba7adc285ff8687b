package notify

import (
	"context"
	"log/slog"
)

// Sender delivers one rendered notification to one recipient.
type Sender interface {
	Kind() string
	Send(ctx context.Context, recipient, subject, body string) error
}

// ConsoleSMSSender writes the message to the log instead of an SMS gateway.
// Wiring a real provider means implementing Sender and swapping it in.
type ConsoleSMSSender struct{}

func NewConsoleSMSSender() *ConsoleSMSSender { return &ConsoleSMSSender{} }

func (s *ConsoleSMSSender) Kind() string { return "sms" }

func (s *ConsoleSMSSender) Send(_ context.Context, recipient, _, body string) error {
	slog.Info("sms notification", "to", recipient, "body", body)
	return nil
}

type ConsoleEmailSender struct{}

func NewConsoleEmailSender() *ConsoleEmailSender { return &ConsoleEmailSender{} }

func (s *ConsoleEmailSender) Kind() string { return "email" }

func (s *ConsoleEmailSender) Send(_ context.Context, recipient, subject, body string) error {
	slog.Info("email notification", "to", recipient, "subject", subject, "body", body)
	return nil
}
