package mailer

import (
	"context"
	"sync"

	"aura/internal/pkg/logger"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ConsoleMailer logs messages instead of delivering them.
type ConsoleMailer struct {
	log *logger.Logger
}

func NewConsoleMailer(log *logger.Logger) *ConsoleMailer {
	return &ConsoleMailer{log: log}
}

func (m *ConsoleMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("dev email", "to", msg.To, "subject", msg.Subject, "body", msg.HTML)
	return nil
}

// Outbox records messages in memory. Tests read them back.
type Outbox struct {
	mu   sync.Mutex
	sent []Message
}

func (o *Outbox) Send(_ context.Context, msg Message) error {
	o.mu.Lock()
	o.sent = append(o.sent, msg)
	o.mu.Unlock()
	return nil
}

func (o *Outbox) Messages() []Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Message, len(o.sent))
	copy(out, o.sent)
	return out
}

// Last returns the most recent message sent to addr.
func (o *Outbox) Last(addr string) (Message, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.sent) - 1; i >= 0; i-- {
		if o.sent[i].To == addr {
			return o.sent[i], true
		}
	}
	return Message{}, false
}
