package notification

import (
	"context"

	"aura/internal/pkg/mailer"
	"aura/internal/pkg/metrics"
)

// BookingNotifier delivers booking status changes to the customer.
type BookingNotifier interface {
	BookingStatusChanged(ctx context.Context, ev BookingStatusEvent) error
}

// EmailNotifier sends the "Booking <Status>" e-mail directly.
type EmailNotifier struct {
	mail    mailer.Mailer
	metrics *metrics.Metrics
}

func NewEmailNotifier(m mailer.Mailer, mt *metrics.Metrics) *EmailNotifier {
	return &EmailNotifier{mail: m, metrics: mt}
}

func (n *EmailNotifier) BookingStatusChanged(ctx context.Context, ev BookingStatusEvent) error {
	msg, err := mailer.BookingStatusMessage(ev.CustomerEmail, ev.CustomerName, ev.BookingID, ev.Date, ev.Time, ev.Status)
	if err != nil {
		return err
	}
	err = n.mail.Send(ctx, msg)
	n.metrics.Email("booking_status", err)
	return err
}
