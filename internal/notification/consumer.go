package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aura/internal/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer drains the booking status queue into a BookingNotifier.
type Consumer struct {
	url     string
	queue   string
	target  BookingNotifier
	log     *logger.Logger
	backoff time.Duration
}

func NewConsumer(url, queue string, target BookingNotifier, log *logger.Logger) *Consumer {
	if queue == "" {
		queue = DefaultQueue
	}
	return &Consumer{url: url, queue: queue, target: target, log: log, backoff: time.Second}
}

// Run consumes until ctx is cancelled, reconnecting with exponential backoff.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := c.backoff
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("broker dial failed", "error", err, "retry_in", backoff.String())
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = c.backoff

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("consume loop ended, reconnecting", "error", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(20, 0, false); err != nil {
		c.log.Warn("set qos failed", "error", err)
	}
	if err := declareQueue(ch, c.queue); err != nil {
		return err
	}
	msgs, err := ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	c.log.Info("consuming", "queue", c.queue)
	for d := range msgs {
		if err := c.Handle(ctx, d.Body); err != nil {
			c.log.Error("handle message failed", "error", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// Handle decodes one message body and forwards it.
func (c *Consumer) Handle(ctx context.Context, body []byte) error {
	var ev BookingStatusEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.BookingID == 0 || ev.CustomerEmail == "" {
		return errors.New("event is missing booking_id or customer_email")
	}
	if err := c.target.BookingStatusChanged(ctx, ev); err != nil {
		return err
	}
	c.log.Info("booking status delivered", "booking_id", ev.BookingID, "status", ev.Status)
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
