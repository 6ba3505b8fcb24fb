package notification

import "time"

// BookingStatusEvent is emitted after a booking's status is saved.
type BookingStatusEvent struct {
	BookingID     int64     `json:"booking_id"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Status        string    `json:"status"`
	CustomerID    int64     `json:"customer_id"`
	CustomerEmail string    `json:"customer_email"`
	CustomerName  string    `json:"customer_name"`
	ChangedBy     int64     `json:"changed_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}
