package domain

import "time"

type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingApproved, BookingRejected:
		return true
	}
	return false
}

// Booking reserves a start time on a date for one or more services.
// Date is "YYYY-MM-DD" and Time is zero-padded "HH:MM".
type Booking struct {
	ID        int64         `json:"id" gorm:"primaryKey"`
	Date      string        `json:"date" gorm:"size:10;index;not null"`
	Time      string        `json:"time" gorm:"size:5;not null"`
	UserID    int64         `json:"user" gorm:"index;not null"`
	User      *User         `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Status    BookingStatus `json:"status" gorm:"size:16;not null;default:pending"`
	Services  []Service     `json:"service" gorm:"many2many:booking_services;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time     `json:"created_at"`
}
