package booking

import (
	"time"

	"aura/internal/domain"
)

type CreateBookingRequest struct {
	Date       string  `json:"date" binding:"required"`
	Time       string  `json:"time" binding:"required"`
	ServiceIDs []int64 `json:"service_ids"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type MyBookingsQuery struct {
	Date   string `form:"date"`
	Status string `form:"status"`
}

type ServiceBrief struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Duration string  `json:"duration"`
	Price    float64 `json:"price"`
}

type UserBrief struct {
	ID       int64               `json:"id"`
	FullName string              `json:"full_name"`
	Phone    *string             `json:"phone"`
	Address  *domain.AddressView `json:"address"`
	Image    string              `json:"image"`
	IsMaster bool                `json:"is_master"`
}

// Entry is one row of the "my bookings" list.
type Entry struct {
	ID      int64          `json:"id"`
	Status  string         `json:"status"`
	Date    string         `json:"date"`
	Time    string         `json:"time"`
	User    *UserBrief     `json:"user"`
	Service []ServiceBrief `json:"service"`
}

type BookingResponse struct {
	ID        int64          `json:"id"`
	Date      string         `json:"date"`
	Time      string         `json:"time"`
	User      int64          `json:"user"`
	Status    string         `json:"status"`
	Service   []ServiceBrief `json:"service"`
	CreatedAt time.Time      `json:"created_at"`
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Date:      b.Date,
		Time:      b.Time,
		User:      b.UserID,
		Status:    string(b.Status),
		Service:   briefServices(b.Services),
		CreatedAt: b.CreatedAt,
	}
}

func briefServices(services []domain.Service) []ServiceBrief {
	out := make([]ServiceBrief, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceBrief{ID: s.ID, Name: s.Name, Duration: s.Duration, Price: s.Price})
	}
	return out
}

func briefUser(u *domain.User) *UserBrief {
	if u == nil {
		return nil
	}
	return &UserBrief{
		ID:       u.ID,
		FullName: u.FullName,
		Phone:    u.Phone,
		Address:  u.Address.View(),
		Image:    u.Image,
		IsMaster: u.IsMaster,
	}
}

func newEntry(b *domain.Booking, counterpart *domain.User) Entry {
	return Entry{
		ID:      b.ID,
		Status:  string(b.Status),
		Date:    b.Date,
		Time:    b.Time,
		User:    briefUser(counterpart),
		Service: briefServices(b.Services),
	}
}
