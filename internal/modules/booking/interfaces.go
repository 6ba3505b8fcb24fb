package booking

import (
	"context"

	"aura/internal/domain"
	"aura/internal/repository"
)

// BookingRepository defines the interface for booking operations
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	TimesOnDate(ctx context.Context, date string) ([]string, error)
	HasConflict(ctx context.Context, date, clock string, serviceIDs []int64) (bool, error)
	GetVisible(ctx context.Context, id, userID int64, asProvider bool) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Delete(ctx context.Context, id int64) error
	ListForProvider(ctx context.Context, masterID int64, f repository.BookingFilter) ([]domain.Booking, error)
	ListMadeBy(ctx context.Context, userID int64, f repository.BookingFilter) ([]domain.Booking, error)
}

// ServiceRepository resolves requested service ids.
type ServiceRepository interface {
	GetServices(ctx context.Context, ids []int64) ([]domain.Service, error)
}

// ScheduleRepository returns masters' working ranges for a weekday name.
type ScheduleRepository interface {
	TimesOnDay(ctx context.Context, userIDs []int64, day string) ([]domain.WorkingTime, error)
}
