package schedule

import (
	"context"

	"aura/internal/domain"
)

type Repository interface {
	ListDays(ctx context.Context) ([]domain.WorkingDay, error)
	GetDay(ctx context.Context, id int64) (*domain.WorkingDay, error)
	ListTimes(ctx context.Context, userID int64) ([]domain.WorkingTime, error)
	GetTime(ctx context.Context, id, userID int64) (*domain.WorkingTime, error)
	CreateTimes(ctx context.Context, rows []domain.WorkingTime) error
	UpdateTime(ctx context.Context, t *domain.WorkingTime) error
	DeleteTime(ctx context.Context, id, userID int64) error
}
