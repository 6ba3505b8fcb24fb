package schedule

import (
	"context"
	"errors"

	"aura/internal/domain"
	"aura/internal/pkg/timeutil"
	"aura/internal/repository"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListDays(ctx context.Context) ([]domain.WorkingDay, error) {
	return s.repo.ListDays(ctx)
}

func (s *Service) ListTimes(ctx context.Context, userID int64) ([]domain.WorkingTime, error) {
	return s.repo.ListTimes(ctx, userID)
}

// CreateTimes validates every row first and then stores all of them or none.
func (s *Service) CreateTimes(ctx context.Context, userID int64, in []TimeInput) ([]domain.WorkingTime, error) {
	rows := make([]domain.WorkingTime, 0, len(in))
	for _, t := range in {
		row, err := s.build(ctx, userID, t)
		if err != nil {
			return nil, err
		}
		rows = append(rows, *row)
	}
	if err := s.repo.CreateTimes(ctx, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) UpdateTime(ctx context.Context, userID, id int64, in TimeInput) (*domain.WorkingTime, error) {
	if _, err := s.repo.GetTime(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTimeNotFound
		}
		return nil, err
	}
	row, err := s.build(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	row.ID = id
	if err := s.repo.UpdateTime(ctx, row); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTimeNotFound
		}
		return nil, err
	}
	return row, nil
}

func (s *Service) DeleteTime(ctx context.Context, userID, id int64) error {
	err := s.repo.DeleteTime(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTimeNotFound
	}
	return err
}

func (s *Service) build(ctx context.Context, userID int64, in TimeInput) (*domain.WorkingTime, error) {
	day, err := s.repo.GetDay(ctx, in.Day)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ValidationError{Message: "Working day not found"}
		}
		return nil, err
	}
	start, err := timeutil.ParseClock(in.StartTime)
	if err != nil {
		return nil, &ValidationError{Message: "Invalid start_time format. Expected HH:MM."}
	}
	end, err := timeutil.ParseClock(in.EndTime)
	if err != nil {
		return nil, &ValidationError{Message: "Invalid end_time format. Expected HH:MM."}
	}
	if start >= end {
		return nil, &ValidationError{Message: "The start time must be less than the end time"}
	}
	return &domain.WorkingTime{
		DayID:     day.ID,
		Day:       day,
		StartTime: timeutil.FormatClock(start),
		EndTime:   timeutil.FormatClock(end),
		UserID:    userID,
	}, nil
}
