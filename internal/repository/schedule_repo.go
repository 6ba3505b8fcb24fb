package repository

import (
	"context"

	"aura/internal/domain"

	"gorm.io/gorm"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) ListDays(ctx context.Context) ([]domain.WorkingDay, error) {
	var out []domain.WorkingDay
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *ScheduleRepository) GetDay(ctx context.Context, id int64) (*domain.WorkingDay, error) {
	var d domain.WorkingDay
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (r *ScheduleRepository) CreateDay(ctx context.Context, d *domain.WorkingDay) error {
	return translate(r.db.WithContext(ctx).Create(d).Error)
}

func (r *ScheduleRepository) ListTimes(ctx context.Context, userID int64) ([]domain.WorkingTime, error) {
	var out []domain.WorkingTime
	err := r.db.WithContext(ctx).Preload("Day").
		Where("user_id = ?", userID).Order("day_id, start_time").
		Find(&out).Error
	return out, err
}

// TimesOnDay returns the ranges the given masters work on a weekday name.
func (r *ScheduleRepository) TimesOnDay(ctx context.Context, userIDs []int64, day string) ([]domain.WorkingTime, error) {
	if len(userIDs) == 0 {
		return []domain.WorkingTime{}, nil
	}
	var out []domain.WorkingTime
	err := r.db.WithContext(ctx).
		Joins("JOIN working_days ON working_days.id = working_times.day_id").
		Where("working_times.user_id IN ? AND working_days.day = ?", userIDs, day).
		Order("working_times.user_id, working_times.start_time").
		Find(&out).Error
	return out, err
}

func (r *ScheduleRepository) GetTime(ctx context.Context, id, userID int64) (*domain.WorkingTime, error) {
	var t domain.WorkingTime
	err := r.db.WithContext(ctx).Preload("Day").Where("id = ? AND user_id = ?", id, userID).First(&t).Error
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// CreateTimes inserts all rows or none.
func (r *ScheduleRepository) CreateTimes(ctx context.Context, rows []domain.WorkingTime) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return translate(tx.Omit("Day", "User").Create(&rows).Error)
	})
}

func (r *ScheduleRepository) UpdateTime(ctx context.Context, t *domain.WorkingTime) error {
	res := r.db.WithContext(ctx).Model(&domain.WorkingTime{}).
		Where("id = ? AND user_id = ?", t.ID, t.UserID).
		Updates(map[string]any{"day_id": t.DayID, "start_time": t.StartTime, "end_time": t.EndTime})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ScheduleRepository) DeleteTime(ctx context.Context, id, userID int64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.WorkingTime{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
