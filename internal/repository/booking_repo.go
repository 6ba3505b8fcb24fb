package repository

import (
	"context"

	"aura/internal/domain"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// BookingFilter narrows booking lists. Empty fields are ignored.
type BookingFilter struct {
	Date   string
	Status string
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts the booking and its service links in one transaction.
// Linked services are referenced, never upserted.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return translate(tx.Omit("User", "Services.*").Create(b).Error)
	})
}

// TimesOnDate returns the start time of every booking on date.
func (r *BookingRepository) TimesOnDate(ctx context.Context, date string) ([]string, error) {
	var times []string
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("date = ?", date).
		Pluck("time", &times).Error
	return times, err
}

// HasConflict reports whether a booking at date+time already covers any of serviceIDs.
func (r *BookingRepository) HasConflict(ctx context.Context, date, clock string, serviceIDs []int64) (bool, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("bookings").
		Join("booking_services ON booking_services.booking_id = bookings.id").
		Where(sq.Eq{
			"bookings.date":               date,
			"bookings.time":               clock,
			"booking_services.service_id": serviceIDs,
		}).
		ToSql()
	if err != nil {
		return false, err
	}
	var n int64
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetVisible loads a booking in the caller's scope. A provider sees bookings
// containing one of their services; anyone else only bookings they made.
func (r *BookingRepository) GetVisible(ctx context.Context, id, userID int64, asProvider bool) (*domain.Booking, error) {
	q := r.preloaded(ctx).Where("bookings.id = ?", id)
	if asProvider {
		q = q.Where("EXISTS (SELECT 1 FROM booking_services bs JOIN services s ON s.id = bs.service_id WHERE bs.booking_id = bookings.id AND s.user_id = ?)", userID)
	} else {
		q = q.Where("bookings.user_id = ?", userID)
	}
	var b domain.Booking
	err := q.First(&b).Error
	if err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM booking_services WHERE booking_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Booking{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListForProvider returns bookings that include a service owned by masterID.
func (r *BookingRepository) ListForProvider(ctx context.Context, masterID int64, f BookingFilter) ([]domain.Booking, error) {
	q := sq.Select("DISTINCT bookings.id").
		From("bookings").
		Join("booking_services ON booking_services.booking_id = bookings.id").
		Join("services ON services.id = booking_services.service_id").
		Where(sq.Eq{"services.user_id": masterID})
	return r.listByQuery(ctx, applyBookingFilter(q, f))
}

// ListMadeBy returns bookings the user placed as a customer.
func (r *BookingRepository) ListMadeBy(ctx context.Context, userID int64, f BookingFilter) ([]domain.Booking, error) {
	q := sq.Select("bookings.id").
		From("bookings").
		Where(sq.Eq{"bookings.user_id": userID})
	return r.listByQuery(ctx, applyBookingFilter(q, f))
}

func applyBookingFilter(q sq.SelectBuilder, f BookingFilter) sq.SelectBuilder {
	if f.Date != "" {
		q = q.Where(sq.Eq{"bookings.date": f.Date})
	}
	if f.Status != "" {
		q = q.Where(sq.Eq{"bookings.status": f.Status})
	}
	return q
}

func (r *BookingRepository) listByQuery(ctx context.Context, q sq.SelectBuilder) ([]domain.Booking, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	var ids []int64
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Booking{}, nil
	}
	var out []domain.Booking
	err = r.preloaded(ctx).
		Where("bookings.id IN ?", ids).
		Order("bookings.date, bookings.time, bookings.id").
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User.Address.Region").
		Preload("User.Address.District").
		Preload("User.Address.Mahalla").
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("services.id") }).
		Preload("Services.User.Address.Region").
		Preload("Services.User.Address.District").
		Preload("Services.User.Address.Mahalla")
}
