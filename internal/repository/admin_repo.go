package repository

import (
	"context"
	"strings"

	"aura/internal/domain"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// Statistics is the staff dashboard summary.
type Statistics struct {
	TotalUsers      int64 `json:"total_users"`
	TotalMasters    int64 `json:"total_masters"`
	TotalServices   int64 `json:"total_services"`
	TotalBookings   int64 `json:"total_bookings"`
	PendingBookings int64 `json:"pending_bookings"`
	BookingsOnDate  int64 `json:"bookings_today"`
}

// UserFilter narrows ListUsers. Zero values mean "no filter".
type UserFilter struct {
	Search   string
	IsMaster *bool
	Limit    int
	Offset   int
}

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Statistics counts platform rows; date selects the "today" bucket ("YYYY-MM-DD").
func (r *AdminRepository) Statistics(ctx context.Context, date string) (*Statistics, error) {
	db := r.db.WithContext(ctx)
	var s Statistics
	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&s.TotalUsers, db.Model(&domain.User{})},
		{&s.TotalMasters, db.Model(&domain.User{}).Where("is_master = ?", true)},
		{&s.TotalServices, db.Model(&domain.Service{})},
		{&s.TotalBookings, db.Model(&domain.Booking{})},
		{&s.PendingBookings, db.Model(&domain.Booking{}).Where("status = ?", domain.BookingPending)},
		{&s.BookingsOnDate, db.Model(&domain.Booking{}).Where("date = ?", date)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// ListUsers pages users by id and returns the unpaged total.
func (r *AdminRepository) ListUsers(ctx context.Context, f UserFilter) ([]domain.User, int64, error) {
	conds := sq.And{}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := containsPattern(s)
		conds = append(conds, sq.Or{
			sq.Expr("LOWER(username) LIKE ? ESCAPE '\\'", like),
			sq.Expr("LOWER(email) LIKE ? ESCAPE '\\'", like),
			sq.Expr("LOWER(full_name) LIKE ? ESCAPE '\\'", like),
		})
	}
	if f.IsMaster != nil {
		conds = append(conds, sq.Eq{"is_master": *f.IsMaster})
	}
	where, args, err := conds.ToSql()
	if err != nil {
		return nil, 0, err
	}

	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&domain.User{})
		if where != "" {
			q = q.Where(where, args...)
		}
		return q
	}
	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.User
	err = withAddress(scoped()).
		Order("id").Limit(f.Limit).Offset(f.Offset).
		Find(&out).Error
	return out, total, err
}

// SetFlags updates is_active and is_staff for one user.
func (r *AdminRepository) SetFlags(ctx context.Context, userID int64, active, staff *bool) error {
	updates := map[string]any{}
	if active != nil {
		updates["is_active"] = *active
	}
	if staff != nil {
		updates["is_staff"] = *staff
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
