package repository

import (
	"context"
	"strings"

	"aura/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) DB() *gorm.DB { return r.db }

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Email = normalizeEmail(u.Email)
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := withAddress(r.db.WithContext(ctx)).First(&u, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", normalizeEmail(email)).Count(&n).Error
	return n > 0, err
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", strings.TrimSpace(username)).Count(&n).Error
	return n > 0, err
}

// Update writes the profile columns. Password and flags have their own methods.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Model(&domain.User{ID: u.ID}).
		Select("full_name", "phone", "bio", "gender", "telegram", "instagram", "facebook", "image", "address_id").
		Updates(u).Error
	return translate(err)
}

func (r *UserRepository) SetPassword(ctx context.Context, userID int64, hash string) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", userID).Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AttachAddress creates the address and links it to the user in one transaction.
func (r *UserRepository) AttachAddress(ctx context.Context, userID int64, addr *domain.Address, phone *string, gender domain.Gender) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(addr).Error; err != nil {
			return err
		}
		updates := map[string]any{"address_id": addr.ID}
		if phone != nil {
			updates["phone"] = *phone
		}
		if gender != "" {
			updates["gender"] = gender
		}
		return translate(tx.Model(&domain.User{}).Where("id = ?", userID).Updates(updates).Error)
	})
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func withAddress(db *gorm.DB) *gorm.DB {
	return db.Preload("Address.Region").Preload("Address.District").Preload("Address.Mahalla")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
