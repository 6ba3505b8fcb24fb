package repository

import (
	"context"
	"time"

	"aura/internal/domain"

	"gorm.io/gorm"
)

// RefreshTokenRepository provides DB access for refresh tokens.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return translate(r.db.WithContext(ctx).Create(t).Error)
}

func (r *RefreshTokenRepository) GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&t).Error
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// Rotate revokes current and stores next as its replacement atomically.
// It returns ErrNotFound when current was already revoked by a concurrent refresh.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, currentID int64, next *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(next).Error; err != nil {
			return translate(err)
		}
		res := tx.Model(&domain.RefreshToken{}).
			Where("id = ? AND revoked_at IS NULL", currentID).
			Updates(map[string]any{"revoked_at": time.Now().UTC(), "replaced_by_id": next.ID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *RefreshTokenRepository) RevokeFamily(ctx context.Context, familyID string) error {
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("family_id = ? AND revoked_at IS NULL", familyID).
		Update("revoked_at", time.Now().UTC()).Error
}

func (r *RefreshTokenRepository) RevokeByUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now().UTC()).Error
}

// DeleteStale removes live tokens that expired before cutoff and revoked
// tokens whose revocation is older than retention. Revoked rows are kept for
// the window so a replayed rotated token is still recognised as reuse.
func (r *RefreshTokenRepository) DeleteStale(ctx context.Context, cutoff time.Time, retention time.Duration) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("(revoked_at IS NULL AND expires_at < ?) OR (revoked_at IS NOT NULL AND revoked_at < ?)", cutoff, cutoff.Add(-retention)).
		Delete(&domain.RefreshToken{})
	return res.RowsAffected, res.Error
}
