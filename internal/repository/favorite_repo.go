package repository

import (
	"context"
	"errors"

	"aura/internal/domain"

	"gorm.io/gorm"
)

type reaction interface {
	domain.Favorite | domain.Saved | domain.ShopFavorite | domain.ShopSaved
}

// reactionColumns names the target and flag columns of a reaction table.
type reactionColumns struct {
	target string
	flag   string
}

var (
	favoriteCols     = reactionColumns{target: "service_id", flag: "is_like"}
	savedCols        = reactionColumns{target: "service_id", flag: "saved"}
	shopFavoriteCols = reactionColumns{target: "shop_id", flag: "is_like"}
	shopSavedCols    = reactionColumns{target: "shop_id", flag: "saved"}
)

// ServiceStats is the per-service reaction summary shown in listings.
type ServiceStats struct {
	FavoritesCount int64
	IsLike         bool
	IsSaved        bool
}

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) LikeService(ctx context.Context, userID, serviceID int64) (*domain.Favorite, bool, error) {
	return setFlag[domain.Favorite](ctx, r.db, favoriteCols, userID, serviceID)
}

func (r *FavoriteRepository) UnlikeService(ctx context.Context, userID, serviceID int64) error {
	return removeReaction[domain.Favorite](ctx, r.db, favoriteCols, userID, serviceID)
}

func (r *FavoriteRepository) ListServiceLikes(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	return listReactions[domain.Favorite](ctx, r.db, userID)
}

func (r *FavoriteRepository) ServiceLikeCount(ctx context.Context, serviceID int64) (int64, error) {
	return countReactions[domain.Favorite](ctx, r.db, favoriteCols, serviceID)
}

func (r *FavoriteRepository) SaveService(ctx context.Context, userID, serviceID int64) (*domain.Saved, bool, error) {
	return setFlag[domain.Saved](ctx, r.db, savedCols, userID, serviceID)
}

func (r *FavoriteRepository) UnsaveService(ctx context.Context, userID, serviceID int64) error {
	return removeReaction[domain.Saved](ctx, r.db, savedCols, userID, serviceID)
}

func (r *FavoriteRepository) ListSavedServices(ctx context.Context, userID int64) ([]domain.Saved, error) {
	return listReactions[domain.Saved](ctx, r.db, userID)
}

func (r *FavoriteRepository) LikeShop(ctx context.Context, userID, shopID int64) (*domain.ShopFavorite, bool, error) {
	return setFlag[domain.ShopFavorite](ctx, r.db, shopFavoriteCols, userID, shopID)
}

func (r *FavoriteRepository) UnlikeShop(ctx context.Context, userID, shopID int64) error {
	return removeReaction[domain.ShopFavorite](ctx, r.db, shopFavoriteCols, userID, shopID)
}

func (r *FavoriteRepository) ListShopLikes(ctx context.Context, userID int64) ([]domain.ShopFavorite, error) {
	return listReactions[domain.ShopFavorite](ctx, r.db, userID)
}

func (r *FavoriteRepository) ShopLikeCount(ctx context.Context, shopID int64) (int64, error) {
	return countReactions[domain.ShopFavorite](ctx, r.db, shopFavoriteCols, shopID)
}

func (r *FavoriteRepository) SaveShop(ctx context.Context, userID, shopID int64) (*domain.ShopSaved, bool, error) {
	return setFlag[domain.ShopSaved](ctx, r.db, shopSavedCols, userID, shopID)
}

func (r *FavoriteRepository) UnsaveShop(ctx context.Context, userID, shopID int64) error {
	return removeReaction[domain.ShopSaved](ctx, r.db, shopSavedCols, userID, shopID)
}

func (r *FavoriteRepository) ListSavedShops(ctx context.Context, userID int64) ([]domain.ShopSaved, error) {
	return listReactions[domain.ShopSaved](ctx, r.db, userID)
}

// ServiceStats summarises reactions for serviceIDs. viewerID 0 means anonymous.
func (r *FavoriteRepository) ServiceStats(ctx context.Context, viewerID int64, serviceIDs []int64) (map[int64]ServiceStats, error) {
	out := make(map[int64]ServiceStats, len(serviceIDs))
	if len(serviceIDs) == 0 {
		return out, nil
	}

	type countRow struct {
		TargetID int64
		Total    int64
	}
	var counts []countRow
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Select("service_id AS target_id, COUNT(*) AS total").
		Where("service_id IN ?", serviceIDs).
		Group("service_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		st := out[c.TargetID]
		st.FavoritesCount = c.Total
		out[c.TargetID] = st
	}

	if viewerID == 0 {
		return out, nil
	}

	var liked, saved []int64
	if err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ? AND service_id IN ?", viewerID, serviceIDs).
		Pluck("service_id", &liked).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&domain.Saved{}).
		Where("user_id = ? AND service_id IN ?", viewerID, serviceIDs).
		Pluck("service_id", &saved).Error; err != nil {
		return nil, err
	}
	for _, id := range liked {
		st := out[id]
		st.IsLike = true
		out[id] = st
	}
	for _, id := range saved {
		st := out[id]
		st.IsSaved = true
		out[id] = st
	}
	return out, nil
}

// ShopLikeCounts returns like totals keyed by shop id.
func (r *FavoriteRepository) ShopLikeCounts(ctx context.Context, shopIDs []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(shopIDs))
	if len(shopIDs) == 0 {
		return out, nil
	}
	type countRow struct {
		TargetID int64
		Total    int64
	}
	var counts []countRow
	err := r.db.WithContext(ctx).Model(&domain.ShopFavorite{}).
		Select("shop_id AS target_id, COUNT(*) AS total").
		Where("shop_id IN ?", shopIDs).
		Group("shop_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		out[c.TargetID] = c.Total
	}
	return out, nil
}

// setFlag gets or creates the (user, target) row and sets its flag to true.
// The bool result reports whether the row was created.
func setFlag[T reaction](ctx context.Context, db *gorm.DB, cols reactionColumns, userID, targetID int64) (*T, bool, error) {
	cond := map[string]any{"user_id": userID, cols.target: targetID}
	var row T

	err := db.WithContext(ctx).Where(cond).First(&row).Error
	switch {
	case err == nil:
		if err := db.WithContext(ctx).Model(&row).Update(cols.flag, true).Error; err != nil {
			return nil, false, err
		}
		return &row, false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, err
	}

	err = db.WithContext(ctx).Where(cond).Attrs(map[string]any{cols.flag: true}).FirstOrCreate(&row).Error
	if err != nil {
		if errors.Is(translate(err), ErrDuplicate) {
			// lost a race with a concurrent toggle; the row exists now
			var existing T
			if err := db.WithContext(ctx).Where(cond).First(&existing).Error; err != nil {
				return nil, false, err
			}
			return &existing, false, nil
		}
		return nil, false, err
	}
	return &row, true, nil
}

func removeReaction[T reaction](ctx context.Context, db *gorm.DB, cols reactionColumns, userID, targetID int64) error {
	return db.WithContext(ctx).
		Where(map[string]any{"user_id": userID, cols.target: targetID}).
		Delete(new(T)).Error
}

func listReactions[T reaction](ctx context.Context, db *gorm.DB, userID int64) ([]T, error) {
	var out []T
	err := db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&out).Error
	return out, err
}

func countReactions[T reaction](ctx context.Context, db *gorm.DB, cols reactionColumns, targetID int64) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(new(T)).Where(cols.target+" = ?", targetID).Count(&n).Error
	return n, err
}
