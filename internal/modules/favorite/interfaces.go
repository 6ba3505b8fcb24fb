package favorite

import (
	"context"

	"aura/internal/domain"
)

type Repository interface {
	LikeService(ctx context.Context, userID, serviceID int64) (*domain.Favorite, bool, error)
	UnlikeService(ctx context.Context, userID, serviceID int64) error
	ListServiceLikes(ctx context.Context, userID int64) ([]domain.Favorite, error)
	ServiceLikeCount(ctx context.Context, serviceID int64) (int64, error)

	SaveService(ctx context.Context, userID, serviceID int64) (*domain.Saved, bool, error)
	UnsaveService(ctx context.Context, userID, serviceID int64) error
	ListSavedServices(ctx context.Context, userID int64) ([]domain.Saved, error)

	LikeShop(ctx context.Context, userID, shopID int64) (*domain.ShopFavorite, bool, error)
	UnlikeShop(ctx context.Context, userID, shopID int64) error
	ListShopLikes(ctx context.Context, userID int64) ([]domain.ShopFavorite, error)
	ShopLikeCount(ctx context.Context, shopID int64) (int64, error)

	SaveShop(ctx context.Context, userID, shopID int64) (*domain.ShopSaved, bool, error)
	UnsaveShop(ctx context.Context, userID, shopID int64) error
	ListSavedShops(ctx context.Context, userID int64) ([]domain.ShopSaved, error)
}

// Targets checks that the liked or saved item exists.
type Targets interface {
	ServiceExists(ctx context.Context, id int64) (bool, error)
	ShopExists(ctx context.Context, id int64) (bool, error)
}
