package catalog

import (
	"context"
	"mime/multipart"

	"aura/internal/domain"
	"aura/internal/repository"
)

type Repository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)

	ListServices(ctx context.Context, f repository.ServiceFilter) ([]domain.Service, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	CreateService(ctx context.Context, s *domain.Service) error
	UpdateService(ctx context.Context, s *domain.Service) error
	DeleteService(ctx context.Context, id, userID int64) error

	ListShops(ctx context.Context) ([]domain.Shop, error)
	IncrementShopView(ctx context.Context, id int64) (*domain.Shop, error)
	ListBlogs(ctx context.Context) ([]domain.Blog, error)
	IncrementBlogView(ctx context.Context, id int64) (*domain.Blog, error)
	ListFaq(ctx context.Context) ([]domain.Faq, error)
	ListAbout(ctx context.Context) ([]domain.About, error)
}

// ReactionStats supplies like/saved aggregates for listings.
type ReactionStats interface {
	ServiceStats(ctx context.Context, viewerID int64, serviceIDs []int64) (map[int64]repository.ServiceStats, error)
	ShopLikeCounts(ctx context.Context, shopIDs []int64) (map[int64]int64, error)
}

type ImageStorage interface {
	Save(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error)
}
