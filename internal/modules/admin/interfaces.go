package admin

import (
	"context"
	"mime/multipart"

	"aura/internal/domain"
	"aura/internal/repository"
)

type RegionRepository interface {
	GetRegion(ctx context.Context, id int64) (*domain.Region, error)
	GetDistrict(ctx context.Context, id int64) (*domain.District, error)
	CreateRegion(ctx context.Context, v *domain.Region) error
	CreateDistrict(ctx context.Context, v *domain.District) error
	CreateMahalla(ctx context.Context, v *domain.Mahalla) error
}

type ContentRepository interface {
	CreateCategory(ctx context.Context, c *domain.Category) error
	CreateShop(ctx context.Context, s *domain.Shop) error
	CreateBlog(ctx context.Context, b *domain.Blog) error
	CreateFaq(ctx context.Context, f *domain.Faq) error
	CreateAbout(ctx context.Context, a *domain.About) error
}

type ScheduleRepository interface {
	CreateDay(ctx context.Context, d *domain.WorkingDay) error
}

type UserRepository interface {
	Statistics(ctx context.Context, date string) (*repository.Statistics, error)
	ListUsers(ctx context.Context, f repository.UserFilter) ([]domain.User, int64, error)
	SetFlags(ctx context.Context, userID int64, active, staff *bool) error
}

type ImageStorage interface {
	Save(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error)
}
