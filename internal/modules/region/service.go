package region

import (
	"context"

	"aura/internal/domain"
)

type Repository interface {
	ListRegions(ctx context.Context) ([]domain.Region, error)
	ListDistricts(ctx context.Context, regionID *int64) ([]domain.District, error)
	ListMahallas(ctx context.Context, districtID *int64) ([]domain.Mahalla, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Regions(ctx context.Context) ([]domain.Region, error) {
	return s.repo.ListRegions(ctx)
}

// Districts lists all districts, or those of one region when regionID is set.
func (s *Service) Districts(ctx context.Context, regionID *int64) ([]domain.District, error) {
	return s.repo.ListDistricts(ctx, regionID)
}

func (s *Service) Mahallas(ctx context.Context, districtID *int64) ([]domain.Mahalla, error) {
	return s.repo.ListMahallas(ctx, districtID)
}
