package repository

import (
	"context"

	"aura/internal/domain"

	"gorm.io/gorm"
)

type RegionRepository struct {
	db *gorm.DB
}

func NewRegionRepository(db *gorm.DB) *RegionRepository {
	return &RegionRepository{db: db}
}

func (r *RegionRepository) ListRegions(ctx context.Context) ([]domain.Region, error) {
	var out []domain.Region
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

// ListDistricts filters by region when regionID is non-nil.
func (r *RegionRepository) ListDistricts(ctx context.Context, regionID *int64) ([]domain.District, error) {
	q := r.db.WithContext(ctx).Order("id")
	if regionID != nil {
		q = q.Where("region_id = ?", *regionID)
	}
	var out []domain.District
	err := q.Find(&out).Error
	return out, err
}

// ListMahallas filters by district when districtID is non-nil.
func (r *RegionRepository) ListMahallas(ctx context.Context, districtID *int64) ([]domain.Mahalla, error) {
	q := r.db.WithContext(ctx).Order("id")
	if districtID != nil {
		q = q.Where("district_id = ?", *districtID)
	}
	var out []domain.Mahalla
	err := q.Find(&out).Error
	return out, err
}

func (r *RegionRepository) GetRegion(ctx context.Context, id int64) (*domain.Region, error) {
	var v domain.Region
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r *RegionRepository) GetDistrict(ctx context.Context, id int64) (*domain.District, error) {
	var v domain.District
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r *RegionRepository) GetMahalla(ctx context.Context, id int64) (*domain.Mahalla, error) {
	var v domain.Mahalla
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r *RegionRepository) CreateRegion(ctx context.Context, v *domain.Region) error {
	return translate(r.db.WithContext(ctx).Create(v).Error)
}

func (r *RegionRepository) CreateDistrict(ctx context.Context, v *domain.District) error {
	return translate(r.db.WithContext(ctx).Create(v).Error)
}

func (r *RegionRepository) CreateMahalla(ctx context.Context, v *domain.Mahalla) error {
	return translate(r.db.WithContext(ctx).Create(v).Error)
}
