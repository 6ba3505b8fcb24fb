package catalog

import (
	"context"
	"errors"
	"strings"

	"aura/internal/domain"
	"aura/internal/pkg/timeutil"
	"aura/internal/repository"
)

type Service struct {
	repo    Repository
	stats   ReactionStats
	storage ImageStorage
}

func NewService(repo Repository, stats ReactionStats, storage ImageStorage) *Service {
	return &Service{repo: repo, stats: stats, storage: storage}
}

/* ---------- CATEGORIES ---------- */

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

/* ---------- SERVICES ---------- */

// Services lists services with reaction aggregates as seen by viewerID (0 = anonymous).
func (s *Service) Services(ctx context.Context, viewerID int64, q ServiceQuery) ([]ServiceResponse, error) {
	rows, err := s.repo.ListServices(ctx, repository.ServiceFilter{
		UserID:     q.UserID,
		CategoryID: q.CategoryID,
		Search:     q.Search,
	})
	if err != nil {
		return nil, err
	}
	return s.withStats(ctx, viewerID, rows)
}

// Search matches the service name only.
func (s *Service) Search(ctx context.Context, viewerID int64, name string) ([]ServiceResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Message: "The 'name' query parameter is required."}
	}
	rows, err := s.repo.ListServices(ctx, repository.ServiceFilter{Name: name})
	if err != nil {
		return nil, err
	}
	return s.withStats(ctx, viewerID, rows)
}

func (s *Service) ServiceDetail(ctx context.Context, viewerID, id int64) (*ServiceResponse, error) {
	svc, err := s.repo.GetService(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	out, err := s.withStats(ctx, viewerID, []domain.Service{*svc})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *Service) CreateService(ctx context.Context, masterID int64, form ServiceForm) (*ServiceResponse, error) {
	svc := &domain.Service{UserID: masterID}
	if err := s.apply(ctx, svc, form); err != nil {
		return nil, err
	}
	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	return s.ServiceDetail(ctx, masterID, svc.ID)
}

// UpdateService edits a service owned by masterID. Other services read as missing.
func (s *Service) UpdateService(ctx context.Context, masterID, id int64, form ServiceForm) (*ServiceResponse, error) {
	svc, err := s.repo.GetService(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if svc.UserID != masterID {
		return nil, ErrServiceNotFound
	}
	if err := s.apply(ctx, svc, form); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateService(ctx, svc); err != nil {
		return nil, err
	}
	return s.ServiceDetail(ctx, masterID, id)
}

func (s *Service) DeleteService(ctx context.Context, masterID, id int64) error {
	err := s.repo.DeleteService(ctx, id, masterID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrServiceNotFound
	}
	return err
}

func (s *Service) apply(ctx context.Context, svc *domain.Service, form ServiceForm) error {
	d, err := timeutil.ParseDuration(form.Duration)
	if err != nil {
		return &ValidationError{Message: "Invalid duration format. Expected HH:MM."}
	}
	if _, err := s.repo.GetCategory(ctx, form.Category); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ValidationError{Message: "Category not found"}
		}
		return err
	}

	svc.Name = strings.TrimSpace(form.Name)
	svc.Price = form.Price
	svc.Duration = timeutil.FormatClock(d)
	svc.Description = form.Description
	svc.CategoryID = form.Category
	svc.Category = nil

	if form.Image != nil {
		url, err := s.storage.Save(ctx, "services", form.Image)
		if err != nil {
			return &ValidationError{Message: "Invalid image: " + err.Error()}
		}
		svc.Image = url
	}
	return nil
}

func (s *Service) withStats(ctx context.Context, viewerID int64, rows []domain.Service) ([]ServiceResponse, error) {
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	stats, err := s.stats.ServiceStats(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}
	out := make([]ServiceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toServiceResponse(r, stats[r.ID]))
	}
	return out, nil
}

/* ---------- SHOPS & CONTENT ---------- */

func (s *Service) Shops(ctx context.Context) ([]ShopResponse, error) {
	shops, err := s.repo.ListShops(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(shops))
	for _, sh := range shops {
		ids = append(ids, sh.ID)
	}
	counts, err := s.stats.ShopLikeCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]ShopResponse, 0, len(shops))
	for _, sh := range shops {
		out = append(out, ShopResponse{Shop: sh, LikeCount: counts[sh.ID]})
	}
	return out, nil
}

// ShopDetail counts one view per call.
func (s *Service) ShopDetail(ctx context.Context, id int64) (*ShopResponse, error) {
	shop, err := s.repo.IncrementShopView(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	counts, err := s.stats.ShopLikeCounts(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	return &ShopResponse{Shop: *shop, LikeCount: counts[id]}, nil
}

func (s *Service) Blogs(ctx context.Context) ([]domain.Blog, error) {
	return s.repo.ListBlogs(ctx)
}

// BlogDetail counts one view per call.
func (s *Service) BlogDetail(ctx context.Context, id int64) (*domain.Blog, error) {
	blog, err := s.repo.IncrementBlogView(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return blog, nil
}

func (s *Service) Faq(ctx context.Context) ([]domain.Faq, error) {
	return s.repo.ListFaq(ctx)
}

func (s *Service) About(ctx context.Context) ([]domain.About, error) {
	return s.repo.ListAbout(ctx)
}
