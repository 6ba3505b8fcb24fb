package favorite

import (
	"context"

	"aura/internal/domain"
)

type Service struct {
	repo    Repository
	targets Targets
}

func NewService(repo Repository, targets Targets) *Service {
	return &Service{repo: repo, targets: targets}
}

// ToggleServiceLike removes the like when like is false (a no-op if there is
// none) and otherwise gets or creates it.
func (s *Service) ToggleServiceLike(ctx context.Context, userID, serviceID int64, like bool) (*LikeResult, error) {
	if err := s.requireService(ctx, serviceID); err != nil {
		return nil, err
	}
	if !like {
		if err := s.repo.UnlikeService(ctx, userID, serviceID); err != nil {
			return nil, err
		}
		return &LikeResult{ID: userID, TargetID: serviceID}, nil
	}

	row, _, err := s.repo.LikeService(ctx, userID, serviceID)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.ServiceLikeCount(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{ID: row.ID, TargetID: serviceID, Like: true, LikesCount: count}, nil
}

// ToggleServiceSaved returns a nil row when the bookmark was removed.
func (s *Service) ToggleServiceSaved(ctx context.Context, userID, serviceID int64, saved bool) (*domain.Saved, bool, error) {
	if err := s.requireService(ctx, serviceID); err != nil {
		return nil, false, err
	}
	if !saved {
		return nil, false, s.repo.UnsaveService(ctx, userID, serviceID)
	}
	return s.repo.SaveService(ctx, userID, serviceID)
}

func (s *Service) ToggleShopLike(ctx context.Context, userID, shopID int64, like bool) (*LikeResult, error) {
	if err := s.requireShop(ctx, shopID); err != nil {
		return nil, err
	}
	if !like {
		if err := s.repo.UnlikeShop(ctx, userID, shopID); err != nil {
			return nil, err
		}
		return &LikeResult{ID: userID, TargetID: shopID}, nil
	}

	row, _, err := s.repo.LikeShop(ctx, userID, shopID)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.ShopLikeCount(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{ID: row.ID, TargetID: shopID, Like: true, LikesCount: count}, nil
}

func (s *Service) ToggleShopSaved(ctx context.Context, userID, shopID int64, saved bool) (*domain.ShopSaved, bool, error) {
	if err := s.requireShop(ctx, shopID); err != nil {
		return nil, false, err
	}
	if !saved {
		return nil, false, s.repo.UnsaveShop(ctx, userID, shopID)
	}
	return s.repo.SaveShop(ctx, userID, shopID)
}

func (s *Service) ServiceLikes(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	return s.repo.ListServiceLikes(ctx, userID)
}

func (s *Service) SavedServices(ctx context.Context, userID int64) ([]domain.Saved, error) {
	return s.repo.ListSavedServices(ctx, userID)
}

func (s *Service) ShopLikes(ctx context.Context, userID int64) ([]domain.ShopFavorite, error) {
	return s.repo.ListShopLikes(ctx, userID)
}

func (s *Service) SavedShops(ctx context.Context, userID int64) ([]domain.ShopSaved, error) {
	return s.repo.ListSavedShops(ctx, userID)
}

func (s *Service) requireService(ctx context.Context, id int64) error {
	ok, err := s.targets.ServiceExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrServiceNotFound
	}
	return nil
}

func (s *Service) requireShop(ctx context.Context, id int64) error {
	ok, err := s.targets.ShopExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrShopNotFound
	}
	return nil
}
