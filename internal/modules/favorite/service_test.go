package favorite

import (
	"context"
	"testing"

	"aura/internal/database/dbtest"
	"aura/internal/domain"
	"aura/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	svc     *Service
	user    *domain.User
	service *domain.Service
	shop    *domain.Shop
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	f := &fixture{db: db}

	master := &domain.User{FullName: "Malika", Username: "malika", Email: "malika@x.io", IsMaster: true, PasswordHash: "x"}
	f.user = &domain.User{FullName: "Aziz", Username: "aziz", Email: "aziz@x.io", PasswordHash: "x"}
	require.NoError(t, db.Create(master).Error)
	require.NoError(t, db.Create(f.user).Error)
	cat := &domain.Category{Name: "Hair"}
	require.NoError(t, db.Create(cat).Error)
	f.service = &domain.Service{Name: "Haircut", Duration: "01:00", CategoryID: cat.ID, UserID: master.ID}
	require.NoError(t, db.Create(f.service).Error)
	f.shop = &domain.Shop{Name: "Shampoo", Price: 10}
	require.NoError(t, db.Create(f.shop).Error)

	f.svc = NewService(repository.NewFavoriteRepository(db), repository.NewCatalogRepository(db))
	return f
}

func TestService_ToggleServiceLike(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	// unlike without a row is a no-op that still reports the deletion
	res, err := f.svc.ToggleServiceLike(ctx, f.user.ID, f.service.ID, false)
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, res.ID)
	assert.False(t, res.Like)

	first, err := f.svc.ToggleServiceLike(ctx, f.user.ID, f.service.ID, true)
	require.NoError(t, err)
	second, err := f.svc.ToggleServiceLike(ctx, f.user.ID, f.service.ID, true)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(1), second.LikesCount)

	var n int64
	require.NoError(t, f.db.Model(&domain.Favorite{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	_, err = f.svc.ToggleServiceLike(ctx, f.user.ID, f.service.ID, false)
	require.NoError(t, err)
	likes, err := f.svc.ServiceLikes(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)
}

func TestService_ToggleSaved_CreatedFlag(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	row, created, err := f.svc.ToggleServiceSaved(ctx, f.user.ID, f.service.ID, true)
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, row.Saved)

	_, created, err = f.svc.ToggleServiceSaved(ctx, f.user.ID, f.service.ID, true)
	require.NoError(t, err)
	assert.False(t, created)

	row, _, err = f.svc.ToggleServiceSaved(ctx, f.user.ID, f.service.ID, false)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestService_MissingTargets(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.ToggleShopLike(ctx, f.user.ID, 999, true)
	assert.ErrorIs(t, err, ErrShopNotFound)
	_, _, err = f.svc.ToggleShopSaved(ctx, f.user.ID, 999, true)
	assert.ErrorIs(t, err, ErrShopNotFound)
	_, err = f.svc.ToggleServiceLike(ctx, f.user.ID, 999, true)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_ToggleShopLike(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	res, err := f.svc.ToggleShopLike(ctx, f.user.ID, f.shop.ID, true)
	require.NoError(t, err)
	assert.True(t, res.Like)
	assert.Equal(t, int64(1), res.LikesCount)

	likes, err := f.svc.ShopLikes(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, f.shop.ID, likes[0].ShopID)
}
