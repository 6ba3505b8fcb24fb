package auth

import (
	"context"
	"mime/multipart"
	"time"

	"aura/internal/domain"
)

// UserRepository is the subset of user storage the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
	SetPassword(ctx context.Context, userID int64, hash string) error
	AttachAddress(ctx context.Context, userID int64, addr *domain.Address, phone *string, gender domain.Gender) error
	Delete(ctx context.Context, id int64) error
}

// RefreshTokenRepository stores hashed refresh tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error)
	Rotate(ctx context.Context, currentID int64, next *domain.RefreshToken) error
	RevokeFamily(ctx context.Context, familyID string) error
	RevokeByUser(ctx context.Context, userID int64) error
}

// RegionReader resolves the parts of an address.
type RegionReader interface {
	GetRegion(ctx context.Context, id int64) (*domain.Region, error)
	GetDistrict(ctx context.Context, id int64) (*domain.District, error)
	GetMahalla(ctx context.Context, id int64) (*domain.Mahalla, error)
}

type jwtService interface {
	GenerateToken(userID int64, role string, staff bool) (string, error)
	TTL() time.Duration
}

type ImageStorage interface {
	Save(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error)
}
