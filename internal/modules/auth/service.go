package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"aura/internal/domain"
	"aura/internal/pkg/codestore"
	"aura/internal/pkg/logger"
	"aura/internal/pkg/mailer"
	"aura/internal/pkg/metrics"
	"aura/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	activationPrefix = "activation:"
	resetPrefix      = "reset:"
)

type Config struct {
	RefreshTTL         time.Duration
	ActivationTTL      time.Duration
	ResetTTL           time.Duration
	RefreshTokenPepper string
	CodePepper         string
}

// Service contains all business logic for accounts and sessions
type Service struct {
	users   UserRepository
	tokens  RefreshTokenRepository
	regions RegionReader
	jwt     jwtService
	codes   codestore.Store
	mailer  mailer.Mailer
	images  ImageStorage
	metrics *metrics.Metrics
	log     *logger.Logger
	cfg     Config
	now     func() time.Time
}

type LoginResult struct {
	User   *domain.User
	Tokens TokenPair
}

// pendingRegistration is what step one leaves in the code store.
type pendingRegistration struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	IsMaster     bool   `json:"is_master"`
	CodeHash     string `json:"code_hash"`
}

func NewService(
	users UserRepository,
	tokens RefreshTokenRepository,
	regions RegionReader,
	jwt jwtService,
	codes codestore.Store,
	mail mailer.Mailer,
	images ImageStorage,
	m *metrics.Metrics,
	log *logger.Logger,
	cfg Config,
) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		users:   users,
		tokens:  tokens,
		regions: regions,
		jwt:     jwt,
		codes:   codes,
		mailer:  mail,
		images:  images,
		metrics: m,
		log:     log,
		cfg:     cfg,
		now:     time.Now,
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Register stores a pending account and e-mails the activation code.
// No user row exists until Activate succeeds.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := normalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}
	exists, err = s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	code, err := generateCode()
	if err != nil {
		return nil, err
	}

	pending := pendingRegistration{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		IsMaster:     req.IsMaster,
		CodeHash:     s.hashCode(code),
	}
	if err := codestore.PutJSON(ctx, s.codes, activationPrefix+email, pending, s.cfg.ActivationTTL); err != nil {
		return nil, fmt.Errorf("store activation code: %w", err)
	}

	msg, err := mailer.ActivationMessage(email, pending.FullName, code, int(s.cfg.ActivationTTL/time.Minute))
	if err != nil {
		return nil, err
	}
	err = s.mailer.Send(ctx, msg)
	s.metrics.Email("activation", err)
	if err != nil {
		return nil, fmt.Errorf("send activation email: %w", err)
	}

	return &RegisterResponse{
		FullName: pending.FullName,
		Email:    pending.Email,
		Username: pending.Username,
		IsMaster: pending.IsMaster,
	}, nil
}

// Activate turns a pending registration into an active user and signs it in.
func (s *Service) Activate(ctx context.Context, email, code string) (*LoginResult, error) {
	email = normalizeEmail(email)
	key := activationPrefix + email

	var pending pendingRegistration
	if err := codestore.GetJSON(ctx, s.codes, key, &pending); err != nil {
		if errors.Is(err, codestore.ErrNotFound) {
			return nil, ErrInvalidActivation
		}
		return nil, err
	}
	if !s.codeMatches(pending.CodeHash, code) {
		return nil, ErrInvalidActivation
	}

	user := &domain.User{
		FullName:     pending.FullName,
		Email:        pending.Email,
		Username:     pending.Username,
		PasswordHash: pending.PasswordHash,
		IsMaster:     pending.IsMaster,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, s.duplicateUser(ctx, user.Email)
		}
		return nil, err
	}
	if err := s.codes.Delete(ctx, key); err != nil {
		s.log.Warn("activation code not deleted", "email", email, "error", err)
	}

	pair, err := s.issue(ctx, user, uuid.NewString())
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Tokens: *pair}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	pair, err := s.issue(ctx, user, uuid.NewString())
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return &LoginResult{User: user, Tokens: *pair}, nil
}

// Refresh rotates the presented refresh token. Presenting a token that was
// already rotated revokes every token issued from the same login.
func (s *Service) Refresh(ctx context.Context, raw string) (*TokenPair, error) {
	current, err := s.tokens.GetByHash(ctx, hashTokenWithPepper(raw, s.cfg.RefreshTokenPepper))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	now := s.now()
	if current.IsRevoked() {
		if err := s.tokens.RevokeFamily(ctx, current.FamilyID); err != nil {
			return nil, err
		}
		s.log.Warn("refresh token reuse", "user_id", current.UserID, "family_id", current.FamilyID)
		return nil, ErrRefreshTokenReused
	}
	if current.IsExpired(now) {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, current.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	access, err := s.jwt.GenerateToken(user.ID, string(user.Role()), user.IsStaff)
	if err != nil {
		return nil, err
	}
	nextRaw, nextHash, err := generateOpaqueRefreshToken(s.cfg.RefreshTokenPepper)
	if err != nil {
		return nil, err
	}
	next := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: nextHash,
		FamilyID:  current.FamilyID,
		ExpiresAt: now.Add(s.cfg.RefreshTTL),
	}
	if err := s.tokens.Rotate(ctx, current.ID, next); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = s.tokens.RevokeFamily(ctx, current.FamilyID)
			return nil, ErrRefreshTokenReused
		}
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: nextRaw, ExpiresIn: int64(s.jwt.TTL().Seconds())}, nil
}

// Logout revokes the login the refresh token belongs to. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, raw string) error {
	t, err := s.tokens.GetByHash(ctx, hashTokenWithPepper(raw, s.cfg.RefreshTokenPepper))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.tokens.RevokeFamily(ctx, t.FamilyID)
}

// RequestPasswordReset e-mails a reset code. The password is left untouched
// until the code is confirmed.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := s.codes.Put(ctx, resetPrefix+email, []byte(s.hashCode(code)), s.cfg.ResetTTL); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}

	msg, err := mailer.PasswordResetMessage(user.Email, user.FullName, code)
	if err != nil {
		return err
	}
	err = s.mailer.Send(ctx, msg)
	s.metrics.Email("password_reset", err)
	if err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

func (s *Service) ConfirmPasswordReset(ctx context.Context, req ResetPasswordConfirmRequest) error {
	email := normalizeEmail(req.Email)
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	key := resetPrefix + email
	stored, err := s.codes.Get(ctx, key)
	if err != nil {
		if errors.Is(err, codestore.ErrNotFound) {
			return ErrInvalidResetCode
		}
		return err
	}
	if !s.codeMatches(string(stored), string(req.ActivationCode)) {
		return ErrInvalidResetCode
	}
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.SetPassword(ctx, user.ID, hash); err != nil {
		return err
	}
	if err := s.codes.Delete(ctx, key); err != nil {
		s.log.Warn("reset code not deleted", "email", email, "error", err)
	}
	return s.tokens.RevokeByUser(ctx, user.ID)
}

func (s *Service) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// CompleteProfile is the second registration step: phone, gender and address.
func (s *Service) CompleteProfile(ctx context.Context, userID int64, req CompleteProfileRequest) (*domain.User, error) {
	addr, err := s.resolveAddress(ctx, req.Address)
	if err != nil {
		return nil, err
	}
	phone := strings.TrimSpace(req.Phone)
	if err := s.users.AttachAddress(ctx, userID, addr, &phone, domain.Gender(req.Gender)); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}
	return s.Profile(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if v := strings.TrimSpace(req.FullName); v != "" {
		user.FullName = v
	}
	if v := strings.TrimSpace(req.Phone); v != "" {
		user.Phone = &v
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Gender != "" {
		user.Gender = domain.Gender(req.Gender)
	}
	if req.Telegram != "" {
		user.Telegram = req.Telegram
	}
	if req.Instagram != "" {
		user.Instagram = req.Instagram
	}
	if req.Facebook != "" {
		user.Facebook = req.Facebook
	}
	if req.Image != nil {
		url, err := s.images.Save(ctx, "users", req.Image)
		if err != nil {
			return nil, &ValidationError{Message: "Invalid image: " + err.Error()}
		}
		user.Image = url
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}
	return s.Profile(ctx, userID)
}

func (s *Service) DeleteProfile(ctx context.Context, userID int64) error {
	err := s.users.Delete(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUnauthorized
	}
	return err
}

// resolveAddress checks that the mahalla lies in the district and the district in the region.
func (s *Service) resolveAddress(ctx context.Context, in AddressInput) (*domain.Address, error) {
	if _, err := s.regions.GetRegion(ctx, in.Region); err != nil {
		return nil, lookupError(err, "Region not found")
	}
	district, err := s.regions.GetDistrict(ctx, in.District)
	if err != nil {
		return nil, lookupError(err, "District not found")
	}
	if district.RegionID != in.Region {
		return nil, &ValidationError{Message: "District does not belong to the region"}
	}
	mahalla, err := s.regions.GetMahalla(ctx, in.Mahalla)
	if err != nil {
		return nil, lookupError(err, "Mahalla not found")
	}
	if mahalla.DistrictID != in.District {
		return nil, &ValidationError{Message: "Mahalla does not belong to the district"}
	}
	return &domain.Address{
		RegionID:   in.Region,
		DistrictID: in.District,
		MahallaID:  in.Mahalla,
		House:      strings.TrimSpace(in.House),
	}, nil
}

func lookupError(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &ValidationError{Message: msg}
	}
	return err
}

// issue signs an access token and stores a new refresh token in family.
func (s *Service) issue(ctx context.Context, user *domain.User, family string) (*TokenPair, error) {
	access, err := s.jwt.GenerateToken(user.ID, string(user.Role()), user.IsStaff)
	if err != nil {
		return nil, err
	}
	raw, hash, err := generateOpaqueRefreshToken(s.cfg.RefreshTokenPepper)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Create(ctx, &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: hash,
		FamilyID:  family,
		ExpiresAt: s.now().Add(s.cfg.RefreshTTL),
	}); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: raw, ExpiresIn: int64(s.jwt.TTL().Seconds())}, nil
}

func (s *Service) hashCode(code string) string {
	return hashTokenWithPepper(strings.TrimSpace(code), s.cfg.CodePepper)
}

func (s *Service) codeMatches(storedHash, code string) bool {
	got := s.hashCode(code)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(got)) == 1
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// generateCode returns a 6-digit code without a leading zero.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func generateOpaqueRefreshToken(pepper string) (raw string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	hash = hashTokenWithPepper(raw, pepper)
	return raw, hash, nil
}

func hashTokenWithPepper(raw, pepper string) string {
	sum := sha256.Sum256([]byte(raw + pepper))
	return hex.EncodeToString(sum[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// duplicateUser names the unique field a failed insert collided with. The
// username was free at registration, so anything but the email means it was
// claimed since.
func (s *Service) duplicateUser(ctx context.Context, email string) error {
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailAlreadyExists
	}
	return ErrUsernameTaken
}
