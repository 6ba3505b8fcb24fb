package admin

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"aura/internal/domain"
	"aura/internal/pkg/logger"
	"aura/internal/pkg/timeutil"
	"aura/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service backs the staff-only content and user management endpoints.
type Service struct {
	regions  RegionRepository
	content  ContentRepository
	schedule ScheduleRepository
	users    UserRepository
	images   ImageStorage
	log      *logger.Logger
	loc      *time.Location
	now      func() time.Time
}

func NewService(
	regions RegionRepository,
	content ContentRepository,
	schedule ScheduleRepository,
	users UserRepository,
	images ImageStorage,
	log *logger.Logger,
	loc *time.Location,
) *Service {
	if log == nil {
		log = logger.Discard()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		regions:  regions,
		content:  content,
		schedule: schedule,
		users:    users,
		images:   images,
		log:      log,
		loc:      loc,
		now:      time.Now,
	}
}

// -------------------- Regions --------------------

func (s *Service) CreateRegion(ctx context.Context, req RegionRequest) (*domain.Region, error) {
	v := &domain.Region{Name: strings.TrimSpace(req.Name)}
	if err := s.regions.CreateRegion(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) CreateDistrict(ctx context.Context, req DistrictRequest) (*domain.District, error) {
	if _, err := s.regions.GetRegion(ctx, req.Region); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ValidationError{Message: "Region not found"}
		}
		return nil, err
	}
	v := &domain.District{Name: strings.TrimSpace(req.Name), RegionID: req.Region}
	if err := s.regions.CreateDistrict(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) CreateMahalla(ctx context.Context, req MahallaRequest) (*domain.Mahalla, error) {
	if _, err := s.regions.GetDistrict(ctx, req.District); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ValidationError{Message: "District not found"}
		}
		return nil, err
	}
	v := &domain.Mahalla{Name: strings.TrimSpace(req.Name), DistrictID: req.District}
	if err := s.regions.CreateMahalla(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// -------------------- Content --------------------

func (s *Service) CreateCategory(ctx context.Context, form CategoryForm) (*domain.Category, error) {
	c := &domain.Category{Name: strings.TrimSpace(form.Name)}
	var err error
	if c.Image, err = s.save(ctx, "categories", form.Image); err != nil {
		return nil, err
	}
	if err := s.content.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) CreateShop(ctx context.Context, form ShopForm) (*domain.Shop, error) {
	shop := &domain.Shop{
		Name:           strings.TrimSpace(form.Name),
		Description:    form.Description,
		Price:          form.Price,
		Discount:       form.Discount,
		Availability:   true,
		ContactNumber:  form.ContactNumber,
		AdditionalInfo: form.AdditionalInfo,
		Video:          form.Video,
		Brand:          form.Brand,
		Weight:         form.Weight,
		Size:           form.Size,
		Grams:          form.Grams,
		Color:          form.Color,
	}
	if form.Availability != nil {
		shop.Availability = *form.Availability
	}
	uploads := []struct {
		dst *string
		fh  *multipart.FileHeader
	}{
		{&shop.Image, form.Image},
		{&shop.Image1, form.Image1},
		{&shop.Image2, form.Image2},
		{&shop.Image3, form.Image3},
	}
	for _, u := range uploads {
		url, err := s.save(ctx, "shops", u.fh)
		if err != nil {
			return nil, err
		}
		*u.dst = url
	}
	if err := s.content.CreateShop(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *Service) CreateBlog(ctx context.Context, form BlogForm) (*domain.Blog, error) {
	blog := &domain.Blog{Title: strings.TrimSpace(form.Title), Description: form.Description}
	uploads := []struct {
		dst *string
		fh  *multipart.FileHeader
	}{
		{&blog.Image1, form.Image1},
		{&blog.Image2, form.Image2},
		{&blog.Image3, form.Image3},
		{&blog.Image4, form.Image4},
	}
	for _, u := range uploads {
		url, err := s.save(ctx, "blogs", u.fh)
		if err != nil {
			return nil, err
		}
		*u.dst = url
	}
	if err := s.content.CreateBlog(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *Service) CreateAbout(ctx context.Context, form AboutForm) (*domain.About, error) {
	about := &domain.About{Title: strings.TrimSpace(form.Title), Description: form.Description}
	for _, fh := range form.Images {
		url, err := s.save(ctx, "about", fh)
		if err != nil {
			return nil, err
		}
		about.Images = append(about.Images, domain.AboutImage{Image: url})
	}
	if err := s.content.CreateAbout(ctx, about); err != nil {
		return nil, err
	}
	return about, nil
}

func (s *Service) CreateFaq(ctx context.Context, req FaqRequest) (*domain.Faq, error) {
	f := &domain.Faq{Question: strings.TrimSpace(req.Question), Answer: strings.TrimSpace(req.Answer)}
	if err := s.content.CreateFaq(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// CreateWorkingDay stores a weekday by its canonical English name.
func (s *Service) CreateWorkingDay(ctx context.Context, req WorkingDayRequest) (*domain.WorkingDay, error) {
	name, ok := timeutil.CanonicalWeekday(req.Day)
	if !ok {
		return nil, &ValidationError{Message: "Day must be a weekday name such as Monday"}
	}
	d := &domain.WorkingDay{Day: name}
	if err := s.schedule.CreateDay(ctx, d); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDayExists
		}
		return nil, err
	}
	return d, nil
}

// -------------------- Statistics & users --------------------

func (s *Service) Statistics(ctx context.Context) (*repository.Statistics, error) {
	return s.users.Statistics(ctx, timeutil.FormatDate(s.now().In(s.loc)))
}

func (s *Service) ListUsers(ctx context.Context, q UserListQuery) (*UserListResponse, error) {
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	users, total, err := s.users.ListUsers(ctx, repository.UserFilter{
		Search:   q.Search,
		IsMaster: q.IsMaster,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	return &UserListResponse{Users: toUserSummaries(users), Total: total, Page: page, Limit: limit}, nil
}

// SetUserFlags updates is_active and is_staff. Staff cannot change their own flags.
func (s *Service) SetUserFlags(ctx context.Context, actorID, userID int64, req UserFlagsRequest) error {
	if actorID == userID {
		return &ValidationError{Message: "You cannot change your own account flags"}
	}
	err := s.users.SetFlags(ctx, userID, req.IsActive, req.IsStaff)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err == nil {
		s.log.Info("user flags changed", "actor_id", actorID, "user_id", userID)
	}
	return err
}

// save stores an optional upload. A nil header yields an empty URL.
func (s *Service) save(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", nil
	}
	url, err := s.images.Save(ctx, folder, fh)
	if err != nil {
		return "", &ValidationError{Message: "Invalid image: " + err.Error()}
	}
	return url, nil
}
