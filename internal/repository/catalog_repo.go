package repository

import (
	"context"
	"strings"

	"aura/internal/domain"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// ServiceFilter narrows ListServices. Zero values mean "no filter".
type ServiceFilter struct {
	UserID     *int64
	CategoryID *int64
	// Search matches service name, master username or category name.
	Search string
	// Name matches the service name only.
	Name string
}

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *CatalogRepository) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, c *domain.Category) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

// serviceQuery builds the id lookup for a filter. Matching is case-insensitive.
func serviceQuery(f ServiceFilter) sq.SelectBuilder {
	conds := sq.And{}
	if f.UserID != nil {
		conds = append(conds, sq.Eq{"services.user_id": *f.UserID})
	}
	if f.CategoryID != nil {
		conds = append(conds, sq.Eq{"services.category_id": *f.CategoryID})
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := containsPattern(s)
		conds = append(conds, sq.Or{
			sq.Expr("LOWER(services.name) LIKE ? ESCAPE '\\'", like),
			sq.Expr("LOWER(users.username) LIKE ? ESCAPE '\\'", like),
			sq.Expr("LOWER(categories.name) LIKE ? ESCAPE '\\'", like),
		})
	}
	if n := strings.TrimSpace(f.Name); n != "" {
		conds = append(conds, sq.Expr("LOWER(services.name) LIKE ? ESCAPE '\\'", containsPattern(n)))
	}

	return sq.Select("services.id").
		From("services").
		LeftJoin("users ON users.id = services.user_id").
		LeftJoin("categories ON categories.id = services.category_id").
		Where(conds).
		OrderBy("services.id")
}

func (r *CatalogRepository) ListServices(ctx context.Context, f ServiceFilter) ([]domain.Service, error) {
	query, args, err := serviceQuery(f).ToSql()
	if err != nil {
		return nil, err
	}
	var ids []int64
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&ids).Error; err != nil {
		return nil, err
	}
	return r.GetServices(ctx, ids)
}

// GetServices loads services by id with owner and category, ordered by id.
// Unknown ids are skipped.
func (r *CatalogRepository) GetServices(ctx context.Context, ids []int64) ([]domain.Service, error) {
	if len(ids) == 0 {
		return []domain.Service{}, nil
	}
	var out []domain.Service
	err := r.db.WithContext(ctx).
		Preload("User").Preload("Category").
		Where("id IN ?", ids).Order("id").
		Find(&out).Error
	return out, err
}

func (r *CatalogRepository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	var s domain.Service
	err := r.db.WithContext(ctx).Preload("User").Preload("Category").First(&s, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *CatalogRepository) ServiceExists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Service{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *CatalogRepository) CreateService(ctx context.Context, s *domain.Service) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *CatalogRepository) UpdateService(ctx context.Context, s *domain.Service) error {
	err := r.db.WithContext(ctx).Model(&domain.Service{ID: s.ID}).
		Select("name", "price", "duration", "description", "category_id", "image").
		Updates(s).Error
	return translate(err)
}

// DeleteService removes the service only when userID owns it.
func (r *CatalogRepository) DeleteService(ctx context.Context, id, userID int64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Service{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CatalogRepository) ListShops(ctx context.Context) ([]domain.Shop, error) {
	var out []domain.Shop
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *CatalogRepository) GetShop(ctx context.Context, id int64) (*domain.Shop, error) {
	var s domain.Shop
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *CatalogRepository) ShopExists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Shop{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *CatalogRepository) CreateShop(ctx context.Context, s *domain.Shop) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

// IncrementShopView bumps the counter in SQL and returns the fresh row.
func (r *CatalogRepository) IncrementShopView(ctx context.Context, id int64) (*domain.Shop, error) {
	if err := incrementView(ctx, r.db, &domain.Shop{}, id); err != nil {
		return nil, err
	}
	return r.GetShop(ctx, id)
}

func (r *CatalogRepository) ListBlogs(ctx context.Context) ([]domain.Blog, error) {
	var out []domain.Blog
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *CatalogRepository) GetBlog(ctx context.Context, id int64) (*domain.Blog, error) {
	var b domain.Blog
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *CatalogRepository) CreateBlog(ctx context.Context, b *domain.Blog) error {
	return translate(r.db.WithContext(ctx).Create(b).Error)
}

func (r *CatalogRepository) IncrementBlogView(ctx context.Context, id int64) (*domain.Blog, error) {
	if err := incrementView(ctx, r.db, &domain.Blog{}, id); err != nil {
		return nil, err
	}
	return r.GetBlog(ctx, id)
}

func (r *CatalogRepository) ListFaq(ctx context.Context) ([]domain.Faq, error) {
	var out []domain.Faq
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *CatalogRepository) CreateFaq(ctx context.Context, f *domain.Faq) error {
	return translate(r.db.WithContext(ctx).Create(f).Error)
}

func (r *CatalogRepository) ListAbout(ctx context.Context) ([]domain.About, error) {
	var out []domain.About
	err := r.db.WithContext(ctx).Preload("Images").Order("id").Find(&out).Error
	return out, err
}

func (r *CatalogRepository) CreateAbout(ctx context.Context, a *domain.About) error {
	return translate(r.db.WithContext(ctx).Create(a).Error)
}

func incrementView(ctx context.Context, db *gorm.DB, model any, id int64) error {
	res := db.WithContext(ctx).Model(model).Where("id = ?", id).
		UpdateColumn("view", gorm.Expr("view + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// containsPattern lower-cases s and escapes LIKE wildcards.
func containsPattern(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}
