package catalog

import (
	"mime/multipart"

	"aura/internal/domain"
	"aura/internal/repository"
)

type ServiceQuery struct {
	UserID     *int64 `form:"user_id"`
	CategoryID *int64 `form:"category_id"`
	Search     string `form:"search"`
}

// ServiceForm is accepted as multipart form or JSON.
type ServiceForm struct {
	Name        string                `form:"name" json:"name" validate:"required,max=255"`
	Price       float64               `form:"price" json:"price" validate:"gte=0"`
	Duration    string                `form:"duration" json:"duration" validate:"required"`
	Description string                `form:"description" json:"description"`
	Category    int64                 `form:"category" json:"category" validate:"required,gt=0"`
	Image       *multipart.FileHeader `form:"image" json:"-"`
}

type ServiceOwner struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Image    string `json:"image"`
}

type ServiceResponse struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	Price          float64       `json:"price"`
	Duration       string        `json:"duration"`
	Description    string        `json:"description"`
	Category       int64         `json:"category"`
	CategoryName   string        `json:"category_name,omitempty"`
	Image          string        `json:"image"`
	User           *ServiceOwner `json:"user"`
	FavoritesCount int64         `json:"favorites_count"`
	IsLike         bool          `json:"is_like"`
	IsSaved        bool          `json:"is_saved"`
}

type ShopResponse struct {
	domain.Shop
	LikeCount int64 `json:"like_count"`
}

func toServiceResponse(s domain.Service, st repository.ServiceStats) ServiceResponse {
	out := ServiceResponse{
		ID:             s.ID,
		Name:           s.Name,
		Price:          s.Price,
		Duration:       s.Duration,
		Description:    s.Description,
		Category:       s.CategoryID,
		Image:          s.Image,
		FavoritesCount: st.FavoritesCount,
		IsLike:         st.IsLike,
		IsSaved:        st.IsSaved,
	}
	if s.Category != nil {
		out.CategoryName = s.Category.Name
	}
	if s.User != nil {
		out.User = &ServiceOwner{
			ID:       s.User.ID,
			FullName: s.User.FullName,
			Email:    s.User.Email,
			Username: s.User.Username,
			Image:    s.User.Image,
		}
	}
	return out
}
