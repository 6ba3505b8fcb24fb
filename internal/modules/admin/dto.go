package admin

import (
	"mime/multipart"

	"aura/internal/domain"
)

type RegionRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type DistrictRequest struct {
	Name   string `json:"name" validate:"required,max=255"`
	Region int64  `json:"region" validate:"required,gt=0"`
}

type MahallaRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	District int64  `json:"district" validate:"required,gt=0"`
}

type CategoryForm struct {
	Name  string                `form:"name" validate:"required,max=255"`
	Image *multipart.FileHeader `form:"image" json:"-"`
}

type ShopForm struct {
	Name           string                `form:"name" validate:"required,max=255"`
	Description    string                `form:"description"`
	Price          float64               `form:"price" validate:"gte=0"`
	Discount       float64               `form:"discount" validate:"gte=0"`
	Availability   *bool                 `form:"availability"`
	ContactNumber  string                `form:"contact_number" validate:"max=32"`
	AdditionalInfo string                `form:"additional_info"`
	Video          string                `form:"video"`
	Brand          string                `form:"brand" validate:"max=255"`
	Weight         string                `form:"weight" validate:"max=64"`
	Size           string                `form:"size" validate:"max=64"`
	Grams          string                `form:"grams" validate:"max=64"`
	Color          string                `form:"color" validate:"max=64"`
	Image          *multipart.FileHeader `form:"image" json:"-"`
	Image1         *multipart.FileHeader `form:"image1" json:"-"`
	Image2         *multipart.FileHeader `form:"image2" json:"-"`
	Image3         *multipart.FileHeader `form:"image3" json:"-"`
}

type BlogForm struct {
	Title       string                `form:"title" validate:"required,max=255"`
	Description string                `form:"description"`
	Image1      *multipart.FileHeader `form:"image1" json:"-"`
	Image2      *multipart.FileHeader `form:"image2" json:"-"`
	Image3      *multipart.FileHeader `form:"image3" json:"-"`
	Image4      *multipart.FileHeader `form:"image4" json:"-"`
}

type AboutForm struct {
	Title       string                  `form:"title" validate:"required,max=255"`
	Description string                  `form:"description"`
	Images      []*multipart.FileHeader `form:"images" json:"-"`
}

type FaqRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type WorkingDayRequest struct {
	Day string `json:"day" validate:"required"`
}

type UserListQuery struct {
	Search   string `form:"search"`
	IsMaster *bool  `form:"is_master"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

type UserFlagsRequest struct {
	IsActive *bool `json:"is_active"`
	IsStaff  *bool `json:"is_staff"`
}

type UserSummary struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	IsMaster bool   `json:"is_master"`
	IsActive bool   `json:"is_active"`
	IsStaff  bool   `json:"is_staff"`
}

type UserListResponse struct {
	Users []UserSummary `json:"users"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func toUserSummaries(users []domain.User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, UserSummary{
			ID:       u.ID,
			FullName: u.FullName,
			Username: u.Username,
			Email:    u.Email,
			Phone:    u.PhoneValue(),
			IsMaster: u.IsMaster,
			IsActive: u.IsActive,
			IsStaff:  u.IsStaff,
		})
	}
	return out
}
