package auth

import (
	"bytes"
	"encoding/json"
	"mime/multipart"

	"aura/internal/domain"
)

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,min=6,max=150"`
	IsMaster bool   `json:"is_master"`
}

// RegisterResponse echoes the submitted public fields.
type RegisterResponse struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	IsMaster bool   `json:"is_master"`
}

// Code accepts a JSON number or string.
type Code string

func (c *Code) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Code(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = Code(n.String())
	return nil
}

type ActivateRequest struct {
	Email        string `json:"email" validate:"required,email"`
	ActivateCode Code   `json:"activate_code" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordConfirmRequest struct {
	Email           string `json:"email" validate:"required,email"`
	ActivationCode  Code   `json:"activation_code" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=150"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type AddressInput struct {
	Region   int64  `json:"region" validate:"required,gt=0"`
	District int64  `json:"district" validate:"required,gt=0"`
	Mahalla  int64  `json:"mahalla" validate:"required,gt=0"`
	House    string `json:"house" validate:"max=255"`
}

// CompleteProfileRequest is the second registration step.
type CompleteProfileRequest struct {
	Phone   string       `json:"phone" validate:"required,max=32"`
	Gender  string       `json:"gender" validate:"omitempty,oneof=male female"`
	Address AddressInput `json:"address"`
}

// UpdateProfileRequest is accepted as multipart form or JSON. Empty fields are left unchanged.
type UpdateProfileRequest struct {
	FullName  string                `form:"full_name" json:"full_name" validate:"max=255"`
	Phone     string                `form:"phone" json:"phone" validate:"max=32"`
	Bio       string                `form:"bio" json:"bio"`
	Gender    string                `form:"gender" json:"gender" validate:"omitempty,oneof=male female"`
	Telegram  string                `form:"telegram" json:"telegram" validate:"max=255"`
	Instagram string                `form:"instagram" json:"instagram" validate:"max=255"`
	Facebook  string                `form:"facebook" json:"facebook" validate:"max=255"`
	Image     *multipart.FileHeader `form:"image" json:"-"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type ProfileResponse struct {
	ID        int64               `json:"id"`
	FullName  string              `json:"full_name"`
	Email     string              `json:"email"`
	Phone     *string             `json:"phone"`
	Username  string              `json:"username"`
	Bio       string              `json:"bio"`
	Gender    string              `json:"gender"`
	Telegram  string              `json:"telegram"`
	Instagram string              `json:"instagram"`
	Facebook  string              `json:"facebook"`
	Address   *domain.AddressView `json:"address"`
	Image     string              `json:"image"`
	IsMaster  bool                `json:"is_master"`
}

func toProfile(u *domain.User) ProfileResponse {
	return ProfileResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		Username:  u.Username,
		Bio:       u.Bio,
		Gender:    string(u.Gender),
		Telegram:  u.Telegram,
		Instagram: u.Instagram,
		Facebook:  u.Facebook,
		Address:   u.Address.View(),
		Image:     u.Image,
		IsMaster:  u.IsMaster,
	}
}
