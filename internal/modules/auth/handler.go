package auth

import (
	"errors"
	"net/http"

	"aura/internal/middleware"
	"aura/internal/pkg/response"
	"aura/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	auth := public.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/register/activate", h.Activate)
	auth.POST("/login", h.Login)
	auth.POST("/refresh", h.Refresh)
	auth.POST("/logout", h.Logout)
	auth.POST("/reset-password", h.ResetPassword)
	auth.POST("/reset-password/confirm", h.ResetPasswordConfirm)

	protected.POST("/auth/register/profile", h.CompleteProfile)
	protected.GET("/profile", h.GetProfile)
	protected.PUT("/profile", h.UpdateProfile)
	protected.DELETE("/profile", h.DeleteProfile)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, out)
}

func (h *Handler) Activate(c *gin.Context) {
	var req ActivateRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.service.Activate(c.Request.Context(), req.Email, string(req.ActivateCode))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message":       "Your email has been confirmed",
		"access_token":  res.Tokens.AccessToken,
		"refresh_token": res.Tokens.RefreshToken,
		"expires_in":    res.Tokens.ExpiresIn,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"access_token":  res.Tokens.AccessToken,
		"refresh_token": res.Tokens.RefreshToken,
		"expires_in":    res.Tokens.ExpiresIn,
		"user":          toProfile(res.User),
	})
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}
	pair, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, pair)
}

func (h *Handler) Logout(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.service.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.service.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password reset code sent to your email."})
}

func (h *Handler) ResetPasswordConfirm(c *gin.Context) {
	var req ResetPasswordConfirmRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.service.ConfirmPasswordReset(c.Request.Context(), req); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password reset successfully."})
}

func (h *Handler) CompleteProfile(c *gin.Context) {
	var req CompleteProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.service.CompleteProfile(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toProfile(user))
}

func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.service.Profile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toProfile(user))
}

// UpdateProfile accepts multipart (with an optional image) or JSON.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}
	user, err := h.service.UpdateProfile(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toProfile(user))
}

func (h *Handler) DeleteProfile(c *gin.Context) {
	if err := h.service.DeleteProfile(c.Request.Context(), middleware.UserID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return false
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationFailed(c, errs)
		return false
	}
	return true
}

func (h *Handler) fail(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Message)
	case errors.Is(err, ErrInvalidActivation),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrInvalidResetCode),
		errors.Is(err, ErrPasswordMismatch):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "User with this email already exists")
	case errors.Is(err, ErrUsernameTaken):
		response.Error(c, http.StatusConflict, "USERNAME_EXISTS", "User with this username already exists")
	case errors.Is(err, ErrPhoneTaken):
		response.Error(c, http.StatusConflict, "PHONE_EXISTS", "User with this phone already exists")
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
	case errors.Is(err, ErrAccountInactive):
		response.Error(c, http.StatusUnauthorized, "ACCOUNT_INACTIVE", "Account is not activated")
	case errors.Is(err, ErrInvalidRefreshToken):
		response.Error(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired")
	case errors.Is(err, ErrRefreshTokenReused):
		response.Error(c, http.StatusUnauthorized, "REFRESH_TOKEN_REUSED", "Refresh token was already used")
	case errors.Is(err, ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User no longer exists")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
