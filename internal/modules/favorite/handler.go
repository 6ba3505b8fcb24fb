package favorite

import (
	"errors"
	"net/http"

	"aura/internal/middleware"
	"aura/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/favorites", h.ListServiceLikes)
	protected.POST("/favorites", h.ToggleServiceLike)
	protected.GET("/saved", h.ListSavedServices)
	protected.POST("/saved", h.ToggleServiceSaved)

	shop := protected.Group("/shop")
	shop.GET("/favorites", h.ListShopLikes)
	shop.POST("/favorites", h.ToggleShopLike)
	shop.GET("/saved", h.ListSavedShops)
	shop.POST("/saved", h.ToggleShopSaved)
}

func (h *Handler) ListServiceLikes(c *gin.Context) {
	out, err := h.service.ServiceLikes(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) ToggleServiceLike(c *gin.Context) {
	var req ServiceLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "service is required")
		return
	}
	res, err := h.service.ToggleServiceLike(c.Request.Context(), middleware.UserID(c), req.Service, flag(req.Like))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, likeBody("service", res))
}

func (h *Handler) ListSavedServices(c *gin.Context) {
	out, err := h.service.SavedServices(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) ToggleServiceSaved(c *gin.Context) {
	var req ServiceSavedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "service is required")
		return
	}
	row, created, err := h.service.ToggleServiceSaved(c.Request.Context(), middleware.UserID(c), req.Service, flag(req.Saved))
	if err != nil {
		h.fail(c, err)
		return
	}
	if row == nil {
		c.Status(http.StatusNoContent)
		return
	}
	response.Success(c, savedStatus(created), row)
}

func (h *Handler) ListShopLikes(c *gin.Context) {
	out, err := h.service.ShopLikes(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) ToggleShopLike(c *gin.Context) {
	var req ShopLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "product is required")
		return
	}
	res, err := h.service.ToggleShopLike(c.Request.Context(), middleware.UserID(c), req.Product, flag(req.Like))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, likeBody("product", res))
}

func (h *Handler) ListSavedShops(c *gin.Context) {
	out, err := h.service.SavedShops(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) ToggleShopSaved(c *gin.Context) {
	var req ShopSavedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "product is required")
		return
	}
	row, created, err := h.service.ToggleShopSaved(c.Request.Context(), middleware.UserID(c), req.Product, flag(req.Saved))
	if err != nil {
		h.fail(c, err)
		return
	}
	if row == nil {
		c.Status(http.StatusNoContent)
		return
	}
	response.Success(c, savedStatus(created), row)
}

func likeBody(targetKey string, res *LikeResult) gin.H {
	if !res.Like {
		return gin.H{
			"id":      res.ID,
			targetKey: res.TargetID,
			"like":    false,
			"message": "Favorite deleted successfully",
		}
	}
	return gin.H{
		"id":          res.ID,
		targetKey:     res.TargetID,
		"like":        true,
		"likes_count": res.LikesCount,
		"message":     "Favorite created successfully",
	}
}

func savedStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrServiceNotFound), errors.Is(err, ErrShopNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
