package schedule

import (
	"errors"
	"net/http"
	"strconv"

	"aura/internal/domain"
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

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	working := protected.Group("/working")
	working.GET("/days", h.ListDays)
	working.GET("/times", h.ListTimes)
	working.POST("/times", middleware.RequireRole(domain.RoleMaster, "Only master can set working times"), h.CreateTimes)
	working.PUT("/times/:id", h.UpdateTime)
	working.DELETE("/times/:id", h.DeleteTime)
}

func (h *Handler) ListDays(c *gin.Context) {
	days, err := h.service.ListDays(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, days)
}

func (h *Handler) ListTimes(c *gin.Context) {
	rows, err := h.service.ListTimes(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toTimeResponses(rows))
}

func (h *Handler) CreateTimes(c *gin.Context) {
	var req CreateTimesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	rows, err := h.service.CreateTimes(c.Request.Context(), middleware.UserID(c), req.Times)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toTimeResponses(rows))
}

func (h *Handler) UpdateTime(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}
	var req TimeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	row, err := h.service.UpdateTime(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toTimeResponse(*row))
}

func (h *Handler) DeleteTime(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}
	if err := h.service.DeleteTime(c.Request.Context(), middleware.UserID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Message)
	case errors.Is(err, ErrTimeNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Working time not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
