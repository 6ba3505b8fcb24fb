package booking

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"aura/internal/domain"
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

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/booking/free-times", h.FreeTimes)

	protected.POST("/bookings", h.CreateBooking)
	protected.GET("/bookings/my", h.MyBookings)
	protected.PUT("/bookings/:id", h.UpdateStatus)
	protected.DELETE("/bookings/:id", h.DeleteBooking)
}

func (h *Handler) FreeTimes(c *gin.Context) {
	ids, ok := parseIDList(c.Query("service_ids"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Invalid value for service_ids. Expected a comma-separated list of integers.")
		return
	}

	times, err := h.service.FreeTimes(c.Request.Context(), c.Query("date"), ids)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"free_times": times})
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toBookingResponse(b))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid status")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), middleware.UserID(c), isMaster(c), id, req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toBookingResponse(b))
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteBooking(c.Request.Context(), middleware.UserID(c), isMaster(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) MyBookings(c *gin.Context) {
	var q MyBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	entries, err := h.service.MyBookings(c.Request.Context(), middleware.UserID(c), isMaster(c), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Message)
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", ErrConflict.Error())
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

// parseIDList reads "1,2,3". An empty value yields no ids.
func parseIDList(raw string) ([]int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	parts := strings.Split(raw, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, id)
	}
	return out, true
}

func isMaster(c *gin.Context) bool {
	return middleware.Role(c) == string(domain.RoleMaster)
}
