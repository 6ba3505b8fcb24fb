package region

import (
	"net/http"
	"strconv"

	"aura/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/regions", h.Regions)
	public.GET("/districts", h.Districts)
	public.GET("/mahallas", h.Mahallas)
}

func (h *Handler) Regions(c *gin.Context) {
	out, err := h.service.Regions(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Districts(c *gin.Context) {
	regionID, ok := optionalID(c, "region_id")
	if !ok {
		return
	}
	out, err := h.service.Districts(c.Request.Context(), regionID)
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Mahallas(c *gin.Context) {
	districtID, ok := optionalID(c, "district_id")
	if !ok {
		return
	}
	out, err := h.service.Mahallas(c.Request.Context(), districtID)
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func optionalID(c *gin.Context, key string) (*int64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid "+key)
		return nil, false
	}
	return &id, true
}

func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}
