package admin

import (
	"errors"
	"net/http"
	"strconv"

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

// RegisterRoutes mounts the staff endpoints. The group must already
// carry JWTAuth and StaffOnly.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	// geography
	admin.POST("/regions", h.CreateRegion)
	admin.POST("/districts", h.CreateDistrict)
	admin.POST("/mahallas", h.CreateMahalla)

	// content
	admin.POST("/categories", h.CreateCategory)
	admin.POST("/shops", h.CreateShop)
	admin.POST("/blogs", h.CreateBlog)
	admin.POST("/about", h.CreateAbout)
	admin.POST("/faq", h.CreateFaq)
	admin.POST("/working-days", h.CreateWorkingDay)

	// statistics & users
	admin.GET("/stats", h.GetStats)
	admin.GET("/users", h.GetUsers)
	admin.PATCH("/users/:id", h.UpdateUserFlags)
}

func (h *Handler) CreateRegion(c *gin.Context) {
	var req RegionRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.service.CreateRegion(c.Request.Context(), req)
	h.created(c, out, err)
}

func (h *Handler) CreateDistrict(c *gin.Context) {
	var req DistrictRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.service.CreateDistrict(c.Request.Context(), req)
	h.created(c, out, err)
}

func (h *Handler) CreateMahalla(c *gin.Context) {
	var req MahallaRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.service.CreateMahalla(c.Request.Context(), req)
	h.created(c, out, err)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var form CategoryForm
	if !bindForm(c, &form) {
		return
	}
	out, err := h.service.CreateCategory(c.Request.Context(), form)
	h.created(c, out, err)
}

func (h *Handler) CreateShop(c *gin.Context) {
	var form ShopForm
	if !bindForm(c, &form) {
		return
	}
	out, err := h.service.CreateShop(c.Request.Context(), form)
	h.created(c, out, err)
}

func (h *Handler) CreateBlog(c *gin.Context) {
	var form BlogForm
	if !bindForm(c, &form) {
		return
	}
	out, err := h.service.CreateBlog(c.Request.Context(), form)
	h.created(c, out, err)
}

func (h *Handler) CreateAbout(c *gin.Context) {
	var form AboutForm
	if !bindForm(c, &form) {
		return
	}
	out, err := h.service.CreateAbout(c.Request.Context(), form)
	h.created(c, out, err)
}

func (h *Handler) CreateFaq(c *gin.Context) {
	var req FaqRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.service.CreateFaq(c.Request.Context(), req)
	h.created(c, out, err)
}

func (h *Handler) CreateWorkingDay(c *gin.Context) {
	var req WorkingDayRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.service.CreateWorkingDay(c.Request.Context(), req)
	h.created(c, out, err)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) GetUsers(c *gin.Context) {
	var q UserListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}
	out, err := h.service.ListUsers(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) UpdateUserFlags(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}
	var req UserFlagsRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.service.SetUserFlags(c.Request.Context(), middleware.UserID(c), id, req); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "User updated"})
}

func (h *Handler) created(c *gin.Context, out any, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, out)
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

func bindForm(c *gin.Context, form any) bool {
	if err := c.ShouldBind(form); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid form data")
		return false
	}
	if errs := validator.Validate(form); errs != nil {
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
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, ErrDayExists):
		response.Error(c, http.StatusConflict, "DAY_EXISTS", "Working day already exists")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
