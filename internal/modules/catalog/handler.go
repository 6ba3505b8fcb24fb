package catalog

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

// RegisterRoutes mounts public reads on public (which carries optional auth)
// and service writes on protected.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/categories", h.Categories)
	public.GET("/categories/services", h.CategoryServices)
	public.GET("/services", h.Services)
	public.GET("/services/:id", h.ServiceDetail)
	public.GET("/search", h.Search)
	public.GET("/shops", h.Shops)
	public.GET("/shops/:id", h.ShopDetail)
	public.GET("/blogs", h.Blogs)
	public.GET("/blogs/:id", h.BlogDetail)
	public.GET("/faq", h.Faq)
	public.GET("/about", h.About)

	protected.POST("/services", middleware.MasterOnly(), h.CreateService)
	protected.PUT("/services/:id", h.UpdateService)
	protected.DELETE("/services/:id", h.DeleteService)
}

/* ---------- CATEGORY HANDLERS ---------- */

func (h *Handler) Categories(c *gin.Context) {
	out, err := h.service.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// CategoryServices handles GET /categories/services?category_id=
func (h *Handler) CategoryServices(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("category_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "category_id is required")
		return
	}
	out, err := h.service.Services(c.Request.Context(), middleware.UserID(c), ServiceQuery{CategoryID: &id})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

/* ---------- SERVICE HANDLERS ---------- */

func (h *Handler) Services(c *gin.Context) {
	var q ServiceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}
	out, err := h.service.Services(c.Request.Context(), middleware.UserID(c), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) ServiceDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.service.ServiceDetail(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Search(c *gin.Context) {
	out, err := h.service.Search(c.Request.Context(), middleware.UserID(c), c.Query("name"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) CreateService(c *gin.Context) {
	form, ok := bindServiceForm(c)
	if !ok {
		return
	}
	out, err := h.service.CreateService(c.Request.Context(), middleware.UserID(c), form)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, out)
}

func (h *Handler) UpdateService(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	form, ok := bindServiceForm(c)
	if !ok {
		return
	}
	out, err := h.service.UpdateService(c.Request.Context(), middleware.UserID(c), id, form)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) DeleteService(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteService(c.Request.Context(), middleware.UserID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

/* ---------- SHOP & CONTENT HANDLERS ---------- */

func (h *Handler) Shops(c *gin.Context) {
	out, err := h.service.Shops(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) ShopDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.service.ShopDetail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Blogs(c *gin.Context) {
	out, err := h.service.Blogs(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) BlogDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.service.BlogDetail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Faq(c *gin.Context) {
	out, err := h.service.Faq(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) About(c *gin.Context) {
	out, err := h.service.About(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func bindServiceForm(c *gin.Context) (ServiceForm, bool) {
	var form ServiceForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return form, false
	}
	if errs := validator.Validate(form); errs != nil {
		response.ValidationFailed(c, errs)
		return form, false
	}
	return form, true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Message)
	case errors.Is(err, ErrServiceNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service not found")
	case errors.Is(err, ErrShopNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Shop not found")
	case errors.Is(err, ErrBlogNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Blog not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
