package admin

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"aura/internal/database/dbtest"
	"aura/internal/domain"
	"aura/internal/middleware"
	"aura/internal/pkg/jwt"
	"aura/internal/pkg/storage"
	"aura/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

type env struct {
	db     *gorm.DB
	router *gin.Engine
	staff  string
	plain  string
	users  map[string]*domain.User
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := dbtest.Open(t)

	boss := &domain.User{FullName: "Boss", Username: "boss", Email: "boss@x.io", IsStaff: true, IsActive: true, PasswordHash: "x"}
	aziz := &domain.User{FullName: "Aziz", Username: "aziz", Email: "aziz@x.io", IsActive: true, PasswordHash: "x"}
	malika := &domain.User{FullName: "Malika", Username: "malika", Email: "malika@x.io", IsMaster: true, IsActive: true, PasswordHash: "x"}
	for _, u := range []*domain.User{boss, aziz, malika} {
		require.NoError(t, db.Create(u).Error)
	}

	tokens := jwt.New("test-secret", time.Hour)
	staffToken, err := tokens.GenerateToken(boss.ID, "customer", true)
	require.NoError(t, err)
	plainToken, err := tokens.GenerateToken(aziz.ID, "customer", false)
	require.NoError(t, err)

	svc := NewService(
		repository.NewRegionRepository(db),
		repository.NewCatalogRepository(db),
		repository.NewScheduleRepository(db),
		repository.NewAdminRepository(db),
		storage.NewLocalStorage(t.TempDir(), "/static"),
		nil,
		time.UTC,
	)
	r := gin.New()
	group := r.Group("/api/v1/admin", middleware.JWTAuth(tokens), middleware.StaffOnly())
	NewHandler(svc).RegisterRoutes(group)

	return &env{
		db:     db,
		router: r,
		staff:  staffToken,
		plain:  plainToken,
		users:  map[string]*domain.User{"boss": boss, "aziz": aziz, "malika": malika},
	}
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestAdmin_RequiresStaff(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/v1/admin/regions", e.plain, map[string]any{"name": "Tashkent"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, http.MethodPost, "/api/v1/admin/regions", "", map[string]any{"name": "Tashkent"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdmin_GeographyChain(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/v1/admin/regions", e.staff, map[string]any{"name": "Tashkent"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var region struct {
		Data domain.Region `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &region))

	w = e.do(t, http.MethodPost, "/api/v1/admin/districts", e.staff, map[string]any{"name": "Yunusabad", "region": 999})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Region not found")

	w = e.do(t, http.MethodPost, "/api/v1/admin/districts", e.staff, map[string]any{"name": "Yunusabad", "region": region.Data.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	var district struct {
		Data domain.District `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &district))

	w = e.do(t, http.MethodPost, "/api/v1/admin/mahallas", e.staff, map[string]any{"name": "Bodomzor", "district": district.Data.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodPost, "/api/v1/admin/mahallas", e.staff, map[string]any{"district": district.Data.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAdmin_WorkingDays(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/v1/admin/working-days", e.staff, map[string]any{"day": "monday"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"Monday"`)

	w = e.do(t, http.MethodPost, "/api/v1/admin/working-days", e.staff, map[string]any{"day": "Monday"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.do(t, http.MethodPost, "/api/v1/admin/working-days", e.staff, map[string]any{"day": "Funday"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdmin_CreateCategoryWithImage(t *testing.T) {
	e := newEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Hair"))
	part, err := mw.CreateFormFile("image", "hair.png")
	require.NoError(t, err)
	_, err = part.Write(pngHeader)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/categories", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+e.staff)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		Data domain.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Hair", body.Data.Name)
	assert.True(t, strings.HasPrefix(body.Data.Image, "/static/categories/"))
	assert.True(t, strings.HasSuffix(body.Data.Image, ".png"))
}

func TestAdmin_CreateFaqAndShop(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/v1/admin/faq", e.staff, map[string]any{"question": "Refunds?", "answer": "Within 7 days"})
	require.Equal(t, http.StatusCreated, w.Code)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Argan oil"))
	require.NoError(t, mw.WriteField("price", "12.5"))
	require.NoError(t, mw.WriteField("availability", "false"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/shops", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+e.staff)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var shop domain.Shop
	require.NoError(t, e.db.First(&shop).Error)
	assert.Equal(t, "Argan oil", shop.Name)
	assert.Equal(t, 12.5, shop.Price)
	assert.False(t, shop.Availability)
	assert.Zero(t, shop.View)
}

func TestAdmin_StatsAndUsers(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/api/v1/admin/stats", e.staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		Data repository.Statistics `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(3), stats.Data.TotalUsers)
	assert.Equal(t, int64(1), stats.Data.TotalMasters)

	w = e.do(t, http.MethodGet, "/api/v1/admin/users?is_master=true", e.staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data UserListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data.Users, 1)
	assert.Equal(t, "malika", list.Data.Users[0].Username)
	assert.Equal(t, int64(1), list.Data.Total)

	w = e.do(t, http.MethodGet, "/api/v1/admin/users?search=AZ&limit=1", e.staff, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data.Users, 1)
	assert.Equal(t, "aziz", list.Data.Users[0].Username)
	assert.Equal(t, 1, list.Data.Limit)
}

func TestAdmin_UpdateUserFlags(t *testing.T) {
	e := newEnv(t)
	aziz := e.users["aziz"]

	w := e.do(t, http.MethodPatch, "/api/v1/admin/users/"+strconv.FormatInt(aziz.ID, 10), e.staff, map[string]any{"is_active": false})
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.User
	require.NoError(t, e.db.First(&got, aziz.ID).Error)
	assert.False(t, got.IsActive)
	assert.False(t, got.IsStaff)

	w = e.do(t, http.MethodPatch, "/api/v1/admin/users/"+strconv.FormatInt(e.users["boss"].ID, 10), e.staff, map[string]any{"is_staff": false})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, http.MethodPatch, "/api/v1/admin/users/9999", e.staff, map[string]any{"is_active": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
