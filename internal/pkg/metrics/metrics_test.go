package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New("aura_test")

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/shops/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/shops/1", nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/shops/:id", "200")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "aura_test_http_requests_total")
}

func TestDomainCounters(t *testing.T) {
	m := New("aura_test")
	m.BookingEvent("created")
	m.FreeTimeQuery()
	m.Email("activation", errors.New("smtp down"))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.bookings.WithLabelValues("created")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.freeTimeChecks))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.emails.WithLabelValues("activation", "error")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.BookingEvent("created") })
}
