package mw

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"livecounter-backend/internal/cache"
	"livecounter-backend/internal/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCache_StoresOnlySuccess(t *testing.T) {
	var calls int32
	status := http.StatusOK

	m := metrics.New(prometheus.NewRegistry())
	r := gin.New()
	r.GET("/x/:id", Cache(cache.NewMemory(time.Minute, time.Minute), time.Minute, m), func(c *gin.Context) {
		atomic.AddInt32(&calls, 1)
		c.JSON(status, gin.H{"id": c.Param("id")})
	})

	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/x/1", nil)
		r.ServeHTTP(w, req)
		return w
	}

	// Failures are not cached.
	status = http.StatusNotFound
	assert.Equal(t, http.StatusNotFound, get().Code)
	status = http.StatusOK
	first := get()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get(CacheStatusHeader))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	second := get()
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get(CacheStatusHeader))
	assert.JSONEq(t, `{"id":"1"}`, second.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", second.Header().Get("Content-Type"))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheMisses))
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimiter(rate.Limit(1), 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	// A different client has its own bucket.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_RetryAfter(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimiter(rate.Limit(0.5), 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	var last *httptest.ResponseRecorder
	for i := 0; i < 2; i++ {
		last = httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.3:1234"
		r.ServeHTTP(last, req)
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Equal(t, "2", last.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"Too many requests"}`, last.Body.String())
}

func TestClientLimiters_EvictsIdleClients(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewClientLimiters(rate.Limit(1), 1)
	l.now = func() time.Time { return now }

	ok, _ := l.Reserve("10.0.0.1")
	assert.True(t, ok)
	ok, _ = l.Reserve("10.0.0.2")
	assert.True(t, ok)
	assert.Equal(t, 2, l.Len())

	now = now.Add(limiterIdleTTL + time.Second)
	ok, _ = l.Reserve("10.0.0.2")
	assert.True(t, ok)
	assert.Equal(t, 1, l.Len())
}

func TestRequestLogger_UsesRouteTemplate(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/api/tiktok/profile/:username", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/tiktok/profile/secretperson", nil)
	r.ServeHTTP(w, req)

	out := buf.String()
	assert.Contains(t, out, `"route":"/api/tiktok/profile/:username"`)
	assert.Contains(t, out, `"level":"warn"`)
	assert.NotContains(t, out, "secretperson")
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zerolog.Nop()))
	r.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestMetrics_ObservesRoute(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/youtube/video/:videoId", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/youtube/video/abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RequestsInFlight))
}
