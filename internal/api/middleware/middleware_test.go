package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"microdrama-go/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (m *memoryCounter) Hit(_ context.Context, key string, _ time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = map[string]int64{}
	}
	m.counts[key]++
	return m.counts[key], nil
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.POST("/shows/:id/like", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func post(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_BlocksAfterLimit(t *testing.T) {
	counter := &memoryCounter{}
	r := newEngine(RateLimit(counter, 2, time.Minute))

	assert.Equal(t, http.StatusCreated, post(r, "/shows/a/like").Code)
	w := post(r, "/shows/b/like")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = post(r, "/shows/c/like")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "TooManyRequests")
}

func TestRateLimit_FailsOpen(t *testing.T) {
	r := newEngine(RateLimit(&memoryCounter{err: errors.New("redis down")}, 1, time.Minute))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusCreated, post(r, "/shows/a/like").Code)
	}

	r = newEngine(RateLimit(nil, 1, time.Minute))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusCreated, post(r, "/shows/a/like").Code)
	}
}

func TestRecovery(t *testing.T) {
	r := newEngine(Recovery(), Logger())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "InternalServerError")
}

func TestCORS(t *testing.T) {
	preflight := func(r *gin.Engine, origin string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/shows/a/like", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		r.ServeHTTP(w, req)
		return w
	}

	dev := newEngine(CORS(config.AppConfig{Mode: "debug"}, config.CORSConfig{Origin: "https://app.example.com"}))
	w := preflight(dev, "https://anything.example.org")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	prod := newEngine(CORS(config.AppConfig{Mode: "release"}, config.CORSConfig{Origin: "https://app.example.com, https://admin.example.com"}))
	w = preflight(prod, "https://admin.example.com")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight(prod, "https://evil.example.org")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
