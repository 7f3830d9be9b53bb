package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedRouter(store *cache.Cache, hits *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/rooms", Cache(store, time.Minute), func(c *gin.Context) {
		*hits++
		c.Header("X-Request-Id", "abc123")
		c.JSON(http.StatusOK, gin.H{"rooms": []string{"A-101"}})
	})
	return r
}

func TestCache_ReplayKeepsHeaders(t *testing.T) {
	store := cache.New(time.Minute, time.Minute)
	hits := 0
	r := newCachedRouter(store, &hits)

	first := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/rooms", nil)
	r.ServeHTTP(first, req)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, 1, hits)

	// The second request is served from the cache and must carry the
	// same content type and custom headers as the original response.
	second := httptest.NewRecorder()
	r.ServeHTTP(second, req)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, hits, "handler must not run on a cache hit")
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", second.Header().Get("Content-Type"))
	assert.Equal(t, "abc123", second.Header().Get("X-Request-Id"))
}

func TestCache_SkipsNonGetAndErrors(t *testing.T) {
	store := cache.New(time.Minute, time.Minute)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/rooms", Cache(store, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	r.GET("/missing", Cache(store, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/rooms", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/missing", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.Zero(t, store.ItemCount(), "writes and error responses must not be cached")
}

func TestInvalidate_FlushesOnSuccessfulMutation(t *testing.T) {
	store := cache.New(time.Minute, time.Minute)
	hits := 0
	r := newCachedRouter(store, &hits)
	r.POST("/rooms", Invalidate(store), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	r.POST("/rooms/bad", Invalidate(store), func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})

	get := func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/rooms", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	get()
	require.Equal(t, 1, hits)

	// A rejected mutation leaves the cache alone.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/rooms/bad", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	get()
	assert.Equal(t, 1, hits)

	// A successful mutation flushes, so the next read recomputes.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/rooms", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	get()
	assert.Equal(t, 2, hits)
}
