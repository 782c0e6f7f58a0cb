package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newLimitedEngine(window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/ping", RateLimit(window), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return engine
}

func TestRateLimitBlocksSecondRequest(t *testing.T) {
	engine := newLimitedEngine(time.Minute)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimitAllowsAfterWindow(t *testing.T) {
	engine := newLimitedEngine(20 * time.Millisecond)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	time.Sleep(30 * time.Millisecond)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitDisabledWithZeroWindow(t *testing.T) {
	engine := newLimitedEngine(0)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}
