package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func rateLimitRouter(limiter *rateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/chat", limiter.handle, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func hit(router *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/chat", nil)
	req.RemoteAddr = ip + ":12345"
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder.Code
}

func newTestLimiter(window time.Duration) (*rateLimiter, *time.Time) {
	current := time.Unix(1700000000, 0)
	limiter := &rateLimiter{
		window:        window,
		last:          make(map[string]time.Time),
		sweepInterval: window,
		now:           func() time.Time { return current },
	}
	return limiter, &current
}

func TestRateLimitBlocksWithinWindow(t *testing.T) {
	limiter, _ := newTestLimiter(10 * time.Second)
	router := rateLimitRouter(limiter)

	require.Equal(t, http.StatusOK, hit(router, "1.2.3.4"))
	require.Equal(t, http.StatusTooManyRequests, hit(router, "1.2.3.4"))
}

func TestRateLimitAllowsAfterWindow(t *testing.T) {
	limiter, clock := newTestLimiter(10 * time.Second)
	router := rateLimitRouter(limiter)

	require.Equal(t, http.StatusOK, hit(router, "1.2.3.4"))
	*clock = clock.Add(11 * time.Second)
	require.Equal(t, http.StatusOK, hit(router, "1.2.3.4"))
}

func TestRateLimitKeysByClient(t *testing.T) {
	limiter, _ := newTestLimiter(10 * time.Second)
	router := rateLimitRouter(limiter)

	require.Equal(t, http.StatusOK, hit(router, "1.2.3.4"))
	require.Equal(t, http.StatusOK, hit(router, "5.6.7.8"))
}

func TestRateLimitSweepEvictsExpiredEntries(t *testing.T) {
	limiter, clock := newTestLimiter(10 * time.Second)
	router := rateLimitRouter(limiter)

	hit(router, "1.2.3.4")
	hit(router, "5.6.7.8")
	require.Len(t, limiter.last, 2)

	*clock = clock.Add(11 * time.Second)
	hit(router, "9.9.9.9")
	require.Len(t, limiter.last, 1)
}

func TestRateLimitDisabledWithZeroWindow(t *testing.T) {
	limiter, _ := newTestLimiter(0)
	router := rateLimitRouter(limiter)

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, hit(router, "1.2.3.4"))
	}
}
