package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedEngine(t *testing.T, max int, allow AllowFunc) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	return newProxiedEngine(t, max, allow, nil, "")
}

func newProxiedEngine(t *testing.T, max int, allow AllowFunc, proxies []string, platform string) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	e := gin.New()
	require.NoError(t, TrustProxies(e, proxies, platform))
	e.Use(RealIP())
	e.POST("/token", RateLimit(rdb, max, time.Minute, KeyByIPAndPath(), allow), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return e, mr
}

func post(e *gin.Engine, ip string) *httptest.ResponseRecorder {
	return postVia(e, ip, nil)
}

func postVia(e *gin.Engine, remoteIP string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/token", nil)
	req.RemoteAddr = remoteIP + ":40000"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestRateLimit_BlocksAfterMax(t *testing.T) {
	e, _ := newLimitedEngine(t, 2, nil)

	w := post(e, "203.0.113.7")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, post(e, "203.0.113.7").Code)

	w = post(e, "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// separate bucket per client
	assert.Equal(t, http.StatusOK, post(e, "203.0.113.8").Code)
}

func TestRateLimit_WindowExpires(t *testing.T) {
	e, mr := newLimitedEngine(t, 1, nil)

	require.Equal(t, http.StatusOK, post(e, "203.0.113.7").Code)
	require.Equal(t, http.StatusTooManyRequests, post(e, "203.0.113.7").Code)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, post(e, "203.0.113.7").Code)
}

func TestRateLimit_AllowPrivateIP(t *testing.T) {
	e, _ := newLimitedEngine(t, 1, AllowPrivateIP())

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, post(e, "10.0.0.5").Code)
	}
	assert.Equal(t, http.StatusOK, post(e, "198.51.100.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, post(e, "198.51.100.1").Code)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	e, mr := newLimitedEngine(t, 1, nil)
	mr.Close()

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, post(e, "203.0.113.7").Code)
	}
}

func TestRateLimit_DisabledWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.POST("/token", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, post(e, "203.0.113.7").Code)
	}
}

func TestRateLimit_IgnoresForwardedHeadersFromUntrustedPeer(t *testing.T) {
	e, _ := newLimitedEngine(t, 1, nil)

	w := postVia(e, "203.0.113.7", map[string]string{"X-Forwarded-For": "1.2.3.4"})
	require.Equal(t, http.StatusOK, w.Code)

	w = postVia(e, "203.0.113.7", map[string]string{"X-Forwarded-For": "1.2.3.5", "CF-Connecting-IP": "1.2.3.6"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimit_SpoofedPrivateIPNotAllowed(t *testing.T) {
	e, _ := newLimitedEngine(t, 1, AllowPrivateIP())

	require.Equal(t, http.StatusOK, postVia(e, "198.51.100.1", map[string]string{"X-Forwarded-For": "10.0.0.1"}).Code)
	assert.Equal(t, http.StatusTooManyRequests, postVia(e, "198.51.100.1", map[string]string{"X-Forwarded-For": "10.0.0.1"}).Code)
}

func TestRateLimit_TrustedProxyForwardsClientIP(t *testing.T) {
	e, _ := newProxiedEngine(t, 1, nil, []string{"10.0.0.0/8"}, "")
	proxy := "10.1.2.3"

	require.Equal(t, http.StatusOK, postVia(e, proxy, map[string]string{"X-Forwarded-For": "203.0.113.7"}).Code)
	assert.Equal(t, http.StatusTooManyRequests, postVia(e, proxy, map[string]string{"X-Forwarded-For": "203.0.113.7"}).Code)
	assert.Equal(t, http.StatusOK, postVia(e, proxy, map[string]string{"X-Forwarded-For": "203.0.113.8"}).Code)
}

func TestRateLimit_CloudflarePlatform(t *testing.T) {
	e, _ := newProxiedEngine(t, 1, nil, nil, "cloudflare")

	require.Equal(t, http.StatusOK, postVia(e, "172.68.0.1", map[string]string{"CF-Connecting-IP": "203.0.113.7"}).Code)
	assert.Equal(t, http.StatusOK, postVia(e, "172.68.0.1", map[string]string{"CF-Connecting-IP": "203.0.113.8"}).Code)
	assert.Equal(t, http.StatusTooManyRequests, postVia(e, "172.68.0.2", map[string]string{"CF-Connecting-IP": "203.0.113.7"}).Code)
}

func TestTrustProxies_InvalidEntry(t *testing.T) {
	assert.Error(t, TrustProxies(gin.New(), []string{"not-an-ip"}, ""))
}
