package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newRateLimitedHandler(t *testing.T, mr *miniredis.Miniredis, limit int) http.Handler {
	t.Helper()
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	config := RateLimitConfig{
		RequestsPerWindow: limit,
		Window:            time.Minute,
		KeyPrefix:         "test_rate_limit",
	}
	handler := RateLimitMiddleware(redisClient, config, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	return handler
}

// Feature: sales-api, Property 10: Rate limiting blocks excessive requests
func TestProperty_RateLimitingBlocksExcessiveRequests(t *testing.T) {
	mr := miniredis.RunT(t)
	properties := gopter.NewProperties(nil)

	properties.Property("excessive requests are blocked with 429", prop.ForAll(
		func(requestsPerWindow int, excessRequests int) bool {
			mr.FlushAll()
			handler := newRateLimitedHandler(t, mr, requestsPerWindow)

			successCount := 0
			blockedCount := 0
			for i := 0; i < requestsPerWindow+excessRequests; i++ {
				req := httptest.NewRequest("POST", "/graphql", nil)
				req.RemoteAddr = "192.168.1.100"
				w := httptest.NewRecorder()

				handler.ServeHTTP(w, req)

				switch w.Code {
				case http.StatusOK:
					successCount++
				case http.StatusTooManyRequests:
					blockedCount++
				}
			}

			return successCount == requestsPerWindow && blockedCount == excessRequests
		},
		gen.IntRange(5, 20),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRateLimitMiddleware_KeysByHost(t *testing.T) {
	mr := miniredis.RunT(t)
	handler := newRateLimitedHandler(t, mr, 1)

	for _, addr := range []string{"10.0.0.1:5001", "10.0.0.2:5001"} {
		req := httptest.NewRequest("POST", "/graphql", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	}

	assert.True(t, mr.Exists("test_rate_limit:10.0.0.1"))
	assert.True(t, mr.Exists("test_rate_limit:10.0.0.2"))

	// another port on the same host shares the counter
	req := httptest.NewRequest("POST", "/graphql", nil)
	req.RemoteAddr = "10.0.0.1:5002"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimitMiddleware_RedisDownAllowsRequests(t *testing.T) {
	mr := miniredis.RunT(t)
	handler := newRateLimitedHandler(t, mr, 1)
	mr.Close()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/graphql", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
