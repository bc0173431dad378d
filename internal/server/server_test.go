package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sales-api/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "0", Env: "test"},
		Store:     config.StoreConfig{Driver: config.StoreDriverMemory},
		JWT:       config.JWTConfig{Secret: "test-secret", Expiry: time.Hour},
		RateLimit: config.RateLimitConfig{Requests: 2, Window: time.Minute},
	}
}

func TestServer_HealthAndMetrics(t *testing.T) {
	srv, err := NewServer(testConfig(), zap.NewNop(), nil, nil)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health struct {
		Status string            `json:"status"`
		Store  map[string]string `json:"store"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, config.StoreDriverMemory, health.Store["driver"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `sales_api_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestServer_GraphQLOverMemoryStore(t *testing.T) {
	srv, err := NewServer(testConfig(), zap.NewNop(), nil, nil)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	query := `{"query": "mutation { newProduct(input: {name: \"Pen\", stock: 3, price: 1.5}) { id name stock } }"}`
	resp, err := http.Post(ts.URL+"/graphql", "application/json", bytes.NewBufferString(query))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Data struct {
			NewProduct struct {
				Name  string `json:"name"`
				Stock int    `json:"stock"`
			} `json:"newProduct"`
		} `json:"data"`
		Errors []json.RawMessage `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Empty(t, out.Errors)
	assert.Equal(t, "Pen", out.Data.NewProduct.Name)
	assert.Equal(t, 3, out.Data.NewProduct.Stock)
}

func TestServer_RateLimitWhenRedisConfigured(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	srv, err := NewServer(testConfig(), zap.NewNop(), nil, redisClient)
	require.NoError(t, err)
	defer srv.Close()

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := http.Get(ts.URL + "/health")
		require.NoError(t, err)
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestServer_RateLimitCountsRejectedTokens(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	srv, err := NewServer(testConfig(), zap.NewNop(), nil, redisClient)
	require.NoError(t, err)
	defer srv.Close()

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/graphql", strings.NewReader(`{"query": "{ getAllProducts { id } }"}`))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer not-a-token")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}
