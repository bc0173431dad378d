package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MONGO_URI", "")
	t.Setenv("DB_MONGO", "")

	cfg := Load()

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, StoreDriverMongo, cfg.Store.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Store.URI)
	assert.Equal(t, "sales", cfg.Store.Database)
	assert.Equal(t, 10*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestLoad_ModernVariablesWinOverLegacy(t *testing.T) {
	t.Setenv("DB_MONGO", "mongodb://legacy:27017")
	t.Setenv("MONGO_URI", "mongodb://modern:27017")
	t.Setenv("SECRET_WORD", "legacy-secret")
	t.Setenv("JWT_SECRET", "modern-secret")

	cfg := Load()

	assert.Equal(t, "mongodb://modern:27017", cfg.Store.URI)
	assert.Equal(t, "modern-secret", cfg.JWT.Secret)
}

func TestLoad_LegacyVariablesUsedWhenModernUnset(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_MONGO", "mongodb://legacy:27017")
	t.Setenv("SECRET_WORD", "legacy-secret")

	cfg := Load()

	assert.Equal(t, "mongodb://legacy:27017", cfg.Store.URI)
	assert.Equal(t, "legacy-secret", cfg.JWT.Secret)
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,,")
	t.Setenv("STORE_DRIVER", "MEMORY")

	cfg := Load()

	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
}
