package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"

	defaultMongoURI = "mongodb://localhost:27017"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type StoreConfig struct {
	Driver   string
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns the host:port pair go-redis expects.
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func Load() *Config {
	// Populate the process environment first so both viper and anything
	// reading os.Getenv see the same values.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("SERVER_PORT", "4000")
	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("STORE_DRIVER", StoreDriverMongo)
	v.SetDefault("MONGO_DATABASE", "sales")
	v.SetDefault("MONGO_TIMEOUT_SECONDS", 10)
	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: v.GetString("SERVER_PORT"),
			Env:  v.GetString("SERVER_ENV"),
		},
		Store: StoreConfig{
			Driver:   strings.ToLower(v.GetString("STORE_DRIVER")),
			URI:      firstNonEmpty(v.GetString("MONGO_URI"), v.GetString("DB_MONGO"), defaultMongoURI),
			Database: v.GetString("MONGO_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGO_TIMEOUT_SECONDS")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: firstNonEmpty(v.GetString("JWT_SECRET"), v.GetString("SECRET_WORD")),
			Expiry: time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   time.Duration(v.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}
}

// firstNonEmpty returns the first set value, so MONGO_URI and JWT_SECRET win over
// the legacy DB_MONGO and SECRET_WORD names.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
