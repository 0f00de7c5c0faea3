package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// Storage selects the persistence backend: "mongo" or "memory".
	Storage string `env:"STORAGE_BACKEND, default=mongo"`

	JWT    JWTConfig
	Cookie CookieConfig
	CORS   CORSConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL,  default=15m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL, default=168h"`
}

type CookieConfig struct {
	Domain string `env:"COOKIE_DOMAIN, default=localhost"`
	Secure bool   `env:"COOKIE_SECURE, default=false"`
}

type CORSConfig struct {
	FrontendURL string `env:"FRONTEND_URL, default=http://localhost:3000"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=devfolio"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
