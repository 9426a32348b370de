package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration, loaded from the environment with an
// optional .env file on top.
type Config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	AppURL        string `env:"APP_URL" envDefault:"http://localhost:8080"`
	MongoURI      string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"storefront_gateway"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// EncryptionKey is a hex-encoded 32-byte key for token encryption at rest.
	EncryptionKey string `env:"ENCRYPTION_KEY,required"`

	ShopifyAPIKey     string        `env:"SHOPIFY_API_KEY"`
	ShopifyAPISecret  string        `env:"SHOPIFY_API_SECRET"`
	ShopifyScopes     string        `env:"SHOPIFY_SCOPES" envDefault:"read_products"`
	ShopifyAPIVersion string        `env:"SHOPIFY_API_VERSION" envDefault:"2025-01"`
	UpstreamTimeout   time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"15s"`
	OAuthStateTTL     time.Duration `env:"OAUTH_STATE_TTL" envDefault:"10m"`
}

// Load reads the .env file if present and parses the environment.
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment.
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &cfg, nil
}
