package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime knob, populated from the environment.
type Config struct {
	Addr     string `envconfig:"BRAMBLE_ADDR" default:":8080"`
	DBPath   string `envconfig:"BRAMBLE_DB_PATH" default:"data/badger"`
	LogLevel string `envconfig:"BRAMBLE_LOG_LEVEL" default:"info"`

	// PageSize is the number of posts per feed page.
	PageSize int `envconfig:"BRAMBLE_PAGE_SIZE" default:"10"`
	// CacheTTL is how long a cached global-feed page stays valid.
	CacheTTL time.Duration `envconfig:"BRAMBLE_CACHE_TTL" default:"20s"`

	JWTSecret string        `envconfig:"BRAMBLE_JWT_SECRET" default:"dev-only-secret-change-me"`
	TokenTTL  time.Duration `envconfig:"BRAMBLE_TOKEN_TTL" default:"24h"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
