package localize

import (
	"fmt"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds environment-driven settings for the engine.
type Config struct {
	// Endpoint is the base URL of the bundle provider.
	Endpoint string `env:"LOCALIZE_ENDPOINT,required,notEmpty"`
	// DefaultLanguage is the fallback language of the fallback chain.
	DefaultLanguage string `env:"LOCALIZE_DEFAULT_LANGUAGE" envDefault:"en"`
	// Languages is the closed set of supported languages.
	Languages []string `env:"LOCALIZE_LANGUAGES" envSeparator:","`
	// FetchTimeout bounds a single bundle fetch from the provider.
	FetchTimeout time.Duration `env:"LOCALIZE_FETCH_TIMEOUT" envDefault:"10s"`
}

// dotenvOnce loads .env into the environment at most once per process.
// A missing .env file is not an error.
var dotenvOnce sync.Once

// LoadConfig parses Config from environment variables, loading a .env file
// first if one exists in the working directory.
func LoadConfig() (Config, error) {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse localize config: %w", err)
	}
	return cfg, nil
}

// MustLoadConfig is like LoadConfig but panics on failure. Useful at
// application startup where a missing endpoint is unrecoverable.
func MustLoadConfig() Config {
	cfg, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return cfg
}
