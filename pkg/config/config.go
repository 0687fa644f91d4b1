package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is empty because every field names its variable in full.
const EnvPrefix = ""

// Environment variable names, exported for tests and tooling.
const (
	EnvAppEnv          = "LADYBIRD_APP_ENV"
	EnvLogLevel        = "LADYBIRD_LOG_LEVEL"
	EnvBackendURL      = "LADYBIRD_BACKEND_URL"
	EnvBackendTimeout  = "LADYBIRD_BACKEND_TIMEOUT"
	EnvAuthEmail       = "LADYBIRD_AUTH_EMAIL"
	EnvAuthPassword    = "LADYBIRD_AUTH_PASSWORD"
	EnvSearchDebounce  = "LADYBIRD_SEARCH_DEBOUNCE"
	EnvDiagnosticsAddr = "LADYBIRD_DIAGNOSTICS_ADDR"
)

type Config struct {
	App         AppConfig
	Backend     BackendConfig
	Auth        AuthConfig
	Search      SearchConfig
	Catalog     CatalogConfig
	Diagnostics DiagnosticsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LADYBIRD_APP_ENV" default:"local"`
	LogLevel     string `envconfig:"LADYBIRD_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LADYBIRD_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return !strings.EqualFold(a.Env, "production")
}

type BackendConfig struct {
	BaseURL string        `envconfig:"LADYBIRD_BACKEND_URL" required:"true"`
	Timeout time.Duration `envconfig:"LADYBIRD_BACKEND_TIMEOUT" default:"15s"`
}

func (b BackendConfig) validate() error {
	parsed, err := url.Parse(b.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("backend url %q is not an absolute url", b.BaseURL)
	}
	if b.Timeout <= 0 {
		return fmt.Errorf("backend timeout must be positive")
	}
	return nil
}

type AuthConfig struct {
	Email    string `envconfig:"LADYBIRD_AUTH_EMAIL" required:"true"`
	Password string `envconfig:"LADYBIRD_AUTH_PASSWORD" required:"true"`
}

type SearchConfig struct {
	Debounce time.Duration `envconfig:"LADYBIRD_SEARCH_DEBOUNCE" default:"300ms"`
}

type CatalogConfig struct {
	RetryAttempts uint64        `envconfig:"LADYBIRD_CATALOG_RETRY_ATTEMPTS" default:"3"`
	RetryBackoff  time.Duration `envconfig:"LADYBIRD_CATALOG_RETRY_BACKOFF" default:"500ms"`
}

type DiagnosticsConfig struct {
	Enabled bool   `envconfig:"LADYBIRD_DIAGNOSTICS_ENABLED" default:"true"`
	Addr    string `envconfig:"LADYBIRD_DIAGNOSTICS_ADDR" default:"127.0.0.1:9464"`
}
