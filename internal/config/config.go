package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAddr          = ":8080"
	DefaultQuoteAPI      = "https://api.quotable.io"
	DefaultFallbackDelay = 1500 * time.Millisecond
)

type Config struct {
	Addr          string
	QuoteAPI      string
	GitHubAPI     string // empty means public GitHub
	FallbackDelay time.Duration
	HTTPTimeout   time.Duration // zero means no timeout

	BasicUser     string
	BasicPassword string

	LogFile string
}

func Default() Config {
	return Config{
		Addr:          DefaultAddr,
		QuoteAPI:      DefaultQuoteAPI,
		FallbackDelay: DefaultFallbackDelay,
	}
}

// Load overlays .env and the process environment onto Default.
// A missing .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load(".env")
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests need not touch the
// process environment.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	if v := getenv("QUOTEWIDGET_ADDR"); v != "" {
		cfg.Addr = v
	}
	if p := getenv("PORT"); p != "" {
		cfg.Addr = ":" + p
	}
	if v := getenv("QUOTEWIDGET_QUOTE_API"); v != "" {
		cfg.QuoteAPI = strings.TrimRight(v, "/")
	}
	cfg.GitHubAPI = getenv("QUOTEWIDGET_GITHUB_API")
	if v := getenv("QUOTEWIDGET_FALLBACK_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return cfg, fmt.Errorf("config: QUOTEWIDGET_FALLBACK_DELAY %q: invalid duration", v)
		}
		cfg.FallbackDelay = d
	}
	if v := getenv("QUOTEWIDGET_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return cfg, fmt.Errorf("config: QUOTEWIDGET_HTTP_TIMEOUT %q: invalid duration", v)
		}
		cfg.HTTPTimeout = d
	}
	cfg.BasicUser = getenv("QUOTEWIDGET_BASIC_USER")
	cfg.BasicPassword = getenv("QUOTEWIDGET_BASIC_PASSWORD")
	cfg.LogFile = getenv("QUOTEWIDGET_LOG_FILE")
	return cfg, nil
}

// BasicAuthEnabled reports whether both Basic auth credentials are set.
func (c Config) BasicAuthEnabled() bool {
	return c.BasicUser != "" && c.BasicPassword != ""
}
