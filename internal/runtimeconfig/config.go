package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dogbodymind/go-site/internal/locale"
)

var (
	ErrDefaultLocaleInvalid   = errors.New("site config: default locale is not supported")
	ErrSanityProjectRequired  = errors.New("site config: sanity project id is required")
	ErrSanityDatasetRequired  = errors.New("site config: sanity dataset is required")
	ErrCacheTTLInvalid        = errors.New("site config: cache ttl must be zero or positive")
	ErrCacheCapacityInvalid   = errors.New("site config: cache capacity must be zero or positive")
	ErrLoggingProviderUnknown = errors.New("site config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("site config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("site config: logging format is invalid")
)

// Config aggregates runtime settings for the site module. Fields use simple
// types so host applications can layer their own loading on top.
type Config struct {
	DefaultLocale string
	Router        RouterConfig
	Sanity        SanityConfig
	Cache         CacheConfig
	Logging       LoggingConfig
}

// RouterConfig captures the locale routing policy.
type RouterConfig struct {
	// AllowCrossDomain permits serving a non-default locale's content on a
	// non-canonical domain instead of redirecting.
	AllowCrossDomain bool
}

// SanityConfig identifies the hosted content dataset.
type SanityConfig struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool
	// BaseURL overrides the derived endpoint; used in tests.
	BaseURL string
}

// CacheConfig captures query-cache behaviour.
type CacheConfig struct {
	Enabled    bool
	Capacity   int
	DefaultTTL time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns opinionated defaults for production use.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: locale.Default.String(),
		Router:        RouterConfig{},
		Sanity: SanityConfig{
			Dataset: "production",
			UseCDN:  true,
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if !locale.IsSupported(cfg.DefaultLocale) {
		return fmt.Errorf("%w: %q", ErrDefaultLocaleInvalid, cfg.DefaultLocale)
	}
	if strings.TrimSpace(cfg.Sanity.ProjectID) == "" {
		return ErrSanityProjectRequired
	}
	if strings.TrimSpace(cfg.Sanity.Dataset) == "" {
		return ErrSanityDatasetRequired
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Cache.Capacity < 0 {
		return ErrCacheCapacityInvalid
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Logging.Provider))
	switch provider {
	case "", "noop", "gologger":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
