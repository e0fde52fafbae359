package site

import "github.com/dogbodymind/go-site/internal/runtimeconfig"

// Config exports the runtime configuration consumed by New.
type Config = runtimeconfig.Config

// RouterConfig exports the domain router settings.
type RouterConfig = runtimeconfig.RouterConfig

// SanityConfig exports the Sanity client settings.
type SanityConfig = runtimeconfig.SanityConfig

// CacheConfig exports the query cache settings.
type CacheConfig = runtimeconfig.CacheConfig

// LoggingConfig exports the logging settings.
type LoggingConfig = runtimeconfig.LoggingConfig

// DefaultConfig returns a configuration with production defaults applied.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

var (
	// ErrDefaultLocaleInvalid indicates the configured default locale is not supported.
	ErrDefaultLocaleInvalid = runtimeconfig.ErrDefaultLocaleInvalid
	// ErrSanityProjectRequired indicates the Sanity project ID is missing.
	ErrSanityProjectRequired = runtimeconfig.ErrSanityProjectRequired
	// ErrSanityDatasetRequired indicates the Sanity dataset is missing.
	ErrSanityDatasetRequired = runtimeconfig.ErrSanityDatasetRequired
	// ErrLoggingProviderUnknown indicates an unrecognized logging provider name.
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
)
