package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: Remote shop API and session configuration
//   - database.go: Redis and collection cache configuration
//   - http.go: HTTP server configuration
//   - observability.go: Metrics configuration
type AppConfig struct {
	// IsDev controls development mode behavior (template reloading, verbose logs).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Remote shop API configuration
	API APIConfig `envPrefix:"API_"`

	// Operator session configuration
	Session SessionConfig `envPrefix:"SESSION_"`

	// Session storage and collection cache configuration
	Redis RedisConfig `envPrefix:"REDIS_"`
	Cache CacheConfig `envPrefix:"CACHE_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Locale configuration
	Locale LocaleConfig `envPrefix:"LOCALE_"`

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.API.Sanitize()
	c.Session.Sanitize()
	c.Cache.Sanitize()
	c.Locale.Sanitize()
	c.Observability.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// LocaleConfig controls the operator language used for collation and number formatting.
type LocaleConfig struct {
	// Language is a BCP 47 tag, e.g. "fa" or "en".
	Language string `env:"LANGUAGE" envDefault:"fa"`
}

// Sanitize trims the language tag and restores the default when empty.
func (l *LocaleConfig) Sanitize() {
	l.Language = strings.TrimSpace(l.Language)
	if l.Language == "" {
		l.Language = "fa"
	}
}
