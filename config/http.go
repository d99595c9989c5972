package config

import "time"

const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 120 * time.Second
	defaultMinGzipSize  = 512
)

// HTTPConfig contains the admin UI server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// CookieDomain scopes the session and CSRF cookies. Empty means the request host.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// CookieSecure marks cookies Secure even when TLS terminates upstream.
	CookieSecure bool `env:"APP_COOKIE_SECURE" envDefault:"false"`

	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT"  envDefault:"30s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT"  envDefault:"120s"`

	// CompressionEnabled gzips text responses of at least CompressionMinSize bytes.
	CompressionEnabled bool `env:"HTTP_COMPRESSION_ENABLED"  envDefault:"false"`
	CompressionLevel   int  `env:"HTTP_COMPRESSION_LEVEL"    envDefault:"6"`
	CompressionMinSize int  `env:"HTTP_COMPRESSION_MIN_SIZE" envDefault:"512"`
}

// Sanitize clamps the gzip level to 1-9 and restores non-positive timeouts.
func (h *HTTPConfig) Sanitize() {
	h.CompressionLevel = min(max(h.CompressionLevel, 1), 9)
	if h.CompressionMinSize < 0 {
		h.CompressionMinSize = defaultMinGzipSize
	}
	if h.ReadTimeout <= 0 {
		h.ReadTimeout = defaultReadTimeout
	}
	if h.WriteTimeout <= 0 {
		h.WriteTimeout = defaultWriteTimeout
	}
	if h.IdleTimeout <= 0 {
		h.IdleTimeout = defaultIdleTimeout
	}
}
