package config

import (
	"strings"
	"time"
)

const (
	defaultAPIBaseURL   = "http://localhost:4000/api"
	defaultAssetBaseURL = "http://localhost:4000"
	defaultAPITimeout   = 15 * time.Second
	defaultSessionTTL   = 12 * time.Hour
	defaultCookieName   = "shopadmin_sid"
)

// APIConfig describes how to reach the remote shop API.
type APIConfig struct {
	// BaseURL is prefixed to every resource path, e.g. "https://shop.example.com/api".
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:4000/api"`

	// AssetBaseURL resolves relative upload paths returned by the API for previews.
	AssetBaseURL string `env:"ASSET_BASE_URL" envDefault:"http://localhost:4000"`

	// Timeout bounds a single request/response round trip.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Sanitize trims URLs and restores defaults for empty or invalid values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.BaseURL == "" {
		a.BaseURL = defaultAPIBaseURL
	}
	a.AssetBaseURL = strings.TrimRight(strings.TrimSpace(a.AssetBaseURL), "/")
	if a.AssetBaseURL == "" {
		a.AssetBaseURL = defaultAssetBaseURL
	}
	if a.Timeout <= 0 {
		a.Timeout = defaultAPITimeout
	}
}

// SessionConfig controls how long operator sessions are kept in durable storage.
type SessionConfig struct {
	// TTL is the upper bound on session lifetime. A token expiry claim may shorten it.
	TTL time.Duration `env:"TTL" envDefault:"12h"`

	// CookieName is the browser cookie that carries the session identifier.
	CookieName string `env:"COOKIE_NAME" envDefault:"shopadmin_sid"`
}

// Sanitize restores defaults for empty or invalid values.
func (s *SessionConfig) Sanitize() {
	if s.TTL <= 0 {
		s.TTL = defaultSessionTTL
	}
	s.CookieName = strings.TrimSpace(s.CookieName)
	if s.CookieName == "" {
		s.CookieName = defaultCookieName
	}
}
