package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minSessionTTL keeps durable writes valid for tokens that are already at or past expiry.
const minSessionTTL = time.Second

// tokenExpiry reads the exp claim of a JWT bearer without verifying it.
// Opaque tokens report ok=false.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// boundTTL returns the configured TTL, shortened to the token's own expiry when it is sooner.
func boundTTL(token string, ttl time.Duration, now time.Time) time.Duration {
	exp, ok := tokenExpiry(token)
	if !ok {
		return ttl
	}
	remaining := exp.Sub(now)
	if remaining < minSessionTTL {
		return minSessionTTL
	}
	if remaining < ttl {
		return remaining
	}
	return ttl
}
