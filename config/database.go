package config

import "time"

// RedisConfig contains Redis configuration for operator session storage.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
}

// CacheConfig contains collection cache configuration.
type CacheConfig struct {
	// MaxAge marks cached collections stale after this long, even without a mutation.
	// Zero keeps collections fresh until invalidated.
	MaxAge time.Duration `env:"MAX_AGE" envDefault:"0s"`
}

// Sanitize clamps negative durations to zero.
func (c *CacheConfig) Sanitize() {
	if c.MaxAge < 0 {
		c.MaxAge = 0
	}
}
