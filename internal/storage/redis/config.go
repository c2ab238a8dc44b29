package redis

import "time"

// Config holds Redis connection settings
type Config struct {
	// URL is the Redis connection URL, e.g. redis://localhost:6379/0
	URL string

	PoolSize     int
	MinIdleConns int

	// RecordTTL is how long an idle game record lives. A game's keys expire
	// together and every write renews all of them. Zero means no expiry.
	RecordTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		RecordTTL:    7 * 24 * time.Hour,
	}
}
