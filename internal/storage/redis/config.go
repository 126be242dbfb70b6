package redis

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string `env:"URL" envDefault:"redis://localhost:6379"`

	// Pool settings
	PoolSize     int `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns int `env:"MIN_IDLE_CONNS" envDefault:"2"`

	// MaxCreateRetries bounds optimistic-lock retries when assigning ids
	MaxCreateRetries int `env:"MAX_CREATE_RETRIES" envDefault:"10"`
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:              "redis://localhost:6379",
		PoolSize:         10,
		MinIdleConns:     2,
		MaxCreateRetries: 10,
	}
}
