package names

// Config holds configuration for the item name resolver.
type Config struct {
	// CacheTTLSeconds is how long a resolution attempt suppresses further store and remote reads.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"30"`
	// CacheSize bounds the number of items remembered by the resolver.
	CacheSize int `mapstructure:"cache_size" default:"10000"`
}
