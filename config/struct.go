package config

// Config represents the on-disk configuration for the application. Every
// field has a code default, so the file itself is optional; environment
// variables and command-line flags override it.
type Config struct {
	// Timeout is the per-network-operation timeout, in seconds.
	Timeout float64 `json:"timeout" yaml:"timeout"`
	// Retry is the number of extra query attempts after the first one.
	Retry int `json:"retry" yaml:"retry"`
	// Workers is the number of concurrent domain checks in batch mode.
	Workers int `json:"workers" yaml:"workers"`
	// DefaultTLD is appended to inputs that carry no TLD of their own.
	DefaultTLD string `json:"defaultTld" yaml:"defaultTld"`
	// RootServer is the WHOIS directory queried for zone referrals.
	RootServer string `json:"rootServer" yaml:"rootServer"`
	// Port is the port the HTTP server listens on in serve mode.
	Port int `json:"port" yaml:"port"`
	// RateLimit is the maximum number of concurrent HTTP check requests.
	RateLimit int `json:"rateLimit" yaml:"rateLimit"`
	// CacheExpiration is the lifetime of cached check results, in seconds.
	CacheExpiration int `json:"cacheExpiration" yaml:"cacheExpiration"`

	// Redis holds the connection settings for the optional Redis cache.
	Redis struct {
		Addr     string `json:"addr" yaml:"addr"`
		Password string `json:"password" yaml:"password"`
		DB       int    `json:"db" yaml:"db"`
	} `json:"redis" yaml:"redis"`

	// Cache holds the settings for the cache layer.
	Cache struct {
		// RequireRedis refuses to start when Redis is unavailable
		// instead of falling back to the memory cache.
		RequireRedis bool `json:"requireRedis" yaml:"requireRedis"`
		// MemoryMaxSize bounds the number of in-memory cache entries.
		MemoryMaxSize int `json:"memoryMaxSize" yaml:"memoryMaxSize"`
		// MemoryCleanInterval is the sweep interval for expired
		// in-memory entries, in seconds. Zero disables the sweeper.
		MemoryCleanInterval int `json:"memoryCleanInterval" yaml:"memoryCleanInterval"`
	} `json:"cache" yaml:"cache"`
}
