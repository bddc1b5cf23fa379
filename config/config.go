// Package config loads the application configuration and owns the shared
// cache and Redis handles built from it.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/domnix/domnix/utils"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// discardLogger silences the Redis client's internal logging; connection
// failures are already reported through the cache health checks.
type discardLogger struct{}

func (l *discardLogger) Printf(ctx context.Context, format string, v ...interface{}) {}

var (
	// Version information - read from build info (Go 1.18+)
	Version   string
	BuildTime string
	GitCommit string

	// Settings is the effective configuration after file, env and defaults.
	Settings Config
	// RedisClient is the Redis client, nil until Init runs.
	RedisClient *redis.Client
	// CacheManager is the unified cache with Redis-primary, memory-fallback.
	CacheManager utils.Cache
	// CacheExpiration is the lifetime of cached check results.
	CacheExpiration time.Duration
)

// Init loads configuration from the given file (or config.yaml/config.json
// in the working directory when path is empty), applies environment
// overrides and defaults, and wires up the cache backends.
func Init(path string) error {
	initVersionInfo()

	var cfg Config
	if err := loadConfigFromFile(&cfg, path); err != nil {
		return err
	}
	overrideConfigWithEnv(&cfg)
	applyDefaults(&cfg)
	Settings = cfg

	RedisClient = redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.Addr,
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.DB,
		PoolSize:        10,
		MaxRetries:      1,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     2 * time.Second,
		ReadTimeout:     2 * time.Second,
		WriteTimeout:    2 * time.Second,
		PoolTimeout:     2 * time.Second,
	})
	redis.SetLogger(&discardLogger{})

	CacheExpiration = time.Duration(cfg.CacheExpiration) * time.Second

	redisCache := utils.NewRedisCache(RedisClient)
	memoryCache := utils.NewMemoryCache(
		cfg.Cache.MemoryMaxSize,
		time.Duration(cfg.Cache.MemoryCleanInterval)*time.Second,
	)
	CacheManager = utils.NewFallbackCache(redisCache, memoryCache)

	if redisCache.IsHealthy() {
		log.Println("Redis cache initialized")
	} else {
		if cfg.Cache.RequireRedis {
			return fmt.Errorf("redis is required but unavailable at %s", cfg.Redis.Addr)
		}
		log.Println("Redis unavailable, using memory cache")
	}

	return nil
}

// loadConfigFromFile decodes a YAML or JSON config file into cfg. A missing
// file is not an error when no explicit path was given; the tool has to run
// with flags and defaults alone.
func loadConfigFromFile(cfg *Config, path string) error {
	var file *os.File
	var err error

	if path != "" {
		file, err = os.Open(path)
		if err != nil {
			return fmt.Errorf("open configuration file: %w", err)
		}
	} else {
		file, err = os.Open("config.yaml")
		if err != nil {
			file, err = os.Open("config.json")
			if err != nil {
				return nil
			}
		}
	}
	defer file.Close()

	switch ext := strings.ToLower(filepath.Ext(file.Name())); ext {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
			return fmt.Errorf("decode YAML configuration: %w", err)
		}
	case ".json":
		if err := json.NewDecoder(file).Decode(cfg); err != nil {
			return fmt.Errorf("decode JSON configuration: %w", err)
		}
	default:
		return fmt.Errorf("unsupported configuration file format: %s", ext)
	}
	return nil
}

// overrideConfigWithEnv applies DOMNIX_* environment variables on top of the
// file configuration.
func overrideConfigWithEnv(cfg *Config) {
	if addr := os.Getenv("DOMNIX_REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("DOMNIX_REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if db := os.Getenv("DOMNIX_REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			cfg.Redis.DB = n
		}
	}
	if timeout := os.Getenv("DOMNIX_TIMEOUT"); timeout != "" {
		if f, err := strconv.ParseFloat(timeout, 64); err == nil {
			cfg.Timeout = f
		}
	}
	if retry := os.Getenv("DOMNIX_RETRY"); retry != "" {
		if n, err := strconv.Atoi(retry); err == nil {
			cfg.Retry = n
		}
	}
	if workers := os.Getenv("DOMNIX_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil {
			cfg.Workers = n
		}
	}
	if tld := os.Getenv("DOMNIX_DEFAULT_TLD"); tld != "" {
		cfg.DefaultTLD = tld
	}
	if root := os.Getenv("DOMNIX_ROOT_SERVER"); root != "" {
		cfg.RootServer = root
	}
	if port := os.Getenv("DOMNIX_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.Port = n
		}
	}
	if limit := os.Getenv("DOMNIX_RATE_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			cfg.RateLimit = n
		}
	}
	if exp := os.Getenv("DOMNIX_CACHE_EXPIRATION"); exp != "" {
		if n, err := strconv.Atoi(exp); err == nil {
			cfg.CacheExpiration = n
		}
	}
	if require := os.Getenv("DOMNIX_REQUIRE_REDIS"); require != "" {
		cfg.Cache.RequireRedis = require == "true" || require == "1"
	}
}

// applyDefaults fills in every unset field.
func applyDefaults(cfg *Config) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 6
	}
	if cfg.Retry < 0 {
		cfg.Retry = 0
	} else if cfg.Retry == 0 {
		cfg.Retry = 1
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 10
	}
	if cfg.DefaultTLD == "" {
		cfg.DefaultTLD = "com"
	}
	if cfg.RootServer == "" {
		cfg.RootServer = "whois.iana.org"
	}
	if cfg.Port <= 0 {
		cfg.Port = 8043
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 50
	}
	if cfg.CacheExpiration <= 0 {
		cfg.CacheExpiration = 3600
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "127.0.0.1:6379"
	}
	if cfg.Cache.MemoryMaxSize <= 0 {
		cfg.Cache.MemoryMaxSize = 10000
	}
	if cfg.Cache.MemoryCleanInterval < 0 {
		cfg.Cache.MemoryCleanInterval = 0
	} else if cfg.Cache.MemoryCleanInterval == 0 {
		cfg.Cache.MemoryCleanInterval = 300
	}
}

// Timeout returns the per-operation timeout as a Duration.
func Timeout() time.Duration {
	return time.Duration(Settings.Timeout * float64(time.Second))
}

// initVersionInfo reads version information from Go build info
// This works automatically with `go build` (Go 1.18+)
func initVersionInfo() {
	Version = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if len(setting.Value) >= 7 {
				GitCommit = setting.Value[:7]
			} else {
				GitCommit = setting.Value
			}
		case "vcs.time":
			BuildTime = setting.Value
		case "vcs.modified":
			if setting.Value == "true" {
				GitCommit += "-dirty"
			}
		}
	}
}
