package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)

	if cfg.Timeout != 6 {
		t.Errorf("default timeout = %v; want 6", cfg.Timeout)
	}
	if cfg.Retry != 1 {
		t.Errorf("default retry = %d; want 1", cfg.Retry)
	}
	if cfg.Workers != 10 {
		t.Errorf("default workers = %d; want 10", cfg.Workers)
	}
	if cfg.DefaultTLD != "com" {
		t.Errorf("default TLD = %q; want com", cfg.DefaultTLD)
	}
	if cfg.RootServer != "whois.iana.org" {
		t.Errorf("default root server = %q; want whois.iana.org", cfg.RootServer)
	}
	if cfg.Cache.MemoryMaxSize != 10000 {
		t.Errorf("default memory max size = %d; want 10000", cfg.Cache.MemoryMaxSize)
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	var cfg Config
	cfg.Timeout = 2.5
	cfg.Workers = 3
	cfg.DefaultTLD = "net"
	applyDefaults(&cfg)

	if cfg.Timeout != 2.5 || cfg.Workers != 3 || cfg.DefaultTLD != "net" {
		t.Errorf("explicit values were overwritten: %+v", cfg)
	}
}

func TestOverrideConfigWithEnv(t *testing.T) {
	t.Setenv("DOMNIX_TIMEOUT", "3.5")
	t.Setenv("DOMNIX_WORKERS", "4")
	t.Setenv("DOMNIX_DEFAULT_TLD", "org")
	t.Setenv("DOMNIX_REDIS_ADDR", "redis.internal:6379")
	t.Setenv("DOMNIX_REQUIRE_REDIS", "true")

	var cfg Config
	overrideConfigWithEnv(&cfg)

	if cfg.Timeout != 3.5 {
		t.Errorf("timeout = %v; want 3.5", cfg.Timeout)
	}
	if cfg.Workers != 4 {
		t.Errorf("workers = %d; want 4", cfg.Workers)
	}
	if cfg.DefaultTLD != "org" {
		t.Errorf("default TLD = %q; want org", cfg.DefaultTLD)
	}
	if cfg.Redis.Addr != "redis.internal:6379" {
		t.Errorf("redis addr = %q; want redis.internal:6379", cfg.Redis.Addr)
	}
	if !cfg.Cache.RequireRedis {
		t.Error("expected RequireRedis to be set")
	}
}

func TestOverrideConfigWithEnvIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("DOMNIX_WORKERS", "lots")

	cfg := Config{Workers: 7}
	overrideConfigWithEnv(&cfg)

	if cfg.Workers != 7 {
		t.Errorf("workers = %d; malformed env value should be ignored", cfg.Workers)
	}
}

func TestLoadConfigFromFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "timeout: 2\nworkers: 5\ndefaultTld: io\nredis:\n  addr: 127.0.0.1:6390\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var cfg Config
	if err := loadConfigFromFile(&cfg, path); err != nil {
		t.Fatalf("loadConfigFromFile: %v", err)
	}
	if cfg.Timeout != 2 || cfg.Workers != 5 || cfg.DefaultTLD != "io" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Redis.Addr != "127.0.0.1:6390" {
		t.Errorf("redis addr = %q; want 127.0.0.1:6390", cfg.Redis.Addr)
	}
}

func TestLoadConfigFromFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"timeout": 4, "workers": 2, "defaultTld": "dev"}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var cfg Config
	if err := loadConfigFromFile(&cfg, path); err != nil {
		t.Fatalf("loadConfigFromFile: %v", err)
	}
	if cfg.Timeout != 4 || cfg.Workers != 2 || cfg.DefaultTLD != "dev" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigFromFileMissingExplicitPath(t *testing.T) {
	var cfg Config
	if err := loadConfigFromFile(&cfg, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for an explicit missing path")
	}
}

func TestLoadConfigFromFileUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("timeout = 2"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var cfg Config
	if err := loadConfigFromFile(&cfg, path); err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}
