package redis

import (
	"testing"
	"time"

	"github.com/ridgelinemoto/backend/pkg/config"
)

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when neither url nor address is set")
	}
}

func TestOptionsFromConfigParsesURL(t *testing.T) {
	cfg := config.RedisConfig{
		URL:          "redis://:secret@localhost:6380/2",
		PoolSize:     7,
		MinIdleConns: 3,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	}
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6380" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
	if opts.PoolSize != 7 {
		t.Fatalf("expected pool size from config, got %d", opts.PoolSize)
	}
}

func TestOptionsFromConfigAddressFallback(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{Address: "cache:6379", Password: "pw", DB: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "cache:6379" || opts.Password != "pw" || opts.DB != 1 {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestCacheKey(t *testing.T) {
	if got := CacheKey("vehicle_models", "make-7"); got != "rl:cache:vehicle_models:make-7" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := CacheKey("vehicle_makes", ""); got != "rl:cache:vehicle_makes:all" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestNilClientGuards(t *testing.T) {
	var c *Client
	if err := c.Ping(t.Context()); err == nil {
		t.Fatal("expected error from nil client")
	}
	if _, err := c.Get(t.Context(), "k"); err == nil {
		t.Fatal("expected error from nil client")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("nil close should be a no-op, got %v", err)
	}
}
