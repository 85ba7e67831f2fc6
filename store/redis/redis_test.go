package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/kochabx/auth/store"
)

// testConfig 从环境变量取测试实例，未设置则跳过
func testConfig(t *testing.T) *Config {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skipf("REDIS_ADDR not set, skipping redis integration test")
	}

	return &Config{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	}
}

func TestConfigDefaults(t *testing.T) {
	c := &Config{}
	if err := c.Init(); err != nil {
		t.Fatal(err)
	}

	if c.Addr != "localhost:6379" {
		t.Errorf("Addr = %q", c.Addr)
	}
	if c.Protocol != 3 {
		t.Errorf("Protocol = %d", c.Protocol)
	}
	if c.DialTimeout != 5000 {
		t.Errorf("DialTimeout = %d", c.DialTimeout)
	}
}

func TestTokenStore(t *testing.T) {
	s, err := New(testConfig(t), WithTTL(time.Minute))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	key := "auth:test:refreshToken"

	if _, err := s.Get(ctx, key); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get missing key: err = %v, want store.ErrNotFound", err)
	}

	if err := s.Set(ctx, key, "token-1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, key)
	if err != nil || got != "token-1" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	if err := s.Remove(ctx, key); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := s.Get(ctx, key); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get after Remove: err = %v, want store.ErrNotFound", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	s, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := s.Ping(context.Background()); !errors.Is(err, ErrClientNotInitialized) {
		t.Errorf("Ping after Close: err = %v", err)
	}
}
