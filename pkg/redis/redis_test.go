package redis

import (
	"context"
	"testing"

	"github.com/yi-nology/opsboard/pkg/config"
)

func TestNewClientDisabled(t *testing.T) {
	client, err := NewClient(context.Background(), config.RedisConfig{Enabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client != nil {
		t.Fatalf("expected nil client when redis is disabled")
	}
}

func TestOptions(t *testing.T) {
	opts := Options(config.RedisConfig{Password: "secret", DB: 3})
	if opts.Addr != defaultAddress {
		t.Fatalf("expected default address, got %s", opts.Addr)
	}
	if opts.Password != "secret" || opts.DB != 3 {
		t.Fatalf("credentials not carried over: %+v", opts)
	}
	if opts.ClientName != clientName {
		t.Fatalf("expected client name %s, got %s", clientName, opts.ClientName)
	}

	opts = Options(config.RedisConfig{Address: "cache:6380"})
	if opts.Addr != "cache:6380" {
		t.Fatalf("expected configured address, got %s", opts.Addr)
	}
}
