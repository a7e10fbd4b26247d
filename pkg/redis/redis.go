// Package redis builds the shared Redis client used for cross-replica locking.
package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yi-nology/opsboard/pkg/config"
)

const (
	defaultAddress = "localhost:6379"
	clientName     = "opsboard"
	pingTimeout    = 5 * time.Second
)

// Options maps the dashboard Redis settings onto go-redis options.
// Lock traffic is tiny, so the pool stays small.
func Options(cfg config.RedisConfig) *redis.Options {
	addr := cfg.Address
	if addr == "" {
		addr = defaultAddress
	}
	return &redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ClientName:   clientName,
		PoolSize:     4,
		MinIdleConns: 1,
		DialTimeout:  pingTimeout,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	}
}

// NewClient connects to Redis when it is enabled and verifies the connection.
// A disabled Redis yields a nil client, which callers treat as single-replica mode.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		log.Printf("[Init] redis disabled, seeding and writes run without distributed locks")
		return nil, nil
	}

	opts := Options(cfg)
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}

	log.Printf("[Init] redis connected: %s db=%d", opts.Addr, opts.DB)
	return client, nil
}
