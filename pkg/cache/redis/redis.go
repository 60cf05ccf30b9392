package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fortuneworks/fortune/pkg/cache"
)

// fortunesKey is the hash holding all fortunes (field = id, value = message).
// It is the wire contract with existing deployments and must not change.
const fortunesKey = "fortunes"

const (
	defaultConnectRetries = 5
	defaultRetryDelay     = 2 * time.Second
	defaultCallTimeout    = 5 * time.Second
)

// Config holds connection parameters for the fortune cache.
type Config struct {
	// Addr is the host:port of the redis server. Connect rejects an empty
	// address; callers decide up front whether the cache is configured at all.
	Addr string

	// ConnectRetries, RetryDelay and CallTimeout default to 5, 2s and 5s
	// when zero. The retry interval is deliberately fixed (no backoff, no
	// jitter) so startup time stays predictable in constrained environments.
	ConnectRetries int
	RetryDelay     time.Duration
	CallTimeout    time.Duration
}

// Client is a cache.Cache backed by a redis hash. The embedded go-redis
// client is safe for concurrent use; the handle itself is never mutated
// after Connect returns, so it may be shared freely.
type Client struct {
	rdb         *redis.Client
	callTimeout time.Duration
}

var _ cache.Cache = (*Client)(nil)

// Connect establishes connectivity to redis, retrying a bounded number of
// times at a fixed interval. On exhaustion it returns an error and the
// caller is expected to run without a cache for the rest of the process
// lifetime; there is no later re-probing.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address not configured")
	}

	retries := cfg.ConnectRetries
	if retries <= 0 {
		retries = defaultConnectRetries
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}
	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr})

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			logrus.WithField("addr", cfg.Addr).Info("connected to redis")
			return &Client{rdb: rdb, callTimeout: timeout}, nil
		}
		lastErr = err
		logrus.WithFields(logrus.Fields{
			"addr":    cfg.Addr,
			"attempt": attempt,
		}).WithError(err).Error("redis connection failed")

		if attempt < retries {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				_ = rdb.Close()
				return nil, ctx.Err()
			}
		}
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", retries, lastErr)
}

// Get returns the message stored under id in the fortunes hash.
func (c *Client) Get(ctx context.Context, id string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	msg, err := c.rdb.HGet(ctx, fortunesKey, id).Result()
	if err == redis.Nil {
		return "", cache.ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("redis hget failed: %w", err)
	}
	return msg, nil
}

// Set stores message under id in the fortunes hash.
func (c *Client) Set(ctx context.Context, id, message string) error {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	if err := c.rdb.HSet(ctx, fortunesKey, id, message).Err(); err != nil {
		return fmt.Errorf("redis hset failed: %w", err)
	}
	return nil
}

// ListAll returns the full contents of the fortunes hash.
func (c *Client) ListAll(ctx context.Context) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	entries, err := c.rdb.HGetAll(ctx, fortunesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}
	return entries, nil
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}
