package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuneworks/fortune/pkg/cache"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{
		Addr:           mr.Addr(),
		ConnectRetries: 1,
		RetryDelay:     10 * time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestConnect_EmptyAddr(t *testing.T) {
	_, err := Connect(context.Background(), Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestConnect_RetriesThenGivesUp(t *testing.T) {
	// Grab an address nothing listens on by closing a miniredis.
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	start := time.Now()
	_, err = Connect(context.Background(), Config{
		Addr:           addr,
		ConnectRetries: 3,
		RetryDelay:     20 * time.Millisecond,
		CallTimeout:    100 * time.Millisecond,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")

	// Two fixed-interval delays between the three attempts.
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestConnect_CanceledContext(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Connect(ctx, Config{
		Addr:           addr,
		ConnectRetries: 2,
		RetryDelay:     time.Minute,
		CallTimeout:    50 * time.Millisecond,
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestClient_GetSet(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "1", "a message"))

	msg, err := client.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "a message", msg)

	// The wire contract is the "fortunes" hash, field = id.
	assert.Equal(t, "a message", mr.HGet("fortunes", "1"))
}

func TestClient_GetMiss(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Get(context.Background(), "absent")
	require.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestClient_ListAll(t *testing.T) {
	client, mr := newTestClient(t)

	mr.HSet("fortunes", "1", "one")
	mr.HSet("fortunes", "2", "two")

	entries, err := client.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1": "one", "2": "two"}, entries)
}

func TestClient_ListAllEmpty(t *testing.T) {
	client, _ := newTestClient(t)

	entries, err := client.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClient_ErrorAfterServerGone(t *testing.T) {
	client, mr := newTestClient(t)
	mr.Close()

	_, err := client.Get(context.Background(), "1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, cache.ErrCacheMiss)

	assert.Error(t, client.Set(context.Background(), "1", "x"))

	_, err = client.ListAll(context.Background())
	assert.Error(t, err)
}
