package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestNotifier_NilRedisIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.False(t, n.Enabled())
	assert.NoError(t, n.PublishBroadcast(context.Background(), "payload"))
	assert.NoError(t, n.StartBroadcastSubscriber(context.Background(), func(string) {
		t.Fatal("unexpected message")
	}))
}

func TestNotifier_BroadcastRoundTrip(t *testing.T) {
	n := NewNotifier(newTestRedis(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payloads := make(chan string, 1)
	require.NoError(t, n.StartBroadcastSubscriber(ctx, func(payload string) {
		payloads <- payload
	}))
	require.NoError(t, n.PublishBroadcast(ctx, `{"type":"post_created"}`))

	select {
	case got := <-payloads:
		assert.Equal(t, `{"type":"post_created"}`, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestNotifier_SubscriberSurvivesPanic(t *testing.T) {
	n := NewNotifier(newTestRedis(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payloads := make(chan string, 2)
	require.NoError(t, n.StartBroadcastSubscriber(ctx, func(payload string) {
		if payload == "boom" {
			panic("handler failure")
		}
		payloads <- payload
	}))
	require.NoError(t, n.PublishBroadcast(ctx, "boom"))
	require.NoError(t, n.PublishBroadcast(ctx, "after"))

	select {
	case got := <-payloads:
		assert.Equal(t, "after", got)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber stopped after panic")
	}
}
