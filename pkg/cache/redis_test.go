package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), Config{Host: mr.Host(), Port: mr.Port()}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { Close(client) })

	return NewIdempotencyStore(client, ttl), mr
}

func TestIdempotencyStore_LoadMiss(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)

	data, found, err := store.Load(context.Background(), "abc")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, data)
}

func TestIdempotencyStore_SaveKeepsFirstPayload(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", []byte(`{"first":true}`)))
	require.NoError(t, store.Save(ctx, "abc", []byte(`{"first":false}`)))

	data, found, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"first":true}`, string(data))
}

func TestIdempotencyStore_Expires(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", []byte("x")))
	mr.FastForward(2 * time.Minute)

	_, found, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestIdempotencyStore_ReserveIsExclusive(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)
	ctx := context.Background()

	ok, err := store.Reserve(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Reserve(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok, "second reservation must fail while the first is held")

	ok, err = store.Reserve(ctx, "other")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Release(ctx, "abc"))
	ok, err = store.Reserve(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIdempotencyStore_ReservationExpires(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	ok, err := store.Reserve(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(inFlightTTL + time.Second)

	ok, err = store.Reserve(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIdempotencyStore_ReserveDoesNotTouchPayload(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)
	ctx := context.Background()

	_, err := store.Reserve(ctx, "abc")
	require.NoError(t, err)

	_, found, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	_, err := NewRedisClient(context.Background(), Config{Host: host, Port: port, DialTimeout: 100 * time.Millisecond}, nil)
	assert.Error(t, err)
}
