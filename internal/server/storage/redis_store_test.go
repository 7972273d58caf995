package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_SaveLoadDeleteRoom(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	roomData := &RoomData{
		Code:     "ABC123",
		GameKind: "race",
		Status:   "lobby",
		Players: []PlayerData{
			{ID: "p1", Name: "Alice", IsHost: true, SecretSet: true},
		},
		CreatedAt: time.Now().Unix(),
	}

	require.NoError(t, store.SaveRoom(ctx, roomData))
	assert.True(t, mr.Exists(roomKeyPrefix+"ABC123"))
	assert.Positive(t, mr.TTL(roomKeyPrefix+"ABC123"))

	loaded, err := store.LoadRoom(ctx, "ABC123")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, roomData.Code, loaded.Code)
	assert.Equal(t, roomData.Players, loaded.Players)

	codes, err := store.GetAllRoomCodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC123"}, codes)

	require.NoError(t, store.DeleteRoom(ctx, "ABC123"))

	loaded, err = store.LoadRoom(ctx, "ABC123")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_CorruptData(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	require.NoError(t, mr.Set(roomKeyPrefix+"BAD", "{not json"))

	_, err := store.LoadRoom(context.Background(), "BAD")
	assert.Error(t, err)
}

func TestRedisStore_NilClient(t *testing.T) {
	t.Parallel()

	store := NewRedisStore(nil)
	ctx := context.Background()

	assert.NoError(t, store.SaveRoom(ctx, &RoomData{Code: "X"}))
	assert.NoError(t, store.DeleteRoom(ctx, "X"))
	assert.NoError(t, store.Ping(ctx))

	data, err := store.LoadRoom(ctx, "X")
	assert.NoError(t, err)
	assert.Nil(t, data)
}
