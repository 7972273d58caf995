package room

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/secret-duel/internal/game"
	"github.com/palemoky/secret-duel/internal/game/dice"
	"github.com/palemoky/secret-duel/internal/server/storage"
	"github.com/palemoky/secret-duel/internal/testutil"
)

func TestRoomManager_MirrorsToRedis(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := storage.NewRedisStore(client)

	rm := NewRoomManager(store, dice.NewSequence(6), time.Minute)
	t.Cleanup(rm.Close)

	host := testutil.NewSimpleClient("host")
	room, err := rm.CreateRoom(host, "Alice", game.KindCapture)
	require.NoError(t, err)
	require.NoError(t, rm.SetSecret(host, room.Code, "top-secret"))

	var data *storage.RoomData
	require.Eventually(t, func() bool {
		data, err = store.LoadRoom(context.Background(), room.Code)
		return err == nil && data != nil && len(data.Players) == 1 && data.Players[0].SecretSet
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, "capture", data.GameKind)
	assert.Equal(t, string(StatusLobby), data.Status)
	assert.Equal(t, "Alice", data.Players[0].Name)

	raw, err := mr.Get("duel:room:" + room.Code)
	require.NoError(t, err)
	assert.NotContains(t, raw, "top-secret")

	require.NoError(t, rm.LeaveRoom(host))
	assert.Eventually(t, func() bool {
		return !mr.Exists("duel:room:" + room.Code)
	}, time.Second, 10*time.Millisecond)
}

func TestRoomManager_StoreErrorsAreNotFatal(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	count := func(mock.Arguments) { calls.Add(1) }

	store := &testutil.MockRoomStore{}
	store.On("SaveRoom", mock.Anything, mock.Anything).Run(count).Return(assert.AnError)
	store.On("DeleteRoom", mock.Anything, mock.Anything).Run(count).Return(assert.AnError)

	rm := NewRoomManager(store, nil, time.Minute)
	t.Cleanup(rm.Close)

	host := testutil.NewSimpleClient("host")
	room, err := rm.CreateRoom(host, "Alice", game.KindRace)
	require.NoError(t, err)
	require.NoError(t, rm.LeaveRoom(host))

	assert.Nil(t, rm.GetRoom(room.Code))
	assert.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, time.Second, 10*time.Millisecond)
}

// stallingStore blocks every write until released, remembering the last save per room.
type stallingStore struct {
	release chan struct{}
	writes  atomic.Int32

	mu   sync.Mutex
	last map[string]*storage.RoomData
}

func newStallingStore() *stallingStore {
	return &stallingStore{release: make(chan struct{}), last: make(map[string]*storage.RoomData)}
}

func (s *stallingStore) wait(ctx context.Context) {
	s.writes.Add(1)
	select {
	case <-s.release:
	case <-ctx.Done():
	}
}

func (s *stallingStore) SaveRoom(ctx context.Context, data *storage.RoomData) error {
	s.wait(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[data.Code] = data
	return nil
}

func (s *stallingStore) DeleteRoom(ctx context.Context, code string) error {
	s.wait(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.last, code)
	return nil
}

func (s *stallingStore) saved(code string) *storage.RoomData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last[code]
}

func TestRoomManager_SlowStoreDoesNotBlockRooms(t *testing.T) {
	t.Parallel()

	store := newStallingStore()
	rm := NewRoomManager(store, nil, time.Minute)
	t.Cleanup(rm.Close)

	host := testutil.NewSimpleClient("host")
	room, err := rm.CreateRoom(host, "Alice", game.KindRace)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return store.writes.Load() >= 1 }, time.Second, 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 1000 {
			_ = rm.SetSecret(host, room.Code, "secret")
		}
		other := testutil.NewSimpleClient("other")
		_, _ = rm.CreateRoom(other, "Bob", game.KindCapture)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("room actions blocked behind a stalled store")
	}

	// writes for one room are coalesced, the latest state lands once released
	close(store.release)
	assert.Eventually(t, func() bool {
		data := store.saved(room.Code)
		return data != nil && len(data.Players) == 1 && data.Players[0].SecretSet
	}, 5*time.Second, 10*time.Millisecond)
	assert.Less(t, store.writes.Load(), int32(10))
}
