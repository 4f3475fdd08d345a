package center

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/JoeShih716/go-room-server/internal/game/match"
)

// fakeStore 用記憶體 map 模擬中心儲存
type fakeStore struct {
	data map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (f *fakeStore) SetStruct(_ context.Context, key string, value any, _ ...time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = data
	return nil
}

func (f *fakeStore) GetStruct(_ context.Context, key string, dest any) error {
	data, ok := f.data[key]
	if !ok {
		return redis.Nil
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func TestHelper_PersistRoomSupervisor(t *testing.T) {
	store := newFakeStore()
	registry := match.NewRegistry(nil)
	helper := NewHelper(store, registry, nil)
	ctx := context.Background()

	registry.SetRoomSupervisor("game-1", "room-1", []string{"node-a", "node-b"})

	assert.NoError(t, helper.PersistRoomSupervisor(ctx, "game-1", "room-1"))

	// 落地成功後暫存項被清除
	_, found := registry.GetRoomSupervisor("game-1", "room-1")
	assert.False(t, found)

	nodes, err := helper.LoadRoomSupervisor(ctx, "game-1", "room-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"node-a", "node-b"}, nodes)
}

func TestHelper_PersistRoomSupervisor_NotStaged(t *testing.T) {
	helper := NewHelper(newFakeStore(), match.NewRegistry(nil), nil)

	err := helper.PersistRoomSupervisor(context.Background(), "game-1", "room-1")
	assert.Error(t, err)
}

func TestHelper_LoadRoomSupervisor_NotFound(t *testing.T) {
	helper := NewHelper(newFakeStore(), match.NewRegistry(nil), nil)

	_, err := helper.LoadRoomSupervisor(context.Background(), "game-1", "room-1")
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestHelper_DeleteRoomSupervisor(t *testing.T) {
	store := newFakeStore()
	registry := match.NewRegistry(nil)
	helper := NewHelper(store, registry, nil)
	ctx := context.Background()

	registry.SetRoomSupervisor("game-1", "room-1", []string{"node-a"})
	assert.NoError(t, helper.PersistRoomSupervisor(ctx, "game-1", "room-1"))

	assert.NoError(t, helper.DeleteRoomSupervisor(ctx, "game-1", "room-1"))

	_, err := helper.LoadRoomSupervisor(ctx, "game-1", "room-1")
	assert.ErrorIs(t, err, ErrAssignmentNotFound)

	key := fmt.Sprintf(KeyRoomSupervisor, "game-1", "room-1")
	_, ok := store.data[key]
	assert.False(t, ok)
}
