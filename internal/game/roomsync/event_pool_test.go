package roomsync

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JoeShih716/go-room-server/internal/core/domain"
	pkgredis "github.com/JoeShih716/go-room-server/pkg/redis"
)

// fakePublisher 依呼叫順序記錄發布的訊息
type fakePublisher struct {
	mu       sync.Mutex
	channels []string
	messages [][]byte
}

func (f *fakePublisher) Publish(_ context.Context, channel string, message any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channels = append(f.channels, channel)
	f.messages = append(f.messages, message.([]byte))
	return nil
}

func (f *fakePublisher) decoded(t *testing.T) []domain.SyncEvent {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.SyncEvent, 0, len(f.messages))
	for _, msg := range f.messages {
		var ev domain.SyncEvent
		assert.NoError(t, json.Unmarshal(msg, &ev))
		out = append(out, ev)
	}
	return out
}

func TestEventPool_PublishOrder(t *testing.T) {
	pub := &fakePublisher{}
	pool := NewEventPool("game-1", "room-1", pub, nil)

	assert.NoError(t, pool.Start())

	pool.AddEvent(1, "spawn", []byte("a"))
	pool.AddEvent(2, "move", []byte("b"))
	pool.AddEvent(3, "attack", []byte("c"))

	// Stop 會等佇列清空，之後所有事件都已送出
	pool.Stop()

	events := pub.decoded(t)
	assert.Len(t, events, 3)
	assert.Equal(t, int64(1), events[0].FrameCount)
	assert.Equal(t, "spawn", events[0].Type)
	assert.Equal(t, []byte("a"), events[0].Payload)
	assert.Equal(t, int64(2), events[1].FrameCount)
	assert.Equal(t, int64(3), events[2].FrameCount)

	// 全部發到同一個房間頻道
	for _, ch := range pub.channels {
		assert.Equal(t, ChannelName("game-1", "room-1"), ch)
	}
}

func TestEventPool_AddBeforeStart(t *testing.T) {
	pub := &fakePublisher{}
	pool := NewEventPool("game-1", "room-1", pub, nil)

	// 未啟動前的事件直接丟棄
	pool.AddEvent(1, "spawn", []byte("a"))

	assert.NoError(t, pool.Start())
	pool.Stop()
	assert.Empty(t, pub.decoded(t))
}

func TestEventPool_AddAfterStop(t *testing.T) {
	pub := &fakePublisher{}
	pool := NewEventPool("game-1", "room-1", pub, nil)

	assert.NoError(t, pool.Start())
	pool.Stop()

	// 停止後的事件直接丟棄，重複 Stop 是 no-op
	pool.AddEvent(1, "spawn", []byte("a"))
	pool.Stop()

	assert.Empty(t, pub.decoded(t))
}

func TestEventPool_DoubleStart(t *testing.T) {
	pub := &fakePublisher{}
	pool := NewEventPool("game-1", "room-1", pub, nil)

	assert.NoError(t, pool.Start())
	assert.Error(t, pool.Start())
	pool.Stop()
}

// fakeChannelSubscriber 記錄訂閱並讓測試手動注入訊息
type fakeChannelSubscriber struct {
	channel string
	handler pkgredis.MessageHandler
}

func (f *fakeChannelSubscriber) Subscribe(_ context.Context, channel string, handler pkgredis.MessageHandler) error {
	f.channel = channel
	f.handler = handler
	return nil
}

func TestSubscriber_Listen(t *testing.T) {
	fake := &fakeChannelSubscriber{}
	sub := NewSubscriber(fake, nil)

	var got []domain.SyncEvent
	err := sub.Listen(context.Background(), "game-1", "room-1",
		func(frameCount int64, eventType string, payload []byte) {
			got = append(got, domain.SyncEvent{FrameCount: frameCount, Type: eventType, Payload: payload})
		})
	assert.NoError(t, err)
	assert.Equal(t, ChannelName("game-1", "room-1"), fake.channel)

	// 依序注入兩筆事件，交付順序必須一致
	for _, ev := range []domain.SyncEvent{
		{FrameCount: 7, Type: "spawn", Payload: []byte("a")},
		{FrameCount: 8, Type: "move", Payload: []byte("b")},
	} {
		data, err := json.Marshal(ev)
		assert.NoError(t, err)
		fake.handler(string(data))
	}

	assert.Len(t, got, 2)
	assert.Equal(t, int64(7), got[0].FrameCount)
	assert.Equal(t, "spawn", got[0].Type)
	assert.Equal(t, int64(8), got[1].FrameCount)

	// 壞訊息只告警不交付
	fake.handler("{not-json")
	assert.Len(t, got, 2)
}
