package roomsvc

import (
	"context"
	"log/slog"
	"sync"

	"github.com/JoeShih716/go-room-server/internal/core/ports"
	"github.com/JoeShih716/go-room-server/internal/game/room"
	"github.com/JoeShih716/go-room-server/internal/game/roomsync"
)

// Follower 讓監督節點跟隨 Logic 房間的同步頻道。
// 每個被跟隨的房間持有一個可取消的訂閱，房間關閉時一併取消。
type Follower struct {
	ctx        context.Context
	rooms      *room.Manager
	subscriber *roomsync.Subscriber

	mu      sync.Mutex
	cancels map[string]context.CancelFunc // Map[roomID]cancel

	logger *slog.Logger
}

// NewFollower 建立監督端的同步跟隨器
func NewFollower(ctx context.Context, rooms *room.Manager,
	subscriber *roomsync.Subscriber, logger *slog.Logger) *Follower {
	if logger == nil {
		logger = slog.Default()
	}
	return &Follower{
		ctx:        ctx,
		rooms:      rooms,
		subscriber: subscriber,
		cancels:    make(map[string]context.CancelFunc),
		logger:     logger.With("component", "sync_follower"),
	}
}

// Follow 訂閱指定房間的同步頻道，事件交付給監督房間重放
func (f *Follower) Follow(roomID string) error {
	target, ok := f.rooms.GetRoom(roomID)
	if !ok {
		return ports.ErrRoomNotFound
	}

	subCtx, cancel := context.WithCancel(f.ctx)

	err := f.subscriber.Listen(subCtx, target.GameID(), roomID,
		func(frameCount int64, eventType string, payload []byte) {
			target.RecvEventFromLogic(frameCount, eventType, payload)
		})
	if err != nil {
		cancel()
		return err
	}

	f.mu.Lock()
	if old, exists := f.cancels[roomID]; exists {
		old()
	}
	f.cancels[roomID] = cancel
	f.mu.Unlock()

	f.logger.Info("following room", "room_id", roomID, "game_id", target.GameID())
	return nil
}

// Unfollow 取消指定房間的訂閱，未跟隨時為 no-op
func (f *Follower) Unfollow(roomID string) {
	f.mu.Lock()
	cancel, ok := f.cancels[roomID]
	if ok {
		delete(f.cancels, roomID)
	}
	f.mu.Unlock()

	if ok {
		cancel()
		f.logger.Info("unfollowed room", "room_id", roomID)
	}
}

// Close 取消所有訂閱
func (f *Follower) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for roomID, cancel := range f.cancels {
		cancel()
		delete(f.cancels, roomID)
	}
}
