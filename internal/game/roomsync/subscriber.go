package roomsync

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/JoeShih716/go-room-server/internal/core/domain"
	pkgredis "github.com/JoeShih716/go-room-server/pkg/redis"
)

// ChannelSubscriber 定義頻道訂閱所需的最小介面 (由 pkg/redis.Client 滿足)
type ChannelSubscriber interface {
	Subscribe(ctx context.Context, channel string, handler pkgredis.MessageHandler) error
}

// EventHandler 是監督端收到一筆同步事件後的交付回呼
type EventHandler func(frameCount int64, eventType string, payload []byte)

// Subscriber 是監督節點側的事件接收端：訂閱 Logic 房間的同步頻道，
// 解碼後依到達順序交付給 Supervisor 房間的 RecvEventFromLogic。
type Subscriber struct {
	sub    ChannelSubscriber
	logger *slog.Logger
}

// NewSubscriber 建立事件訂閱端
func NewSubscriber(sub ChannelSubscriber, logger *slog.Logger) *Subscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &Subscriber{
		sub:    sub,
		logger: logger.With("component", "sync_subscriber"),
	}
}

// Listen 訂閱指定房間的同步頻道
// 訊息由 Redis 客戶端的單一背景 goroutine 依序交付，
// 因此 handler 看到的順序就是發布順序。
//
// 參數:
//
//	ctx: context.Context - 上下文
//	gameID: string - 遊戲 ID
//	roomID: string - Logic 房間 ID
//	handler: EventHandler - 事件交付回呼
func (s *Subscriber) Listen(ctx context.Context, gameID, roomID string, handler EventHandler) error {
	channel := ChannelName(gameID, roomID)
	logger := s.logger.With("game_id", gameID, "room_id", roomID)

	return s.sub.Subscribe(ctx, channel, func(payload string) {
		var ev domain.SyncEvent
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			logger.Warn("decode sync event failed", "error", err)
			return
		}
		handler(ev.FrameCount, ev.Type, ev.Payload)
	})
}
