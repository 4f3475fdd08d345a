package roomsync

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/JoeShih716/go-room-server/internal/core/domain"
	"github.com/JoeShih716/go-room-server/internal/core/ports"
)

// ChannelName 回傳一個房間的事件同步頻道名稱
// Key Pattern: room_sync:{gameID}:{roomID}
func ChannelName(gameID, roomID string) string {
	return fmt.Sprintf("room_sync:%s:%s", gameID, roomID)
}

// Publisher 定義事件發布所需的最小介面 (由 pkg/redis.Client 滿足)
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) error
}

const (
	// 單一房間待送事件的緩衝上限，滿了直接丟棄最新事件並告警
	defaultQueueSize = 256

	// 單筆事件的發布逾時
	publishTimeout = 3 * time.Second
)

type poolState int

const (
	poolIdle poolState = iota
	poolRunning
	poolStopped
)

// EventPool 是 Logic 房間的事件同步通道實作：
// AddEvent 把帶幀數的事件塞進佇列，背景 goroutine 依序發布到
// 房間專屬的 Redis 頻道，監督節點訂閱同一頻道重放。
// 同一房間內的事件保證依追加順序送出。
type EventPool struct {
	gameID  string
	roomID  string
	channel string
	pub     Publisher

	mu     sync.Mutex
	state  poolState
	events chan domain.SyncEvent
	done   chan struct{}
	wg     sync.WaitGroup

	logger *slog.Logger
}

// 確保 EventPool 實現了 ports.EventSyncChannel 介面
var _ ports.EventSyncChannel = (*EventPool)(nil)

// NewEventPool 建立事件同步通道
//
// 參數:
//
//	gameID: string - 所屬遊戲
//	roomID: string - 所屬房間
//	pub: Publisher - 發布端 (Redis 客戶端)
func NewEventPool(gameID, roomID string, pub Publisher, logger *slog.Logger) *EventPool {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventPool{
		gameID:  gameID,
		roomID:  roomID,
		channel: ChannelName(gameID, roomID),
		pub:     pub,
		events:  make(chan domain.SyncEvent, defaultQueueSize),
		done:    make(chan struct{}),
		logger: logger.With("component", "sync_event_pool",
			"game_id", gameID, "room_id", roomID),
	}
}

// Start 啟動背景發布循環，重複呼叫回傳錯誤
func (p *EventPool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != poolIdle {
		return fmt.Errorf("sync event pool for room %q already started", p.roomID)
	}
	p.state = poolRunning

	p.wg.Add(1)
	go p.run()
	return nil
}

// AddEvent 追加一筆待同步事件
// 通道未啟動或已停止時丟棄並告警；佇列滿時同樣丟棄，
// 監督副本落後屬於可接受的降級，不能反壓 Logic 房間的模擬循環。
func (p *EventPool) AddEvent(frameCount int64, eventType string, payload []byte) {
	p.mu.Lock()
	running := p.state == poolRunning
	p.mu.Unlock()

	if !running {
		p.logger.Warn("sync event pool not running, drop event",
			"frame", frameCount, "type", eventType)
		return
	}

	select {
	case p.events <- domain.SyncEvent{FrameCount: frameCount, Type: eventType, Payload: payload}:
	default:
		p.logger.Warn("sync event queue full, drop event",
			"frame", frameCount, "type", eventType)
	}
}

// Stop 停止通道
// 會把佇列中尚未送出的事件全部發布完才返回。
func (p *EventPool) Stop() {
	p.mu.Lock()
	if p.state != poolRunning {
		p.mu.Unlock()
		return
	}
	p.state = poolStopped
	p.mu.Unlock()

	close(p.done)
	p.wg.Wait()
}

func (p *EventPool) run() {
	defer p.wg.Done()

	for {
		select {
		case ev := <-p.events:
			p.publish(ev)
		case <-p.done:
			// 停止前清空剩餘事件，保持順序
			for {
				select {
				case ev := <-p.events:
					p.publish(ev)
				default:
					return
				}
			}
		}
	}
}

func (p *EventPool) publish(ev domain.SyncEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		p.logger.Error("marshal sync event failed", "frame", ev.FrameCount, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := p.pub.Publish(ctx, p.channel, data); err != nil {
		p.logger.Warn("publish sync event failed",
			"frame", ev.FrameCount, "type", ev.Type, "error", err)
	}
}
