package lockstep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/JoeShih716/go-room-server/internal/core/domain"
	"github.com/JoeShih716/go-room-server/internal/core/ports"
)

const (
	// DefaultFrameInterval 是預設的幀間隔 (20Hz)
	DefaultFrameInterval = 50 * time.Millisecond

	// DefaultMaxUsers 是單一房間的預設人數上限
	DefaultMaxUsers = 8

	// Supervisor 重放日誌的保留上限，超過後丟棄最舊的事件
	maxReplayLog = 1024
)

// 引擎層級的准入錯誤
var (
	ErrRoomFull      = errors.New("room is full")
	ErrAlreadyInRoom = errors.New("user already in room")
	ErrEngineClosed  = errors.New("engine closed")
)

type admitReq struct {
	userID string
	resp   chan error
}

// Engine 是幀同步模擬引擎：
// Logic 模式下由 ticker 驅動幀數單調遞增，玩家准入在 run loop 內序列化處理；
// Supervisor 模式下不自走幀，幀數跟隨 Logic 房間同步來的事件推進。
type Engine struct {
	gameID       string
	roomID       string
	roomName     string
	isSupervisor bool

	frameInterval time.Duration
	maxUsers      int

	frame atomic.Int64

	mu      sync.RWMutex
	userIDs []string // 進房順序
	userSet map[string]struct{}
	replay  []domain.SyncEvent // Supervisor 端的重放日誌

	started   atomic.Bool
	admitCh   chan admitReq
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	logger *slog.Logger
}

// 確保 Engine 實現了 ports.Engine 介面
var _ ports.Engine = (*Engine)(nil)

// Options 是引擎的可調參數，零值沿用預設
type Options struct {
	FrameInterval time.Duration
	MaxUsers      int
	Logger        *slog.Logger
}

// New 建立幀同步引擎
//
// 參數:
//
//	gameID: string - 所屬遊戲
//	roomID: string - 所屬房間
//	roomName: string - 房間名稱
//	isSupervisor: bool - 是否為監督副本模式
func New(gameID, roomID, roomName string, isSupervisor bool, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	frameInterval := opts.FrameInterval
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}
	maxUsers := opts.MaxUsers
	if maxUsers <= 0 {
		maxUsers = DefaultMaxUsers
	}

	return &Engine{
		gameID:        gameID,
		roomID:        roomID,
		roomName:      roomName,
		isSupervisor:  isSupervisor,
		frameInterval: frameInterval,
		maxUsers:      maxUsers,
		userSet:       make(map[string]struct{}),
		admitCh:       make(chan admitReq),
		done:          make(chan struct{}),
		logger: logger.With("component", "lockstep_engine",
			"game_id", gameID, "room_id", roomID, "supervisor", isSupervisor),
	}
}

// Init 啟動引擎的 run loop，重複呼叫回傳錯誤
func (e *Engine) Init() error {
	if !e.started.CompareAndSwap(false, true) {
		return fmt.Errorf("engine for room %q already started", e.roomID)
	}
	e.wg.Add(1)
	go e.run()
	e.logger.Debug("engine started", "frame_interval", e.frameInterval, "max_users", e.maxUsers)
	return nil
}

// run 是引擎的主循環：推幀與准入都在這裡序列化處理
func (e *Engine) run() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.done:
			return
		case <-ticker.C:
			// Supervisor 不自走幀，幀數由重放事件推進
			if !e.isSupervisor {
				e.frame.Add(1)
			}
		case req := <-e.admitCh:
			req.resp <- e.admit(req.userID)
		}
	}
}

func (e *Engine) admit(userID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.userSet[userID]; ok {
		return ErrAlreadyInRoom
	}
	if len(e.userIDs) >= e.maxUsers {
		return ErrRoomFull
	}
	e.userSet[userID] = struct{}{}
	e.userIDs = append(e.userIDs, userID)
	e.logger.Debug("user admitted", "user_id", userID, "count", len(e.userIDs))
	return nil
}

// EnterRoom 玩家進入房間
// 准入請求交給 run loop 處理，呼叫端掛起直到有結果或 ctx 逾時。
func (e *Engine) EnterRoom(ctx context.Context, userID string) error {
	req := admitReq{userID: userID, resp: make(chan error, 1)}

	select {
	case e.admitCh <- req:
	case <-e.done:
		return ErrEngineClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.resp:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LeaveRoom 玩家離開房間
func (e *Engine) LeaveRoom(userID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.userSet[userID]; !ok {
		return false
	}
	delete(e.userSet, userID)
	for i, id := range e.userIDs {
		if id == userID {
			e.userIDs = append(e.userIDs[:i], e.userIDs[i+1:]...)
			break
		}
	}
	return true
}

// GetUserCount 取得目前房間內人數
func (e *Engine) GetUserCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.userIDs)
}

// GetUsersID 取得目前房間內的使用者列表 (進房順序)
func (e *Engine) GetUsersID() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.userIDs...)
}

// OnClientMsg 處理客戶端訊息
func (e *Engine) OnClientMsg(userID, key, value string) {
	e.logger.Debug("client msg", "user_id", userID, "key", key, "value", value)
}

// GetFrameCount 取得目前幀數
func (e *Engine) GetFrameCount() int64 {
	return e.frame.Load()
}

// RecvEventFromLogic 接收 Logic 房間的同步事件並重放
// 幀數只前進不回退；事件進入重放日誌，超出上限丟棄最舊的。
func (e *Engine) RecvEventFromLogic(frameCount int64, eventType string, payload []byte) {
	for {
		cur := e.frame.Load()
		if frameCount <= cur || e.frame.CompareAndSwap(cur, frameCount) {
			break
		}
	}

	e.mu.Lock()
	e.replay = append(e.replay, domain.SyncEvent{
		FrameCount: frameCount, Type: eventType, Payload: payload,
	})
	if len(e.replay) > maxReplayLog {
		e.replay = e.replay[len(e.replay)-maxReplayLog:]
	}
	e.mu.Unlock()
}

// ReplayLog 取得目前的重放日誌 (Supervisor 診斷用)
func (e *Engine) ReplayLog() []domain.SyncEvent {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]domain.SyncEvent(nil), e.replay...)
}

// OnClose 房間整體拆除時的清理
func (e *Engine) OnClose() {
	e.logger.Debug("engine on close", "frame", e.frame.Load(), "users", e.GetUserCount())
	e.stop()
}

// Close 房間人數歸零時關閉引擎
func (e *Engine) Close() {
	e.logger.Debug("engine close", "frame", e.frame.Load())
	e.stop()
}

func (e *Engine) stop() {
	e.closeOnce.Do(func() {
		close(e.done)
	})
	if e.started.Load() {
		e.wg.Wait()
	}
}
