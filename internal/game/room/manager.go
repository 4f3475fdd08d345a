package room

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/JoeShih716/go-room-server/internal/core/domain"
	"github.com/JoeShih716/go-room-server/internal/core/ports"
	"github.com/JoeShih716/go-room-server/internal/game/match"
)

// EngineFactory 為新房間建立引擎實例
type EngineFactory func(gameID, roomID, roomName string, isSupervisor bool) ports.Engine

// SyncPoolFactory 為 Logic 房間建立事件同步通道
type SyncPoolFactory func(gameID, roomID string) ports.EventSyncChannel

// Assignment 是配對服務產出的一筆建房指派
type Assignment struct {
	RoomID   string
	OwnerID  string
	RoomName string
	UserIDs  []string
	SupNodes []string
	WorkType domain.RoomWorkType
}

// Manager 負責單一遊戲內所有房間的建立、查找與關閉。
// 它是 Thread-Safe 的，支援並發讀寫。
type Manager struct {
	gameID      string
	registry    *match.Registry
	users       ports.UserManager
	newEngine   EngineFactory
	newSyncPool SyncPoolFactory

	rooms sync.Map // Map[string]*Room
	count int64    // 活躍房間計數器

	admissionTimeout time.Duration
	logger           *slog.Logger
}

// NewManager 建立房間管理器
//
// 參數:
//
//	gameID: string - 管理器所屬的遊戲
//	registry: *match.Registry - 配對結果註冊表
//	users: ports.UserManager - 使用者管理器
//	newEngine: EngineFactory - 引擎工廠
//	newSyncPool: SyncPoolFactory - 事件同步通道工廠
func NewManager(gameID string, registry *match.Registry, users ports.UserManager,
	newEngine EngineFactory, newSyncPool SyncPoolFactory, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		gameID:      gameID,
		registry:    registry,
		users:       users,
		newEngine:   newEngine,
		newSyncPool: newSyncPool,
		logger:      logger.With("component", "room_manager", "game_id", gameID),
	}
}

// SetAdmissionTimeout 覆蓋房間准入逾時 (0 表示沿用預設值)
func (m *Manager) SetAdmissionTimeout(d time.Duration) {
	m.admissionTimeout = d
}

// CreateRoom 依配對指派建立房間
// 寫入配對關係與角色資訊、建立引擎與同步通道、初始化房間。
// 任一步失敗會回滾已寫入的註冊表項目。
func (m *Manager) CreateRoom(a Assignment) (*Room, error) {
	// 同 ID 的活躍房間不能被覆蓋，否則舊房的引擎 goroutine 會漏掉
	if _, exists := m.rooms.Load(a.RoomID); exists {
		return nil, fmt.Errorf("room %q already active", a.RoomID)
	}
	if !m.registry.StoreResult(a.RoomID, m.gameID, a.UserIDs, a.SupNodes) {
		return nil, fmt.Errorf("invalid assignment for room %q", a.RoomID)
	}

	isSupervisor := a.WorkType == domain.WorkTypeSupervisor

	m.registry.SetRoomWorkType(a.RoomID, a.WorkType)
	m.registry.SetRoomWorkTypeByUser(m.gameID, a.UserIDs, a.WorkType)
	m.registry.SetRoomName(a.RoomID, a.RoomName)
	m.registry.SetRoomMaster(a.RoomID, a.OwnerID)
	if len(a.SupNodes) > 0 {
		m.registry.SetRoomSupervisor(m.gameID, a.RoomID, a.SupNodes)
	}

	engine := m.newEngine(m.gameID, a.RoomID, a.RoomName, isSupervisor)
	var syncPool ports.EventSyncChannel
	if !isSupervisor {
		syncPool = m.newSyncPool(m.gameID, a.RoomID)
	}

	r := New(Options{
		ID:               a.RoomID,
		GameID:           m.gameID,
		OwnerID:          a.OwnerID,
		RoomName:         a.RoomName,
		IsSupervisor:     isSupervisor,
		Registry:         m.registry,
		Engine:           engine,
		SyncPool:         syncPool,
		Users:            m.users,
		AdmissionTimeout: m.admissionTimeout,
		Logger:           m.logger,
	})

	if err := r.Init(); err != nil {
		m.registry.DeleteResult(a.RoomID)
		m.registry.DeleteRoomWorkType(a.RoomID)
		for _, u := range a.UserIDs {
			m.registry.DeleteRoomWorkTypeByUser(m.gameID, u)
		}
		return nil, fmt.Errorf("init room %q: %w", a.RoomID, err)
	}

	m.rooms.Store(a.RoomID, r)
	atomic.AddInt64(&m.count, 1)
	m.logger.Info("room created",
		"room_id", a.RoomID, "work_type", a.WorkType.String(), "users", len(a.UserIDs))
	return r, nil
}

// GetRoom 取得房間
func (m *Manager) GetRoom(roomID string) (*Room, bool) {
	val, ok := m.rooms.Load(roomID)
	if !ok {
		return nil, false
	}
	return val.(*Room), true
}

// GetRoomByUser 透過用戶查找其所在的房間
func (m *Manager) GetRoomByUser(userID string) (*Room, bool) {
	roomID, ok := m.registry.GetRoomID(m.gameID, userID)
	if !ok {
		return nil, false
	}
	return m.GetRoom(roomID)
}

// CloseRoom 關閉並移除房間
//
// 回傳值:
//
//	bool: 房間不存在時回傳 false
func (m *Manager) CloseRoom(roomID string) bool {
	val, loaded := m.rooms.LoadAndDelete(roomID)
	if !loaded {
		return false
	}
	atomic.AddInt64(&m.count, -1)
	val.(*Room).CloseRoom()
	return true
}

// Count 取得目前活躍房間數
func (m *Manager) Count() int64 {
	return atomic.LoadInt64(&m.count)
}

// Range 遍歷所有房間 (用於廣播或診斷)
// handler 回傳 false 則停止遍歷
func (m *Manager) Range(handler func(r *Room) bool) {
	m.rooms.Range(func(key, value any) bool {
		return handler(value.(*Room))
	})
}

// Inspect 輸出所有房間的診斷資訊
func (m *Manager) Inspect() string {
	out := fmt.Sprintf("room manager: game:%s rooms:%d\n", m.gameID, m.Count())
	m.Range(func(r *Room) bool {
		out += r.Inspect() + "\n"
		return true
	})
	return out
}
