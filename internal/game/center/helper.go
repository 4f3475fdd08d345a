package center

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JoeShih716/go-room-server/internal/game/match"
	pkgredis "github.com/JoeShih716/go-room-server/pkg/redis"
)

const (
	// Key Pattern: room_sup:{gameID}:{roomID} -> SupervisorAssignment (JSON)
	KeyRoomSupervisor = "room_sup:%s:%s"
)

// ErrAssignmentNotFound 表示中心儲存中沒有該房間的監督節點指派
var ErrAssignmentNotFound = errors.New("supervisor assignment not found")

// StructStore 定義指派落地所需的最小介面 (由 pkg/redis.Client 滿足)
type StructStore interface {
	SetStruct(ctx context.Context, key string, value any, expiration ...time.Duration) error
	GetStruct(ctx context.Context, key string, dest any) error
	Del(ctx context.Context, keys ...string) error
}

// SupervisorAssignment 是落地到中心儲存的監督節點指派
type SupervisorAssignment struct {
	GameID    string   `json:"game_id"`
	RoomID    string   `json:"room_id"`
	Nodes     []string `json:"nodes"`
	UpdatedAt int64    `json:"updated_at"`
}

// Helper 負責把註冊表中暫存的監督節點指派落地到中心儲存 (Redis)。
// 暫存表只是過渡區：落地成功後立刻清掉，避免重啟後殘留過期指派。
type Helper struct {
	store    StructStore
	registry *match.Registry
	logger   *slog.Logger
}

// NewHelper 建立中心儲存協助器
func NewHelper(store StructStore, registry *match.Registry, logger *slog.Logger) *Helper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Helper{
		store:    store,
		registry: registry,
		logger:   logger.With("component", "center_helper"),
	}
}

// PersistRoomSupervisor 把房間的監督節點指派寫入中心儲存
// 成功後清除註冊表中的暫存項；沒有暫存指派時回傳錯誤。
func (h *Helper) PersistRoomSupervisor(ctx context.Context, gameID, roomID string) error {
	nodes, ok := h.registry.GetRoomSupervisor(gameID, roomID)
	if !ok {
		return fmt.Errorf("no staged supervisor assignment for room %q", roomID)
	}

	key := fmt.Sprintf(KeyRoomSupervisor, gameID, roomID)
	assignment := &SupervisorAssignment{
		GameID:    gameID,
		RoomID:    roomID,
		Nodes:     nodes,
		UpdatedAt: time.Now().Unix(),
	}
	if err := h.store.SetStruct(ctx, key, assignment); err != nil {
		return fmt.Errorf("persist supervisor assignment: %w", err)
	}

	h.registry.DeleteRoomSupervisor(gameID, roomID)
	h.logger.Debug("supervisor assignment persisted",
		"game_id", gameID, "room_id", roomID, "nodes", len(nodes))
	return nil
}

// LoadRoomSupervisor 從中心儲存讀回房間的監督節點列表
//
// 回傳值:
//
//	[]string: 監督節點列表
//	error: 指派不存在時回傳 ErrAssignmentNotFound
func (h *Helper) LoadRoomSupervisor(ctx context.Context, gameID, roomID string) ([]string, error) {
	key := fmt.Sprintf(KeyRoomSupervisor, gameID, roomID)

	var assignment SupervisorAssignment
	if err := h.store.GetStruct(ctx, key, &assignment); err != nil {
		if pkgredis.IsNil(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment.Nodes, nil
}

// DeleteRoomSupervisor 從中心儲存移除房間的監督節點指派 (房間結束後呼叫)
func (h *Helper) DeleteRoomSupervisor(ctx context.Context, gameID, roomID string) error {
	key := fmt.Sprintf(KeyRoomSupervisor, gameID, roomID)
	return h.store.Del(ctx, key)
}
