package domain

import "fmt"

// RoomState 代表房間生命週期的狀態。
// 狀態流向: INIT -> START -> CLOSED，CLOSED 為終態。
type RoomState int

const (
	RoomStateInit RoomState = iota // 房間已建立，尚未開始接收流量
	RoomStateStart                 // 房間已開始，訊息直接下發
	RoomStateClosed                // 房間已關閉，不再接受任何操作
)

// String 回傳狀態的可讀名稱 (Log 用)
func (s RoomState) String() string {
	switch s {
	case RoomStateInit:
		return "INIT"
	case RoomStateStart:
		return "START"
	case RoomStateClosed:
		return "CLOSED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(s))
	}
}

// RoomWorkType 代表房間的工作角色。
// Logic 房間跑權威模擬；Supervisor 房間是被動副本，只接收 Logic 房間同步來的事件。
type RoomWorkType int

const (
	WorkTypeLogic RoomWorkType = iota + 1
	WorkTypeSupervisor
)

// String 回傳角色的可讀名稱
func (t RoomWorkType) String() string {
	switch t {
	case WorkTypeLogic:
		return "LOGIC"
	case WorkTypeSupervisor:
		return "SUPERVISOR"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(t))
	}
}

// RoomRecord 代表一筆配對結果：房間與其內用戶、監督節點的對應關係。
// 由 match.Registry 獨佔持有。
type RoomRecord struct {
	RoomID   string
	GameID   string
	UserIDs  []string // 進房順序即配對順序
	SupNodes []string // 監督節點位址列表 (可為空)
}

// UserRoomKey 是 (遊戲, 用戶) 的複合鍵。
// 用 struct 而非字串串接，避免分隔字元碰撞問題。
type UserRoomKey struct {
	GameID string
	UserID string
}

// SupervisorKey 是 (遊戲, 房間) 的複合鍵，用於監督節點的暫存表。
type SupervisorKey struct {
	GameID string
	RoomID string
}

// SyncEvent 是 Logic 房間同步給 Supervisor 副本的單筆事件。
// FrameCount 是發出當下引擎的幀數，Supervisor 端依幀序重放。
type SyncEvent struct {
	FrameCount int64  `json:"frame_count"`
	Type       string `json:"type"`
	Payload    []byte `json:"payload"`
}
