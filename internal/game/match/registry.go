package match

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/JoeShih716/go-room-server/internal/core/domain"
)

// Registry 記錄配對產生的 房間<->用戶<->角色 對應關係。
// 它是房間協調的權威來源：RoomManager 建房時寫入，Room 關房時刪除。
//
// 所有資料表共用同一把 RWMutex，確保跨表寫入 (例如 StoreResult 同時更新
// 正向與反向索引) 是原子的，任何時刻反向索引都恰好是 RoomRecord.UserIDs 的逆映射。
type Registry struct {
	mu sync.RWMutex

	records   map[string]*domain.RoomRecord          // roomID -> 配對結果
	userIndex map[domain.UserRoomKey]string          // (gameID, userID) -> roomID

	roomWorkTypes map[string]domain.RoomWorkType          // roomID -> 角色
	userWorkTypes map[domain.UserRoomKey]domain.RoomWorkType // (gameID, userID) -> 角色

	supervisors map[domain.SupervisorKey][]string // (gameID, roomID) -> 監督節點 (暫存，落地後清除)

	roomNames   map[string]string // roomID -> 房間名稱
	roomMasters map[string]string // roomID -> 房主 userID

	logger *slog.Logger
}

// NewRegistry 建立配對結果註冊表
// 以實例注入取代 process 單例，方便測試時各自獨立重置。
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		records:       make(map[string]*domain.RoomRecord),
		userIndex:     make(map[domain.UserRoomKey]string),
		roomWorkTypes: make(map[string]domain.RoomWorkType),
		userWorkTypes: make(map[domain.UserRoomKey]domain.RoomWorkType),
		supervisors:   make(map[domain.SupervisorKey][]string),
		roomNames:     make(map[string]string),
		roomMasters:   make(map[string]string),
		logger:        logger.With("component", "match_registry"),
	}
}

// StoreResult 保存一筆配對結果
// 同一 (gameID, userID) 若已有舊映射會被直接覆蓋 (last-writer-wins)，
// 「用戶還在別的房間」屬呼叫端的錯誤，這裡不做檢查。
//
// 回傳值:
//
//	bool: 參數不合法 (roomID 為空或 userIDs 為空) 時回傳 false，且不做任何變更
func (r *Registry) StoreResult(roomID, gameID string, userIDs, supNodes []string) bool {
	if roomID == "" || len(userIDs) == 0 {
		r.logger.Warn("match result store args bad",
			"room_id", roomID, "game_id", gameID, "user_ids", userIDs)
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record := &domain.RoomRecord{
		RoomID:   roomID,
		GameID:   gameID,
		UserIDs:  append([]string(nil), userIDs...),
		SupNodes: append([]string(nil), supNodes...),
	}
	r.records[roomID] = record

	for _, u := range record.UserIDs {
		r.userIndex[domain.UserRoomKey{GameID: gameID, UserID: u}] = roomID
	}
	return true
}

// DeleteResult 房間結束時刪除對應的配對關係
// 連同反向索引與房間名稱/房主 metadata 一併移除；
// 房間角色 (WorkType) 的清理由呼叫端負責，生命週期不同。
//
// 回傳值:
//
//	bool: 房間不存在時回傳 false
func (r *Registry) DeleteResult(roomID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[roomID]
	if !ok {
		return false
	}
	delete(r.records, roomID)

	for _, u := range record.UserIDs {
		key := domain.UserRoomKey{GameID: record.GameID, UserID: u}
		// 用戶可能已被之後的配對覆蓋到其他房間，只刪仍指向本房間的索引
		if r.userIndex[key] == roomID {
			delete(r.userIndex, key)
		}
	}

	delete(r.roomNames, roomID)
	delete(r.roomMasters, roomID)
	return true
}

// GetUserIDList 取得房間的用戶列表
// 房間不存在時回傳空 slice (非 nil)。
// 注意與 GetSupNodeList 的差異：後者以 ok 區分「房間不存在」。
func (r *Registry) GetUserIDList(roomID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[roomID]
	if !ok {
		return []string{}
	}
	return append([]string(nil), record.UserIDs...)
}

// GetSupNodeList 取得房間的監督節點列表
//
// 回傳值:
//
//	[]string: 監督節點列表，可能為空
//	bool: 房間不存在時回傳 false (與 GetUserIDList 的空 slice 約定不同，
//	      呼叫端依此區分「未知房間」與「無監督節點的房間」)
func (r *Registry) GetSupNodeList(roomID string) ([]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[roomID]
	if !ok {
		return nil, false
	}
	return append([]string(nil), record.SupNodes...), true
}

// GetRoomID 取得用戶目前所在的房間
//
// 回傳值:
//
//	string: roomID
//	bool: 用戶在該遊戲內沒有房間時回傳 false
func (r *Registry) GetRoomID(gameID, userID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roomID, ok := r.userIndex[domain.UserRoomKey{GameID: gameID, UserID: userID}]
	return roomID, ok
}

// SetRoomWorkType 設定房間角色
func (r *Registry) SetRoomWorkType(roomID string, workType domain.RoomWorkType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roomWorkTypes[roomID] = workType
}

// GetRoomWorkType 取得房間角色
func (r *Registry) GetRoomWorkType(roomID string) (domain.RoomWorkType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wt, ok := r.roomWorkTypes[roomID]
	return wt, ok
}

// DeleteRoomWorkType 刪除房間角色
func (r *Registry) DeleteRoomWorkType(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.roomWorkTypes, roomID)
}

// IsLogicRoom 房間是否為 Logic 角色
func (r *Registry) IsLogicRoom(roomID string) bool {
	wt, ok := r.GetRoomWorkType(roomID)
	return ok && wt == domain.WorkTypeLogic
}

// SetRoomWorkTypeByUser 批次設定一組用戶在某遊戲內的角色
func (r *Registry) SetRoomWorkTypeByUser(gameID string, userIDs []string, workType domain.RoomWorkType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range userIDs {
		r.userWorkTypes[domain.UserRoomKey{GameID: gameID, UserID: u}] = workType
	}
}

// GetRoomWorkTypeByUser 取得用戶在某遊戲內的角色
func (r *Registry) GetRoomWorkTypeByUser(gameID, userID string) (domain.RoomWorkType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wt, ok := r.userWorkTypes[domain.UserRoomKey{GameID: gameID, UserID: userID}]
	return wt, ok
}

// DeleteRoomWorkTypeByUser 刪除用戶在某遊戲內的角色
func (r *Registry) DeleteRoomWorkTypeByUser(gameID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.userWorkTypes, domain.UserRoomKey{GameID: gameID, UserID: userID})
}

// IsLogicRoomByUser 用戶所在房間是否為 Logic 角色
func (r *Registry) IsLogicRoomByUser(gameID, userID string) bool {
	wt, ok := r.GetRoomWorkTypeByUser(gameID, userID)
	return ok && wt == domain.WorkTypeLogic
}

// SetRoomSupervisor 暫存房間的監督節點指派
// 這是一塊過渡區：由指派流程寫入，待 CenterHelper 落地後明確清除，
// 生命週期與 RoomRecord 無關。
func (r *Registry) SetRoomSupervisor(gameID, roomID string, nodes []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.supervisors[domain.SupervisorKey{GameID: gameID, RoomID: roomID}] = append([]string(nil), nodes...)
}

// GetRoomSupervisor 取得暫存的監督節點指派
func (r *Registry) GetRoomSupervisor(gameID, roomID string) ([]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	nodes, ok := r.supervisors[domain.SupervisorKey{GameID: gameID, RoomID: roomID}]
	if !ok {
		return nil, false
	}
	return append([]string(nil), nodes...), true
}

// DeleteRoomSupervisor 清除暫存的監督節點指派
func (r *Registry) DeleteRoomSupervisor(gameID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.supervisors, domain.SupervisorKey{GameID: gameID, RoomID: roomID})
}

// SetRoomName 設定房間名稱
func (r *Registry) SetRoomName(roomID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roomNames[roomID] = name
}

// GetRoomName 取得房間名稱
func (r *Registry) GetRoomName(roomID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.roomNames[roomID]
	return name, ok
}

// SetRoomMaster 設定房主
func (r *Registry) SetRoomMaster(roomID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roomMasters[roomID] = userID
}

// GetRoomMaster 取得房主
func (r *Registry) GetRoomMaster(roomID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	userID, ok := r.roomMasters[roomID]
	return userID, ok
}

// Inspect 輸出目前所有映射的診斷資訊 (除錯用，不屬於功能契約)
func (r *Registry) Inspect() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roomIDs := make([]string, 0, len(r.records))
	for id := range r.records {
		roomIDs = append(roomIDs, id)
	}
	sort.Strings(roomIDs)

	var b strings.Builder
	fmt.Fprintf(&b, "match registry: rooms=%d users=%d\n", len(r.records), len(r.userIndex))
	for _, id := range roomIDs {
		record := r.records[id]
		fmt.Fprintf(&b, " room:%s game:%s users:%v sup:%v", id, record.GameID, record.UserIDs, record.SupNodes)
		if wt, ok := r.roomWorkTypes[id]; ok {
			fmt.Fprintf(&b, " work_type:%s", wt)
		}
		if name, ok := r.roomNames[id]; ok {
			fmt.Fprintf(&b, " name:%s", name)
		}
		if master, ok := r.roomMasters[id]; ok {
			fmt.Fprintf(&b, " master:%s", master)
		}
		b.WriteString("\n")
	}
	return b.String()
}
