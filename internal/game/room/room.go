package room

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JoeShih716/go-room-server/internal/core/domain"
	"github.com/JoeShih716/go-room-server/internal/core/ports"
	"github.com/JoeShih716/go-room-server/internal/game/match"
)

// DefaultAdmissionTimeout 是 EnterRoom 等待引擎准入的預設上限。
// 准入流程是非同步的，不設上限會讓關房流程被卡死。
const DefaultAdmissionTimeout = 10 * time.Second

type pendingSend struct {
	user    *domain.User
	payload []byte
}

// Room 是單一房間的協調者：維護生命週期狀態機、緩存未開局前的下發訊息、
// 並在 Logic/Supervisor 雙拓撲間轉發帶幀數的同步事件。
//
// Logic 房間跑權威模擬並透過 syncPool 對外發事件；
// Supervisor 房間是被動副本，不持有 syncPool、不下發訊息，只接收事件重放。
type Room struct {
	uniq         string // 實例唯一識別 (Log 與診斷用)
	id           string
	gameID       string
	ownerID      string
	roomName     string
	isSupervisor bool

	mu          sync.Mutex
	state       domain.RoomState
	sendPending []pendingSend
	admissions  map[string]struct{} // 進行中的准入請求，拒絕同一用戶重疊呼叫

	registry *match.Registry
	engine   ports.Engine
	syncPool ports.EventSyncChannel
	users    ports.UserManager

	admissionTimeout time.Duration
	logger           *slog.Logger
}

// Options 彙整建房所需的參數與協作者
type Options struct {
	ID           string
	GameID       string
	OwnerID      string
	RoomName     string
	IsSupervisor bool

	Registry *match.Registry
	Engine   ports.Engine
	SyncPool ports.EventSyncChannel // Supervisor 房間不需要，會被忽略
	Users    ports.UserManager

	AdmissionTimeout time.Duration // 0 表示使用 DefaultAdmissionTimeout
	Logger           *slog.Logger
}

// New 建立房間實例
// Supervisor 房間永遠不持有事件同步通道，即使呼叫端誤傳也會被丟棄。
func New(opts Options) *Room {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.AdmissionTimeout
	if timeout <= 0 {
		timeout = DefaultAdmissionTimeout
	}

	syncPool := opts.SyncPool
	if opts.IsSupervisor {
		syncPool = nil
	}

	return &Room{
		uniq:             uuid.New().String(),
		id:               opts.ID,
		gameID:           opts.GameID,
		ownerID:          opts.OwnerID,
		roomName:         opts.RoomName,
		isSupervisor:     opts.IsSupervisor,
		state:            domain.RoomStateInit,
		admissions:       make(map[string]struct{}),
		registry:         opts.Registry,
		engine:           opts.Engine,
		syncPool:         syncPool,
		users:            opts.Users,
		admissionTimeout: timeout,
		logger: logger.With("component", "room",
			"room_id", opts.ID, "game_id", opts.GameID, "supervisor", opts.IsSupervisor),
	}
}

// ID 回傳房間 ID
func (r *Room) ID() string {
	return r.id
}

// GameID 回傳房間所屬遊戲 ID
func (r *Room) GameID() string {
	return r.gameID
}

// IsSupervisor 房間是否為監督副本
func (r *Room) IsSupervisor() bool {
	return r.isSupervisor
}

// Init 初始化房間：啟動事件同步通道 (若有) 並初始化引擎。
// 房間接收任何流量前必須恰好呼叫一次。
func (r *Room) Init() error {
	r.logger.Debug("room init")
	if r.syncPool != nil {
		if err := r.syncPool.Start(); err != nil {
			return fmt.Errorf("start sync pool: %w", err)
		}
	}
	return r.engine.Init()
}

// GetState 取得目前狀態
func (r *Room) GetState() domain.RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// SetState 切換房間狀態
// 轉入 START 時依 FIFO 順序補發所有緩存中的訊息，補發期間新的 Send
// 會排在緩存訊息之後，不會遺失也不會重複。
func (r *Room) SetState(state domain.RoomState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = state
	if state == domain.RoomStateStart {
		r.flushSendPendingLocked()
	}
}

// flushSendPendingLocked 清空緩存的訊息，呼叫前必須持有 r.mu
func (r *Room) flushSendPendingLocked() {
	if len(r.sendPending) == 0 {
		return
	}
	r.logger.Debug("flush pending sends", "count", len(r.sendPending))
	for _, p := range r.sendPending {
		if err := r.users.Send(p.user, p.payload); err != nil {
			r.logger.Warn("flush pending send failed", "user_id", p.user.ID, "error", err)
		}
	}
	r.sendPending = nil
}

// EnterRoom 玩家進入房間
// 委派給引擎的非同步准入流程；等待期間同一用戶的重疊進房請求
// 會被直接拒絕而非默默競爭。
//
// 參數:
//
//	ctx: context.Context - 上下文，若未帶 deadline 會套用房間的准入逾時
//	userID: string - 進入的使用者 ID
func (r *Room) EnterRoom(ctx context.Context, userID string) error {
	r.mu.Lock()
	if r.state == domain.RoomStateClosed {
		r.mu.Unlock()
		return ports.ErrRoomClosed
	}
	if _, pending := r.admissions[userID]; pending {
		r.mu.Unlock()
		return ports.ErrAdmissionPending
	}
	r.admissions[userID] = struct{}{}
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.admissions, userID)
		r.mu.Unlock()
	}()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.admissionTimeout)
		defer cancel()
	}

	return r.engine.EnterRoom(ctx, userID)
}

// LeaveRoom 玩家離開房間
// 引擎回報失敗 (例如用戶不在房內) 時原樣回傳，不做任何補償。
// 離開後房間人數歸零會順帶關閉引擎；房間層級的完整拆除 (CloseRoom)
// 是獨立操作，兩者刻意不連動。
func (r *Room) LeaveRoom(userID, reason string) bool {
	if !r.engine.LeaveRoom(userID) {
		return false
	}
	r.logger.Debug("user left room", "user_id", userID, "reason", reason)

	if r.engine.GetUserCount() == 0 {
		r.logger.Debug("room empty, closing engine")
		r.engine.Close()
	}
	return true
}

// OnClientMsg 收到客戶端訊息，轉發給引擎
func (r *Room) OnClientMsg(userID, key, value string) {
	if key == "room.startgame" {
		// TODO: 幀同步啟動與房間 duration 統計掛在這裡
	}
	r.engine.OnClientMsg(userID, key, value)
}

// Send 向客戶端下發訊息
// Supervisor 房間是被動副本，不做任何下發。
// 房間尚未 START 時訊息先進緩存：玩家可能在開局前就被推進房間，
// 提前下發的通知不能因此丟失。
func (r *Room) Send(user *domain.User, payload []byte) {
	if r.isSupervisor {
		return
	}
	// GetUser 查無人時回傳 nil，這裡直接丟棄，不能讓 nil 進到緩存
	if user == nil {
		r.logger.Warn("send to nil user dropped")
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == domain.RoomStateStart {
		if err := r.users.Send(user, payload); err != nil {
			r.logger.Warn("send failed", "user_id", user.ID, "error", err)
		}
		return
	}
	r.sendPending = append(r.sendPending, pendingSend{user: user, payload: payload})
}

// SyncEventToSup 同步事件到監督副本
// 事件帶上引擎當下的幀數交給同步通道；Supervisor 端依幀序重放即可
// 確定性地重建 Logic 房間的狀態。Supervisor 房間自己是接收方，不發事件。
func (r *Room) SyncEventToSup(eventType string, payload []byte) {
	if r.isSupervisor {
		return
	}
	frameCount := r.engine.GetFrameCount()
	r.syncPool.AddEvent(frameCount, eventType, payload)
}

// RecvEventFromLogic 收到 Logic 房間的同步事件
// 房間只是通道：每筆事件恰好交付引擎一次、不改變到達順序，
// 幀序重放由引擎負責。
func (r *Room) RecvEventFromLogic(frameCount int64, eventType string, payload []byte) {
	r.engine.RecvEventFromLogic(frameCount, eventType, payload)
}

// GetUserList 取得房間內的使用者列表
func (r *Room) GetUserList() []string {
	return r.engine.GetUsersID()
}

// CloseRoom 房間完整拆除
// 刪除配對關係與房間角色、強制登出所有在房用戶並清除其個人角色、
// 通知引擎關閉，最後停掉事件同步通道。重複呼叫是安全的 no-op。
func (r *Room) CloseRoom() bool {
	r.mu.Lock()
	if r.state == domain.RoomStateClosed {
		r.mu.Unlock()
		r.logger.Warn("close room called twice")
		return false
	}
	r.state = domain.RoomStateClosed
	r.mu.Unlock()

	r.registry.DeleteResult(r.id)
	r.registry.DeleteRoomWorkType(r.id)

	userList := r.engine.GetUsersID()
	r.logger.Debug("closing room", "users", userList)
	for _, userID := range userList {
		if !r.users.Logout(userID) {
			r.logger.Warn("logout on close failed", "user_id", userID)
		}
		r.registry.DeleteRoomWorkTypeByUser(r.gameID, userID)
	}

	r.engine.OnClose()
	if r.syncPool != nil {
		r.syncPool.Stop()
	}
	return true
}

// Inspect 輸出房間診斷資訊
func (r *Room) Inspect() string {
	return fmt.Sprintf(" id:%s uniq:%s game:%s owner:%s name:%s supervisor:%v",
		r.id, r.uniq, r.gameID, r.ownerID, r.roomName, r.isSupervisor)
}
