package ports

import "context"

// Engine 定義了房間所委派的模擬引擎介面。
// 每個 Room 獨佔一個 Engine 實例；Room 只做協調與轉發，
// 模擬邏輯 (幀推進、玩家准入、事件重放) 全部由 Engine 負責。
//
//go:generate mockgen -destination=../../../test/mocks/ports/mock_engine.go -package=mock_ports -source=engine.go
type Engine interface {
	// Init 初始化引擎
	// 房間 Init 時呼叫一次，用於啟動幀循環或載入遊戲設定。
	//
	// 回傳值:
	//
	//	error: 若初始化失敗則回傳錯誤
	Init() error

	// EnterRoom 玩家進入房間
	// 這是唯一會暫停等待的操作：引擎的准入流程是非同步的，
	// 呼叫端透過 ctx 控制等待上限。
	//
	// 參數:
	//
	//	ctx: context.Context - 上下文，用於逾時與取消
	//	userID: string - 進入的使用者 ID
	//
	// 回傳值:
	//
	//	error: 若引擎拒絕進入 (滿房、重複進入等) 則回傳錯誤
	EnterRoom(ctx context.Context, userID string) error

	// LeaveRoom 玩家離開房間
	//
	// 回傳值:
	//
	//	bool: 使用者不在房間內時回傳 false
	LeaveRoom(userID string) bool

	// GetUserCount 取得目前房間內人數
	GetUserCount() int

	// GetUsersID 取得目前房間內的使用者 ID 列表
	GetUsersID() []string

	// OnClientMsg 處理客戶端訊息
	//
	// 參數:
	//
	//	userID: string - 發送者
	//	key: string - 訊息鍵 (例如 "room.startgame")
	//	value: string - 訊息內容
	OnClientMsg(userID, key, value string)

	// GetFrameCount 取得目前的模擬幀數
	// 幀數單調遞增，用於標記同步給監督副本的事件順序。
	GetFrameCount() int64

	// RecvEventFromLogic 接收來自 Logic 房間的同步事件並重放
	// 僅 Supervisor 副本的引擎會收到；事件依到達順序逐筆交付。
	RecvEventFromLogic(frameCount int64, eventType string, payload []byte)

	// OnClose 房間整體關閉時的清理 (由 Room.CloseRoom 觸發)
	OnClose()

	// Close 關閉引擎並釋放資源 (房間人數歸零時觸發)
	Close()
}
