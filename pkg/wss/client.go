package wss

// Client 是對外暴露的連線介面
// 業務邏輯只透過此介面與底層 WebSocket 連線互動。
type Client interface {
	// ID 回傳連線的唯一識別
	ID() string

	// SendMessage 非同步發送訊息，緩衝滿時回傳錯誤
	SendMessage(payload []byte) error

	// Kick 主動中斷連線
	Kick(reason string) error

	// SetTag 在連線上掛業務標記 (例如登入計時器、所屬遊戲)
	SetTag(key string, value any)

	// GetTag 讀取業務標記
	GetTag(key string) (any, bool)

	// RemoteAddr 回傳對端位址 (Log 用)
	RemoteAddr() string
}

// Subscriber 是業務邏輯註冊到 WebSocket 伺服器的事件處理器
type Subscriber interface {
	// OnConnect 當新連線建立時觸發
	OnConnect(c Client)

	// OnMessage 當收到訊息時觸發
	OnMessage(c Client, payload []byte)

	// OnDisconnect 當連線斷開時觸發
	OnDisconnect(c Client)
}
