package ports

// EventSyncChannel 定義了 Logic 房間向 Supervisor 副本同步事件的通道介面。
// 實作負責把帶幀數的事件依序送達對應的監督節點。
//
//go:generate mockgen -destination=../../../test/mocks/ports/mock_sync.go -package=mock_ports -source=sync.go
type EventSyncChannel interface {
	// Start 啟動通道，Room.Init 時呼叫一次
	Start() error

	// Stop 停止通道並清空未送出的事件，Room.CloseRoom 時呼叫
	Stop()

	// AddEvent 追加一筆待同步事件
	// 同一房間內的事件必須保持追加順序送出。
	//
	// 參數:
	//
	//	frameCount: int64 - 事件發生當下的引擎幀數
	//	eventType: string - 事件類型
	//	payload: []byte - 事件內容
	AddEvent(frameCount int64, eventType string, payload []byte)
}
