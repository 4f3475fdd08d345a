package wss

import "time"

// Config 定義 WebSocket 伺服器的設定參數
type Config struct {
	ReadBufferSize  int           // 讀取緩衝區大小 (bytes)
	WriteBufferSize int           // 寫入緩衝區大小 (bytes)
	WriteWait       time.Duration // 單次寫入的逾時
	PongWait        time.Duration // 等待 Pong 回應的上限
	PingPeriod      time.Duration // Ping 發送週期，必須小於 PongWait
	MaxMessageSize  int64         // 單一訊息的大小上限 (bytes)
	AllowedOrigins  []string      // 允許的跨域來源，"*" 表示全部
}

// withDefaults 補齊未設定的欄位
func (c *Config) withDefaults() {
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = 1024
	}
	if c.WriteBufferSize == 0 {
		c.WriteBufferSize = 1024
	}
	if c.WriteWait == 0 {
		c.WriteWait = 10 * time.Second
	}
	if c.PongWait == 0 {
		c.PongWait = 60 * time.Second
	}
	if c.PingPeriod == 0 && c.PongWait > 0 {
		c.PingPeriod = (c.PongWait * 9) / 10
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = 64 * 1024
	}
}
