package wss

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ErrSendBufferFull 表示連線的發送緩衝已滿，訊息被丟棄
var ErrSendBufferFull = errors.New("send buffer full")

// connection 是 Client 介面的實際實作，包裝一條 gorilla websocket 連線
type connection struct {
	id         string
	hub        *hub
	ws         *websocket.Conn
	send       chan []byte
	tags       sync.Map
	remoteAddr string
	closeOnce  sync.Once
	logger     *slog.Logger
}

var _ Client = (*connection)(nil)

func newConnection(h *hub, ws *websocket.Conn, r *http.Request, logger *slog.Logger) *connection {
	id := uuid.New().String()
	return &connection{
		id:         id,
		hub:        h,
		ws:         ws,
		send:       make(chan []byte, 64),
		remoteAddr: r.RemoteAddr,
		logger:     logger.With("conn_id", id),
	}
}

func (c *connection) ID() string {
	return c.id
}

func (c *connection) RemoteAddr() string {
	return c.remoteAddr
}

func (c *connection) SendMessage(payload []byte) error {
	select {
	case c.send <- payload:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (c *connection) Kick(reason string) error {
	c.logger.Info("kicking client", "reason", reason)
	msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	deadline := time.Now().Add(c.hub.cfg.WriteWait)
	_ = c.ws.WriteControl(websocket.CloseMessage, msg, deadline)
	c.close()
	return nil
}

func (c *connection) SetTag(key string, value any) {
	c.tags.Store(key, value)
}

func (c *connection) GetTag(key string) (any, bool) {
	return c.tags.Load(key)
}

// close 關閉底層連線並從 hub 移除，保證只執行一次
func (c *connection) close() {
	c.closeOnce.Do(func() {
		_ = c.ws.Close()
		// hub 關閉後 run loop 不再收 unregister，避免卡死
		select {
		case c.hub.unregister <- c:
		case <-c.hub.ctx.Done():
		}
	})
}

// readPump 讀取循環：處理 Pong 心跳並把訊息交給 hub 分發
// 每條連線一個 goroutine。
func (c *connection) readPump() {
	defer c.close()

	c.ws.SetReadLimit(c.hub.cfg.MaxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(c.hub.cfg.PongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.hub.cfg.PongWait))
	})

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("unexpected close", "error", err)
			}
			return
		}
		c.hub.dispatchMessage(c, payload)
	}
}

// writePump 寫入循環：送出緩衝訊息並定期發送 Ping
// 每條連線一個 goroutine。
func (c *connection) writePump() {
	ticker := time.NewTicker(c.hub.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.BinaryMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
