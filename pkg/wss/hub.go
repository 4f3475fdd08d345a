package wss

import (
	"context"
	"log/slog"
	"sync"
)

// hub 維護所有活躍連線並把事件分發給註冊的 Subscriber
type hub struct {
	ctx        context.Context
	cfg        *Config
	clients    map[string]*connection
	register   chan *connection
	unregister chan *connection

	mu          sync.RWMutex
	subscribers []Subscriber

	logger *slog.Logger
}

func newHub(ctx context.Context, cfg *Config, logger *slog.Logger) *hub {
	return &hub{
		ctx:        ctx,
		cfg:        cfg,
		clients:    make(map[string]*connection),
		register:   make(chan *connection),
		unregister: make(chan *connection),
		logger:     logger,
	}
}

func (h *hub) registerSubscriber(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers = append(h.subscribers, s)
}

// run 是 hub 的主循環：連線的進出都在這裡序列化處理
func (h *hub) run() {
	for {
		select {
		case <-h.ctx.Done():
			h.logger.Info("hub shutting down", "clients", len(h.clients))
			for _, c := range h.clients {
				_ = c.Kick("server shutdown")
			}
			return
		case c := <-h.register:
			h.clients[c.id] = c
			h.logger.Debug("client registered", "conn_id", c.id, "online", len(h.clients))
			h.dispatchConnect(c)
		case c := <-h.unregister:
			if _, ok := h.clients[c.id]; ok {
				delete(h.clients, c.id)
				h.logger.Debug("client unregistered", "conn_id", c.id, "online", len(h.clients))
				h.dispatchDisconnect(c)
			}
		}
	}
}

func (h *hub) dispatchConnect(c Client) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.subscribers {
		s.OnConnect(c)
	}
}

func (h *hub) dispatchMessage(c Client, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.subscribers {
		s.OnMessage(c, payload)
	}
}

func (h *hub) dispatchDisconnect(c Client) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.subscribers {
		s.OnDisconnect(c)
	}
}
