package roomsvc

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/JoeShih716/go-room-server/internal/core/domain"
	"github.com/JoeShih716/go-room-server/internal/game/room"
	"github.com/JoeShih716/go-room-server/internal/user"
	"github.com/JoeShih716/go-room-server/pkg/wss"
)

const (
	tagSession    = "session"
	tagLoginTimer = "login_timer"

	loginTimeout   = 10 * time.Second
	requestTimeout = 3 * time.Second
)

// clientMsg 是客戶端與房間服務之間的簡易 JSON 封包
type clientMsg struct {
	Cmd    string `json:"cmd"`
	UserID string `json:"user_id,omitempty"`
	Key    string `json:"key,omitempty"`
	Value  string `json:"value,omitempty"`
}

type serverMsg struct {
	Cmd   string `json:"cmd"`
	Code  int    `json:"code"`
	Error string `json:"error,omitempty"`
}

// WebsocketHandler 實作 wss.Subscriber 介面，把連線事件接到
// 使用者管理器與房間管理器。
type WebsocketHandler struct {
	users  *user.Manager
	rooms  *room.Manager
	logger *slog.Logger
}

// NewWebsocketHandler 建立 WebSocket 事件處理器
func NewWebsocketHandler(users *user.Manager, rooms *room.Manager, logger *slog.Logger) *WebsocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebsocketHandler{
		users:  users,
		rooms:  rooms,
		logger: logger.With("component", "ws_handler"),
	}
}

// OnConnect 當新連線建立時觸發
func (h *WebsocketHandler) OnConnect(conn wss.Client) {
	sess := domain.NewSession(conn)
	conn.SetTag(tagSession, sess)

	h.logger.Info("client connected", "conn_id", conn.ID(), "addr", conn.RemoteAddr())

	// 設定時限內必須登入，否則斷線
	loginTimer := time.AfterFunc(loginTimeout, func() {
		h.logger.Info("login timeout, kicking client", "conn_id", conn.ID())
		_ = conn.Kick("login timeout")
	})
	conn.SetTag(tagLoginTimer, loginTimer)
}

// OnDisconnect 當連線斷開時觸發
func (h *WebsocketHandler) OnDisconnect(conn wss.Client) {
	h.stopLoginTimer(conn)

	sess, ok := h.session(conn)
	if !ok {
		return
	}
	h.logger.Info("client disconnected", "conn_id", conn.ID(), "user_id", sess.UserID)

	// 若已在房間內，以斷線原因離房
	if sess.UserID != "" {
		if r, found := h.rooms.GetRoomByUser(sess.UserID); found {
			r.LeaveRoom(sess.UserID, "disconnected")
		}
	}
	h.users.OnSessionClosed(sess)
}

// OnMessage 當收到訊息時觸發
func (h *WebsocketHandler) OnMessage(conn wss.Client, payload []byte) {
	var msg clientMsg
	if err := json.Unmarshal(payload, &msg); err != nil {
		h.logger.Warn("bad client message", "conn_id", conn.ID(), "error", err)
		return
	}

	sess, ok := h.session(conn)
	if !ok {
		return
	}

	switch msg.Cmd {
	case "login":
		h.handleLogin(conn, sess, msg)
	case "room.enter":
		h.handleEnterRoom(conn, sess)
	case "room.leave":
		if r, found := h.rooms.GetRoomByUser(sess.UserID); found {
			r.LeaveRoom(sess.UserID, "client request")
		}
	case "room.msg":
		if r, found := h.rooms.GetRoomByUser(sess.UserID); found {
			r.OnClientMsg(sess.UserID, msg.Key, msg.Value)
		}
	default:
		h.logger.Warn("unknown cmd", "conn_id", conn.ID(), "cmd", msg.Cmd)
	}
}

func (h *WebsocketHandler) handleLogin(conn wss.Client, sess *domain.Session, msg clientMsg) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if _, err := h.users.Login(ctx, sess, msg.UserID); err != nil {
		h.logger.Warn("login failed", "conn_id", conn.ID(), "user_id", msg.UserID, "error", err)
		h.reply(conn, "login", 1, err.Error())
		return
	}

	h.stopLoginTimer(conn)
	h.reply(conn, "login", 0, "")
}

func (h *WebsocketHandler) handleEnterRoom(conn wss.Client, sess *domain.Session) {
	r, found := h.rooms.GetRoomByUser(sess.UserID)
	if !found {
		h.reply(conn, "room.enter", 1, "no room assigned")
		return
	}

	if err := r.EnterRoom(context.Background(), sess.UserID); err != nil {
		h.logger.Warn("enter room failed",
			"user_id", sess.UserID, "room_id", r.ID(), "error", err)
		h.reply(conn, "room.enter", 1, err.Error())
		return
	}
	h.reply(conn, "room.enter", 0, "")
}

func (h *WebsocketHandler) reply(conn wss.Client, cmd string, code int, errMsg string) {
	data, err := json.Marshal(serverMsg{Cmd: cmd, Code: code, Error: errMsg})
	if err != nil {
		return
	}
	if err := conn.SendMessage(data); err != nil {
		h.logger.Warn("reply failed", "conn_id", conn.ID(), "error", err)
	}
}

func (h *WebsocketHandler) session(conn wss.Client) (*domain.Session, bool) {
	val, ok := conn.GetTag(tagSession)
	if !ok {
		return nil, false
	}
	sess, ok := val.(*domain.Session)
	return sess, ok
}

func (h *WebsocketHandler) stopLoginTimer(conn wss.Client) {
	if val, ok := conn.GetTag(tagLoginTimer); ok {
		if timer, ok := val.(*time.Timer); ok {
			timer.Stop()
		}
	}
}
