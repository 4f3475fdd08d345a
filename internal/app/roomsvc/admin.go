package roomsvc

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JoeShih716/go-room-server/internal/core/domain"
	"github.com/JoeShih716/go-room-server/internal/game/center"
	"github.com/JoeShih716/go-room-server/internal/game/room"
)

// createRoomReq 是配對服務送來的建房指派
type createRoomReq struct {
	RoomID   string   `json:"room_id"`
	OwnerID  string   `json:"owner_id"`
	RoomName string   `json:"room_name"`
	UserIDs  []string `json:"user_ids"`
	SupNodes []string `json:"sup_nodes,omitempty"`
}

// AdminHandler 提供給配對服務與維運使用的內部 HTTP 介面
//
// POST   /internal/rooms            建立房間
// POST   /internal/rooms/{id}/start 將房間切換到 START
// DELETE /internal/rooms/{id}       關閉房間
// GET    /internal/rooms            傾印房間與註冊表狀態
// GET    /healthz                   健康檢查
type AdminHandler struct {
	rooms    *room.Manager
	center   *center.Helper
	follower *Follower
	workType domain.RoomWorkType
	mux      *http.ServeMux
	logger   *slog.Logger
}

// NewAdminHandler 建立內部管理介面
// follower 只在監督節點提供，Logic 節點傳 nil。
func NewAdminHandler(rooms *room.Manager, centerHelper *center.Helper,
	follower *Follower, workType domain.RoomWorkType, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &AdminHandler{
		rooms:    rooms,
		center:   centerHelper,
		follower: follower,
		workType: workType,
		mux:      http.NewServeMux(),
		logger:   logger.With("component", "admin_api"),
	}

	h.mux.HandleFunc("POST /internal/rooms", h.handleCreateRoom)
	h.mux.HandleFunc("POST /internal/rooms/{id}/start", h.handleStartRoom)
	h.mux.HandleFunc("DELETE /internal/rooms/{id}", h.handleCloseRoom)
	h.mux.HandleFunc("GET /internal/rooms", h.handleInspect)
	h.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return h
}

func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *AdminHandler) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}

	newRoom, err := h.rooms.CreateRoom(room.Assignment{
		RoomID:   req.RoomID,
		OwnerID:  req.OwnerID,
		RoomName: req.RoomName,
		UserIDs:  req.UserIDs,
		SupNodes: req.SupNodes,
		WorkType: h.workType,
	})
	if err != nil {
		h.logger.Warn("create room failed", "room_id", req.RoomID, "error", err)
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	// Logic 節點若帶有監督節點指派，寫回中央儲存供監督節點查詢
	if h.workType == domain.WorkTypeLogic && len(req.SupNodes) > 0 && h.center != nil {
		if err := h.center.PersistRoomSupervisor(r.Context(), newRoom.GameID(), req.RoomID); err != nil {
			h.logger.Warn("persist supervisor assignment failed",
				"room_id", req.RoomID, "error", err)
		}
	}

	// 監督節點開始跟隨 Logic 房間的同步頻道
	if h.follower != nil {
		if err := h.follower.Follow(req.RoomID); err != nil {
			h.rooms.CloseRoom(req.RoomID)
			h.logger.Error("follow room failed", "room_id", req.RoomID, "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"room_id": req.RoomID})
}

func (h *AdminHandler) handleStartRoom(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")
	target, ok := h.rooms.GetRoom(roomID)
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	target.SetState(domain.RoomStateStart)
	w.WriteHeader(http.StatusOK)
}

func (h *AdminHandler) handleCloseRoom(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")

	target, ok := h.rooms.GetRoom(roomID)
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	gameID := target.GameID()

	if h.follower != nil {
		h.follower.Unfollow(roomID)
	}
	if !h.rooms.CloseRoom(roomID) {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	// Logic 節點清掉中央儲存的監督指派
	if h.workType == domain.WorkTypeLogic && h.center != nil {
		if err := h.center.DeleteRoomSupervisor(r.Context(), gameID, roomID); err != nil {
			h.logger.Warn("delete supervisor assignment failed",
				"room_id", roomID, "error", err)
		}
	}
	w.WriteHeader(http.StatusOK)
}

func (h *AdminHandler) handleInspect(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(h.rooms.Inspect()))
}
