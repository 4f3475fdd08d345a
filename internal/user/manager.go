package user

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/JoeShih716/go-room-server/internal/core/domain"
	"github.com/JoeShih716/go-room-server/internal/core/ports"
)

// Manager 負責管理所有已登入的使用者與其會話。
// 它是 Thread-Safe 的，支援並發讀寫；房間透過 ports.UserManager
// 介面使用它來查找使用者、下發訊息與強制登出。
type Manager struct {
	sessions sync.Map // Map[string]*domain.Session (userID -> session)
	users    sync.Map // Map[string]*domain.User (userID -> profile)
	count    int64    // 在線人數計數器

	repo   ports.UserRepository
	logger *slog.Logger
}

// 確保 Manager 實現了 ports.UserManager 介面
var _ ports.UserManager = (*Manager)(nil)

// NewManager 建立使用者管理器
//
// 參數:
//
//	repo: ports.UserRepository - 使用者資料的持久層，登入時載入 profile
func NewManager(repo ports.UserRepository, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		repo:   repo,
		logger: logger.With("component", "user_manager"),
	}
}

// Login 把會話綁定到使用者
// 從持久層載入 profile；同一使用者重複登入時踢掉舊會話 (頂號)。
//
// 回傳值:
//
//	*domain.User: 載入的使用者 profile
//	error: 使用者不存在時回傳 ports.ErrUserNotFound
func (m *Manager) Login(ctx context.Context, sess *domain.Session, userID string) (*domain.User, error) {
	u, err := m.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user %q: %w", userID, err)
	}
	if u == nil {
		return nil, ports.ErrUserNotFound
	}

	sess.UserID = userID

	if prev, loaded := m.sessions.Swap(userID, sess); loaded {
		m.logger.Info("duplicate login, kicking previous session", "user_id", userID)
		_ = prev.(*domain.Session).Kick("duplicate login")
	} else {
		atomic.AddInt64(&m.count, 1)
	}
	m.users.Store(userID, u)

	m.logger.Info("user logged in", "user_id", userID, "session_id", sess.ID, "online", m.Count())
	return u, nil
}

// GetUser 取得線上使用者
func (m *Manager) GetUser(userID string) (*domain.User, bool) {
	val, ok := m.users.Load(userID)
	if !ok {
		return nil, false
	}
	return val.(*domain.User), true
}

// Send 發送訊息給使用者
func (m *Manager) Send(user *domain.User, payload []byte) error {
	if user == nil {
		return ports.ErrUserNotFound
	}
	val, ok := m.sessions.Load(user.ID)
	if !ok {
		return ports.ErrUserNotFound
	}
	return val.(*domain.Session).Send(payload)
}

// Logout 強制登出使用者並中斷其會話
//
// 回傳值:
//
//	bool: 使用者不在線時回傳 false
func (m *Manager) Logout(userID string) bool {
	val, loaded := m.sessions.LoadAndDelete(userID)
	if !loaded {
		return false
	}
	atomic.AddInt64(&m.count, -1)
	m.users.Delete(userID)

	sess := val.(*domain.Session)
	if err := sess.Kick("logout"); err != nil {
		m.logger.Warn("kick on logout failed", "user_id", userID, "error", err)
	}
	m.logger.Info("user logged out", "user_id", userID, "online", m.Count())
	return true
}

// OnSessionClosed 當底層連線斷開時清理對應的使用者狀態
// 只清理仍綁定該會話的項目，避免誤刪頂號後的新會話。
func (m *Manager) OnSessionClosed(sess *domain.Session) {
	if sess.UserID == "" {
		return
	}
	val, ok := m.sessions.Load(sess.UserID)
	if !ok || val.(*domain.Session) != sess {
		return
	}
	m.sessions.Delete(sess.UserID)
	m.users.Delete(sess.UserID)
	atomic.AddInt64(&m.count, -1)
	m.logger.Info("session closed", "user_id", sess.UserID, "online", m.Count())
}

// Count 取得當前在線人數
func (m *Manager) Count() int64 {
	return atomic.LoadInt64(&m.count)
}

// Range 遍歷所有線上使用者 (用於廣播等操作)
// handler 回傳 false 則停止遍歷
func (m *Manager) Range(handler func(u *domain.User) bool) {
	m.users.Range(func(key, value any) bool {
		return handler(value.(*domain.User))
	})
}
