package ports

import (
	"context"

	"github.com/JoeShih716/go-room-server/internal/core/domain"
)

// UserManager 定義了房間所依賴的使用者管理介面。
// 房間透過它查找使用者、下發訊息、以及在關房時強制登出。
//
//go:generate mockgen -destination=../../../test/mocks/ports/mock_user.go -package=mock_ports -source=user.go
type UserManager interface {
	// GetUser 取得線上使用者
	//
	// 回傳值:
	//
	//	*domain.User: 使用者物件
	//	bool: 使用者不在線時回傳 false
	GetUser(userID string) (*domain.User, bool)

	// Send 發送訊息給使用者
	//
	// 回傳值:
	//
	//	error: 若使用者會話不存在或發送失敗則回傳錯誤
	Send(user *domain.User, payload []byte) error

	// Logout 強制登出使用者並中斷其會話
	//
	// 回傳值:
	//
	//	bool: 使用者不在線時回傳 false
	Logout(userID string) bool
}

// UserRepository 定義了使用者資料的持久層介面
type UserRepository interface {
	// Create 建立使用者
	Create(ctx context.Context, user *domain.User) error

	// GetByID 根據 UserID 取得使用者，查無資料時回傳 (nil, nil)
	GetByID(ctx context.Context, userID string) (*domain.User, error)

	// Update 更新使用者資料
	Update(ctx context.Context, user *domain.User) error
}
