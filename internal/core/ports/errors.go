package ports

import "errors"

// 定義 Ports 層級通用的錯誤
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomClosed       = errors.New("room closed")
	ErrAdmissionPending = errors.New("admission already pending for user")
)
