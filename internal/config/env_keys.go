package config

// Environment Variable Keys
const (
	// EnvAppEnv 定義應用程式執行環境 (local, dev, prod)
	EnvAppEnv = "APP_ENV"

	// EnvPort 定義 HTTP/Websocket 服務 Port
	EnvPort = "PORT"

	// EnvRedisAddr 定義 Redis 服務地址 (host:port)
	EnvRedisAddr = "REDIS_ADDR"

	// EnvRedisPassword 定義 Redis 密碼
	EnvRedisPassword = "REDIS_PASSWORD"

	// EnvMySQLHost 定義 MySQL 主機
	EnvMySQLHost = "MYSQL_HOST"

	// EnvMySQLPort 定義 MySQL Port
	EnvMySQLPort = "MYSQL_PORT"

	// EnvMySQLUser 定義 MySQL 使用者
	EnvMySQLUser = "MYSQL_USER"

	// EnvMySQLPassword 定義 MySQL 密碼
	EnvMySQLPassword = "MYSQL_PASSWORD"

	// EnvMySQLDB 定義 MySQL 資料庫名稱
	EnvMySQLDB = "MYSQL_DB"

	// EnvRoomGameID 定義此節點服務的遊戲 ID
	EnvRoomGameID = "ROOM_GAME_ID"

	// EnvRoomWorkType 定義此節點的房間角色 (logic / supervisor)
	EnvRoomWorkType = "ROOM_WORK_TYPE"
)
