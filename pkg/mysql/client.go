package mysql

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Config 定義 MySQL 連線配置
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// Client 封裝 gorm.DB 以統一連線管理
type Client struct {
	db *gorm.DB
}

// NewClient 建立並回傳一個新的 MySQL 客戶端實例
//
// 參數:
//
//	cfg: Config - MySQL 連線配置資訊
//
// 回傳值:
//
//	*Client: 封裝後的客戶端實例
//	error: 若連線失敗則回傳錯誤
func NewClient(cfg Config) (*Client, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}

	// 測試連線
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}

	return &Client{db: db}, nil
}

// DB 取得底層的 gorm.DB
func (c *Client) DB() *gorm.DB {
	return c.db
}

// Close 關閉連線池
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
