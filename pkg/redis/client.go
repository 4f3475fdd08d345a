package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config 定義 Redis 連線配置
type Config struct {
	Addr     string // Redis 伺服器地址 (e.g., "localhost:6379")
	Password string // Redis 密碼 (若無則留空)
	DB       int    // 使用的資料庫編號
}

// Client 封裝 redis.Client 以提供更簡易的介面
type Client struct {
	rdb *redis.Client
}

// NewClient 建立並回傳一個新的 Redis 客戶端實例
//
// 參數:
//
//	cfg: Config - Redis 連線配置資訊
//
// 回傳值:
//
//	*Client: 封裝後的 Redis 客戶端實例
//	error: 若連線失敗則回傳錯誤
func NewClient(cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 測試連線
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close 關閉 Redis 連線
func (c *Client) Close() error {
	return c.rdb.Close()
}

// IsNil 判斷錯誤是否為「鍵不存在」
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

// SetStruct 將結構體序列化為 JSON 並儲存到 Redis
//
// 參數:
//
//	ctx: context.Context - 上下文
//	key: string - Redis 鍵
//	value: any - 要儲存的結構體 (必須能被 json.Marshal)
//	expiration: ...time.Duration - (選填) 過期時間，若不填則預設為 0 (不過期)
func (c *Client) SetStruct(ctx context.Context, key string, value any, expiration ...time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	var exp time.Duration
	if len(expiration) > 0 {
		exp = expiration[0]
	}

	return c.rdb.Set(ctx, key, data, exp).Err()
}

// GetStruct 從 Redis 讀取 JSON 並反序列化為結構體
//
// 參數:
//
//	ctx: context.Context - 上下文
//	key: string - Redis 鍵
//	dest: any - 目標結構體的指標 (必須能被 json.Unmarshal)
func (c *Client) GetStruct(ctx context.Context, key string, dest any) error {
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}

// Del 刪除一個或多個鍵
func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}
