package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config 總配置結構
type Config struct {
	App   AppConfig   `yaml:"app"`
	Redis RedisConfig `yaml:"redis"`
	MySQL MySQLConfig `yaml:"mysql"`
	WSS   WSSConfig   `yaml:"wss"`
	Room  RoomConfig  `yaml:"room"`
}

type AppConfig struct {
	Name string `yaml:"name"`
	Env  string `yaml:"env"`
	Port int    `yaml:"port"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type WSSConfig struct {
	Path            string   `yaml:"path"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	ReadBufferSize  int      `yaml:"read_buffer_size"`
	WriteBufferSize int      `yaml:"write_buffer_size"`
	WriteWaitSec    int      `yaml:"write_wait_sec"`
	PongWaitSec     int      `yaml:"pong_wait_sec"`
	MaxMessageSize  int64    `yaml:"max_message_size"`
}

// RoomConfig 房間協調服務的專屬設定
type RoomConfig struct {
	GameID              string `yaml:"game_id"`               // 此節點服務的遊戲
	WorkType            string `yaml:"work_type"`             // "logic" 或 "supervisor"
	AdmissionTimeoutSec int    `yaml:"admission_timeout_sec"` // EnterRoom 等待准入的上限
	FrameIntervalMs     int    `yaml:"frame_interval_ms"`     // 引擎幀間隔
	MaxUsers            int    `yaml:"max_users"`             // 單房人數上限
}

// IsSupervisor 此節點是否以監督副本模式運行
func (c RoomConfig) IsSupervisor() bool {
	return c.WorkType == "supervisor"
}

// Load 讀取設定檔
// 預設讀取 config/config.yaml，然後使用環境變數覆蓋
func Load(configPath ...string) (*Config, error) {
	dir := "./config"
	if len(configPath) > 0 {
		dir = configPath[0]
	}
	fullPath := filepath.Join(dir, "config.yaml")

	var cfg Config

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file at %s: %w", fullPath, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml at %s: %w", fullPath, err)
	}

	overrideWithEnv(&cfg)

	return &cfg, nil
}

func overrideWithEnv(cfg *Config) {
	// App
	if env := os.Getenv(EnvAppEnv); env != "" {
		cfg.App.Env = env
	}
	if portVal := os.Getenv(EnvPort); portVal != "" {
		if p, err := strconv.Atoi(portVal); err == nil {
			cfg.App.Port = p
		}
	}

	// Redis
	if val := os.Getenv(EnvRedisAddr); val != "" {
		cfg.Redis.Addr = val
	}
	if val := os.Getenv(EnvRedisPassword); val != "" {
		cfg.Redis.Password = val
	}

	// MySQL
	if val := os.Getenv(EnvMySQLHost); val != "" {
		cfg.MySQL.Host = val
	}
	if val := os.Getenv(EnvMySQLPort); val != "" {
		if p, err := strconv.Atoi(val); err == nil {
			cfg.MySQL.Port = p
		}
	}
	if val := os.Getenv(EnvMySQLUser); val != "" {
		cfg.MySQL.User = val
	}
	if val := os.Getenv(EnvMySQLPassword); val != "" {
		cfg.MySQL.Password = val
	}
	if val := os.Getenv(EnvMySQLDB); val != "" {
		cfg.MySQL.DBName = val
	}

	// Room
	if val := os.Getenv(EnvRoomGameID); val != "" {
		cfg.Room.GameID = val
	}
	if val := os.Getenv(EnvRoomWorkType); val != "" {
		cfg.Room.WorkType = val
	}
}
