package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	approom "github.com/JoeShih716/go-room-server/internal/app/roomsvc"
	"github.com/JoeShih716/go-room-server/internal/core/domain"
	"github.com/JoeShih716/go-room-server/internal/core/ports"
	"github.com/JoeShih716/go-room-server/internal/engine/lockstep"
	"github.com/JoeShih716/go-room-server/internal/game/center"
	"github.com/JoeShih716/go-room-server/internal/game/match"
	"github.com/JoeShih716/go-room-server/internal/game/room"
	"github.com/JoeShih716/go-room-server/internal/game/roomsync"
	"github.com/JoeShih716/go-room-server/internal/infrastructure/persistence/mysql"
	"github.com/JoeShih716/go-room-server/internal/kit/bootstrap"
	"github.com/JoeShih716/go-room-server/internal/user"
	mysqlpkg "github.com/JoeShih716/go-room-server/pkg/mysql"
	redispkg "github.com/JoeShih716/go-room-server/pkg/redis"
	"github.com/JoeShih716/go-room-server/pkg/wss"
)

func main() {
	app := bootstrap.NewApp("roomsvc")
	cfg := app.Config
	logger := app.Logger

	ctx, cancel := context.WithCancel(context.Background())

	// 1. 初始化 Redis (同步頻道 + 中央儲存)
	redisClient, err := redispkg.NewClient(redispkg.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		cancel()
		return
	}

	// 2. 初始化 MySQL (使用者資料)
	mysqlClient, err := mysqlpkg.NewClient(mysqlpkg.Config{
		Host:     cfg.MySQL.Host,
		Port:     cfg.MySQL.Port,
		User:     cfg.MySQL.User,
		Password: cfg.MySQL.Password,
		DBName:   cfg.MySQL.DBName,
	})
	if err != nil {
		logger.Error("Failed to connect to MySQL", "error", err)
		cancel()
		return
	}

	// 3. 使用者管理
	userRepo := mysql.NewUserRepository(mysqlClient)
	userMgr := user.NewManager(userRepo, logger)

	// 4. 配對結果註冊表與中央儲存
	registry := match.NewRegistry(logger)
	centerHelper := center.NewHelper(redisClient, registry, logger)

	// 5. 節點角色
	workType := domain.WorkTypeLogic
	if cfg.Room.IsSupervisor() {
		workType = domain.WorkTypeSupervisor
	}
	isSupervisor := workType == domain.WorkTypeSupervisor

	// 6. 房間管理器：幀同步引擎 + Redis 同步通道
	engineOpts := lockstep.Options{
		FrameInterval: time.Duration(cfg.Room.FrameIntervalMs) * time.Millisecond,
		MaxUsers:      cfg.Room.MaxUsers,
		Logger:        logger,
	}
	newEngine := func(gameID, roomID, roomName string, supervisor bool) ports.Engine {
		return lockstep.New(gameID, roomID, roomName, supervisor, engineOpts)
	}
	newSyncPool := func(gameID, roomID string) ports.EventSyncChannel {
		return roomsync.NewEventPool(gameID, roomID, redisClient, logger)
	}
	roomMgr := room.NewManager(cfg.Room.GameID, registry, userMgr, newEngine, newSyncPool, logger)
	if cfg.Room.AdmissionTimeoutSec > 0 {
		roomMgr.SetAdmissionTimeout(time.Duration(cfg.Room.AdmissionTimeoutSec) * time.Second)
	}

	// 7. 監督節點跟隨 Logic 房間的同步頻道
	var follower *approom.Follower
	if isSupervisor {
		subscriber := roomsync.NewSubscriber(redisClient, logger)
		follower = approom.NewFollower(ctx, roomMgr, subscriber, logger)
	}

	// 8. HTTP 路由：對外 WebSocket + 內部管理介面
	wsConfig := &wss.Config{
		AllowedOrigins:  cfg.WSS.AllowedOrigins,
		ReadBufferSize:  cfg.WSS.ReadBufferSize,
		WriteBufferSize: cfg.WSS.WriteBufferSize,
		WriteWait:       time.Duration(cfg.WSS.WriteWaitSec) * time.Second,
		PongWait:        time.Duration(cfg.WSS.PongWaitSec) * time.Second,
		MaxMessageSize:  cfg.WSS.MaxMessageSize,
	}
	wsServer := wss.NewServer(ctx, wsConfig, logger)
	wsServer.Register(approom.NewWebsocketHandler(userMgr, roomMgr, logger))

	wsPath := cfg.WSS.Path
	if wsPath == "" {
		wsPath = "/ws"
	}

	mux := http.NewServeMux()
	mux.Handle(wsPath, wsServer)
	mux.Handle("/internal/", approom.NewAdminHandler(roomMgr, centerHelper, follower, workType, logger))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	httpServer := &http.Server{Addr: addr, Handler: mux}

	app.Run(func() error {
		logger.Info("Listening on", "addr", addr, "ws_path", wsPath,
			"game_id", cfg.Room.GameID, "work_type", workType.String())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}, func() {
		// 關閉順序：停收新連線 -> 關閉房間 -> 斷開基礎設施
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("HTTP shutdown error", "error", err)
		}

		if follower != nil {
			follower.Close()
		}
		roomMgr.Range(func(r *room.Room) bool {
			r.CloseRoom()
			return true
		})

		cancel() // 終止 WebSocket hub 與訂閱

		if err := redisClient.Close(); err != nil {
			logger.Warn("Redis close error", "error", err)
		}
		if err := mysqlClient.Close(); err != nil {
			logger.Warn("MySQL close error", "error", err)
		}
	})
}
