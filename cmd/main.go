package main

import (
	"context"
	"net/http"

	"PokerRoom/config"
	"PokerRoom/internal/auth"
	"PokerRoom/internal/directory"
	"PokerRoom/internal/game/manager"
	"PokerRoom/internal/game/table"
	"PokerRoom/internal/middleware"
	"PokerRoom/internal/storage"
	"PokerRoom/internal/utils"
	"PokerRoom/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()
	utils.Init()

	//-------------------------------------------------------
	// 1. 房间目录：单机默认内存，Redis 打开后可多实例共享大厅
	//-------------------------------------------------------
	var dir directory.Repo
	if config.C.Redis.Enabled {
		if err := storage.InitRedis(
			config.C.Redis.Addr,
			config.C.Redis.Password,
			config.C.Redis.DB,
		); err != nil {
			utils.Print.Fatal("Redis init failed", "err", err)
		}
		dir = directory.NewRedisRepo(storage.Rdb, config.C.Redis.RoomTTL)
	} else {
		dir = directory.NewMemoryRepo()
	}

	//-------------------------------------------------------
	// 2. 初始化 Gin + CORS
	//-------------------------------------------------------
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	//-------------------------------------------------------
	// 3. 初始化 Hub（必须最先启动）
	//-------------------------------------------------------
	hub := websocket.NewHub()
	go hub.Run()

	//-------------------------------------------------------
	// 4. 初始化 Manager，并把玩家消息 / 断线事件接到游戏层
	//-------------------------------------------------------
	mgr := manager.NewManager(hub, dir, manager.Config{
		Table: table.Config{
			SmallBlind:    config.C.Game.SmallBlind,
			BigBlind:      config.C.Game.BigBlind,
			StartingChips: config.C.Game.StartingChips,
		},
		NextHandDelay:    config.C.NextHandDelay(),
		RoomListInterval: config.C.RoomListInterval(),
	})
	hub.OnIncoming = mgr.HandlePlayerMessage
	hub.OnDisconnect = mgr.HandleDisconnect

	// 大厅列表周期推送
	go mgr.Run(context.Background())

	//-------------------------------------------------------
	// 5. 大厅 REST：不登录也能看房间列表
	//-------------------------------------------------------
	r.GET("/rooms", func(c *gin.Context) {
		list, err := mgr.RoomList(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "room list unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"rooms": list})
	})

	//-------------------------------------------------------
	// 6. 登录 + WebSocket 入口
	//-------------------------------------------------------
	authGroup := r.Group("/auth")
	{
		h := auth.NewHandler()
		authGroup.POST("/guest", h.Guest)
	}

	secret := ([]byte)(config.C.JWT.Secret)
	protected := r.Group("/", middleware.JwtAuthMiddleware(secret))
	{
		protected.GET("/ws", websocket.ServeWS(hub))
	}

	//-------------------------------------------------------
	// 7. 启动服务器
	//-------------------------------------------------------
	utils.Print.Info("Server running", "port", config.C.Server.Port)
	if err := r.Run(config.C.Server.Port); err != nil {
		utils.Print.Fatal("server stopped", "err", err)
	}
}
