package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"nipco-portal/internal/alerts"
	"nipco-portal/internal/cache"
	"nipco-portal/internal/chat"
	"nipco-portal/internal/database"
	"nipco-portal/internal/handlers"
	"nipco-portal/internal/ledger"
	"nipco-portal/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: No .env file found")
	}

	database.Connect()
	database.SeedCatalog()
	database.SeedAdmin()

	// Sales go through the ledger, never through raw DB calls
	handlers.Ledger = ledger.NewGormLedger(database.DB)

	// Assistant bridge: nil completer (no key) means config_error health
	handlers.Bridge = chat.NewBridge(completerFromEnv())

	// Report cache: Redis when configured, noop otherwise
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
		rc := cache.NewRedisCache(addr, os.Getenv("REDIS_PASSWORD"), redisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(ctx); err != nil {
			log.Println("⚠️ Redis unreachable, falling back to noop cache:", err)
		} else {
			handlers.ReportCache = rc
			defer rc.Close()
			log.Println("✅ Report cache backed by Redis at", addr)
		}
		cancel()
	}

	// Tank alert sweep every 30 seconds
	poller, err := alerts.NewPoller()
	if err != nil {
		log.Fatal("Failed to schedule alert poller:", err)
	}
	poller.Start()
	defer poller.Stop()

	r := gin.Default()

	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", handlers.Login)

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/stations", handlers.GetStations)

		// Managers only see their own station; admins see everything
		station := api.Group("/stations/:id")
		station.Use(middleware.StationScope())
		{
			station.GET("", handlers.GetStation)
			station.GET("/tanks", handlers.GetStationTanks)
			station.GET("/dashboard", handlers.GetStationDashboard)
			station.GET("/sales", handlers.GetSales)
			station.POST("/sales", handlers.CreateSale)
			station.GET("/staff", handlers.GetStaff)
			station.POST("/staff", handlers.CreateStaff)
		}

		api.GET("/notifications", handlers.GetNotifications)
		api.PUT("/notifications/:id/read", handlers.MarkNotificationRead)
		api.DELETE("/notifications/:id", handlers.DeleteNotification)

		// AI assistant
		api.POST("/chat", handlers.PostChat)
		api.GET("/chat", handlers.ChatHealth)
		api.GET("/chat/sessions", handlers.GetChatSessions)
		api.DELETE("/chat/sessions/:sessionId", handlers.DeleteChatSession)

		// ADMIN ONLY
		admin := api.Group("/")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/register", handlers.Register)
			admin.GET("/reports/revenue", handlers.GetRevenueTable)
			admin.GET("/reports/summary", handlers.GetNetworkSummary)

			admin.POST("/orders", handlers.CreateOrder)
			admin.GET("/orders", handlers.GetOrders)
			admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus)
			admin.POST("/orders/:id/driver-offload", handlers.CreateDriverOffload)
			admin.POST("/orders/:id/tank-offload", handlers.CreateTankOffload)

			admin.PUT("/staff/:staffId", handlers.UpdateStaff)
			admin.GET("/drivers", handlers.GetDrivers)
			admin.POST("/drivers", handlers.CreateDriver)
			admin.PUT("/drivers/:driverId", handlers.UpdateDriver)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 NIPCO Portal API starting on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}

// completerFromEnv builds the Gemini upstream from GEMINI_API_KEY.
// Returning a nil interface keeps the bridge's config_error path honest.
func completerFromEnv() chat.Completer {
	if g := chat.NewGeminiCompleter(os.Getenv("GEMINI_API_KEY")); g != nil {
		return g
	}
	log.Println("⚠️ GEMINI_API_KEY not set: assistant will answer with fallbacks only")
	return nil
}
