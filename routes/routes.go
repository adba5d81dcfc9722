package routes

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"sehatmand-backend/config"
	"sehatmand-backend/controllers"
	"sehatmand-backend/middleware"
	"sehatmand-backend/services"
	"sehatmand-backend/session"
)

// SetupRoutes wires services, controllers and endpoints onto the router.
func SetupRoutes(router *gin.Engine, cfg *config.Config) (session.Store, error) {
	// Initialize the session store
	opts := session.Options{
		TTL:        cfg.Session.TTL,
		MaxHistory: cfg.Session.MaxHistory,
	}
	if cfg.Session.StoreType == string(session.StoreTypeRedis) {
		opts.RedisClient = redis.NewClient(&redis.Options{
			Addr: cfg.Session.RedisAddr,
			DB:   cfg.Session.RedisDB,
		})
	}
	store, err := session.NewStore(session.StoreType(cfg.Session.StoreType), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	// Initialize services
	aiService := services.NewAIService(cfg)
	doctorService := services.NewDoctorService()
	doctorService.WarmUp(context.Background())
	chatbotService := services.NewChatbotService(aiService, doctorService, store, cfg)
	placesService := services.NewPlacesService(cfg)

	// Initialize controllers
	chatbotController := controllers.NewChatbotController(chatbotService, store)
	wsController := controllers.NewWebSocketController(chatbotService)
	placesController := controllers.NewPlacesController(placesService, cfg)
	adminController := controllers.NewAdminController(doctorService)

	api := router.Group("/api")
	{
		api.POST("/chat", chatbotController.HandleChat)
		api.POST("/clear", chatbotController.ClearSession)
		api.GET("/health", chatbotController.HealthCheck)
		api.GET("/places/nearby", placesController.NearbyFacilities)

		// WebSocket for real-time chat
		api.GET("/ws", wsController.HandleWebSocket)

		admin := api.Group("/admin")
		admin.Use(middleware.RequireAPIKey(cfg.Admin.APIKey))
		{
			admin.POST("/doctors/refresh", adminController.RefreshDoctors)
		}
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})

	return store, nil
}
