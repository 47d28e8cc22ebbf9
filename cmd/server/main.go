package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"thimar/internal/api"
	"thimar/internal/config"
	"thimar/internal/handlers"
	"thimar/internal/logger"
	"thimar/internal/middleware"
	"thimar/internal/recommend"
	"thimar/internal/services"
	"thimar/internal/session"
	"thimar/internal/store"
	"thimar/internal/validator"
	"thimar/internal/wizard"
)

// @title           Thimar Client API
// @version         1.0
// @description     Thimar is a real-estate investment marketplace client. It normalizes the backend's response envelopes, drives the investment wizard, and keeps the signed-in session durable across restarts.

// @host      localhost:3000
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the backend-issued token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Open the durable credential store and restore the session
	credStore, err := store.Open(cfg.StatePath)
	if err != nil {
		return fmt.Errorf("failed to open credential store: %w", err)
	}
	defer func() {
		if err := credStore.Close(); err != nil {
			log.Errorw("failed to close credential store", "error", err)
		}
	}()

	sess, err := session.New(credStore)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if sess.IsAuthenticated() {
		log.Infow("restored session", "user_id", sess.User().ID, "token_expired", sess.TokenExpired())
	}

	// Backend API client: bearer tokens come from the session, and any 401
	// clears the stored credentials reactively.
	backend := api.NewClient(cfg.APIBaseURL, nil, sess, sess.Clear)

	// Initialize services
	authService := services.NewAuthService(backend, sess)
	opportunityService := services.NewOpportunityService(backend)
	developerService := services.NewDeveloperService(backend)
	cityService := services.NewCityService(backend)
	assetTypeService := services.NewAssetTypeService(backend)
	userService := services.NewUserService(backend)
	investmentService := services.NewInvestmentService(backend)
	transactionService := services.NewTransactionService(backend)
	adminService := services.NewAdminService(backend)

	wizards := wizard.NewRegistry(investmentService, transactionService)
	engine := recommend.NewClient(cfg.RecommendURL, cfg.RecommendKey, nil)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, sess)
	opportunityHandler := handlers.NewOpportunityHandler(opportunityService)
	developerHandler := handlers.NewDeveloperHandler(developerService)
	settingsHandler := handlers.NewSettingsHandler(cityService, assetTypeService)
	userHandler := handlers.NewUserHandler(userService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, transactionService, wizards)
	recommendationHandler := handlers.NewRecommendationHandler(engine)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Initialize Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Browsing is public; investing is not
	v1.GET("/opportunities", opportunityHandler.ListOpportunities)
	v1.GET("/opportunities/:id", opportunityHandler.GetOpportunity)
	v1.GET("/developers", developerHandler.ListDevelopers)
	v1.GET("/developers/:id", developerHandler.GetDeveloper)
	v1.GET("/settings/cities", settingsHandler.ListCities)
	v1.GET("/settings/asset-types", settingsHandler.ListAssetTypes)

	// Protected routes. Writes share the wizard's single-flight discipline:
	// a duplicate in-flight submission for the same user and route is
	// rejected instead of reaching the backend twice.
	protected := v1.Group("/", middleware.SessionRequired(sess), middleware.SingleFlight())

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/auth/me", authHandler.Me)
	protected.PUT("/auth/profile", authHandler.UpdateProfile)
	protected.POST("/auth/change-password", authHandler.ChangePassword)

	// Investment wizard, one per (user, opportunity)
	invest := protected.Group("/opportunities/:id/invest")
	invest.GET("", investmentHandler.WizardState)
	invest.DELETE("", investmentHandler.WizardReset)
	invest.POST("/amount", investmentHandler.WizardSetAmount)
	invest.POST("/terms", investmentHandler.WizardAgree)
	invest.POST("/continue", investmentHandler.WizardContinue)
	invest.POST("/back", investmentHandler.WizardBack)

	// Portfolio and wallet
	protected.GET("/investments", investmentHandler.ListMyInvestments)
	protected.GET("/investments/statistics", investmentHandler.MyStatistics)
	protected.GET("/wallet/transactions", investmentHandler.ListMyTransactions)
	protected.POST("/wallet/transactions", investmentHandler.CreateTransaction)
	protected.GET("/wallet/statistics", investmentHandler.WalletStatistics)

	// Recommendations
	protected.POST("/recommendations", recommendationHandler.GetRecommendations)

	// Admin routes
	admin := protected.Group("/", middleware.AdminRequired())
	admin.GET("/admin/dashboard", adminHandler.DashboardStats)
	admin.GET("/admin/growth", adminHandler.GrowthStats)

	admin.POST("/opportunities", opportunityHandler.CreateOpportunity)
	admin.PUT("/opportunities/:id", opportunityHandler.UpdateOpportunity)
	admin.DELETE("/opportunities/:id", opportunityHandler.DeleteOpportunity)

	admin.POST("/developers", developerHandler.CreateDeveloper)
	admin.PUT("/developers/:id", developerHandler.UpdateDeveloper)
	admin.DELETE("/developers/:id", developerHandler.DeleteDeveloper)

	admin.POST("/settings/cities", settingsHandler.CreateCity)
	admin.PUT("/settings/cities/:id", settingsHandler.UpdateCity)
	admin.DELETE("/settings/cities/:id", settingsHandler.DeleteCity)
	admin.POST("/settings/asset-types", settingsHandler.CreateAssetType)
	admin.PUT("/settings/asset-types/:id", settingsHandler.UpdateAssetType)
	admin.DELETE("/settings/asset-types/:id", settingsHandler.DeleteAssetType)

	admin.GET("/users", userHandler.ListUsers)
	admin.GET("/users/search", userHandler.SearchUserByPhone)
	admin.GET("/users/:id", userHandler.GetUser)
	admin.POST("/users", userHandler.CreateUser)
	admin.PUT("/users/:id", userHandler.UpdateUser)
	admin.DELETE("/users/:id", userHandler.DeleteUser)

	admin.PUT("/investments/:id/status", investmentHandler.UpdateInvestmentStatus)

	log.Infow("starting server",
		"port", cfg.Port,
		"env", cfg.Env,
		"backend", cfg.APIBaseURL,
	)
	return router.Run(":" + cfg.Port)
}
