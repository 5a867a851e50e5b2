package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/hetpatel672/BudgetWise/internal/auth"
	"github.com/hetpatel672/BudgetWise/internal/config"
	"github.com/hetpatel672/BudgetWise/internal/database"
	"github.com/hetpatel672/BudgetWise/internal/handlers"
	"github.com/hetpatel672/BudgetWise/internal/keystore"
	"github.com/hetpatel672/BudgetWise/internal/logger"
	"github.com/hetpatel672/BudgetWise/internal/middleware"
	"github.com/hetpatel672/BudgetWise/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Open the local store, migrate, and seed first-run defaults
	manager, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer func() {
		if err := manager.Close(); err != nil {
			logger.Get().Warnf("store close error: %v", err)
		}
	}()

	if err := manager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	if err := manager.Seed(); err != nil {
		return fmt.Errorf("failed to seed defaults: %w", err)
	}

	// Initialize services
	db := manager.DB()
	settingsService := services.NewSettingsService(db)
	reportService := services.NewReportService(db)
	transactionService := services.NewTransactionService(db, reportService)
	budgetService := services.NewBudgetService(db)
	categoryService := services.NewCategoryService(db)

	// Initialize the auth/crypto layer
	keys, err := keystore.NewFileStore(filepath.Join(cfg.DataDir, "keystore"))
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}
	authService := auth.NewService(keys, settingsService, cfg.SessionTimeout, cfg.SecurityFailOpen)
	if err := authService.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize auth: %w", err)
	}
	defer authService.Close()
	cipher := auth.NewCipher(keys, cfg.AllowPlaintextFallback)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.SessionSecret, cfg.SessionTimeout)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	reportHandler := handlers.NewReportHandler(reportService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	cryptoHandler := handlers.NewCryptoHandler(cipher)

	// Initialize Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.RegisterValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	authGroup := v1.Group("/auth")
	authGroup.GET("/status", authHandler.Status)
	authGroup.POST("/pin", authHandler.SetupPIN)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.POST("/reset", authHandler.Reset)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.Session(authService, cfg.SessionSecret))

	protected.POST("/transactions", transactionHandler.Create)
	protected.GET("/transactions", transactionHandler.List)
	protected.GET("/transactions/:id", transactionHandler.Get)
	protected.PUT("/transactions/:id", transactionHandler.Update)
	protected.DELETE("/transactions/:id", transactionHandler.Delete)

	protected.GET("/reports/summary", reportHandler.Summary)
	protected.GET("/reports/breakdown", reportHandler.Breakdown)
	protected.GET("/reports/trends", reportHandler.Trends)

	protected.POST("/budgets", budgetHandler.Create)
	protected.GET("/budgets", budgetHandler.List)
	protected.GET("/budgets/:id", budgetHandler.Get)
	protected.PUT("/budgets/:id", budgetHandler.Update)
	protected.DELETE("/budgets/:id", budgetHandler.Delete)
	protected.GET("/budgets/:id/progress", budgetHandler.Progress)

	protected.POST("/categories", categoryHandler.Create)
	protected.GET("/categories", categoryHandler.List)
	protected.GET("/categories/:id", categoryHandler.Get)
	protected.PUT("/categories/:id", categoryHandler.Update)
	protected.DELETE("/categories/:id", categoryHandler.Delete)

	protected.GET("/settings", settingsHandler.List)
	protected.GET("/settings/:key", settingsHandler.Get)
	protected.PUT("/settings/:key", settingsHandler.Set)

	protected.POST("/crypto/encrypt", cryptoHandler.Encrypt)
	protected.POST("/crypto/decrypt", cryptoHandler.Decrypt)

	// Loopback only: the API is a local surface for the app shell, not a
	// published service.
	addr := "127.0.0.1:" + cfg.Port
	logger.Get().Infof("BudgetWise core listening on %s", addr)
	return router.Run(addr)
}
