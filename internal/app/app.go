package app

import (
	"fmt"

	"systempay_backend/internal/config"
	"systempay_backend/internal/handlers"
	"systempay_backend/internal/logger"
	"systempay_backend/internal/middleware"
	"systempay_backend/internal/models"
	"systempay_backend/internal/repositories"
	"systempay_backend/internal/routes"
	"systempay_backend/internal/services"
	"systempay_backend/internal/utils"
	"systempay_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := gormDB.AutoMigrate(&models.Transaction{}); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	transactionRepo := repositories.NewTransactionRepository()
	receipts := utils.NewEmailSender(cfg)

	// Ошибка здесь - незаполненное обязательное поле платежной формы.
	// С такой конфигурацией подписывать нечего, стартовать нельзя.
	paymentService, err := services.NewPaymentService(cfg, transactionRepo, receipts)
	if err != nil {
		logger.Fatal("Failed to initialize payment service", "error", err)
	}

	return &services.ServiceContainer{
		PaymentService: paymentService,
	}
}

func initializeHandlers(serviceContainer *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		PaymentHandler: handlers.NewPaymentHandler(baseHandler, serviceContainer.PaymentService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
