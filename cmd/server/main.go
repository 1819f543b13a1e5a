package main

import (
	"log"
	"net/http"
	"os"

	_ "mealbridge/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"mealbridge/internal/auth"
	"mealbridge/internal/cache"
	"mealbridge/internal/config"
	"mealbridge/internal/db"
	"mealbridge/internal/handler"
	"mealbridge/internal/model"
	"mealbridge/internal/repository"
	"mealbridge/internal/router"
	"mealbridge/internal/service"
)

// @title MealBridge API
// @version 1.0
// @description Surplus food donation and request matching platform with JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.ContactMessage{},
			&model.AuditLog{},
			&model.Request{},
			&model.Donation{},
			&model.PlatformStats{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Donation{},
		&model.Request{},
		&model.AuditLog{},
		&model.PlatformStats{},
		&model.ContactMessage{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	donationRepo := repository.NewDonationRepository(gormDB)
	requestRepo := repository.NewRequestRepository(gormDB)
	auditRepo := repository.NewAuditRepository(gormDB)
	statsRepo := repository.NewStatsRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	auditService := service.NewAuditService(auditRepo)
	authService := service.NewAuthService(userRepo, statsRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo)
	donationService := service.NewDonationService(donationRepo, auditService, cacheClient)
	requestService := service.NewRequestService(requestRepo, donationRepo, userRepo, cacheClient)
	adminService := service.NewAdminService(userRepo, donationRepo, requestRepo, statsRepo, auditService, cacheClient)
	messageService := service.NewMessageService(messageRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	donationHandler := handler.NewDonationHandler(donationService)
	requestHandler := handler.NewRequestHandler(requestService)
	adminHandler := handler.NewAdminHandler(adminService, messageService)
	messageHandler := handler.NewMessageHandler(messageService)

	// Register routes
	router.Register(
		e,
		jwtService,
		authHandler,
		userHandler,
		donationHandler,
		requestHandler,
		adminHandler,
		messageHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
