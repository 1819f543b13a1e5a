package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"mealbridge/internal/config"
	"mealbridge/internal/db"
	"mealbridge/internal/model"
	"mealbridge/internal/repository"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.PlatformStats{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	statsRepo := repository.NewStatsRepository(gormDB)

	created, err := seedAdmin(ctx, userRepo, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if created {
		log.Printf("Admin user created: %s", cfg.AdminEmail)
	} else {
		log.Printf("Admin user already exists: %s", cfg.AdminEmail)
	}

	// Ensure the singleton counter row exists so the landing page has
	// something to show before the first signup.
	if _, err := statsRepo.Get(ctx); err != nil {
		log.Fatalf("Failed to seed platform stats: %v", err)
	}
	log.Println("Platform stats row ready")

	log.Println("Seed completed successfully!")
}

// seedAdmin creates the admin account if no user holds the admin email yet.
func seedAdmin(ctx context.Context, repo repository.UserRepository, email, password string) (bool, error) {
	_, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	admin := &model.User{
		Name:         "Platform Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}
