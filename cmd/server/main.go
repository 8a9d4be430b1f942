package main

import (
	"log"

	"github.com/playverse/community-backend/internal/config"
	"github.com/playverse/community-backend/internal/entity"
	"github.com/playverse/community-backend/internal/server"
	"github.com/playverse/community-backend/pkg/database"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		opts, err := goredis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = goredis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, running without reaction count cache, rate limiting and live notifications")
	}

	srv := server.NewServer(db, redisClient, cfg.TokenExpiration)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Comment{},
		&entity.Reaction{},
		&entity.FollowRequest{},
		&entity.Follow{},
		&entity.Event{},
		&entity.EventRegistration{},
		&entity.Notification{},
	)
}

func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", "admin@playverse.gg").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	password := "admin123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := entity.User{
		Username:     "admin",
		Email:        "admin@playverse.gg",
		PasswordHash: string(hashedPasswordBytes),
		DisplayName:  "Administrator",
		Role:         "admin",
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("✅ Admin user seeded successfully")
	log.Println("   Email: admin@playverse.gg")
	log.Println("   Password: admin123")

	return nil
}
