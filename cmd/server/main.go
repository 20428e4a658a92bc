package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"aimrealty.com/estateapi/internal/bootstrap"
	"aimrealty.com/estateapi/internal/config"
	"aimrealty.com/estateapi/internal/server"
	"aimrealty.com/estateapi/pkg/database"
	"aimrealty.com/estateapi/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg := config.Load()
	zlog := logger.New()
	defer zlog.Sync()

	db := database.Connect()

	if err := bootstrap.Migrate(db); err != nil {
		zlog.Fatalw("migration failed", "error", err)
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		zlog.Fatalw("failed to seed roles", "error", err)
	}
	if err := bootstrap.SeedCurrencyRates(db); err != nil {
		zlog.Fatalw("failed to seed currency rates", "error", err)
	}
	if !cfg.IsProduction() {
		if err := bootstrap.SeedAdminUser(db); err != nil {
			zlog.Fatalw("failed to seed admin user", "error", err)
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	srv := server.New(cfg, db, redisClient, zlog)
	defer srv.Shutdown()

	zlog.Infow("starting server", "port", cfg.Port, "env", cfg.AppEnv)
	if err := srv.Run(); err != nil {
		zlog.Fatalw("server exited", "error", err)
	}
}
