package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"bookstore-admin/internal/config"
	"bookstore-admin/internal/infrastructure/database"
	"bookstore-admin/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(getEnv("APP_ENV", "development"))

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load database config")
	}
	// seed luôn chạy trên schema mới nhất
	dbConfig.AutoMigrate = true

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	summary, err := Seed(ctx, db.Pool)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	log.Info().
		Str("user_id", summary.UserID.String()).
		Str("email", demoEmail).
		Str("author_id", summary.AuthorID.String()).
		Int("books", summary.Books).
		Msg("Database has been seeded")
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
