package main

import (
	"database/sql"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"fleet-routing-engine/internal/adapters/repositories"
	"fleet-routing-engine/internal/platform/config"
	"fleet-routing-engine/internal/platform/db"
	"fleet-routing-engine/internal/platform/obs"
)

func main() {
	if err := godotenv.Load(); err != nil {
		obs.Log().Info().Msg("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		obs.Log().Fatal().Err(err).Msg("load config")
	}

	if strings.TrimSpace(cfg.Database.DatabaseURL) == "" {
		obs.Log().Fatal().Msg("DATABASE_URL is required")
	}

	conn, err := db.Open(cfg.Database.DatabaseURL)
	if err != nil {
		obs.Log().Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	if err := initAndSeed(conn, cfg.Database.SeedPath); err != nil {
		obs.Log().Fatal().Err(err).Msg("init and seed")
	}
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	obs.Log().Info().Msg("initializing database schema")
	if err := repositories.InitSchema(conn); err != nil {
		return err
	}
	obs.Log().Info().Msg("schema ready")

	obs.Log().Info().Str("seed_path", seedPath).Msg("seeding database")
	if err := repositories.SeedFromJSON(conn, seedPath); err != nil {
		return err
	}
	obs.Log().Info().Msg("seeding complete")

	return nil
}
