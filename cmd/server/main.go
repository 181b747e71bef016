package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"fleet-routing-engine/internal/adapters/cache"
	"fleet-routing-engine/internal/adapters/distance"
	"fleet-routing-engine/internal/adapters/repositories"
	"fleet-routing-engine/internal/api"
	"fleet-routing-engine/internal/platform/config"
	"fleet-routing-engine/internal/platform/obs"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis, ORS) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		obs.Log().Info().Msg("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		obs.Log().Fatal().Err(err).Msg("load config")
	}

	if cfg.Distance.ORSAPIKey == "" {
		obs.Log().Fatal().Msg("ORS_API_KEY is required")
	}

	db, err := openDB(cfg.Database.DBPath)
	if err != nil {
		obs.Log().Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(db, cfg.Database.SeedPath); err != nil {
		obs.Log().Fatal().Err(err).Msg("init and seed")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// ORS provider uses persistent SQLite caches, fronted by Redis, to avoid
	// repeated geocode/matrix calls against the external API.
	distanceCache := cache.NewLayeredDistanceCache(
		cache.NewRedisDistanceCache(redisClient, 24*time.Hour),
		cache.NewSqliteDistanceCache(db),
	)
	geocodeCache := cache.NewLayeredGeocodeCache(
		cache.NewRedisGeocodeCache(redisClient, 7*24*time.Hour),
		cache.NewSqliteGeocodeCache(db),
	)

	provider, err := distance.NewORSDistanceProvider(cfg.Distance.ORSAPIKey, distanceCache, geocodeCache)
	if err != nil {
		obs.Log().Fatal().Err(err).Msg("build distance provider")
	}

	jobRepo := repositories.NewSqliteJobRepository(db)
	vehicleRepo := repositories.NewSqliteVehicleRepository(db)
	router := api.NewRouter(jobRepo, vehicleRepo, provider)

	// Timeouts are tuned for cold-cache route planning (external API latency).
	obs.Log().Info().Str("addr", ":"+cfg.App.Port).Msg("server listening")
	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		obs.Log().Fatal().Err(err).Msg("server stopped")
	}
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
