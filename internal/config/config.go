package config

import (
	"os"
	"strconv"
)

// Config holds application configuration loaded from the environment
type Config struct {
	Port           string
	DBPath         string
	MigrationsPath string
	JWTSecret      string
	AggWorkers     int // number of parallel partition workers
}

// Load loads configuration from environment variables
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/hexmetrics.db"
	}

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	workers := 4
	if v := os.Getenv("AGG_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			workers = n
		}
	}

	return &Config{
		Port:           port,
		DBPath:         dbPath,
		MigrationsPath: migrationsPath,
		JWTSecret:      jwtSecret,
		AggWorkers:     workers,
	}
}
