package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	ReadDSN   string // replica-oriented pool
	WriteDSN  string // primary, strongly consistent
	JWTSecret string
	TokenTTL  time.Duration
	LogFile   string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file, using environment")
	}

	// Default to a local SQLite file so the API runs without Postgres.
	// In production both DSNs point at Postgres; DB_READ_DSN may target a
	// streaming replica.
	write := getEnv("DB_WRITE_DSN", "vendrefacile.db")
	read := getEnv("DB_READ_DSN", write)

	ttl := 7 * 24 * time.Hour
	if raw := os.Getenv("JWT_EXPIRES_IN"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			ttl = d
		} else {
			log.Printf("[config] bad JWT_EXPIRES_IN %q: %v", raw, err)
		}
	}

	cfg := Config{
		Port:      getEnv("PORT", "3000"),
		ReadDSN:   read,
		WriteDSN:  write,
		JWTSecret: getEnv("JWT_SECRET", "change-me"),
		TokenTTL:  ttl,
		LogFile:   os.Getenv("LOG_FILE"),
	}
	log.Printf("[config] PORT=%s DB_WRITE_DSN=%s DB_READ_DSN=%s LOG_FILE=%s", cfg.Port, cfg.WriteDSN, cfg.ReadDSN, cfg.LogFile)
	return cfg
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
