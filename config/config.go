package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Load reads .env once at startup. Missing file is fine in production
// where everything comes from real env vars.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, using environment variables")
	}
}

func Config(key string) string {
	return os.Getenv(key)
}

func ConfigOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
