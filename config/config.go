package config

import (
	"os"

	"github.com/joho/godotenv"
)

// AppConfig menampung konfigurasi dari environment.
type AppConfig struct {
	Port string
	// DSN MySQL; kosong = pakai sqlite lokal (development).
	DatabaseDSN string
	// Slug tenant fallback ketika path publik tidak menyebut tenant.
	DefaultTenantSlug string
	GinMode           string
}

// LoadConfig membaca .env (jika ada) lalu environment variables.
func LoadConfig() *AppConfig {
	// .env opsional; di production semua lewat env asli
	_ = godotenv.Load()

	return &AppConfig{
		Port:              getEnv("PORT", "8080"),
		DatabaseDSN:       os.Getenv("DATABASE_DSN"),
		DefaultTenantSlug: getEnv("DEFAULT_TENANT_SLUG", "warungku"),
		GinMode:           os.Getenv("GIN_MODE"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
