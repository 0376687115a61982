// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the CLI and server need at startup.
type Config struct {
	// GeminiModel is the model name used for classification.
	GeminiModel string
	// ListenAddr is the HTTP API bind address.
	ListenAddr string
	// CategoriesPath points at the YAML category taxonomy; empty uses the
	// built-in defaults.
	CategoriesPath string
	// WhitelistPath points at the never-anonymise names file; empty means
	// no whitelist.
	WhitelistPath string
}

// Load reads configuration. A missing .env file is not an error; explicit
// environment variables always win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		GeminiModel:    getEnv("GEMINI_MODEL", ""),
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		CategoriesPath: getEnv("CATEGORIES_FILE", ""),
		WhitelistPath:  getEnv("WHITELIST_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
