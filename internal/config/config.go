package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	JWTSecret      string
	APIKey         string
	Port           string
	AllowedOrigins string
	TrustProxy     bool
	ResendAPIKey   string
	EmailFrom      string
}

// Load reads the environment, after merging an optional .env file from
// the working directory. Variables already set take precedence.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] failed to read .env: %v", err)
	}

	return &Config{
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "3306"),
		DBUser:         getEnv("DB_USER", "foodmind"),
		DBPassword:     getEnv("DB_PASSWORD", "foodmind_pass"),
		DBName:         getEnv("DB_NAME", "foodmind"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		APIKey:         getEnv("API_KEY", ""),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		TrustProxy:     getEnv("TRUST_PROXY", "false") == "true",
		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		EmailFrom:      getEnv("EMAIL_FROM", "FoodMind <no-reply@foodmind.app>"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
