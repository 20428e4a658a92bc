package config

import (
	"os"
	"strings"
)

// Config carries process-level settings read once at startup. Component
// specific knobs (session TTL, cloudinary folder) stay close to the code
// that uses them.
type Config struct {
	Port           string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
	RedisAddr      string
	RedisPassword  string
	MeiliHost      string
	MeiliAPIKey    string
	JWTSecret      string
}

func Load() *Config {
	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		AppEnv:        getenv("APP_ENV", "development"),
		BaseURL:       getenv("BASE_URL", "http://localhost:8080"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		MeiliHost:     getenv("MEILISEARCH_HOST", "http://localhost:7700"),
		MeiliAPIKey:   os.Getenv("MEILI_MASTER_KEY"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}

	if !strings.HasPrefix(cfg.MeiliHost, "http") {
		cfg.MeiliHost = "http://" + cfg.MeiliHost + ":7700"
	}

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
