package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	LogLevel    string
	HTTPPort    string
	DatabaseURL string
	Migrate     bool
	RateRPS     int
	CORSOrigins []string

	// admin auth; enabled only when JWTSecret and AdminPasswordHash are set
	JWTSecret         string
	JWTRefreshSecret  string
	AdminUsername     string
	AdminPasswordHash string
}

const DefaultDatabaseURL = "mongodb://localhost:27017/contact_manager"

// Load reads an optional .env file, then the environment. Variables already
// set in the environment win over .env.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Env:               get("APP_ENV", "dev"),
		HTTPPort:          first("5000", "PORT", "HTTP_PORT"),
		DatabaseURL:       first(DefaultDatabaseURL, "DATABASE_URL", "MONGO_URI"),
		Migrate:           getBool("APP_MIGRATE", true),
		RateRPS:           getInt("RATE_RPS", 100),
		CORSOrigins:       splitList(get("CORS_ORIGINS", "*")),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminUsername:     get("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
	cfg.JWTRefreshSecret = get("JWT_REFRESH_SECRET", cfg.JWTSecret)
	cfg.LogLevel = get("LOG_LEVEL", defaultLevel(cfg.Env))
	return cfg
}

func (c Config) AuthEnabled() bool {
	return c.JWTSecret != "" && c.AdminPasswordHash != ""
}

func defaultLevel(env string) string {
	if env == "prod" {
		return "info"
	}
	return "debug"
}

func get(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

// first returns the first non-empty variable among keys.
func first(def string, keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func getInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
