package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Configuration holds everything read from the environment at startup.
// It is validated once by Load and passed by value into the router and db
// packages; nothing reads the environment after that.
type Configuration struct {
	DatabaseURL string
	JWTSecret   string
	Port        int
	Env         string
	FrontendURL string
}

// Load reads and validates the environment. On failure it returns a single
// error naming every offending variable so the operator can fix them in one go.
func Load() (Configuration, error) {
	var problems []string

	cfg := Configuration{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Env:         getenv("APP_ENV", EnvDevelopment),
		FrontendURL: getenv("FRONTEND_URL", "http://localhost:5173"),
	}

	if cfg.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL is required")
	}
	if len(cfg.JWTSecret) < 32 {
		problems = append(problems, "JWT_SECRET must be at least 32 characters")
	}

	portStr := getenv("PORT", "5000")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		problems = append(problems, fmt.Sprintf("PORT must be a positive integer, got %q", portStr))
	}
	cfg.Port = port

	switch cfg.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		problems = append(problems, fmt.Sprintf("APP_ENV must be development, production or test, got %q", cfg.Env))
	}

	if u, err := url.Parse(cfg.FrontendURL); err != nil || !u.IsAbs() || u.Host == "" {
		problems = append(problems, fmt.Sprintf("FRONTEND_URL must be an absolute URL, got %q", cfg.FrontendURL))
	}

	if len(problems) > 0 {
		return Configuration{}, fmt.Errorf("invalid environment: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
