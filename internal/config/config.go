package config

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DefaultDashboardURL is the dashboard API endpoint used when DASHBOARD_API_URL is unset.
const DefaultDashboardURL = "http://127.0.0.1:5000/api/dashboard"

// Config holds all configuration for the application.
type Config struct {
	ServerAddr    string        `validate:"required"`
	DashboardURL  string        `validate:"required,url"`
	FetchTimeout  time.Duration `validate:"gte=0"`
	SessionSecret string        `validate:"required,min=16"`
	SessionName   string        `validate:"required"`
	TokenFile     string
	LogFormat     string `validate:"oneof=text json"`
	LogLevel      string `validate:"oneof=debug info warn error"`
}

// Load reads the optional .env file and the environment, applies defaults
// and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// slog is not configured yet at this point.
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env files.
func FromEnv() (*Config, error) {
	cfg := &Config{
		ServerAddr:    getEnv("SERVER_ADDR", ":8080"),
		DashboardURL:  getEnv("DASHBOARD_API_URL", DefaultDashboardURL),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionName:   getEnv("SESSION_NAME", "dashview-session"),
		TokenFile:     getEnv("TOKEN_FILE", defaultTokenFile()),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		LogLevel:      getEnv("LOG_LEVEL", "debug"),
	}

	if raw := os.Getenv("DASHBOARD_FETCH_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid DASHBOARD_FETCH_TIMEOUT %q: %w", raw, err)
		}
		cfg.FetchTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// New loads the configuration and exits the process if it is invalid.
func New() *Config {
	cfg, err := Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

// Validate checks the struct tags on Config.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".dashview", "store.json")
	}
	return filepath.Join(home, ".dashview", "store.json")
}

// ClientConfig is the subset of configuration used by the dashctl CLI. It
// does not require a session secret.
type ClientConfig struct {
	DashboardURL string        `validate:"required,url"`
	TokenFile    string        `validate:"required"`
	FetchTimeout time.Duration `validate:"gte=0"`
}

// LoadClient reads the optional .env file and the environment for the CLI.
func LoadClient() (*ClientConfig, error) {
	_ = godotenv.Load()

	cfg := &ClientConfig{
		DashboardURL: getEnv("DASHBOARD_API_URL", DefaultDashboardURL),
		TokenFile:    getEnv("TOKEN_FILE", defaultTokenFile()),
	}
	if raw := os.Getenv("DASHBOARD_FETCH_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid DASHBOARD_FETCH_TIMEOUT %q: %w", raw, err)
		}
		cfg.FetchTimeout = d
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
