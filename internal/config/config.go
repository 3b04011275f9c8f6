package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the API server.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"host=localhost user=postgres password=password dbname=studyia port=5432 sslmode=disable"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	// TimeZone is the zone provider A timestamps are issued in.
	TimeZone string `env:"TIME_ZONE" envDefault:"Local"`

	VerifyDelay    time.Duration `env:"VERIFY_DELAY" envDefault:"2s"`
	ConfirmDelay   time.Duration `env:"CONFIRM_DELAY" envDefault:"1500ms"`
	UnlockCooldown time.Duration `env:"UNLOCK_COOLDOWN" envDefault:"30s"`
	// ConfirmationIdleTTL drops confirmations opened but never submitted.
	ConfirmationIdleTTL time.Duration `env:"CONFIRMATION_IDLE_TTL" envDefault:"15m"`

	ErrorMessages  []string `env:"CONFIRMATION_ERROR_MESSAGES" envSeparator:"|" envDefault:"Invalid transaction ID. Please check the code in your payment SMS.|We could not verify this transaction ID. Make sure you copied it exactly."`
	CommissionRate float64  `env:"COMMISSION_RATE" envDefault:"0.2"`
	UnlockPrice    int64    `env:"UNLOCK_PRICE" envDefault:"1000"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// Load reads an optional .env file and then parses the environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load dotenv: %w", err)
		}
		log.Println("⚠️  No .env file found, using process environment")
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.CommissionRate < 0 || cfg.CommissionRate > 1 {
		return nil, fmt.Errorf("commission rate %v out of range [0,1]", cfg.CommissionRate)
	}
	return &cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Location resolves TimeZone, falling back to the process zone.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}
