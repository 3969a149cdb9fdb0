package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	GRPCPort    string `env:"PORT" envDefault:"50051" yaml:"port"`
	WebPort     string `env:"WEB_PORT" envDefault:"8080" yaml:"web_port"`
	DatabaseURL string `env:"DATABASE_URL" yaml:"database_url"`

	Seed       bool  `env:"SEED" envDefault:"true" yaml:"seed"`
	SeedRandom int64 `env:"SEED_RANDOM" yaml:"seed_random"`

	StrictSlots bool `env:"BOOKING_STRICT_SLOTS" envDefault:"false" yaml:"strict_slots"`
	MonthlyCap  int  `env:"PROFESSIONAL_MONTHLY_CAP" envDefault:"4" yaml:"professional_monthly_cap"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"5" yaml:"rate_limit_rps"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10" yaml:"rate_limit_burst"`

	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info" yaml:"log_level"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s" yaml:"shutdown_timeout"`
}

// Load reads .env (if present), then the environment, then the optional YAML
// file at path, each layer overriding the previous one.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MonthlyCap <= 0 {
		return fmt.Errorf("professional monthly cap must be positive, got %d", c.MonthlyCap)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}
