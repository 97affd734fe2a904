package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Firebase FirebaseConfig
	Calendar CalendarConfig
	Planner  PlannerConfig
	Cron     CronConfig
	App      AppConfig
}

type ServerConfig struct {
	Port        string `env:"PORT" envDefault:"8080"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000"`
	// ShutdownSeconds bounds graceful shutdown.
	ShutdownSeconds int `env:"SHUTDOWN_TIMEOUT_SECONDS" envDefault:"10"`
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"planny"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxConns int    `env:"DB_MAX_CONNS" envDefault:"10"`
	// Migrate applies the embedded schema on startup.
	Migrate bool `env:"DB_MIGRATE" envDefault:"true"`
}

type RedisConfig struct {
	// Enabled turns on the board cache and its event stream.
	Enabled  bool   `env:"REDIS_ENABLED" envDefault:"true"`
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	// BoardTTLSeconds is how long a cached kanban board stays valid.
	BoardTTLSeconds int `env:"REDIS_BOARD_TTL_SECONDS" envDefault:"300"`
}

type FirebaseConfig struct {
	Enabled         bool   `env:"FIREBASE_ENABLED" envDefault:"false"`
	CredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`
	ProjectID       string `env:"FIREBASE_PROJECT_ID"`
}

type CalendarConfig struct {
	Enabled         bool    `env:"GCAL_ENABLED" envDefault:"false"`
	CredentialsPath string  `env:"GCAL_CREDENTIALS_PATH"`
	CalendarID      string  `env:"GCAL_CALENDAR_ID" envDefault:"primary"`
	RatePerSecond   float64 `env:"GCAL_RATE_PER_SECOND" envDefault:"5"`
	Burst           int     `env:"GCAL_BURST" envDefault:"5"`
}

type PlannerConfig struct {
	SprintDays  int    `env:"PLANNER_SPRINT_DAYS" envDefault:"14"`
	Mode        string `env:"PLANNER_MODE" envDefault:"sprint"`
	Span        string `env:"PLANNER_SPAN" envDefault:"subdivide"`
	CatalogPath string `env:"PLANNER_CATALOG_PATH"`
}

type CronConfig struct {
	Enabled bool `env:"CRON_ENABLED" envDefault:"true"`
	// ProgressSpec uses the six-field (with seconds) cron syntax.
	ProgressSpec string `env:"CRON_PROGRESS_SPEC" envDefault:"0 0 2 * * *"`
}

type AppConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Version     string `env:"APP_VERSION" envDefault:"1.0.0"`
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, using environment variables")
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromEnv parses every section from the process environment.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	sections := []struct {
		name string
		ptr  any
	}{
		{"server", &cfg.Server},
		{"database", &cfg.Database},
		{"redis", &cfg.Redis},
		{"firebase", &cfg.Firebase},
		{"calendar", &cfg.Calendar},
		{"planner", &cfg.Planner},
		{"cron", &cfg.Cron},
		{"app", &cfg.App},
	}
	for _, s := range sections {
		if err := env.Parse(s.ptr); err != nil {
			return nil, fmt.Errorf("parse %s config: %w", s.name, err)
		}
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}

	if c.Planner.SprintDays < 1 {
		return fmt.Errorf("PLANNER_SPRINT_DAYS must be positive, got %d", c.Planner.SprintDays)
	}

	if c.Firebase.Enabled && c.Firebase.CredentialsPath == "" {
		return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when FIREBASE_ENABLED is set")
	}

	if c.Calendar.Enabled && c.Calendar.CredentialsPath == "" {
		return fmt.Errorf("GCAL_CREDENTIALS_PATH is required when GCAL_ENABLED is set")
	}

	if c.Calendar.RatePerSecond <= 0 {
		return fmt.Errorf("GCAL_RATE_PER_SECOND must be positive")
	}

	return nil
}

// Active reports whether a redis connection should be opened. An empty
// REDIS_ADDR disables redis as well.
func (r RedisConfig) Active() bool {
	return r.Enabled && strings.TrimSpace(r.Addr) != ""
}

// IsProduction reports whether APP_ENV selects production behaviour.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

// Origins splits CORS_ORIGINS on commas.
func (s ServerConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(s.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
