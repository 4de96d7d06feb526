package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Database struct {
		// sqlite or mysql
		Driver       string `env:"DB_DRIVER" envDefault:"sqlite"`
		DSN          string `env:"DB_DSN" envDefault:"atlas3.db"`
		AutoMigrate  bool   `env:"DB_AUTO_MIGRATE" envDefault:"false"`
		MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	}

	Redis struct {
		// Empty address disables Redis; readiness then only checks the database.
		Addr     string `env:"REDIS_ADDR" envDefault:""`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Auth struct {
		SessionSecret string `env:"SESSION_SECRET,required,notEmpty"`
	}

	Bot struct {
		APIURL  string        `env:"DISCORD_BOT_API_URL" envDefault:""`
		APIKey  string        `env:"DISCORD_BOT_API_KEY" envDefault:""`
		Timeout time.Duration `env:"DISCORD_BOT_TIMEOUT" envDefault:"10s"`
	}

	Notifications struct {
		// memory or redis
		Backend   string `env:"NOTIFY_BACKEND" envDefault:"memory"`
		Workers   int    `env:"NOTIFY_WORKERS" envDefault:"2"`
		QueueSize int    `env:"NOTIFY_QUEUE_SIZE" envDefault:"256"`
		StreamKey string `env:"NOTIFY_STREAM_KEY" envDefault:"atlas3:bot:notifications"`
	}
}

// Load reads .env (when present) and the process environment into Config.
func Load() (*Config, error) {
	// .env is optional; in production variables come from the environment.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("invalid DB_DRIVER: %q", c.Database.Driver)
	}
	switch c.Notifications.Backend {
	case "memory":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("NOTIFY_BACKEND=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("invalid NOTIFY_BACKEND: %q", c.Notifications.Backend)
	}
	if c.Notifications.Workers < 1 {
		return fmt.Errorf("NOTIFY_WORKERS must be at least 1")
	}
	return nil
}
