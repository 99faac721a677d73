package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	AppName    = "Feedbox"
	AppVersion = "1.0.0"
)

// UserAgent identifies Feedbox when fetching feeds.
var UserAgent = AppName + "/" + AppVersion

var ErrNoSessionSecret = errors.New("FEEDBOX_SESSION_SECRET is not set")

type Config struct {
	Addr               string        `env:"FEEDBOX_ADDR" envDefault:":8080"`
	DBPath             string        `env:"FEEDBOX_DB_PATH" envDefault:"./data/feedbox.db"`
	SessionSecret      string        `env:"FEEDBOX_SESSION_SECRET"`
	RefreshInterval    time.Duration `env:"FEEDBOX_REFRESH_INTERVAL" envDefault:"30m"`
	FetchWorkers       int64         `env:"FEEDBOX_FETCH_WORKERS" envDefault:"5"`
	LogLevel           string        `env:"FEEDBOX_LOG_LEVEL" envDefault:"info"`
	NodeID             int64         `env:"FEEDBOX_NODE_ID" envDefault:"1"`
	DevNonSecureCookie bool          `env:"FEEDBOX_DEV_NON_SECURE_COOKIE"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.SessionSecret == "" {
		return Config{}, ErrNoSessionSecret
	}
	if cfg.FetchWorkers < 1 {
		cfg.FetchWorkers = 1
	}
	if cfg.RefreshInterval < time.Minute {
		cfg.RefreshInterval = time.Minute
	}
	return cfg, nil
}
