package server

import (
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/samber/oops"
)

// Config is the server configuration, loaded from the environment.
type Config struct {
	Addr        string     `env:"EMBERFALL_ADDR" envDefault:":8080"`
	Backend     string     `env:"EMBERFALL_DB" envDefault:"memory"` // memory, sqlite, postgres
	SQLitePath  string     `env:"EMBERFALL_SQLITE_PATH" envDefault:"emberfall.db"`
	PostgresURL string     `env:"DATABASE_URL"`
	WorldDir    string     `env:"EMBERFALL_WORLD_DIR" envDefault:"content"`
	Seed        int64      `env:"EMBERFALL_SEED" envDefault:"0"` // 0 = time-based
	LogLevel    slog.Level `env:"EMBERFALL_LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, oops.Wrapf(err, "parse env")
	}
	return cfg, nil
}
