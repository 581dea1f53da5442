package config

import (
	"errors"
	"fmt"
	"io/fs"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Config struct {
	DBDriver    string `env:"DB_DRIVER" envDefault:"sqlite3"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"atm_simulator.db"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFile     string `env:"LOG_FILE"`
	AppEnv      string `env:"APP_ENV" envDefault:"production"`

	PINHasher           string  `env:"PIN_HASHER" envDefault:"plain"`
	DefaultInterestRate float64 `env:"DEFAULT_INTEREST_RATE" envDefault:"2.0"`
	StatementLimit      int     `env:"STATEMENT_LIMIT" envDefault:"5"`

	DBMaxOpenConns     int `env:"DB_MAX_OPEN_CONNS" envDefault:"1"`
	DBMaxIdleConns     int `env:"DB_MAX_IDLE_CONNS" envDefault:"1"`
	DBConnMaxLifetimeS int `env:"DB_CONN_MAX_LIFETIME_S" envDefault:"0"`
	DBConnMaxIdleTimeS int `env:"DB_CONN_MAX_IDLE_TIME_S" envDefault:"0"`
}

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config.Load: .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DBDriver)
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL must not be empty")
	}
	if c.StatementLimit <= 0 {
		return fmt.Errorf("STATEMENT_LIMIT must be positive, got %d", c.StatementLimit)
	}
	return nil
}
