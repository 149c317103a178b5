package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/fainmariya/sorting-books-read/internal/data"
	"github.com/fainmariya/sorting-books-read/internal/validator"
)

// Connection strings used when DATABASE_URL and -db-dsn are both empty.
const (
	defaultPostgresDSN = "postgres://postgres@localhost/my_lib_books?sslmode=disable"
	defaultSQLiteDSN   = "bookshelf.db"
)

// serverConfig holds every setting that can be tweaked at startup. Values
// come from the environment first; command-line flags override them.
type serverConfig struct {
	Port        int    `env:"PORT" envDefault:"3000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	DB struct {
		Driver       string        `env:"DB_DRIVER" envDefault:"postgres"`
		DSN          string        `env:"DATABASE_URL"`
		MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
		MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"25"`
		MaxIdleTime  time.Duration `env:"DB_MAX_IDLE_TIME" envDefault:"15m"`
	}

	Limiter struct {
		Enabled bool    `env:"LIMITER_ENABLED" envDefault:"true"`
		RPS     float64 `env:"LIMITER_RPS" envDefault:"10"`
		Burst   int     `env:"LIMITER_BURST" envDefault:"20"`
	}
}

// loadDotEnv copies variables from path into the process environment.
// A missing file is not an error; variables already set are not overwritten.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// loadConfig parses the environment, then applies flag overrides from args.
func loadConfig(args []string) (serverConfig, error) {
	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse environment: %w", err)
	}

	flags := flag.NewFlagSet("bookshelf", flag.ContinueOnError)
	flags.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flags.StringVar(&cfg.Environment, "env", cfg.Environment, "Environment (development|staging|production)")
	flags.StringVar(&cfg.DB.Driver, "db-driver", cfg.DB.Driver, "Database driver (postgres|sqlite)")
	flags.StringVar(&cfg.DB.DSN, "db-dsn", cfg.DB.DSN, "Database connection string")
	flags.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", cfg.DB.MaxOpenConns, "Maximum open database connections")
	flags.IntVar(&cfg.DB.MaxIdleConns, "db-max-idle-conns", cfg.DB.MaxIdleConns, "Maximum idle database connections")
	flags.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", cfg.DB.MaxIdleTime, "Maximum connection idle time")
	flags.BoolVar(&cfg.Limiter.Enabled, "limiter-enabled", cfg.Limiter.Enabled, "Enable per-IP rate limiting")
	flags.Float64Var(&cfg.Limiter.RPS, "limiter-rps", cfg.Limiter.RPS, "Rate limiter requests per second")
	flags.IntVar(&cfg.Limiter.Burst, "limiter-burst", cfg.Limiter.Burst, "Rate limiter burst size")

	if err := flags.Parse(args); err != nil {
		return cfg, err
	}

	// The default DSN depends on the driver, so it is filled in only after
	// both the environment and the flags have had their say.
	if cfg.DB.DSN == "" {
		cfg.DB.DSN = defaultPostgresDSN
		if cfg.DB.Driver == data.DriverSQLite {
			cfg.DB.DSN = defaultSQLiteDSN
		}
	}

	v := validator.New()
	v.Check(cfg.Port > 0 && cfg.Port <= 65535, "port", "must be between 1 and 65535")
	v.Check(validator.In(cfg.Environment, "development", "staging", "production"), "env", "must be development, staging or production")
	v.Check(validator.In(cfg.DB.Driver, data.DriverPostgres, data.DriverSQLite), "db-driver", "must be postgres or sqlite")
	v.Check(cfg.DB.Driver != data.DriverSQLite || !isPostgresURL(cfg.DB.DSN), "db-dsn", "must be a file path or :memory: for the sqlite driver")
	v.Check(!cfg.Limiter.Enabled || cfg.Limiter.RPS > 0, "limiter-rps", "must be greater than zero")
	v.Check(!cfg.Limiter.Enabled || cfg.Limiter.Burst > 0, "limiter-burst", "must be greater than zero")

	if key, message, failed := v.First(); failed {
		return cfg, fmt.Errorf("config: %s %s", key, message)
	}
	return cfg, nil
}

func (c serverConfig) dbConfig() data.DBConfig {
	return data.DBConfig{
		Driver:       c.DB.Driver,
		DSN:          c.DB.DSN,
		MaxOpenConns: c.DB.MaxOpenConns,
		MaxIdleConns: c.DB.MaxIdleConns,
		MaxIdleTime:  c.DB.MaxIdleTime,
	}
}

func isPostgresURL(dsn string) bool {
	dsn = strings.ToLower(strings.TrimSpace(dsn))
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
