package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"time"
	_ "time/tzdata" // zone database for minimal containers

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port             int           `env:"PORT" envDefault:"3318"`
	DatabaseURL      string        `env:"DATABASE_URL"`
	DatabaseType     string        `env:"DATABASE_TYPE" envDefault:"sqlite"`
	AdminKeySalt     string        `env:"ADMIN_KEY_SALT"`
	Timezone         string        `env:"TIMEZONE" envDefault:"Asia/Seoul"`
	RolloverInterval time.Duration `env:"ROLLOVER_INTERVAL" envDefault:"1m"`
	CookieSecure     bool          `env:"COOKIE_SECURE" envDefault:"true"`
	LogLevel         slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`

	// Set by flags only
	PrintAdminKey bool `env:"-"`

	// Loaded from Timezone
	Location *time.Location `env:"-"`
}

// ParseFlags reads the environment, then lets CLI flags override it.
func ParseFlags(args []string) (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("invalid environment: %w", err)
	}

	fs := flag.NewFlagSet("weekly-pick", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")

	// Calendar and scheduling
	fs.StringVar(&cfg.Timezone, "tz", cfg.Timezone, "IANA timezone of the voting calendar")
	fs.DurationVar(&cfg.RolloverInterval, "rollover-interval", cfg.RolloverInterval, "How often the scheduler checks for rollover")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", cfg.AdminKeySalt, "Admin key salt (prefer env)")
	fs.BoolVar(&cfg.PrintAdminKey, "print-admin-key", false, "Print the admin key and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	switch cfg.DatabaseType {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("unsupported database type %q (sqlite or postgres)", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	if cfg.RolloverInterval <= 0 {
		return Config{}, errors.New("rollover interval must be positive")
	}

	cfg.Location, err = time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}
