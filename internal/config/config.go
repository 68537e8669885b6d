package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/types"
)

// Configuration is the full runtime configuration, loaded from config files
// and environment variables.
type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Schedulers SchedulersConfig `mapstructure:"schedulers"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Cache      CacheConfig      `mapstructure:"cache"`
}

type DeploymentConfig struct {
	Mode types.DeploymentMode `mapstructure:"mode"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres or sqlite
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type SchedulersConfig struct {
	RecurringIntervalMinutes int           `mapstructure:"recurring_interval_minutes"`
	RecurringLookaheadDays   int           `mapstructure:"recurring_lookahead_days"`
	ReminderIntervalHours    int           `mapstructure:"reminder_interval_hours"`
	ReminderInitialDelay     time.Duration `mapstructure:"reminder_initial_delay"`
}

type LoggingConfig struct {
	Level          types.LogLevel `mapstructure:"level"`
	FluentdEnabled bool           `mapstructure:"fluentd_enabled"`
	FluentdHost    string         `mapstructure:"fluentd_host"`
	FluentdPort    int            `mapstructure:"fluentd_port"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type AuthConfig struct {
	// AdminAPIKey gates the manual scheduler trigger endpoints
	AdminAPIKey string `mapstructure:"admin_api_key"`
}

type CacheConfig struct {
	Type string `mapstructure:"type"`
}

// NewConfig loads configuration from ./config/config.yaml (optional), .env
// (optional) and environment variables prefixed with LEASEFLOW_.
func NewConfig() (*Configuration, error) {
	// .env is a development convenience; missing file is fine
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LEASEFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, ierr.WithError(err).
				WithHint("Failed to read config file").
				Mark(ierr.ErrInternal)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to unmarshal configuration").
			Mark(ierr.ErrInternal)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.DeploymentModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "leaseflow.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("schedulers.recurring_interval_minutes", 60)
	v.SetDefault("schedulers.recurring_lookahead_days", 3)
	v.SetDefault("schedulers.reminder_interval_hours", 6)
	v.SetDefault("schedulers.reminder_initial_delay", 30*time.Second)
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("cache.type", "inmemory")
	v.SetDefault("sentry.sample_rate", 1.0)
}

// Validate rejects configurations the process cannot run with
func (c *Configuration) Validate() error {
	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return ierr.NewErrorf("unsupported database driver: %s", c.Database.Driver).
			WithHint("Driver must be postgres or sqlite").
			Mark(ierr.ErrValidation)
	}
	if c.Schedulers.RecurringIntervalMinutes <= 0 {
		return ierr.NewError("recurring interval must be positive").
			Mark(ierr.ErrValidation)
	}
	if c.Schedulers.RecurringLookaheadDays < 0 {
		return ierr.NewError("recurring lookahead days must not be negative").
			Mark(ierr.ErrValidation)
	}
	if c.Schedulers.ReminderIntervalHours <= 0 {
		return ierr.NewError("reminder interval must be positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetDefaultConfig returns the built-in defaults, used by the global logger
// before configuration is loaded and by scripts.
func GetDefaultConfig() *Configuration {
	v := viper.New()
	setDefaults(v)
	var cfg Configuration
	_ = v.Unmarshal(&cfg)
	return &cfg
}
