package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	HTTPAddr    string
	LogLevel    string
	MetricsAddr string
	DBDriver    string
	DatabaseURL string
	NATSURL     string
	NATSStream  string
	NATSSubject string
}

// Load reads configuration from the environment (and a .env file when one
// exists). A non-empty path names an additional YAML config file whose values
// are overridden by environment variables.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_addr", "")
	v.SetDefault("db_driver", DriverSQLite)
	v.SetDefault("database_url", "todo.db")
	v.SetDefault("nats_url", "")
	v.SetDefault("nats_stream", "todo_events")
	v.SetDefault("nats_subject", "todo.events")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		HTTPAddr:    v.GetString("http_addr"),
		LogLevel:    v.GetString("log_level"),
		MetricsAddr: v.GetString("metrics_addr"),
		DBDriver:    v.GetString("db_driver"),
		DatabaseURL: v.GetString("database_url"),
		NATSURL:     v.GetString("nats_url"),
		NATSStream:  v.GetString("nats_stream"),
		NATSSubject: v.GetString("nats_subject"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing or unsupported setting at once.
func (c *Config) Validate() error {
	var missing []string
	if c.HTTPAddr == "" {
		missing = append(missing, "HTTP_ADDR")
	}
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.NATSURL != "" {
		if c.NATSStream == "" {
			missing = append(missing, "NATS_STREAM")
		}
		if c.NATSSubject == "" {
			missing = append(missing, "NATS_SUBJECT")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %v", missing)
	}

	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return nil
}
