package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/viper"
)

var log = logging.MustGetLogger("log")

const DefaultConfigFilePath = "config.json"

const (
	SourceCSV      = "csv"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// Config represents the application's configuration structure.
type Config struct {
	ServerAddress   string        `json:"server-address" mapstructure:"server-address"`
	DataDir         string        `json:"data-dir" mapstructure:"data-dir"`
	Source          string        `json:"source" mapstructure:"source"`
	DatabaseDSN     string        `json:"database-dsn" mapstructure:"database-dsn"`
	CorsOrigins     []string      `json:"cors-origins" mapstructure:"cors-origins"`
	LogLevel        string        `json:"log-level" mapstructure:"log-level"`
	ShutdownTimeout time.Duration `json:"shutdown-timeout" mapstructure:"shutdown-timeout"`
	DBMaxRetries    int           `json:"db-max-retries" mapstructure:"db-max-retries"`
	DBRetryInterval time.Duration `json:"db-retry-interval" mapstructure:"db-retry-interval"`
}

var requiredFields = []string{
	"server-address",
	"data-dir",
}

// field: default value
var optionalFields = map[string]interface{}{
	"source":            SourceCSV,
	"database-dsn":      "",
	"cors-origins":      []string{"http://localhost:5173"},
	"log-level":         "INFO",
	"shutdown-timeout":  "5s",
	"db-max-retries":    5,
	"db-retry-interval": "2s",
}

// InitConfig reads configuration from a JSON file and environment variables.
// Environment variables take precedence over the config file, and a .env file in
// the working directory is loaded into the environment first.
func InitConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Debugf("Loaded environment overrides from .env")
	}

	v := viper.New()

	// Set config file type and name
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	for _, field := range requiredFields {
		v.BindEnv(field)
	}
	for optField, defaultValue := range optionalFields {
		v.SetDefault(optField, defaultValue)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	for _, field := range requiredFields {
		if !v.IsSet(field) {
			return nil, fmt.Errorf("missing required config field: %s", field)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	switch config.Source {
	case SourceCSV:
	case SourceSQLite, SourcePostgres:
		if config.DatabaseDSN == "" {
			return nil, fmt.Errorf("source %s needs database-dsn", config.Source)
		}
	default:
		return nil, fmt.Errorf("unknown source %q, expected %s, %s or %s", config.Source, SourceCSV, SourceSQLite, SourcePostgres)
	}

	return &config, nil
}
