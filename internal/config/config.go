package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Demographics source kinds.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress      string        `mapstructure:"SERVER_ADDRESS"`
	GinMode            string        `mapstructure:"GIN_MODE"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	LogFormat          string        `mapstructure:"LOG_FORMAT"`
	ModelPath          string        `mapstructure:"MODEL_PATH"`
	DemographicsSource string        `mapstructure:"DEMOGRAPHICS_SOURCE"`
	DemographicsPath   string        `mapstructure:"DEMOGRAPHICS_PATH"`
	DemographicsTable  string        `mapstructure:"DEMOGRAPHICS_TABLE"`
	DBSource           string        `mapstructure:"DB_SOURCE"`
	ShutdownTimeout    time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":      "0.0.0.0:8000",
	"GIN_MODE":            "release",
	"LOG_LEVEL":           "info",
	"LOG_FORMAT":          "json",
	"MODEL_PATH":          "model/model.json",
	"DEMOGRAPHICS_SOURCE": SourceCSV,
	"DEMOGRAPHICS_PATH":   "data/zipcode_demographics.csv",
	"DEMOGRAPHICS_TABLE":  "zipcode_demographics",
	"DB_SOURCE":           "",
	"SHUTDOWN_TIMEOUT":    "10s",
}

// LoadConfig reads app.env from path, then lets environment variables
// override it. A missing app.env is not an error.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to decode config: %w", err)
	}

	err = config.Validate()
	return config, err
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if c.ServerAddress == "" {
		return errors.New("config: SERVER_ADDRESS is required")
	}
	if c.ModelPath == "" {
		return errors.New("config: MODEL_PATH is required")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("config: SHUTDOWN_TIMEOUT must be positive")
	}

	switch c.DemographicsSource {
	case SourceCSV:
		if c.DemographicsPath == "" {
			return errors.New("config: DEMOGRAPHICS_PATH is required for the csv source")
		}
	case SourcePostgres:
		if c.DBSource == "" {
			return errors.New("config: DB_SOURCE is required for the postgres source")
		}
		if c.DemographicsTable == "" {
			return errors.New("config: DEMOGRAPHICS_TABLE is required for the postgres source")
		}
	default:
		return fmt.Errorf("config: unknown DEMOGRAPHICS_SOURCE %q", c.DemographicsSource)
	}

	return nil
}
