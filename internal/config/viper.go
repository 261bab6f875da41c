// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter       string `mapstructure:"delimiter" yaml:"delimiter"`
		HeaderScanLines int    `mapstructure:"header_scan_lines" yaml:"header_scan_lines"`
	} `mapstructure:"csv" yaml:"csv"`

	Data struct {
		Database string `mapstructure:"database" yaml:"database"`
	} `mapstructure:"data" yaml:"data"`

	Import struct {
		DefaultInstitution string `mapstructure:"default_institution" yaml:"default_institution"`
		DefaultAccountType string `mapstructure:"default_account_type" yaml:"default_account_type"`
	} `mapstructure:"import" yaml:"import"`

	Parsers struct {
		Markup struct {
			Strict bool `mapstructure:"strict" yaml:"strict"`
		} `mapstructure:"markup" yaml:"markup"`
	} `mapstructure:"parsers" yaml:"parsers"`

	Server struct {
		Addr string `mapstructure:"addr" yaml:"addr"`
	} `mapstructure:"server" yaml:"server"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then config.yaml, then FINTRACK_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.fintrack")
	v.AddConfigPath(".fintrack")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FINTRACK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when no file or variable is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", "auto")
	v.SetDefault("csv.header_scan_lines", 20)

	v.SetDefault("data.database", "fintrack.db")

	v.SetDefault("import.default_institution", string(models.InstitutionOther))
	v.SetDefault("import.default_account_type", string(models.AccountTypeChecking))

	v.SetDefault("parsers.markup.strict", false)

	v.SetDefault("server.addr", ":8080")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch config.CSV.Delimiter {
	case "auto", "tab", `\t`:
	default:
		if len([]rune(config.CSV.Delimiter)) != 1 {
			return fmt.Errorf("CSV delimiter must be 'auto' or a single character, got: %s", config.CSV.Delimiter)
		}
	}

	if config.CSV.HeaderScanLines < 1 || config.CSV.HeaderScanLines > 1000 {
		return fmt.Errorf("csv.header_scan_lines must be between 1 and 1000, got: %d", config.CSV.HeaderScanLines)
	}

	if strings.TrimSpace(config.Data.Database) == "" {
		return fmt.Errorf("data.database must not be empty")
	}

	if strings.TrimSpace(config.Import.DefaultInstitution) == "" {
		return fmt.Errorf("import.default_institution must not be empty")
	}

	if _, err := models.ParseAccountType(config.Import.DefaultAccountType); err != nil {
		return fmt.Errorf("invalid import.default_account_type: %w", err)
	}

	return nil
}

// DefaultInstitution returns the institution used when an import names none.
func (c *Config) DefaultInstitution() models.Institution {
	return models.ParseInstitution(c.Import.DefaultInstitution)
}

// DefaultAccountType returns the account type used when an import names none.
func (c *Config) DefaultAccountType() models.AccountType {
	accountType, err := models.ParseAccountType(c.Import.DefaultAccountType)
	if err != nil {
		return models.AccountTypeChecking
	}
	return accountType
}

// ConfigureLoggingFromConfig builds the application logger from the log
// section.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapterFromLogger(ConfigureLogrusFromConfig(config))
}

// ConfigureLogrusFromConfig configures a logrus logger from the log section.
func ConfigureLogrusFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
