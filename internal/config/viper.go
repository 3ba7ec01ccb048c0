// Package config provides Viper-based hierarchical configuration management
// for the report backend: defaults, an optional config.yaml, and
// GUSTITOS_-prefixed environment variables, in increasing precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Chain derivation strategies for the directory loader.
const (
	ChainDerivationFirstToken     = "first_token"
	ChainDerivationExplicitColumn = "explicit_column"
)

// Chain match modes for the aggregation filter.
const (
	ChainMatchEquals   = "equals"
	ChainMatchContains = "contains"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Server struct {
		Host         string `mapstructure:"host" yaml:"host"`
		Port         int    `mapstructure:"port" yaml:"port"`
		ReadTimeout  int    `mapstructure:"read_timeout" yaml:"read_timeout"`
		WriteTimeout int    `mapstructure:"write_timeout" yaml:"write_timeout"`
	} `mapstructure:"server" yaml:"server"`

	Data struct {
		ChainsFile       string `mapstructure:"chains_file" yaml:"chains_file"`
		OverridesFile    string `mapstructure:"overrides_file" yaml:"overrides_file"`
		TransactionsFile string `mapstructure:"transactions_file" yaml:"transactions_file"`
	} `mapstructure:"data" yaml:"data"`

	Directory struct {
		// ChainDerivation selects how a canonical chain is derived from a
		// reference row: "first_token" takes the first whitespace token of
		// the merchant name, "explicit_column" uses the Chain column.
		ChainDerivation string `mapstructure:"chain_derivation" yaml:"chain_derivation"`
	} `mapstructure:"directory" yaml:"directory"`

	Resolver struct {
		// FuzzyThreshold is the minimum similarity ratio a fuzzy candidate
		// must reach to be accepted. Higher values reduce false-positive
		// matches but push more queries onto the first-token fallback.
		FuzzyThreshold float64 `mapstructure:"fuzzy_threshold" yaml:"fuzzy_threshold"`
	} `mapstructure:"resolver" yaml:"resolver"`

	Aggregation struct {
		// ChainMatchMode is "equals" (exact resolved-chain equality) or
		// "contains" (substring match on the resolved chain).
		ChainMatchMode string `mapstructure:"chain_match_mode" yaml:"chain_match_mode"`
		// RequireOrganization rejects report requests without an
		// organization at the API boundary when set.
		RequireOrganization bool `mapstructure:"require_organization" yaml:"require_organization"`
	} `mapstructure:"aggregation" yaml:"aggregation"`

	Report struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"report" yaml:"report"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.gustitosgo")
	v.AddConfigPath(".gustitosgo")
	v.AddConfigPath(".")

	v.SetEnvPrefix("GUSTITOS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
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

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 30)

	v.SetDefault("data.chains_file", "chains.csv")
	v.SetDefault("data.overrides_file", "chain_overrides.yaml")
	v.SetDefault("data.transactions_file", "clean_transactions.csv")

	v.SetDefault("directory.chain_derivation", ChainDerivationFirstToken)

	v.SetDefault("resolver.fuzzy_threshold", 0.6)

	v.SetDefault("aggregation.chain_match_mode", ChainMatchEquals)
	v.SetDefault("aggregation.require_organization", false)

	v.SetDefault("report.directory", "reports")
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", config.Server.Port)
	}

	switch config.Directory.ChainDerivation {
	case ChainDerivationFirstToken, ChainDerivationExplicitColumn:
	default:
		return fmt.Errorf("invalid directory.chain_derivation: %s (must be '%s' or '%s')",
			config.Directory.ChainDerivation, ChainDerivationFirstToken, ChainDerivationExplicitColumn)
	}

	if config.Resolver.FuzzyThreshold < 0.0 || config.Resolver.FuzzyThreshold > 1.0 {
		return fmt.Errorf("resolver.fuzzy_threshold must be between 0.0 and 1.0, got: %f",
			config.Resolver.FuzzyThreshold)
	}

	switch config.Aggregation.ChainMatchMode {
	case ChainMatchEquals, ChainMatchContains:
	default:
		return fmt.Errorf("invalid aggregation.chain_match_mode: %s (must be '%s' or '%s')",
			config.Aggregation.ChainMatchMode, ChainMatchEquals, ChainMatchContains)
	}

	if config.Report.Directory == "" {
		return fmt.Errorf("report.directory must not be empty")
	}

	return nil
}

// ConfigureLoggingFromConfig configures a logrus logger based on the Config struct.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
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
