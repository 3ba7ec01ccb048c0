package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "chains.csv", cfg.Data.ChainsFile)
	assert.Equal(t, "chain_overrides.yaml", cfg.Data.OverridesFile)
	assert.Equal(t, "clean_transactions.csv", cfg.Data.TransactionsFile)
	assert.Equal(t, ChainDerivationFirstToken, cfg.Directory.ChainDerivation)
	assert.Equal(t, 0.6, cfg.Resolver.FuzzyThreshold)
	assert.Equal(t, ChainMatchEquals, cfg.Aggregation.ChainMatchMode)
	assert.False(t, cfg.Aggregation.RequireOrganization)
	assert.Equal(t, "reports", cfg.Report.Directory)
}

func TestInitializeConfigEnvOverrides(t *testing.T) {
	t.Setenv("GUSTITOS_SERVER_PORT", "9191")
	t.Setenv("GUSTITOS_LOG_LEVEL", "debug")
	t.Setenv("GUSTITOS_RESOLVER_FUZZY_THRESHOLD", "0.8")
	t.Setenv("GUSTITOS_AGGREGATION_CHAIN_MATCH_MODE", "contains")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 0.8, cfg.Resolver.FuzzyThreshold)
	assert.Equal(t, ChainMatchContains, cfg.Aggregation.ChainMatchMode)
}

func validTestConfig() *Config {
	cfg := &Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Server.Port = 8080
	cfg.Directory.ChainDerivation = ChainDerivationFirstToken
	cfg.Resolver.FuzzyThreshold = 0.6
	cfg.Aggregation.ChainMatchMode = ChainMatchEquals
	cfg.Report.Directory = "reports"
	return cfg
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid defaults", func(c *Config) {}, false},
		{"Bad log level", func(c *Config) { c.Log.Level = "verbose" }, true},
		{"Bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"Port too low", func(c *Config) { c.Server.Port = 0 }, true},
		{"Port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"Bad derivation", func(c *Config) { c.Directory.ChainDerivation = "guess" }, true},
		{"Explicit column derivation", func(c *Config) { c.Directory.ChainDerivation = ChainDerivationExplicitColumn }, false},
		{"Threshold above one", func(c *Config) { c.Resolver.FuzzyThreshold = 1.5 }, true},
		{"Threshold below zero", func(c *Config) { c.Resolver.FuzzyThreshold = -0.1 }, true},
		{"Bad match mode", func(c *Config) { c.Aggregation.ChainMatchMode = "regex" }, true},
		{"Contains match mode", func(c *Config) { c.Aggregation.ChainMatchMode = ChainMatchContains }, false},
		{"Empty report directory", func(c *Config) { c.Report.Directory = "" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validTestConfig()
			tc.mutate(cfg)

			err := validateConfig(cfg)
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	cfg := validTestConfig()
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(cfg)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestConfigureLoggingFromConfigInvalidLevel(t *testing.T) {
	cfg := validTestConfig()
	cfg.Log.Level = "nonsense"

	logger := ConfigureLoggingFromConfig(cfg)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
