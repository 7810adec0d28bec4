package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:               "8080",
		Env:                "development",
		DBDriver:           DriverPostgres,
		DBHost:             "localhost",
		DBName:             "moodboard",
		DBPassword:         "password",
		DBSSLMode:          "disable",
		TracingSampleRatio: 1,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"sqlite needs a path", func(c *Config) { c.DBDriver = DriverSQLite; c.DBSQLitePath = "" }, true},
		{"sqlite with path", func(c *Config) { c.DBDriver = DriverSQLite; c.DBSQLitePath = "board.db" }, false},
		{"sample ratio above one", func(c *Config) { c.TracingSampleRatio = 1.5 }, true},
		{"production with default password", func(c *Config) { c.Env = "production"; c.DBSSLMode = "require" }, true},
		{"production without ssl", func(c *Config) { c.Env = "prod"; c.DBPassword = "s3cret-and-long" }, true},
		{"production with sqlite", func(c *Config) {
			c.Env = "production"
			c.DBDriver = DriverSQLite
			c.DBSQLitePath = "board.db"
		}, true},
		{"production hardened", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "s3cret-and-long"
			c.DBSSLMode = "verify-full"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", "9999")
	t.Setenv("DB_DRIVER", "  SQLite ")
	t.Setenv("DB_SQLITE_PATH", "/tmp/board.db")
	t.Setenv("FEATURE_FLAGS", "realtime=off")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/board.db", cfg.DBSQLitePath)
	assert.Equal(t, "realtime=off", cfg.FeatureFlags)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_RejectsInvalidDriver(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_DRIVER", "oracle")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("OTLP_ENDPOINT=collector:4318\nPORT=1111\n"), 0o600))
	t.Chdir(dir)
	t.Cleanup(func() { _ = os.Unsetenv("OTLP_ENDPOINT") })

	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", "7777")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "collector:4318", cfg.OTLPEndpoint)
	assert.Equal(t, "7777", cfg.Port)
}
