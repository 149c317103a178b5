package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_EnvironmentThenFlags(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:books.db")
	t.Setenv("DB_MAX_IDLE_TIME", "5m")
	t.Setenv("LIMITER_ENABLED", "false")

	cfg, err := loadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "file:books.db", cfg.DB.DSN)
	assert.Equal(t, 5*time.Minute, cfg.DB.MaxIdleTime)
	assert.False(t, cfg.Limiter.Enabled)

	cfg, err = loadConfig([]string{"-port", "5000", "-env", "production", "-limiter-enabled=true", "-limiter-rps", "2.5"})
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.True(t, cfg.Limiter.Enabled)
	assert.InDelta(t, 2.5, cfg.Limiter.RPS, 0.0001)

	db := cfg.dbConfig()
	assert.Equal(t, cfg.DB.Driver, db.Driver)
	assert.Equal(t, cfg.DB.DSN, db.DSN)
	assert.Equal(t, cfg.DB.MaxIdleTime, db.MaxIdleTime)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"port", []string{"-port", "0"}, "config: port must be between 1 and 65535"},
		{"environment", []string{"-env", "qa"}, "config: env must be development, staging or production"},
		{"driver", []string{"-db-driver", "mysql"}, "config: db-driver must be postgres or sqlite"},
		{"postgres url for sqlite", []string{"-db-driver", "sqlite", "-db-dsn", "postgres://localhost/books"}, "config: db-dsn must be a file path or :memory: for the sqlite driver"},
		{"limiter rps", []string{"-limiter-enabled=true", "-limiter-rps", "0"}, "config: limiter-rps must be greater than zero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(tt.args)
			require.Error(t, err)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestLoadConfig_DefaultDSNFollowsDriver(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	t.Setenv("DB_DRIVER", "sqlite")
	cfg, err := loadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultSQLiteDSN, cfg.DB.DSN)

	t.Setenv("DB_DRIVER", "postgres")
	cfg, err = loadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultPostgresDSN, cfg.DB.DSN)

	cfg, err = loadConfig([]string{"-db-driver", "sqlite", "-db-dsn", ":memory:"})
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.DB.DSN)
}

func TestLoadConfig_BadEnvironmentValue(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	_, err := loadConfig(nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parse environment")
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BOOKSHELF_DOTENV_TEST=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("BOOKSHELF_DOTENV_TEST") })

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("BOOKSHELF_DOTENV_TEST"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	newLogger(&buf, "production").Info("hello", "answer", 42)

	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"version":"`+appVersion+`"`)
	assert.Contains(t, buf.String(), `"answer":42`)

	buf.Reset()
	newLogger(&buf, "development").Info("hello")
	assert.Contains(t, buf.String(), "hello")
}
