package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsEnvironment(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "custom.db")
	t.Setenv(EnvDBPath, dbPath)
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvEnv, "production")
	t.Setenv(EnvBackupDir, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, dbPath, cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, filepath.Join(filepath.Dir(dbPath), "backups"), cfg.ResolvedBackupDir())
	require.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvEnv, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, "nutriapp.db", filepath.Base(cfg.DBPath))
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Env)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid config",
			config: Config{DBPath: "./nutriapp.db", LogLevel: "info", Env: "development"},
		},
		{
			name:        "empty database path",
			config:      Config{DBPath: " ", LogLevel: "info", Env: "development"},
			wantErr:     true,
			errorString: "database path cannot be empty",
		},
		{
			name:        "invalid log level",
			config:      Config{DBPath: "./nutriapp.db", LogLevel: "chatty", Env: "development"},
			wantErr:     true,
			errorString: `invalid log level "chatty"`,
		},
		{
			name:        "invalid env",
			config:      Config{DBPath: "./nutriapp.db", LogLevel: "info", Env: "staging"},
			wantErr:     true,
			errorString: `invalid NUTRI_ENV "staging"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv(EnvDBPath, filepath.Join(t.TempDir(), "env.db"))

	t.Run("missing file is ignored", func(t *testing.T) {
		t.Chdir(t.TempDir())
		_, err := Load()
		require.NoError(t, err)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NUTRI-DB=1\n"), 0o644))
		t.Chdir(dir)

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load .env")
	})
}
