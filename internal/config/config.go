package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/nelsoncalle/nutricion/internal/logging"
)

const (
	EnvDBPath    = "NUTRI_DB_PATH"
	EnvLogLevel  = "NUTRI_LOG_LEVEL"
	EnvEnv       = "NUTRI_ENV"
	EnvBackupDir = "NUTRI_BACKUP_DIR"

	appDirName = "nutri"
	dbFileName = "nutriapp.db"
)

type Config struct {
	DBPath    string
	LogLevel  string
	Env       string
	BackupDir string
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over .env values. A missing
// .env is fine; one that does not parse is an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	dbPath := getEnv(EnvDBPath, "")
	if dbPath == "" {
		// Left empty when there is no config dir; a --db flag may still
		// supply it before Validate.
		if def, err := DefaultDBPath(); err == nil {
			dbPath = def
		}
	}

	return &Config{
		DBPath:    dbPath,
		LogLevel:  getEnv(EnvLogLevel, "warn"),
		Env:       getEnv(EnvEnv, "development"),
		BackupDir: getEnv(EnvBackupDir, ""),
	}, nil
}

// DefaultDBPath places the database under the user's config directory.
func DefaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

// ResolvedBackupDir is BackupDir, or a backups/ directory beside the database.
func (c *Config) ResolvedBackupDir() string {
	if c.BackupDir != "" {
		return c.BackupDir
	}
	return filepath.Join(filepath.Dir(c.DBPath), "backups")
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "database path cannot be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	switch c.Env {
	case "development", "production":
	default:
		problems = append(problems, fmt.Sprintf("invalid %s %q: must be development or production", EnvEnv, c.Env))
	}

	if len(problems) > 0 {
		return errors.New("configuration validation failed: " + strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}
