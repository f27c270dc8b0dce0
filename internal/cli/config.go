package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/keyring"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/storage"
	"github.com/julianstephens/moodlit/internal/storage/postgres"
	"github.com/julianstephens/moodlit/internal/storage/sqlite"
)

// ConnectionEnv holds a PostgreSQL connection string that may carry a password
const ConnectionEnv = "MOODLIT_DB_CONNECTION"

// ErrEmbeddedCredentials is returned when --config carries a PostgreSQL password
var ErrEmbeddedCredentials = errors.New("PostgreSQL connection strings with embedded credentials are not allowed in --config")

// IsConnString reports whether config is a PostgreSQL URL or key=value DSN
func IsConnString(config string) bool {
	return storage.IsPostgres(config) || strings.Contains(config, "host=")
}

// ResolveConfig returns the storage config to use. An explicit --config wins.
// With the default path, MOODLIT_DB_CONNECTION and then the OS keyring may
// supply a PostgreSQL connection string instead.
func ResolveConfig(config string) (string, error) {
	if config != "" && config != constants.DefaultConfigPath {
		if IsConnString(config) && postgres.HasEmbeddedCredentials(config) {
			return "", ErrEmbeddedCredentials
		}
		return config, nil
	}

	if env := strings.TrimSpace(os.Getenv(ConnectionEnv)); env != "" {
		return env, nil
	}

	connStr, err := keyring.GetConnectionString()
	switch {
	case err == nil:
		return connStr, nil
	case !errors.Is(err, keyring.ErrNotFound) && !errors.Is(err, keyring.ErrKeyringUnavailable):
		logger.Debug("Keyring lookup failed", "error", err)
	}
	return constants.DefaultConfigPath, nil
}

// NewStore builds the storage provider for a resolved config
func NewStore(config string) storage.Provider {
	if IsConnString(config) {
		return postgres.New(config)
	}
	return sqlite.NewStore(config)
}

// ConfigDir is where logs and the server lockfile live. SQLite keeps them next
// to the database, PostgreSQL setups use the default config directory.
func ConfigDir(config string) string {
	if IsConnString(config) {
		return filepath.Dir(storage.ExpandPath(constants.DefaultConfigPath))
	}
	return filepath.Dir(storage.ExpandPath(config))
}
