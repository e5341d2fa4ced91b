package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/gradeboard/internal/constants"
	"github.com/julianstephens/gradeboard/internal/keyring"
	"github.com/julianstephens/gradeboard/internal/logger"
	"github.com/julianstephens/gradeboard/internal/storage"
	"github.com/julianstephens/gradeboard/internal/storage/postgres"
	"github.com/julianstephens/gradeboard/internal/storage/sqlite"
)

// OpenStore picks the storage backend for config. With the default path, a
// connection string saved in the keyring takes precedence. Connection
// strings given on the command line must not embed a password.
func OpenStore(config string) (storage.Provider, error) {
	if config == "" || config == constants.DefaultConfigPath {
		connStr, err := keyring.GetConnectionString()
		switch {
		case err == nil:
			logger.Debug("Using connection string from keyring")
			return postgres.New(connStr), nil
		case errors.Is(err, keyring.ErrNotFound):
		default:
			logger.Debug("Keyring lookup failed", "error", err)
		}
		if config == "" {
			config = constants.DefaultConfigPath
		}
	}

	if storage.IsPostgres(config) {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed; use the OS keyring ('%s keyring set'), .pgpass or PGPASSWORD instead", constants.AppName)
			}
			return nil, err
		}
		return postgres.New(config), nil
	}

	path, err := storage.ExpandPath(config)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}
