// Package config resolves where diacare keeps its data: a SQLite file, a
// JSON file or a PostgreSQL database.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/keyring"
	"github.com/julianstephens/diacare/internal/logger"
	"github.com/julianstephens/diacare/internal/storage"
	"github.com/julianstephens/diacare/internal/storage/postgres"
	"github.com/julianstephens/diacare/internal/storage/sqlite"
)

type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendJSON     Backend = "json"
	BackendPostgres Backend = "postgres"
)

// Source records where a PostgreSQL connection string came from.
type Source string

const (
	SourceNone    Source = ""
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
	SourceFlag    Source = "flag"
)

// Target is a resolved storage location.
type Target struct {
	Backend  Backend
	Location string // file path or connection string
	Source   Source
}

// LoadDotEnv loads variables from the given .env files, or ./.env when none
// are named. Variables already set in the environment win. Missing files
// are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// BackendFor picks the backend a config value names.
func BackendFor(value string) Backend {
	switch {
	case postgres.IsConnString(value):
		return BackendPostgres
	case strings.EqualFold(filepath.Ext(value), ".json"):
		return BackendJSON
	default:
		return BackendSQLite
	}
}

// ExpandPath replaces a leading "~/" with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Resolve turns the --config value into a Target. A PostgreSQL connection
// string is looked up in order: DIACARE_DB_CONNECTION, the OS keyring, then
// the flag itself. The keyring is only consulted when the flag does not name
// a file. Connection strings from the flag must not carry a password.
func Resolve(value string) (Target, error) {
	if conn := os.Getenv(constants.EnvDBConnection); conn != "" {
		return Target{Backend: BackendPostgres, Location: conn, Source: SourceEnv}, nil
	}

	if value == "" || postgres.IsConnString(value) {
		conn, err := keyring.GetConnectionString()
		switch {
		case err == nil:
			return Target{Backend: BackendPostgres, Location: conn, Source: SourceKeyring}, nil
		case !errors.Is(err, keyring.ErrNotFound):
			logger.Debug("Keyring lookup failed", "error", err)
		}
	}

	if postgres.IsConnString(value) {
		if _, err := postgres.ValidateConnString(value); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return Target{}, fmt.Errorf("%w; store it with 'diacare keyring set' or export %s instead",
					err, constants.EnvDBConnection)
			}
			return Target{}, err
		}
		return Target{Backend: BackendPostgres, Location: value, Source: SourceFlag}, nil
	}

	if value == "" {
		value = constants.DefaultConfigPath
	}
	path, err := ExpandPath(value)
	if err != nil {
		return Target{}, err
	}
	return Target{Backend: BackendFor(path), Location: path}, nil
}

// Open returns an unloaded store for t.
func (t Target) Open() storage.Provider {
	switch t.Backend {
	case BackendPostgres:
		return postgres.New(t.Location)
	case BackendJSON:
		return storage.NewJSONStore(t.Location)
	default:
		return sqlite.NewStore(t.Location)
	}
}

// IsFile reports whether the target is a local file that can be backed up.
func (t Target) IsFile() bool {
	return t.Backend != BackendPostgres
}

// ConfigDir is where logs and other local state live. File stores keep
// them beside the data file.
func (t Target) ConfigDir() (string, error) {
	if t.IsFile() {
		return filepath.Dir(t.Location), nil
	}
	return ExpandPath(filepath.Dir(constants.DefaultConfigPath))
}

// Display returns the location with any password masked.
func (t Target) Display() string {
	if t.Backend != BackendPostgres {
		return t.Location
	}
	return MaskPassword(t.Location)
}

// MaskPassword hides the password of a PostgreSQL URL or DSN.
func MaskPassword(connStr string) string {
	if postgres.IsConnString(connStr) {
		scheme, rest, _ := strings.Cut(connStr, "://")
		at := strings.LastIndex(rest, "@")
		if at == -1 {
			return connStr
		}
		user, _, hasPassword := strings.Cut(rest[:at], ":")
		if !hasPassword {
			return connStr
		}
		return scheme + "://" + user + ":****" + rest[at:]
	}

	fields := strings.Fields(connStr)
	for i, f := range fields {
		if strings.HasPrefix(strings.ToLower(f), "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
