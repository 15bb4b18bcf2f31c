package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/imkarma/kidtask/internal/config"
	"github.com/imkarma/kidtask/internal/logging"
	"github.com/imkarma/kidtask/internal/store"
)

const (
	defaultDirName = ".kidtask"
	configFileName = "config.yaml"
	roleEnvVar     = "KIDTASK_ROLE"
)

// kidPath returns the path to a file inside the data directory.
func kidPath(parts ...string) string {
	elems := append([]string{kidDir}, parts...)
	return filepath.Join(elems...)
}

// loadConfig reads the config, returning an error if kidtask is not initialized.
func loadConfig() (*config.Config, error) {
	cfgPath := kidPath(configFileName)
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("kidtask not initialized in %s. Run: kidtask init", kidDir)
	}
	return config.Load(cfgPath)
}

// mustStore loads the config and opens the store it points at, logging
// to stderr.
func mustStore() (*store.Store, error) {
	return storeLoggingTo(os.Stderr)
}

func storeLoggingTo(w io.Writer) (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(w, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	return openStore(cfg, log)
}

// openStore opens the backend selected by the config.
func openStore(cfg *config.Config, log *slog.Logger) (*store.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		b, err := store.NewSQLiteBackend(cfg.DBPath(kidDir), log)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		return store.Open(b, log), nil
	default:
		b := store.NewJSONBackend(cfg.TasksPath(kidDir), cfg.WishesPath(kidDir), log)
		return store.Open(b, log), nil
	}
}

// currentRole returns the role from --role, falling back to KIDTASK_ROLE.
func currentRole() (store.Role, error) {
	raw := roleFlag
	if raw == "" {
		raw = os.Getenv(roleEnvVar)
	}
	if raw == "" {
		return "", fmt.Errorf("no role selected. Pass --role Child|Parent|Teacher or set %s", roleEnvVar)
	}
	return store.ParseRole(raw)
}

// requireRole returns the current role if it is one of allowed.
func requireRole(action string, allowed ...store.Role) (store.Role, error) {
	role, err := currentRole()
	if err != nil {
		return "", err
	}
	if !slices.Contains(allowed, role) {
		names := make([]string, len(allowed))
		for i, r := range allowed {
			names[i] = string(r)
		}
		return "", fmt.Errorf("only %s can %s (current role: %s)", strings.Join(names, "/"), action, role)
	}
	return role, nil
}
