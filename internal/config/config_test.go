package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(data), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Valid(t *testing.T) {
	p := writeConfig(t, `version: 1
storage:
  driver: sqlite
  db_file: data/kid.db
log:
  level: debug
  format: json
`)

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Driver != DriverSQLite {
		t.Errorf("expected sqlite driver, got %q", cfg.Storage.Driver)
	}
	if cfg.Storage.DBFile != "data/kid.db" {
		t.Errorf("expected db_file data/kid.db, got %q", cfg.Storage.DBFile)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
	// Keys not in the file keep their defaults.
	if cfg.Storage.TasksFile != "tasks.json" || cfg.Storage.WishesFile != "wishes.json" {
		t.Errorf("expected default document names, got %+v", cfg.Storage)
	}
}

func TestLoad_MinimalUsesDefaults(t *testing.T) {
	p := writeConfig(t, "version: 1\n")

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Driver != DriverJSON {
		t.Errorf("expected json driver, got %q", cfg.Storage.Driver)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "text" {
		t.Errorf("expected default log config, got %+v", cfg.Log)
	}
}

func TestLoad_EmptyValuesFallBack(t *testing.T) {
	p := writeConfig(t, `version: 1
storage:
  driver: ""
  tasks_file: ""
`)

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Driver != DriverJSON || cfg.Storage.TasksFile != "tasks.json" {
		t.Fatalf("expected defaults for empty values, got %+v", cfg.Storage)
	}
}

func TestLoad_InvalidDriver(t *testing.T) {
	p := writeConfig(t, `version: 1
storage:
  driver: postgres
`)

	if _, err := Load(p); err == nil {
		t.Fatal("expected validation error for unknown driver")
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	p := writeConfig(t, `version: 1
log:
  level: loud
`)

	if _, err := Load(p); err == nil {
		t.Fatal("expected validation error for unknown log level")
	}
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	p := writeConfig(t, "version: 2\n")

	if _, err := Load(p); err == nil {
		t.Fatal("expected error for unsupported version")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	p := writeConfig(t, "version: [1\n")

	if _, err := Load(p); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	p := writeConfig(t, `version: 1
storage:
  driver: json
log:
  level: warn
`)
	t.Setenv("KIDTASK_STORAGE_DRIVER", "sqlite")
	t.Setenv("KIDTASK_LOG_LEVEL", "debug")

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Driver != DriverSQLite {
		t.Errorf("expected env to override driver, got %q", cfg.Storage.Driver)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected env to override level, got %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("unset env var must not change format, got %q", cfg.Log.Format)
	}
}

func TestLoad_EnvOverrideIsValidated(t *testing.T) {
	p := writeConfig(t, "version: 1\n")
	t.Setenv("KIDTASK_LOG_FORMAT", "xml")

	if _, err := Load(p); err == nil {
		t.Fatal("expected validation error for env-provided format")
	}
}

func TestSave_And_Reload(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Storage.Driver = DriverSQLite
	cfg.Storage.DBFile = "family.db"

	if err := Save(p, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(p)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Storage.Driver != DriverSQLite || loaded.Storage.DBFile != "family.db" {
		t.Fatalf("storage lost after round-trip: %+v", loaded.Storage)
	}
}

func TestPaths(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.TasksPath(".kidtask"); got != filepath.Join(".kidtask", "tasks.json") {
		t.Errorf("TasksPath=%s", got)
	}
	if got := cfg.WishesPath(".kidtask"); got != filepath.Join(".kidtask", "wishes.json") {
		t.Errorf("WishesPath=%s", got)
	}

	cfg.Storage.DBFile = "/var/lib/kidtask.db"
	if got := cfg.DBPath(".kidtask"); got != "/var/lib/kidtask.db" {
		t.Errorf("absolute DBPath changed: %s", got)
	}
}
