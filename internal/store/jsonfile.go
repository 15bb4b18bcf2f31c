package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	DefaultTasksFile  = "tasks.json"
	DefaultWishesFile = "wishes.json"
)

// JSONBackend keeps each collection in its own JSON document.
type JSONBackend struct {
	tasksPath  string
	wishesPath string
	log        *slog.Logger
}

// NewJSONBackend returns a backend reading and writing the two documents.
// The files do not need to exist yet.
func NewJSONBackend(tasksPath, wishesPath string, log *slog.Logger) *JSONBackend {
	if log == nil {
		log = slog.Default()
	}
	return &JSONBackend{tasksPath: tasksPath, wishesPath: wishesPath, log: log}
}

// Load reads both documents. Each one falls back to an empty collection
// on its own when it is absent or not parseable.
func (b *JSONBackend) Load() Snapshot {
	return Snapshot{
		Tasks:  loadDocument[Task](b.tasksPath, b.log),
		Wishes: loadDocument[Wish](b.wishesPath, b.log),
	}
}

// Save overwrites both documents.
func (b *JSONBackend) Save(snap Snapshot) error {
	snap = snap.normalized()
	if err := writeDocument(b.tasksPath, snap.Tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	if err := writeDocument(b.wishesPath, snap.Wishes); err != nil {
		return fmt.Errorf("save wishes: %w", err)
	}
	return nil
}

// Close is a no-op; documents are not held open between calls.
func (b *JSONBackend) Close() error {
	return nil
}

// WriteDocuments writes a snapshot as the two JSON documents under dir.
// Used to export state from any backend.
func WriteDocuments(dir string, snap Snapshot) error {
	return NewJSONBackend(
		filepath.Join(dir, DefaultTasksFile),
		filepath.Join(dir, DefaultWishesFile),
		nil,
	).Save(snap)
}

func loadDocument[T any](path string, log *slog.Logger) []T {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("document missing, starting empty", "path", path)
		return []T{}
	}
	if err != nil {
		log.Warn("document unreadable, starting empty", "path", path, "error", err)
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn("document corrupt, starting empty", "path", path, "error", err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// writeDocument writes v as 4-space indented JSON. Non-ASCII text and
// characters like & and < are kept as-is.
func writeDocument(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
