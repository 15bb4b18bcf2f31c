package store

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteBackend keeps both collections as tables in one SQLite database.
// Rows carry a seq column so records come back in insertion order.
type SQLiteBackend struct {
	db  *sql.DB
	log *slog.Logger
}

// NewSQLiteBackend opens (or creates) the database at dbPath. A file that
// is not a readable SQLite database is moved aside to dbPath+".corrupt"
// and an empty database is created in its place.
func NewSQLiteBackend(dbPath string, log *slog.Logger) (*SQLiteBackend, error) {
	if log == nil {
		log = slog.Default()
	}
	db, err := openSQLite(dbPath)
	if isDamaged(err) {
		log.Warn("database unreadable, starting empty", "path", dbPath, "error", err)
		if err := quarantine(dbPath); err != nil {
			return nil, err
		}
		db, err = openSQLite(dbPath)
	}
	if err != nil {
		return nil, err
	}
	return &SQLiteBackend{db: db, log: log}, nil
}

func openSQLite(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// isDamaged reports whether err means the file is not a usable database.
func isDamaged(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CORRUPT:
		return true
	}
	return false
}

// quarantine moves a damaged database out of the way, dropping its
// journal files.
func quarantine(dbPath string) error {
	if err := os.Rename(dbPath, dbPath+".corrupt"); err != nil {
		return fmt.Errorf("move damaged database: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(dbPath + suffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", dbPath+suffix, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		seq          INTEGER PRIMARY KEY,
		id           TEXT NOT NULL DEFAULT '',
		title        TEXT NOT NULL DEFAULT '',
		description  TEXT NOT NULL DEFAULT '',
		points       INTEGER NOT NULL DEFAULT 0,
		status       TEXT NOT NULL DEFAULT 'PENDING',
		rating       INTEGER,
		reviewed_by  TEXT,
		created_by   TEXT
	);

	CREATE TABLE IF NOT EXISTS wishes (
		seq        INTEGER PRIMARY KEY,
		id         TEXT NOT NULL DEFAULT '',
		name       TEXT NOT NULL DEFAULT '',
		min_level  INTEGER NOT NULL DEFAULT 1,
		status     TEXT NOT NULL DEFAULT 'PENDING'
	);
	`
	_, err := db.Exec(schema)
	return err
}

// Load reads both tables. A table that cannot be read yields an empty
// collection.
func (b *SQLiteBackend) Load() Snapshot {
	tasks, err := b.loadTasks()
	if err != nil {
		b.log.Warn("tasks unreadable, starting empty", "error", err)
		tasks = []Task{}
	}
	wishes, err := b.loadWishes()
	if err != nil {
		b.log.Warn("wishes unreadable, starting empty", "error", err)
		wishes = []Wish{}
	}
	return Snapshot{Tasks: tasks, Wishes: wishes}
}

func (b *SQLiteBackend) loadTasks() ([]Task, error) {
	rows, err := b.db.Query(
		`SELECT id, title, description, points, status, rating, reviewed_by, created_by
		 FROM tasks ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		var t Task
		var rating sql.NullInt64
		var reviewedBy, createdBy sql.NullString
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Points, &t.Status,
			&rating, &reviewedBy, &createdBy,
		); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if rating.Valid {
			r := int(rating.Int64)
			t.Rating = &r
		}
		t.ReviewedBy = nullRole(reviewedBy)
		t.CreatedBy = nullRole(createdBy)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (b *SQLiteBackend) loadWishes() ([]Wish, error) {
	rows, err := b.db.Query(`SELECT id, name, min_level, status FROM wishes ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query wishes: %w", err)
	}
	defer rows.Close()

	wishes := []Wish{}
	for rows.Next() {
		var w Wish
		if err := rows.Scan(&w.ID, &w.Name, &w.MinLevel, &w.Status); err != nil {
			return nil, fmt.Errorf("scan wish: %w", err)
		}
		wishes = append(wishes, w)
	}
	return wishes, rows.Err()
}

// Save replaces the contents of both tables in a single transaction.
func (b *SQLiteBackend) Save(snap Snapshot) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	for i, t := range snap.Tasks {
		var rating any
		if t.Rating != nil {
			rating = *t.Rating
		}
		_, err := tx.Exec(
			`INSERT INTO tasks (seq, id, title, description, points, status, rating, reviewed_by, created_by)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i+1, t.ID, t.Title, t.Description, t.Points, string(t.Status),
			rating, roleValue(t.ReviewedBy), roleValue(t.CreatedBy),
		)
		if err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM wishes`); err != nil {
		return fmt.Errorf("clear wishes: %w", err)
	}
	for i, w := range snap.Wishes {
		_, err := tx.Exec(
			`INSERT INTO wishes (seq, id, name, min_level, status) VALUES (?, ?, ?, ?, ?)`,
			i+1, w.ID, w.Name, w.MinLevel, string(w.Status),
		)
		if err != nil {
			return fmt.Errorf("insert wish %s: %w", w.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func nullRole(ns sql.NullString) *Role {
	if !ns.Valid {
		return nil
	}
	r := Role(ns.String)
	return &r
}

func roleValue(r *Role) any {
	if r == nil {
		return nil
	}
	return string(*r)
}
