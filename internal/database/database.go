package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SweepDB manages the SQLite database for sweep history
type SweepDB struct {
	db *sql.DB
}

// SweepRecord represents a single recorded delete attempt
type SweepRecord struct {
	ID           int64
	Timestamp    time.Time
	Action       string // REMOVED, NOT_FOUND, or ERROR
	Path         string
	FileName     string
	ObjectType   string // file or directory
	Size         int64
	ErrorMessage string
	CreatedAt    time.Time
}

// NewSweepDB creates a new database connection and initializes schema
func NewSweepDB(dbPath string) (*SweepDB, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	// file: prefix with _loc=auto enables automatic DATETIME parsing
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	// A simple query instead of Ping() so the database file is created
	// if it does not exist yet
	if _, err = db.Exec("SELECT 1"); err != nil {
		return nil, fmt.Errorf("failed to initialize database (check permissions on %s): %w", dbPath, err)
	}

	// WAL mode: multiple readers, one writer
	if _, err = db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if _, err = db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	sdb := &SweepDB{db: db}
	if err = sdb.initSchema(); err != nil {
		return nil, err
	}

	err = nil
	return sdb, nil
}

// initSchema creates tables and indexes if they don't exist
func (d *SweepDB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sweeps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		action TEXT NOT NULL,
		path TEXT NOT NULL,
		file_name TEXT,
		object_type TEXT NOT NULL,
		size INTEGER NOT NULL,
		error_message TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_sweeps_timestamp ON sweeps(timestamp);
	CREATE INDEX IF NOT EXISTS idx_sweeps_action ON sweeps(action);
	CREATE INDEX IF NOT EXISTS idx_sweeps_path ON sweeps(path);

	-- Metadata table for schema versioning
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	INSERT OR IGNORE INTO schema_version (version) VALUES (1);
	`

	_, err := d.db.Exec(schema)
	return err
}

// RecordSweep inserts one delete attempt into the history
func (d *SweepDB) RecordSweep(action, path, objectType string, size int64, errorMsg string) error {
	query := `
	INSERT INTO sweeps (timestamp, action, path, file_name, object_type, size, error_message)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := d.db.Exec(
		query,
		time.Now().UTC(),
		action,
		path,
		filepath.Base(path),
		objectType,
		size,
		errorMsg,
	)
	return err
}

// Close closes the database connection
func (d *SweepDB) Close() error {
	return d.db.Close()
}
