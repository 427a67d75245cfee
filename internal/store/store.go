package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// pragma is a connection setting applied on open. want is the value SQLite
// reports back once the setting is in effect.
type pragma struct {
	name  string
	value string
	want  string
}

var pragmas = []pragma{
	{name: "journal_mode", value: "WAL", want: "wal"},
	{name: "synchronous", value: "NORMAL", want: "1"},
	{name: "busy_timeout", value: "5000", want: "5000"},
	{name: "foreign_keys", value: "ON", want: "1"},
}

// migrations[i] upgrades a database at user_version i to i+1.
var migrations = []func(*sql.Tx) error{
	addLookupIndexes,
}

var currentSchemaVersion = len(migrations)

// Store is a packed entity document in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path, then brings its schema up to
// date. Opening the same file repeatedly is safe.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to %s: %w", path, err)
	}

	// One connection: pragmas are per connection and SQLite has one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	for _, step := range []struct {
		name string
		run  func() error
	}{
		{"apply pragmas", s.applyPragmas},
		{"apply schema", s.applySchema},
		{"migrate", s.migrate},
	} {
		if err := step.run(); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", step.name, err)
		}
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) applyPragmas() error {
	for _, p := range pragmas {
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)); err != nil {
			return fmt.Errorf("pragma %s: %w", p.name, err)
		}
	}
	return nil
}

// checkPragmas reports every pragma whose value differs from the one Open
// applies.
func (s *Store) checkPragmas() error {
	var errs []error
	for _, p := range pragmas {
		var got string
		if err := s.db.QueryRow("PRAGMA " + p.name).Scan(&got); err != nil {
			errs = append(errs, fmt.Errorf("read pragma %s: %w", p.name, err))
			continue
		}
		if got != p.want {
			errs = append(errs, fmt.Errorf("pragma %s = %q, want %q", p.name, got, p.want))
		}
	}
	return errors.Join(errs...)
}

func (s *Store) applySchema() error {
	_, err := s.db.Exec(schemaSQL)
	return err
}

func (s *Store) schemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	return version, err
}

// migrate runs each pending migration in its own transaction, recording the
// new user_version with it.
func (s *Store) migrate() error {
	version, err := s.schemaVersion()
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	for v := version; v < currentSchemaVersion; v++ {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if err := migrations[v](tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("to v%d: %w", v+1, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("set user_version %d: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// addLookupIndexes indexes the columns used to find attached geometries and
// walk frame chains.
func addLookupIndexes(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE INDEX IF NOT EXISTS idx_geometries_body ON geometries(body_id);
		CREATE INDEX IF NOT EXISTS idx_frames_parent ON frames(parent_id);
	`)
	return err
}
