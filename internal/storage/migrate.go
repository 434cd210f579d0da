package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const schemaTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version TEXT PRIMARY KEY
)`

// migration is one numbered step, e.g. "0002_kv_updated_at".
type migration struct {
	version string
	file    string
}

// MigrateUp applies the .up.sql files not yet recorded in
// schema_migrations, oldest first, each in its own transaction.
func MigrateUp(db *sql.DB) error {
	applied, err := AppliedVersions(db)
	if err != nil {
		return err
	}
	steps, err := migrations(".up.sql")
	if err != nil {
		return err
	}
	for _, m := range steps {
		if slices.Contains(applied, m.version) {
			continue
		}
		if err := runStep(db, m, `INSERT INTO schema_migrations (version) VALUES (?)`); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown reverts every applied step, newest first.
func MigrateDown(db *sql.DB) error {
	applied, err := AppliedVersions(db)
	if err != nil {
		return err
	}
	steps, err := migrations(".down.sql")
	if err != nil {
		return err
	}
	slices.Reverse(steps)
	for _, m := range steps {
		if !slices.Contains(applied, m.version) {
			continue
		}
		if err := runStep(db, m, `DELETE FROM schema_migrations WHERE version = ?`); err != nil {
			return err
		}
	}
	return nil
}

// AppliedVersions lists recorded migration versions in order.
func AppliedVersions(db *sql.DB) ([]string, error) {
	if _, err := db.Exec(schemaTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	rows, err := db.Query(`SELECT version FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan migration: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func migrations(suffix string) ([]migration, error) {
	files, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	slices.Sort(files)
	out := make([]migration, 0, len(files))
	for _, f := range files {
		out = append(out, migration{version: strings.TrimSuffix(path.Base(f), suffix), file: f})
	}
	return out, nil
}

// runStep executes one migration file and the bookkeeping statement for
// its version atomically.
func runStep(db *sql.DB, m migration, record string) error {
	body, err := migrationFiles.ReadFile(m.file)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", m.file, err)
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", m.version, err)
	}
	if _, err := tx.Exec(string(body)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("apply migration %s: %w", m.file, err)
	}
	if _, err := tx.Exec(record, m.version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %s: %w", m.version, err)
	}
	return tx.Commit()
}
