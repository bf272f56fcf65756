package statusdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // pure-Go SQLite driver.

	"github.com/papapumpkin/shipwright/internal/portspec"
)

// schema is executed on every open; IF NOT EXISTS makes that safe.
const schema = `
CREATE TABLE IF NOT EXISTS installed_features (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT NOT NULL,
    triplet    TEXT NOT NULL,
    feature    TEXT NOT NULL,
    depends    TEXT NOT NULL DEFAULT '',
    UNIQUE(name, triplet, feature)
);
`

// SQLiteStatusDatabase is the durable on-disk install receipt for a
// package manager's world, backed by a pure-Go SQLite driver (no cgo).
type SQLiteStatusDatabase struct {
	db *sql.DB
}

// OpenSQLiteStatusDatabase opens (or creates) the status database at
// dbPath, enables WAL mode, and ensures the schema exists.
func OpenSQLiteStatusDatabase(ctx context.Context, dbPath string) (*SQLiteStatusDatabase, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("statusdb: open %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1) // SQLite allows only one writer at a time.

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("statusdb: enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("statusdb: create schema: %w", err)
	}

	return &SQLiteStatusDatabase{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStatusDatabase) Close() error {
	return s.db.Close()
}

func (s *SQLiteStatusDatabase) All() []InstalledRecord {
	rows, err := s.db.Query(`SELECT name, triplet, feature, depends FROM installed_features ORDER BY id`)
	if err != nil {
		return nil
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *SQLiteStatusDatabase) FindInstalled(spec portspec.PackageSpec) []InstalledRecord {
	rows, err := s.db.Query(
		`SELECT name, triplet, feature, depends FROM installed_features WHERE name = ? AND triplet = ? ORDER BY id`,
		spec.Name, spec.Triplet,
	)
	if err != nil {
		return nil
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) []InstalledRecord {
	var out []InstalledRecord
	for rows.Next() {
		var name, triplet, feature, depends string
		if err := rows.Scan(&name, &triplet, &feature, &depends); err != nil {
			continue
		}
		rec := InstalledRecord{
			Spec:    portspec.PackageSpec{Name: name, Triplet: triplet},
			Feature: feature,
		}
		if depends != "" {
			rec.Depends = strings.Split(depends, ",")
		}
		out = append(out, rec)
	}
	return out
}

// Record inserts or replaces the installed-feature row for spec/feature,
// storing depends joined by comma. Used by a plan executor after it builds
// and installs a package; the planner itself never calls this.
func (s *SQLiteStatusDatabase) Record(ctx context.Context, spec portspec.PackageSpec, feature string, depends []string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO installed_features (name, triplet, feature, depends) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name, triplet, feature) DO UPDATE SET depends = excluded.depends`,
		spec.Name, spec.Triplet, feature, strings.Join(depends, ","),
	)
	if err != nil {
		return fmt.Errorf("statusdb: record %s[%s]: %w", spec, feature, err)
	}
	return nil
}

// Unrecord deletes every installed-feature row for spec. Used by a plan
// executor after it removes a package.
func (s *SQLiteStatusDatabase) Unrecord(ctx context.Context, spec portspec.PackageSpec) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM installed_features WHERE name = ? AND triplet = ?`,
		spec.Name, spec.Triplet,
	)
	if err != nil {
		return fmt.Errorf("statusdb: unrecord %s: %w", spec, err)
	}
	return nil
}
