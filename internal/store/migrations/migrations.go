// Package migrations evolves the run journal schema. Each embedded
// sql/NN_name.sql file is one step; applied steps are recorded in the
// journal_schema table and never run twice.
package migrations

import (
	"cmp"
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// ErrBadStep reports an embedded file that is not a valid schema step.
var ErrBadStep = errors.New("journal schema: bad step")

// Step is one schema change of the journal.
type Step struct {
	Version int
	Name    string
	SQL     string
}

func (s Step) String() string {
	return fmt.Sprintf("%02d_%s", s.Version, s.Name)
}

const schemaTable = `
CREATE TABLE IF NOT EXISTS journal_schema (
	version    INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
)`

// Steps returns the embedded schema steps ordered by version.
func Steps() ([]Step, error) {
	return stepsFrom(sqlFiles, "sql")
}

func stepsFrom(fsys fs.FS, dir string) ([]Step, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("journal schema: %w", err)
	}

	var steps []Step
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		prefix, rest, ok := strings.Cut(strings.TrimSuffix(name, ".sql"), "_")
		version, err := strconv.Atoi(prefix)
		if !ok || err != nil || version <= 0 || rest == "" {
			return nil, fmt.Errorf("%w: %s is not NN_name.sql", ErrBadStep, name)
		}
		body, err := fs.ReadFile(fsys, dir+"/"+name)
		if err != nil {
			return nil, fmt.Errorf("journal schema: %w", err)
		}
		steps = append(steps, Step{Version: version, Name: rest, SQL: string(body)})
	}

	slices.SortFunc(steps, func(a, b Step) int { return cmp.Compare(a.Version, b.Version) })
	for i := 1; i < len(steps); i++ {
		if steps[i].Version == steps[i-1].Version {
			return nil, fmt.Errorf("%w: %s and %s share a version", ErrBadStep, steps[i-1], steps[i])
		}
	}
	return steps, nil
}

// Version returns the newest applied step, 0 for a fresh journal.
func Version(ctx context.Context, db *sql.DB) (int, error) {
	if _, err := db.ExecContext(ctx, schemaTable); err != nil {
		return 0, fmt.Errorf("journal schema: %w", err)
	}
	var v sql.NullInt64
	if err := db.QueryRowContext(ctx, "SELECT MAX(version) FROM journal_schema").Scan(&v); err != nil {
		return 0, fmt.Errorf("journal schema: read version: %w", err)
	}
	return int(v.Int64), nil
}

// Pending returns the steps newer than the journal's version.
func Pending(ctx context.Context, db *sql.DB) ([]Step, error) {
	steps, err := Steps()
	if err != nil {
		return nil, err
	}
	current, err := Version(ctx, db)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(steps, func(s Step) bool { return s.Version > current })
	if idx < 0 {
		return nil, nil
	}
	return steps[idx:], nil
}

// Apply runs every pending step, each in its own transaction, and
// returns how many were applied.
func Apply(ctx context.Context, db *sql.DB) (int, error) {
	pending, err := Pending(ctx, db)
	if err != nil {
		return 0, err
	}
	for i, s := range pending {
		if err := apply(ctx, db, s); err != nil {
			return i, fmt.Errorf("journal schema: step %s: %w", s, err)
		}
	}
	return len(pending), nil
}

func apply(ctx context.Context, db *sql.DB, s Step) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, s.SQL); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "INSERT INTO journal_schema (version, name) VALUES (?, ?)", s.Version, s.Name); err != nil {
		return err
	}
	return tx.Commit()
}
