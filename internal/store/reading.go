package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrRunNotFound is returned by Get for an unknown run ID.
var ErrRunNotFound = errors.New("store: run not found")

// RunRecord is one journaled run.
type RunRecord struct {
	ID         string
	Command    string
	StartedAt  time.Time
	FinishedAt *time.Time
	State      string
	Recovered  bool
	Steps      int
	FailureNS  string
	FailureMsg string
	Error      string
}

// StepRow is one journaled intent.
type StepRow struct {
	Seq      int
	Intent   string
	Handler  string
	Resolved bool
	Error    string
}

// RunFilter narrows List. Zero values match everything.
type RunFilter struct {
	Command string
	State   string
	Limit   int
}

// List returns runs newest first.
func (s *Store) List(ctx context.Context, filter RunFilter) ([]RunRecord, error) {
	query := `
		SELECT id, command, started_at, finished_at, state, recovered, steps,
		       failure_ns, failure_msg, error
		FROM runs
	`

	var (
		clauses []string
		args    []any
	)
	if filter.Command != "" {
		clauses = append(clauses, "command = ?")
		args = append(args, filter.Command)
	}
	if filter.State != "" {
		clauses = append(clauses, "state = ?")
		args = append(args, filter.State)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY started_at DESC, rowid DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Get returns one run with its steps in order.
func (s *Store) Get(ctx context.Context, id string) (RunRecord, []StepRow, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, command, started_at, finished_at, state, recovered, steps,
		       failure_ns, failure_msg, error
		FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return RunRecord{}, nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, intent, handler, resolved, error FROM run_steps WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return RunRecord{}, nil, err
	}
	defer rows.Close()

	var steps []StepRow
	for rows.Next() {
		var (
			st      StepRow
			handler sql.NullString
			errText sql.NullString
		)
		if err := rows.Scan(&st.Seq, &st.Intent, &handler, &st.Resolved, &errText); err != nil {
			return RunRecord{}, nil, err
		}
		st.Handler = handler.String
		st.Error = errText.String
		steps = append(steps, st)
	}
	return run, steps, rows.Err()
}

// Prune deletes all but the newest keep runs and returns how many were
// removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var (
		r                RunRecord
		started          string
		finished         sql.NullString
		ns, msg, errText sql.NullString
	)
	if err := row.Scan(&r.ID, &r.Command, &started, &finished, &r.State, &r.Recovered, &r.Steps, &ns, &msg, &errText); err != nil {
		return RunRecord{}, err
	}

	t, err := time.Parse(timeLayout, started)
	if err != nil {
		return RunRecord{}, err
	}
	r.StartedAt = t
	if finished.Valid {
		ft, err := time.Parse(timeLayout, finished.String)
		if err != nil {
			return RunRecord{}, err
		}
		r.FinishedAt = &ft
	}
	r.FailureNS = ns.String
	r.FailureMsg = msg.String
	r.Error = errText.String
	return r, nil
}
