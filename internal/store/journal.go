package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cto-ai/clif/internal/intent"
	"github.com/cto-ai/clif/internal/log"
)

// timeLayout sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Begin records the start of a run.
func (s *Store) Begin(ctx context.Context, run intent.Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, command, started_at, state) VALUES (?, ?, ?, ?)`,
		run.ID.String(),
		strings.Join(run.Command, " "),
		run.Started.UTC().Format(timeLayout),
		intent.Running.String(),
	)
	if err != nil {
		log.Error("store: begin run failed: %v (run=%s)", err, run.ID)
	}
	return err
}

// Step records one intent of a run.
func (s *Store) Step(ctx context.Context, run uuid.UUID, step intent.StepRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_steps (run_id, seq, intent, handler, resolved, error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.String(),
		step.Seq,
		encodeIntent(step.Intent),
		nullable(step.Handler),
		step.Resolved,
		errString(step.Err),
	)
	if err != nil {
		log.Error("store: record step failed: %v (run=%s, seq=%d)", err, run, step.Seq)
	}
	return err
}

// Finish records the terminal outcome of a run.
func (s *Store) Finish(ctx context.Context, run uuid.UUID, out intent.Outcome, runErr error) error {
	var ns, msg any
	if out.Failure != nil {
		ns, msg = out.Failure.NS, out.Failure.Message
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs
		 SET finished_at = ?, state = ?, recovered = ?, steps = ?,
		     failure_ns = ?, failure_msg = ?, error = ?
		 WHERE id = ?`,
		time.Now().UTC().Format(timeLayout),
		out.State.String(),
		out.Recovered,
		out.Steps,
		ns,
		msg,
		errString(runErr),
		run.String(),
	)
	if err != nil {
		log.Error("store: finish run failed: %v (run=%s)", err, run)
	}
	return err
}

// encodeIntent renders an intent for storage. Values JSON cannot encode
// are stored by their Go representation.
func encodeIntent(v any) string {
	if fields, ok := intentFields(v); ok {
		v = fields
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%q", fmt.Sprint(v))
	}
	return string(b)
}

func intentFields(v any) (map[string]any, bool) {
	type fielder interface{ Fields() map[string]any }
	if f, ok := v.(fielder); ok {
		return f.Fields(), true
	}
	return nil, false
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func errString(err error) any {
	if err == nil {
		return nil
	}
	return err.Error()
}

var _ intent.Journal = (*Store)(nil)
