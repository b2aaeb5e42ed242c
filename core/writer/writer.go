// Package writer persists a flattened entity graph through a RowStore.
//
// Tables are written in foreign-key order. Every node's bindings are resolved
// from the ids of nodes written earlier, then the node is written with
// insert-or-update semantics so a second run updates rows in place instead of
// duplicating them. A failed row is logged and recorded; the run goes on, but
// rows referencing it fail too.
package writer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stokaro/leaguesync/core/entity"
	"github.com/stokaro/leaguesync/core/plan"
	"github.com/stokaro/leaguesync/rowstore"
)

var (
	// ErrInvalidConfiguration is returned when the writer or its input is unusable.
	ErrInvalidConfiguration = errors.New("invalid writer configuration")
	// ErrUnresolvedReference is the cause of a failure for a row whose
	// referenced row was not written.
	ErrUnresolvedReference = errors.New("unresolved foreign key")
)

// WriteFailure describes one row that could not be written.
type WriteFailure struct {
	Kind   entity.Kind
	Table  string
	Values rowstore.Row
	Cause  error
}

func (f *WriteFailure) Error() string {
	return fmt.Sprintf("failed to write %s row to %s: %v", f.Kind, f.Table, f.Cause)
}

func (f *WriteFailure) Unwrap() error {
	return f.Cause
}

// Recorder observes the outcome of every row write.
type Recorder interface {
	Record(table string, outcome rowstore.Outcome)
}

// TableStats counts outcomes for one table.
type TableStats struct {
	Inserted int
	Updated  int
	Failed   int
}

// Stats summarizes a Write call.
type Stats struct {
	Inserted int
	Updated  int
	Failed   int
	PerTable map[string]*TableStats
	Failures []*WriteFailure
	// Order is the table order the rows were written in.
	Order []string
}

func (s *Stats) add(table string, outcome rowstore.Outcome) {
	ts, ok := s.PerTable[table]
	if !ok {
		ts = &TableStats{}
		s.PerTable[table] = ts
	}
	switch outcome {
	case rowstore.OutcomeInserted:
		s.Inserted++
		ts.Inserted++
	case rowstore.OutcomeUpdated:
		s.Updated++
		ts.Updated++
	case rowstore.OutcomeFailed:
		s.Failed++
		ts.Failed++
	}
}

// Writer writes arenas to a RowStore.
//
// Rows are matched with a lookup followed by an insert, so two writers
// ingesting the same league at once can both insert the same row.
type Writer struct {
	store    rowstore.RowStore
	recorder Recorder
	logger   *slog.Logger
}

// New returns a writer backed by store.
func New(store rowstore.RowStore) *Writer {
	return &Writer{
		store:  store,
		logger: slog.Default(),
	}
}

// WithLogger returns a copy of the writer that logs to l.
func (w *Writer) WithLogger(l *slog.Logger) *Writer {
	tmp := *w
	tmp.logger = l
	return &tmp
}

// WithRecorder returns a copy of the writer that reports outcomes to r.
func (w *Writer) WithRecorder(r Recorder) *Writer {
	tmp := *w
	tmp.recorder = r
	return &tmp
}

// WriteLeague flattens league and writes it.
func (w *Writer) WriteLeague(ctx context.Context, league *entity.League, opts plan.Options) (Stats, error) {
	if league == nil && !opts.IncludeRegistries {
		return Stats{}, fmt.Errorf("%w: nil league", ErrInvalidConfiguration)
	}
	return w.Write(ctx, plan.Flatten(league, opts))
}

// Write persists every node of a. The returned error is non-nil only for a
// nil store or arena, or when ctx is done; row failures are reported in
// Stats.Failures.
func (w *Writer) Write(ctx context.Context, a *plan.Arena) (Stats, error) {
	stats := Stats{PerTable: make(map[string]*TableStats)}
	if w.store == nil {
		return stats, fmt.Errorf("%w: nil row store", ErrInvalidConfiguration)
	}
	if a == nil {
		return stats, fmt.Errorf("%w: nil arena", ErrInvalidConfiguration)
	}

	stats.Order = plan.SortTables(a)
	w.logger.Info("Writing league graph", "tables", len(stats.Order), "rows", a.Len())

	claims := rowstore.NewClaims()

	for _, table := range stats.Order {
		for _, idx := range a.NodesOf(table) {
			if err := ctx.Err(); err != nil {
				return stats, fmt.Errorf("write interrupted at %s: %w", table, err)
			}
			outcome, failure := w.writeNode(ctx, a, idx, claims)
			stats.add(table, outcome)
			if failure != nil {
				stats.Failures = append(stats.Failures, failure)
			}
			if w.recorder != nil {
				w.recorder.Record(table, outcome)
			}
		}
	}

	w.logger.Info("Wrote league graph",
		"inserted", stats.Inserted,
		"updated", stats.Updated,
		"failed", stats.Failed,
	)
	return stats, nil
}

func (w *Writer) writeNode(ctx context.Context, a *plan.Arena, idx plan.NodeIndex, claims *rowstore.Claims) (rowstore.Outcome, *WriteFailure) {
	node := a.Node(idx)
	kind := node.Entity.Kind()

	for _, b := range node.Bindings {
		target := a.Node(b.Target)
		if !target.Written {
			err := fmt.Errorf("%w %s: %s row was not written", ErrUnresolvedReference, b.Column, target.Table)
			return w.fail(node, kind, entity.Serialize(node.Entity), err)
		}
		if err := entity.Backfill(node.Entity, b.Column, target.ID); err != nil {
			return w.fail(node, kind, entity.Serialize(node.Entity), err)
		}
	}

	values := entity.Serialize(node.Entity)
	key, lookupClaims := contentKey(values), claims
	if id, ok := values["id"]; ok && id != nil {
		// A repeated source id names the same row, so it is never claimed away.
		key, lookupClaims = rowstore.Row{"id": id}, nil
	}

	id, outcome, err := rowstore.InsertOrUpdate(ctx, w.store, node.Table, key, values, lookupClaims)
	if err != nil {
		return w.fail(node, kind, values, err)
	}
	claims.Claim(node.Table, id)
	if err := entity.Backfill(node.Entity, "id", id); err != nil {
		w.logger.Warn("Failed to record row id", "table", node.Table, "id", id, "error", err)
	}
	node.ID = id
	node.Written = true
	w.logger.Debug("Wrote row", "table", node.Table, "id", id, "outcome", string(outcome))
	return outcome, nil
}

// contentKey matches a row without a source id by every other column it has.
func contentKey(values rowstore.Row) rowstore.Row {
	key := values.Clone()
	delete(key, "id")
	return key
}

func (w *Writer) fail(node *plan.Node, kind entity.Kind, values rowstore.Row, err error) (rowstore.Outcome, *WriteFailure) {
	failure := &WriteFailure{Kind: kind, Table: node.Table, Values: values, Cause: err}
	w.logger.Error("Failed to write row", "kind", kind.String(), "table", node.Table, "values", values, "error", err)
	return rowstore.OutcomeFailed, failure
}
