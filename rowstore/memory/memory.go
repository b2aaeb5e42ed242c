// Package memory provides an in-memory RowStore used by tests and dry runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/stokaro/leaguesync/core/valueparse"
	"github.com/stokaro/leaguesync/rowstore"
)

type table struct {
	rows   []rowstore.Row
	nextID int64
}

// Store keeps rows per table. Tables are created on first insert; rows get
// sequential int64 ids unless the caller supplies one.
type Store struct {
	mu     sync.Mutex
	tables map[string]*table
}

var _ rowstore.RowStore = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{tables: make(map[string]*table)}
}

func (s *Store) table(name string) *table {
	t, ok := s.tables[name]
	if !ok {
		t = &table{nextID: 1}
		s.tables[name] = t
	}
	return t
}

func (t *table) indexOf(id any) int {
	for i, r := range t.rows {
		if rowstore.ValuesEqual(r["id"], id) {
			return i
		}
	}
	return -1
}

// Insert appends a row. A row without an id gets the next sequential one.
func (s *Store) Insert(ctx context.Context, name string, values rowstore.Row) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.table(name)
	row := values.Clone()
	id := row["id"]
	if id == nil {
		id = t.nextID
		row["id"] = id
	} else if t.indexOf(id) >= 0 {
		return nil, fmt.Errorf("duplicate id %v in %s", id, name)
	}
	if n, ok := valueparse.Int(id); ok && n >= t.nextID {
		t.nextID = n + 1
	}
	t.rows = append(t.rows, row)
	return id, nil
}

// Update merges values into the row with id.
func (s *Store) Update(ctx context.Context, name string, id any, values rowstore.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[name]
	if !ok {
		return fmt.Errorf("%w: %s", rowstore.ErrUnknownTable, name)
	}
	i := t.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s id %v", rowstore.ErrNotFound, name, id)
	}
	for col, v := range values {
		if col == "id" {
			continue
		}
		t.rows[i][col] = v
	}
	return nil
}

// FindByColumns returns the ids of matching rows in insertion order. A
// column missing from a stored row matches nil.
func (s *Store) FindByColumns(ctx context.Context, name string, values rowstore.Row) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[name]
	if !ok {
		return nil, nil
	}
	var ids []any
	for _, r := range t.rows {
		if matches(r, values) {
			ids = append(ids, r["id"])
		}
	}
	return ids, nil
}

// GetByID returns a copy of the row with id.
func (s *Store) GetByID(ctx context.Context, name string, id any) (rowstore.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s id %v", rowstore.ErrNotFound, name, id)
	}
	i := t.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s id %v", rowstore.ErrNotFound, name, id)
	}
	return t.rows[i].Clone(), nil
}

// GetByColumn returns copies of the rows whose column equals value.
func (s *Store) GetByColumn(ctx context.Context, name, column string, value any) ([]rowstore.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[name]
	if !ok {
		return nil, nil
	}
	var out []rowstore.Row
	for _, r := range t.rows {
		if rowstore.ValuesEqual(r[column], value) {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

// Count returns the number of rows in table.
func (s *Store) Count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tables[name]; ok {
		return len(t.rows)
	}
	return 0
}

// Counts returns the row count of every table.
func (s *Store) Counts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.tables))
	for name, t := range s.tables {
		out[name] = len(t.rows)
	}
	return out
}

// Tables lists the table names in lexical order.
func (s *Store) Tables() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// matches reports whether every column of values equals the row's column. A
// missing column in the row counts as NULL.
func matches(r, values rowstore.Row) bool {
	for col, want := range values {
		if !rowstore.ValuesEqual(r[col], want) {
			return false
		}
	}
	return true
}
