// Package rowstore defines the narrow persistence interface the writer needs
// and the look-up-then-write helper built on it.
package rowstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/stokaro/leaguesync/core/entity"
)

// Row is a flat column → scalar mapping.
type Row = entity.Row

// ErrNotFound is returned by GetByID when no row has the id.
var ErrNotFound = errors.New("row not found")

// ErrUnknownTable is returned when a table does not exist in the store.
var ErrUnknownTable = errors.New("unknown table")

// RowStore reads and writes flat rows by table name.
type RowStore interface {
	// Insert adds a row and returns its id. A non-nil "id" value is used as is.
	Insert(ctx context.Context, table string, values Row) (any, error)
	// Update overwrites the given columns of the row with id.
	Update(ctx context.Context, table string, id any, values Row) error
	// FindByColumns returns the ids of every row whose columns equal values,
	// oldest first. A nil value matches NULL.
	FindByColumns(ctx context.Context, table string, values Row) ([]any, error)
	// GetByID returns the row with id or ErrNotFound.
	GetByID(ctx context.Context, table string, id any) (Row, error)
	// GetByColumn returns every row whose column equals value.
	GetByColumn(ctx context.Context, table, column string, value any) ([]Row, error)
}

// Outcome tells what InsertOrUpdate did.
type Outcome string

const (
	OutcomeInserted Outcome = "inserted"
	OutcomeUpdated  Outcome = "updated"
	OutcomeFailed   Outcome = "failed"
)

// Claims holds the ids of the rows one write pass has already written, per
// table. A nil *Claims holds nothing.
type Claims struct {
	ids map[string]map[string]bool
}

// NewClaims returns an empty set of claims.
func NewClaims() *Claims {
	return &Claims{ids: make(map[string]map[string]bool)}
}

func claimKey(id any) string {
	return fmt.Sprint(id)
}

// Claim marks id of table as written.
func (c *Claims) Claim(table string, id any) {
	if c == nil || id == nil {
		return
	}
	ids, ok := c.ids[table]
	if !ok {
		ids = make(map[string]bool)
		c.ids[table] = ids
	}
	ids[claimKey(id)] = true
}

// Claimed reports whether id of table was marked by Claim.
func (c *Claims) Claimed(table string, id any) bool {
	if c == nil {
		return false
	}
	return c.ids[table][claimKey(id)]
}

// InsertOrUpdate writes values to table at most once per natural key. When a
// row matching key exists it is updated in place and its id reused; otherwise
// values are inserted and the new id returned.
//
// Rows in claims are never matched: two identical rows written in one pass
// get a row each, and a later pass matches them one to one. The caller claims
// the returned id. A nil claims matches the oldest row.
//
// The lookup and the write are separate calls, so two concurrent callers can
// both miss the lookup and insert duplicates.
func InsertOrUpdate(ctx context.Context, s RowStore, table string, key, values Row, claims *Claims) (any, Outcome, error) {
	ids, err := s.FindByColumns(ctx, table, key)
	if err != nil {
		return nil, OutcomeFailed, fmt.Errorf("failed to look up %s row: %w", table, err)
	}
	for _, id := range ids {
		if claims.Claimed(table, id) {
			continue
		}
		if err := s.Update(ctx, table, id, withoutID(values)); err != nil {
			return nil, OutcomeFailed, fmt.Errorf("failed to update %s row %v: %w", table, id, err)
		}
		return id, OutcomeUpdated, nil
	}
	id, err := s.Insert(ctx, table, values)
	if err != nil {
		return nil, OutcomeFailed, fmt.Errorf("failed to insert %s row: %w", table, err)
	}
	return id, OutcomeInserted, nil
}

func withoutID(values Row) Row {
	if _, ok := values["id"]; !ok {
		return values
	}
	out := values.Clone()
	delete(out, "id")
	return out
}
