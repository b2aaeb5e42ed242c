// Package sqlstore implements rowstore.RowStore on a database/sql connection.
//
// Statements are built per dialect: numbered placeholders and double-quoted
// identifiers on PostgreSQL, question marks and backticks on MySQL, question
// marks and double quotes on SQLite. Column names are checked against the
// live table definition, read once per table; columns the table lacks are
// dropped with a warning instead of failing the write.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/lib/pq"

	"github.com/stokaro/leaguesync/core/platform"
	"github.com/stokaro/leaguesync/dbschema"
	"github.com/stokaro/leaguesync/dbschema/types"
	"github.com/stokaro/leaguesync/rowstore"
)

// Store writes rows through a DatabaseConnection.
type Store struct {
	conn    *dbschema.DatabaseConnection
	dialect string
	logger  *slog.Logger

	cache *tableCache
}

// tableCache holds the table definitions read so far and the dropped columns
// already warned about.
type tableCache struct {
	mu      sync.Mutex
	tables  map[string]*types.DBTable
	dropped map[string]bool
}

var _ rowstore.RowStore = (*Store)(nil)

// New returns a store on conn. The caller keeps ownership of conn.
func New(conn *dbschema.DatabaseConnection) *Store {
	return &Store{
		conn:    conn,
		dialect: platform.NormalizeDialect(conn.Info().Dialect),
		logger:  slog.Default(),
		cache: &tableCache{
			tables:  make(map[string]*types.DBTable),
			dropped: make(map[string]bool),
		},
	}
}

// WithLogger returns a copy of the store that logs to l. The copy shares the
// table definition cache.
func (s *Store) WithLogger(l *slog.Logger) *Store {
	tmp := *s
	tmp.logger = l
	return &tmp
}

func (s *Store) quote(name string) string {
	if s.dialect == platform.MySQL || s.dialect == platform.MariaDB {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return pq.QuoteIdentifier(name)
}

func (s *Store) table(ctx context.Context, name string) (*types.DBTable, error) {
	s.cache.mu.Lock()
	t, ok := s.cache.tables[name]
	s.cache.mu.Unlock()
	if ok {
		return t, nil
	}

	t, err := s.conn.Reader().ReadTable(ctx, name)
	if errors.Is(err, types.ErrTableNotFound) {
		return nil, fmt.Errorf("%w: %s", rowstore.ErrUnknownTable, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", name, err)
	}

	s.cache.mu.Lock()
	s.cache.tables[name] = t
	s.cache.mu.Unlock()
	return t, nil
}

// columns returns the columns of values the table has, sorted, and their
// values in the same order.
func (s *Store) columns(ctx context.Context, name string, values rowstore.Row) ([]string, []any, error) {
	t, err := s.table(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	cols := make([]string, 0, len(values))
	for col := range values {
		if t.HasColumn(col) {
			cols = append(cols, col)
			continue
		}
		s.warnDropped(name, col)
	}
	sort.Strings(cols)
	args := make([]any, len(cols))
	for i, col := range cols {
		args[i] = values[col]
	}
	return cols, args, nil
}

func (s *Store) warnDropped(table, column string) {
	key := table + "." + column
	s.cache.mu.Lock()
	seen := s.cache.dropped[key]
	s.cache.dropped[key] = true
	s.cache.mu.Unlock()
	if !seen {
		s.logger.Warn("Dropping column missing from table", "table", table, "column", column)
	}
}

func (s *Store) placeholder(n int) string {
	return platform.Placeholder(s.dialect, n)
}

// where builds a conjunction matching every column. A nil value matches NULL
// and consumes no argument. Bound values are appended to args.
func (s *Store) where(cols []string, vals []any, args []any) (string, []any) {
	if len(cols) == 0 {
		return "1 = 1", args
	}
	parts := make([]string, len(cols))
	for i, col := range cols {
		if vals[i] == nil {
			parts[i] = s.quote(col) + " IS NULL"
			continue
		}
		args = append(args, vals[i])
		parts[i] = s.quote(col) + " = " + s.placeholder(len(args))
	}
	return strings.Join(parts, " AND "), args
}

// Insert adds a row and returns its id: the RETURNING value on PostgreSQL
// and SQLite, the generated or supplied id on MySQL.
func (s *Store) Insert(ctx context.Context, table string, values rowstore.Row) (any, error) {
	cols, args, err := s.columns(ctx, table, values)
	if err != nil {
		return nil, err
	}

	var query strings.Builder
	query.WriteString("INSERT INTO " + s.quote(table))
	switch {
	case len(cols) > 0:
		quoted := make([]string, len(cols))
		marks := make([]string, len(cols))
		for i, col := range cols {
			quoted[i] = s.quote(col)
			marks[i] = s.placeholder(i + 1)
		}
		query.WriteString(" (" + strings.Join(quoted, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")")
	case s.dialect == platform.MySQL || s.dialect == platform.MariaDB:
		query.WriteString(" () VALUES ()")
	default:
		query.WriteString(" DEFAULT VALUES")
	}

	if platform.SupportsReturning(s.dialect) {
		query.WriteString(" RETURNING " + s.quote("id"))
		var id any
		if err := s.conn.QueryRowContext(ctx, query.String(), args...).Scan(&id); err != nil {
			return nil, err
		}
		return normalize(id), nil
	}

	res, err := s.conn.ExecContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	return insertedID(values["id"], res)
}

// insertedID picks the id of a row inserted without RETURNING. A supplied id
// is kept unless it is 0 and the server generated another one in its place.
func insertedID(supplied any, res sql.Result) (any, error) {
	if supplied != nil && !zeroID(supplied) {
		return supplied, nil
	}
	generated, err := res.LastInsertId()
	switch {
	case err == nil && generated != 0:
		return generated, nil
	case supplied != nil:
		return supplied, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read generated id: %w", err)
	}
	return generated, nil
}

func zeroID(id any) bool {
	switch v := id.(type) {
	case int64:
		return v == 0
	case int:
		return v == 0
	}
	return false
}

// Update sets the columns of values, except id, on the row with id.
func (s *Store) Update(ctx context.Context, table string, id any, values rowstore.Row) error {
	cols, args, err := s.columns(ctx, table, values)
	if err != nil {
		return err
	}
	sets := make([]string, 0, len(cols))
	kept := args[:0]
	for i, col := range cols {
		if col == "id" {
			continue
		}
		kept = append(kept, args[i])
		sets = append(sets, s.quote(col)+" = "+s.placeholder(len(kept)))
	}
	if len(sets) == 0 {
		return nil
	}
	kept = append(kept, id)
	query := "UPDATE " + s.quote(table) + " SET " + strings.Join(sets, ", ") +
		" WHERE " + s.quote("id") + " = " + s.placeholder(len(kept))

	res, err := s.conn.ExecContext(ctx, query, kept...)
	if err != nil {
		return err
	}
	// MySQL reports changed rows, not matched rows, so zero is not conclusive there
	if s.dialect == platform.MySQL || s.dialect == platform.MariaDB {
		return nil
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s id %v", rowstore.ErrNotFound, table, id)
	}
	return nil
}

// FindByColumns returns the ids of the rows matching values in id order.
// Columns the table lacks are left out of the match.
func (s *Store) FindByColumns(ctx context.Context, table string, values rowstore.Row) ([]any, error) {
	cols, vals, err := s.columns(ctx, table, values)
	if err != nil {
		return nil, err
	}
	cond, args := s.where(cols, vals, nil)
	query := "SELECT " + s.quote("id") + " FROM " + s.quote(table) + " WHERE " + cond + " ORDER BY " + s.quote("id")

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []any
	for rows.Next() {
		var id any
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, normalize(id))
	}
	return ids, rows.Err()
}

// GetByID returns the row with id or rowstore.ErrNotFound.
func (s *Store) GetByID(ctx context.Context, table string, id any) (rowstore.Row, error) {
	rows, err := s.GetByColumn(ctx, table, "id", id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s id %v", rowstore.ErrNotFound, table, id)
	}
	return rows[0], nil
}

// GetByColumn returns every row whose column equals value. Unlike writes, an
// unknown column is an error.
func (s *Store) GetByColumn(ctx context.Context, table, column string, value any) ([]rowstore.Row, error) {
	t, err := s.table(ctx, table)
	if err != nil {
		return nil, err
	}
	if !t.HasColumn(column) {
		return nil, fmt.Errorf("table %s has no column %s", table, column)
	}
	cond, args := s.where([]string{column}, []any{value}, nil)
	query := "SELECT * FROM " + s.quote(table) + " WHERE " + cond

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func scanRows(rows *sql.Rows) ([]rowstore.Row, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []rowstore.Row
	for rows.Next() {
		vals := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make(rowstore.Row, len(names))
		for i, name := range names {
			row[name] = normalize(vals[i])
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// normalize turns driver byte slices into strings.
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
