package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/stokaro/leaguesync/dbschema/types"
)

// Reader reads table definitions from SQLite databases
type Reader struct {
	db *sql.DB
}

// NewSQLiteReader creates a new SQLite schema reader
func NewSQLiteReader(db *sql.DB) *Reader {
	return &Reader{db: db}
}

// ReadSchema reads every user table with its columns
func (r *Reader) ReadSchema(ctx context.Context) (*types.DBSchema, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, type FROM sqlite_master
		WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	schema := &types.DBSchema{}
	for rows.Next() {
		var table types.DBTable
		if err := rows.Scan(&table.Name, &table.Type); err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		table.Type = strings.ToUpper(table.Type)
		schema.Tables = append(schema.Tables, table)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tables: %w", err)
	}

	for i := range schema.Tables {
		columns, err := r.readColumns(ctx, schema.Tables[i].Name)
		if err != nil {
			return nil, fmt.Errorf("failed to read columns for table %s: %w", schema.Tables[i].Name, err)
		}
		schema.Tables[i].Columns = columns
	}
	return schema, nil
}

// ReadTable reads one table, or returns types.ErrTableNotFound
func (r *Reader) ReadTable(ctx context.Context, name string) (*types.DBTable, error) {
	columns, err := r.readColumns(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns for table %s: %w", name, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s", types.ErrTableNotFound, name)
	}
	return &types.DBTable{Name: name, Type: "TABLE", Columns: columns}, nil
}

// readColumns uses the table_info pragma. An INTEGER PRIMARY KEY column is an
// alias of the rowid and therefore auto-incrementing.
func (r *Reader) readColumns(ctx context.Context, tableName string) ([]types.DBColumn, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT cid, name, type, "notnull", dflt_value, pk FROM pragma_table_info(?)`, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var columns []types.DBColumn
	for rows.Next() {
		var (
			col     types.DBColumn
			cid     int
			notNull bool
			pk      int
		)
		if err := rows.Scan(&cid, &col.Name, &col.DataType, &notNull, &col.ColumnDefault, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		col.OrdinalPosition = cid + 1
		col.IsNullable = "YES"
		if notNull {
			col.IsNullable = "NO"
		}
		col.IsPrimaryKey = pk > 0
		col.IsAutoIncrement = col.IsPrimaryKey && strings.EqualFold(col.DataType, "INTEGER")
		columns = append(columns, col)
	}

	return columns, rows.Err()
}
