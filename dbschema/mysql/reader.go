package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/stokaro/leaguesync/dbschema/types"
)

// Reader reads table definitions from MySQL and MariaDB databases
type Reader struct {
	db     *sql.DB
	schema string
}

// NewMySQLReader creates a new MySQL schema reader. An empty schema means the
// connection's current database.
func NewMySQLReader(db *sql.DB, schema string) *Reader {
	return &Reader{
		db:     db,
		schema: schema,
	}
}

func (r *Reader) schemaExpr() (string, []any) {
	if r.schema == "" {
		return "DATABASE()", nil
	}
	return "?", []any{r.schema}
}

// ReadSchema reads every table of the schema with its columns
func (r *Reader) ReadSchema(ctx context.Context) (*types.DBSchema, error) {
	expr, args := r.schemaExpr()
	tablesQuery := `
		SELECT TABLE_NAME, TABLE_TYPE
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = ` + expr + `
		ORDER BY TABLE_NAME`

	rows, err := r.db.QueryContext(ctx, tablesQuery, args...)
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
	return &types.DBTable{Name: name, Type: "BASE TABLE", Columns: columns}, nil
}

func (r *Reader) readColumns(ctx context.Context, tableName string) ([]types.DBColumn, error) {
	expr, args := r.schemaExpr()
	columnsQuery := `
		SELECT
			COLUMN_NAME,
			DATA_TYPE,
			IS_NULLABLE,
			COLUMN_DEFAULT,
			ORDINAL_POSITION,
			COLUMN_KEY,
			EXTRA
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = ` + expr + ` AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION`

	rows, err := r.db.QueryContext(ctx, columnsQuery, append(args, tableName)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var columns []types.DBColumn
	for rows.Next() {
		var col types.DBColumn
		var columnKey, extra string
		err := rows.Scan(
			&col.Name,
			&col.DataType,
			&col.IsNullable,
			&col.ColumnDefault,
			&col.OrdinalPosition,
			&columnKey,
			&extra,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		col.IsPrimaryKey = columnKey == "PRI"
		col.IsAutoIncrement = strings.Contains(strings.ToLower(extra), "auto_increment")
		columns = append(columns, col)
	}

	return columns, rows.Err()
}
