package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/stokaro/leaguesync/dbschema/types"
)

// Reader reads table definitions from PostgreSQL databases
type Reader struct {
	db     *sql.DB
	schema string
}

// NewPostgreSQLReader creates a new PostgreSQL schema reader
func NewPostgreSQLReader(db *sql.DB, schema string) *Reader {
	if schema == "" {
		schema = "public"
	}
	return &Reader{
		db:     db,
		schema: schema,
	}
}

// ReadSchema reads every table of the schema with its columns
func (r *Reader) ReadSchema(ctx context.Context) (*types.DBSchema, error) {
	tablesQuery := `
		SELECT table_name, table_type
		FROM information_schema.tables
		WHERE table_schema = $1
		ORDER BY table_name`

	rows, err := r.db.QueryContext(ctx, tablesQuery, r.schema)
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
		return nil, fmt.Errorf("%w: %s.%s", types.ErrTableNotFound, r.schema, name)
	}
	return &types.DBTable{Name: name, Type: "BASE TABLE", Columns: columns}, nil
}

// readColumns reads all columns for a specific table
func (r *Reader) readColumns(ctx context.Context, tableName string) ([]types.DBColumn, error) {
	columnsQuery := `
		SELECT
			c.column_name,
			c.data_type,
			c.is_nullable,
			c.column_default,
			c.ordinal_position,
			EXISTS (
				SELECT 1
				FROM information_schema.table_constraints tc
				JOIN information_schema.key_column_usage kcu
					ON tc.constraint_name = kcu.constraint_name
					AND tc.table_schema = kcu.table_schema
				WHERE tc.constraint_type = 'PRIMARY KEY'
					AND tc.table_schema = c.table_schema
					AND tc.table_name = c.table_name
					AND kcu.column_name = c.column_name
			) AS is_primary_key
		FROM information_schema.columns c
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position`

	rows, err := r.db.QueryContext(ctx, columnsQuery, r.schema, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var columns []types.DBColumn
	for rows.Next() {
		var col types.DBColumn
		err := rows.Scan(
			&col.Name,
			&col.DataType,
			&col.IsNullable,
			&col.ColumnDefault,
			&col.OrdinalPosition,
			&col.IsPrimaryKey,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}

		// Detect auto increment (SERIAL and IDENTITY columns)
		if col.ColumnDefault != nil {
			defaultVal := *col.ColumnDefault
			col.IsAutoIncrement = strings.Contains(defaultVal, "nextval(") &&
				strings.Contains(defaultVal, "_seq")
		}

		columns = append(columns, col)
	}

	return columns, rows.Err()
}
