package types

import (
	"context"
	"errors"
)

// ErrTableNotFound is returned by SchemaReader.ReadTable for a missing table.
var ErrTableNotFound = errors.New("table not found")

// DBSchema represents the tables read from a database
type DBSchema struct {
	Tables []DBTable `json:"tables"`
}

// Table returns the table called name, or nil.
func (s *DBSchema) Table(name string) *DBTable {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i]
		}
	}
	return nil
}

// DBTable represents a database table
type DBTable struct {
	Name    string     `json:"name"`
	Type    string     `json:"type"` // TABLE, VIEW, etc.
	Columns []DBColumn `json:"columns"`
}

// HasColumn reports whether the table has a column called name.
func (t *DBTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// DBColumn represents a database column
type DBColumn struct {
	Name            string  `json:"name"`
	DataType        string  `json:"data_type"`
	IsNullable      string  `json:"is_nullable"`    // YES/NO
	ColumnDefault   *string `json:"column_default"` // Can be NULL
	OrdinalPosition int     `json:"ordinal_position"`
	IsAutoIncrement bool    `json:"is_auto_increment"` // Derived field
	IsPrimaryKey    bool    `json:"is_primary_key"`    // Derived field
}

// DBInfo contains connection and metadata information
type DBInfo struct {
	Dialect string `json:"dialect"` // postgres, mysql, mariadb, sqlite
	Version string `json:"version"`
	Schema  string `json:"schema"` // public, database name, etc.
	URL     string `json:"url"`    // database connection URL (for reference)
}

// SchemaReader reads table definitions from a database
type SchemaReader interface {
	ReadSchema(ctx context.Context) (*DBSchema, error)
	ReadTable(ctx context.Context, name string) (*DBTable, error)
}
