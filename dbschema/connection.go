// Package dbschema opens database connections by URL and reads the table
// definitions the SQL row store validates its writes against.
package dbschema

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver

	"github.com/stokaro/leaguesync/core/platform"
	dbmysql "github.com/stokaro/leaguesync/dbschema/mysql"
	"github.com/stokaro/leaguesync/dbschema/postgres"
	"github.com/stokaro/leaguesync/dbschema/sqlite"
	"github.com/stokaro/leaguesync/dbschema/types"
)

// DatabaseConnection is an open database handle with its dialect metadata.
type DatabaseConnection struct {
	*sql.DB
	info   types.DBInfo
	reader types.SchemaReader
}

// Info returns the connection metadata.
func (c *DatabaseConnection) Info() types.DBInfo {
	return c.info
}

// Reader returns the schema reader for the connection's dialect.
func (c *DatabaseConnection) Reader() types.SchemaReader {
	return c.reader
}

// ConnectToDatabase opens and pings the database at dbURL. Supported schemes
// are postgres://, postgresql://, mysql://, mariadb:// and sqlite://.
func ConnectToDatabase(ctx context.Context, dbURL string) (*DatabaseConnection, error) {
	dialect := platform.FromURL(dbURL)
	if dialect == "" {
		return nil, fmt.Errorf("unsupported database URL scheme: %s", redact(dbURL))
	}

	driver, dsn, schema, err := driverDSN(dialect, dbURL)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}
	if dialect == platform.SQLite {
		// An in-memory database lives and dies with its connection
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", dialect, err)
	}

	conn := &DatabaseConnection{
		DB: db,
		info: types.DBInfo{
			Dialect: dialect,
			Schema:  schema,
			URL:     dbURL,
		},
	}
	conn.info.Version, err = readVersion(ctx, db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	switch dialect {
	case platform.Postgres:
		conn.reader = postgres.NewPostgreSQLReader(db, schema)
	case platform.MySQL, platform.MariaDB:
		conn.reader = dbmysql.NewMySQLReader(db, schema)
	case platform.SQLite:
		conn.reader = sqlite.NewSQLiteReader(db)
	}
	return conn, nil
}

func driverDSN(dialect, dbURL string) (driver, dsn, schema string, err error) {
	switch dialect {
	case platform.Postgres:
		return "pgx", removePostgresPoolParams(dbURL), "public", nil
	case platform.MySQL, platform.MariaDB:
		cfg, err := mysqlConfig(dbURL)
		if err != nil {
			return "", "", "", err
		}
		return "mysql", cfg.FormatDSN(), cfg.DBName, nil
	case platform.SQLite:
		_, path, _ := strings.Cut(dbURL, "://")
		if path == "" {
			path = ":memory:"
		}
		return "sqlite", path, "main", nil
	}
	return "", "", "", fmt.Errorf("unsupported dialect: %s", dialect)
}

// mysqlConfig converts a mysql:// URL into a driver configuration.
func mysqlConfig(dbURL string) (*mysql.Config, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mysql URL: %w", err)
	}

	var dsn strings.Builder
	if u.User != nil {
		dsn.WriteString(u.User.Username())
		if pass, ok := u.User.Password(); ok {
			dsn.WriteString(":" + pass)
		}
		dsn.WriteString("@")
	}
	host := u.Host
	if u.Port() == "" {
		host += ":3306"
	}
	dsn.WriteString("tcp(" + host + ")/" + strings.TrimPrefix(u.Path, "/"))
	if u.RawQuery != "" {
		dsn.WriteString("?" + u.RawQuery)
	}

	cfg, err := mysql.ParseDSN(dsn.String())
	if err != nil {
		return nil, fmt.Errorf("failed to parse mysql DSN: %w", err)
	}
	cfg.ParseTime = true
	// Source ids start at 0 (division 0, position 0); without this mode an
	// AUTO_INCREMENT column replaces an explicit 0 with a generated id.
	if _, ok := cfg.Params[mysqlSQLModeParam]; !ok {
		if cfg.Params == nil {
			cfg.Params = make(map[string]string)
		}
		cfg.Params[mysqlSQLModeParam] = mysqlSQLMode
	}
	return cfg, nil
}

const (
	mysqlSQLModeParam = "sql_mode"
	mysqlSQLMode      = "CONCAT(@@sql_mode, ',NO_AUTO_VALUE_ON_ZERO')"
)

func readVersion(ctx context.Context, db *sql.DB, dialect string) (string, error) {
	query := "SELECT version()"
	if dialect == platform.SQLite {
		query = "SELECT sqlite_version()"
	}
	var version string
	if err := db.QueryRowContext(ctx, query).Scan(&version); err != nil {
		return "", fmt.Errorf("failed to read %s version: %w", dialect, err)
	}
	return version, nil
}

// removePostgresPoolParams strips the pgxpool-only parameters that the
// database/sql driver rejects.
func removePostgresPoolParams(dbURL string) string {
	u, err := url.Parse(dbURL)
	if err != nil {
		return dbURL
	}
	q := u.Query()
	if !q.Has("pool_max_conns") && !q.Has("pool_min_conns") {
		return dbURL
	}
	q.Del("pool_max_conns")
	q.Del("pool_min_conns")
	u.RawQuery = q.Encode()
	return u.String()
}

// redact hides the password of a URL for error messages.
func redact(dbURL string) string {
	u, err := url.Parse(dbURL)
	if err != nil {
		return "<invalid url>"
	}
	return u.Redacted()
}
