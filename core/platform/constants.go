package platform

import (
	"strconv"
	"strings"
)

const (
	Postgres = "postgres"
	MySQL    = "mysql"
	MariaDB  = "mariadb"
	SQLite   = "sqlite"
)

func NormalizeDialect(dialect string) string {
	switch strings.ToLower(dialect) {
	case "pgx", "postgresql", "postgres":
		return Postgres
	case "mysql":
		return MySQL
	case "mariadb":
		return MariaDB
	case "sqlite", "sqlite3", "file":
		return SQLite
	default:
		return ""
	}
}

// FromURL returns the dialect named by the scheme of a database URL, or "".
func FromURL(dbURL string) string {
	scheme, _, ok := strings.Cut(dbURL, "://")
	if !ok {
		return ""
	}
	return NormalizeDialect(scheme)
}

// Placeholder returns the bind parameter for the n-th (1-based) argument.
func Placeholder(dialect string, n int) string {
	if dialect == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// SupportsReturning reports whether INSERT ... RETURNING is available.
func SupportsReturning(dialect string) bool {
	return dialect == Postgres || dialect == SQLite
}
