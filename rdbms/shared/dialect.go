package shared

import (
	"strconv"
	"strings"

	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
)

// Names of the database/sql drivers we register.
const (
	DriverSqlServer = "sqlserver" // github.com/denisenkom/go-mssqldb
	DriverPgx       = "pgx"       // github.com/jackc/pgx/v5/stdlib
	DriverSqlite    = "sqlite"    // github.com/glebarez/go-sqlite
)

// Dialect holds the SQL differences between the supported databases.
type Dialect struct {
	Name             string
	quoteLeft        string
	quoteRight       string
	bindPrefix       string // prefix of numbered bind variables; empty means "?"
	LengthFunc       string // string length function
	MaxBindParams    int    // max bind variables per statement
	MaxRowsPerInsert int    // max rows in a multi-row VALUES list; 0 means no limit
	WideTextType     string // column type able to hold any text value
	TablesQuery      string // lists base tables, one name per row
}

var (
	SqlServerDialect = Dialect{
		Name:             constants.ConnectionTypeSqlServer,
		quoteLeft:        "[",
		quoteRight:       "]",
		bindPrefix:       "@p",
		LengthFunc:       "LEN",
		MaxBindParams:    2100,
		MaxRowsPerInsert: 1000,
		WideTextType:     "NVARCHAR(MAX)",
		TablesQuery:      `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`,
	}
	PostgresDialect = Dialect{
		Name:          constants.ConnectionTypePostgres,
		quoteLeft:     `"`,
		quoteRight:    `"`,
		bindPrefix:    "$",
		LengthFunc:    "LENGTH",
		MaxBindParams: 65535,
		WideTextType:  "TEXT",
		TablesQuery: `SELECT table_name FROM information_schema.tables WHERE table_type = 'BASE TABLE' ` +
			`AND table_schema = current_schema() ORDER BY table_name`,
	}
	SqliteDialect = Dialect{
		Name:          constants.ConnectionTypeSqlite,
		quoteLeft:     `"`,
		quoteRight:    `"`,
		LengthFunc:    "LENGTH",
		MaxBindParams: 32766,
		WideTextType:  "TEXT",
		TablesQuery:   `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`,
	}
)

// DialectForDriver returns the dialect of a database/sql driver name. Unknown drivers get the SQL Server dialect.
func DialectForDriver(driver string) Dialect {
	switch driver {
	case DriverPgx:
		return PostgresDialect
	case DriverSqlite:
		return SqliteDialect
	}
	return SqlServerDialect
}

// Quote quotes a single identifier.
func (d Dialect) Quote(ident string) string {
	if d.quoteRight == "]" {
		return d.quoteLeft + strings.ReplaceAll(ident, "]", "]]") + d.quoteRight
	}
	return d.quoteLeft + strings.ReplaceAll(ident, d.quoteRight, d.quoteRight+d.quoteRight) + d.quoteRight
}

// IsQuoted is true if ident is already wrapped in this dialect's quotes.
func (d Dialect) IsQuoted(ident string) bool {
	return len(ident) >= 2 && strings.HasPrefix(ident, d.quoteLeft) && strings.HasSuffix(ident, d.quoteRight)
}

// Placeholder returns the bind variable for the n'th argument, counting from 1.
func (d Dialect) Placeholder(n int) string {
	if d.bindPrefix == "" {
		return "?"
	}
	return d.bindPrefix + strconv.Itoa(n)
}

// RowsPerInsert returns how many rows of numCols values fit in one INSERT, capped at maxRows.
func (d Dialect) RowsPerInsert(numCols int, maxRows int) int {
	if numCols < 1 {
		return maxRows
	}
	n := (d.MaxBindParams - 1) / numCols
	if d.MaxRowsPerInsert > 0 && n > d.MaxRowsPerInsert {
		n = d.MaxRowsPerInsert
	}
	if maxRows > 0 && n > maxRows {
		n = maxRows
	}
	if n < 1 {
		n = 1
	}
	return n
}
