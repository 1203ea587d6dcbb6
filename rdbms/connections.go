// Package rdbms reads tables from a source database and appends rows to a target database.
package rdbms

import (
	"database/sql"

	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
	"github.com/August-Icekimo/DEV-DB-Cloner/rdbms/shared"
	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/glebarez/go-sqlite"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
)

// Connection is an open database used as a replication source or target.
type Connection struct {
	Log     logger.Logger
	DbSql   *sql.DB
	Dialect shared.Dialect
	DbType  string
	created map[string]struct{} // upper case names of target tables known to exist
}

// OpenDbConnection opens and pings the database described by c.
func OpenDbConnection(log logger.Logger, c shared.ConnectionDetails) (*Connection, error) {
	log.Info("Opening database connection: ", c) // String() redacts the password
	driver, dsn, err := c.Parse()
	if err != nil {
		return nil, errors.Wrapf(err, "error parsing DSN %v", c)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening %v", c)
	}
	// Test the connection.
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "error connecting to %v", c)
	}
	log.Info("Successful connection to: ", c)
	return NewConnection(log, db, driver), nil
}

// NewConnection wraps an open *sql.DB that uses the given database/sql driver.
func NewConnection(log logger.Logger, db *sql.DB, driver string) *Connection {
	d := shared.DialectForDriver(driver)
	return &Connection{
		Log:     log,
		DbSql:   db,
		Dialect: d,
		DbType:  d.Name,
		created: make(map[string]struct{}),
	}
}

// Close closes the underlying database.
func (c *Connection) Close() error {
	return c.DbSql.Close()
}
