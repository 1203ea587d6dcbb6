package shared

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/pkg/errors"
	"github.com/xo/dburl"
)

// ConnectionDetails holds credentials for one side of a replication.
// When Dsn is set it is used as is and the other fields are ignored.
type ConnectionDetails struct {
	Server   string `yaml:"server"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dsn      string `yaml:"dsn"`
}

// GetDsn returns Dsn if it is set, else a SQL Server DSN built from the other fields.
func (c ConnectionDetails) GetDsn() string {
	if c.Dsn != "" {
		return c.Dsn
	}
	u := url.URL{
		Scheme:   constants.ConnectionTypeSqlServer,
		Host:     c.Server,
		RawQuery: "database=" + url.QueryEscape(c.Database) + "&" + constants.SqlServerDefaultParams,
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	return u.String()
}

// Parse parses the DSN and returns the database/sql driver name and driver specific DSN.
func (c ConnectionDetails) Parse() (driver string, dsn string, err error) {
	u, err := dburl.Parse(c.GetDsn())
	if err != nil {
		return "", "", errors.Wrap(err, "DSN could not be parsed")
	}
	driver, err = SqlDriverName(u.Driver)
	if err != nil {
		return "", "", err
	}
	return driver, u.DSN, nil
}

// GetScheme returns the connection type: sqlserver, postgres or sqlite.
func (c ConnectionDetails) GetScheme() (string, error) {
	u, err := dburl.Parse(c.GetDsn())
	if err != nil {
		return "", errors.Wrap(err, "DSN could not be parsed")
	}
	driver, err := SqlDriverName(u.Driver)
	if err != nil {
		return "", err
	}
	return DialectForDriver(driver).Name, nil
}

// String redacts the password.
func (c ConnectionDetails) String() string {
	u, err := dburl.Parse(c.GetDsn())
	if err != nil {
		return "<unparsable DSN>"
	}
	return u.Redacted()
}

// SqlDriverName maps a dburl driver name onto the registered database/sql driver that serves it.
func SqlDriverName(dburlDriver string) (string, error) {
	switch strings.ToLower(dburlDriver) {
	case "mssql", "sqlserver":
		return DriverSqlServer, nil
	case "postgres", "pgx":
		return DriverPgx, nil
	case "sqlite3", "sqlite", "moderncsqlite":
		return DriverSqlite, nil
	}
	return "", fmt.Errorf("unsupported database type %q", dburlDriver)
}
