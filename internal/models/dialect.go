package models

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

// Dialect isolates what differs between the supported storage engines.
//
// Everything else (statement execution, queries, retrieval of generated keys,
// scoped connections) is provided by gorm for all engines alike.
type Dialect interface {
	// Name is the name of the gorm dialector the Dialect belongs to.
	Name() string

	// Prepare readies the environment for a data source name, e.g. by
	// creating the directory of a database file.
	Prepare(dsn string) error

	// Open returns the gorm dialector for the data source name.
	Open(dsn string) gorm.Dialector

	// ConfigurePool tunes the connection pool for the engine.
	ConfigurePool(db *sql.DB, maxOpen int)

	// MonthCondition returns a condition matching the year and month of
	// column. The condition expects the year and the month as arguments,
	// in that order.
	MonthCondition(column string) string

	// IsForeignKeyViolation reports whether err was raised by a foreign key
	// constraint.
	IsForeignKeyViolation(err error) bool
}

var dialects = map[string]Dialect{
	sqliteDialect{}.Name():   sqliteDialect{},
	postgresDialect{}.Name(): postgresDialect{},
}

// DialectFor returns the Dialect for a driver name as used in configuration.
func DialectFor(driver string) (Dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, driver)
	}

	return d, nil
}

// dialectOf returns the Dialect of an open database.
func dialectOf(db *gorm.DB) Dialect {
	d, ok := dialects[db.Dialector.Name()]
	if !ok {
		return sqliteDialect{}
	}

	return d
}
