package models

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// foreignKeyViolation is the SQLSTATE for foreign_key_violation.
const foreignKeyViolation = "23503"

type postgresDialect struct{}

func (postgresDialect) Name() string {
	return "postgres"
}

func (postgresDialect) Prepare(string) error {
	return nil
}

func (postgresDialect) Open(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}

func (postgresDialect) ConfigurePool(db *sql.DB, maxOpen int) {
	db.SetConnMaxLifetime(time.Hour)
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
}

func (postgresDialect) MonthCondition(column string) string {
	return fmt.Sprintf("EXTRACT(YEAR FROM %[1]s AT TIME ZONE 'UTC') = ? AND EXTRACT(MONTH FROM %[1]s AT TIME ZONE 'UTC') = ?", column)
}

func (postgresDialect) IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == foreignKeyViolation
}
