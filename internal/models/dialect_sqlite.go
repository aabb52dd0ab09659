package models

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	sqlite3 "modernc.org/sqlite/lib"
)

type sqliteDialect struct{}

func (sqliteDialect) Name() string {
	return "sqlite"
}

// Prepare creates the parent directory of the database file.
func (sqliteDialect) Prepare(dsn string) error {
	// In-memory databases do not need a directory
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}

	path := strings.TrimPrefix(dsn, "file:")
	path = strings.Split(path, "?")[0]

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create database directory %q: %w", dir, err)
	}

	return nil
}

// Open enables foreign key enforcement, which SQLite has disabled by default.
func (sqliteDialect) Open(dsn string) gorm.Dialector {
	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}

	return sqlite.Open(fmt.Sprintf("%s%s_pragma=foreign_keys(1)", dsn, separator))
}

func (sqliteDialect) ConfigurePool(db *sql.DB, _ int) {
	// Get new connections after one hour
	db.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors.
	db.SetMaxIdleConns(1)
	db.SetMaxOpenConns(1)
}

func (sqliteDialect) MonthCondition(column string) string {
	return fmt.Sprintf("CAST(strftime('%%Y', %[1]s) AS INTEGER) = ? AND CAST(strftime('%%m', %[1]s) AS INTEGER) = ?", column)
}

func (sqliteDialect) IsForeignKeyViolation(err error) bool {
	var sqliteErr *go_sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}
