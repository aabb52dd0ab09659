package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Connect opens the database, configures the connection pool, registers the
// error translation callbacks and migrates the schema.
func Connect(d Dialect, dsn string, maxOpenConns int) (*gorm.DB, error) {
	err := d.Prepare(dsn)
	if err != nil {
		return nil, err
	}

	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: log.With().Str("dialect", d.Name()).Logger(),
		},
	}

	db, err := gorm.Open(d.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}
	d.ConfigurePool(sqlDB, maxOpenConns)

	err = registerCallbacks(db, d)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	err = migrate(db)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	return db, nil
}

func registerCallbacks(db *gorm.DB, d Dialect) error {
	callback := translateError(d)

	if err := db.Callback().Query().After("*").Register("accounting:after_query", callback); err != nil {
		return err
	}

	if err := db.Callback().Create().After("*").Register("accounting:after_create", callback); err != nil {
		return err
	}

	if err := db.Callback().Update().After("*").Register("accounting:after_update", callback); err != nil {
		return err
	}

	if err := db.Callback().Delete().After("*").Register("accounting:after_delete", callback); err != nil {
		return err
	}

	return db.Callback().Row().After("*").Register("accounting:after_row", callback)
}

var plural = regexp.MustCompile("ies$")

// translateError replaces errors returned by the database with the
// errors this package exposes.
func translateError(d Dialect) func(*gorm.DB) {
	return func(db *gorm.DB) {
		if db.Error == nil {
			return
		}

		// Already translated
		if errors.Is(db.Error, ErrResourceNotFound) || errors.Is(db.Error, ErrCategoryDoesNotExist) || errors.Is(db.Error, ErrGeneral) {
			return
		}

		if errors.Is(db.Error, gorm.ErrRecordNotFound) {
			// Use the table name as information about the type of resource
			name := strings.ReplaceAll(db.Statement.Table, "_", " ")
			name = plural.ReplaceAllString(name, "y")
			name = strings.TrimSuffix(name, "s")

			db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
			return
		}

		if d.IsForeignKeyViolation(db.Error) {
			db.Error = ErrCategoryDoesNotExist
			return
		}

		// A general error where we cannot provide more useful information to the end user.
		// We log the error and provide a general error message so that server admins can debug
		log.Error().Str("dialect", d.Name()).Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(Category{}, Record{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
