package database

import (
	"context"
	"fmt"
	"time"

	"scrim-portal-backend/internal/database/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Options tunes the connection pool and query logging. Zero values fall back to defaults.
type Options struct {
	LogLevel      gormlogger.LogLevel
	SlowThreshold time.Duration

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// SkipMigrate leaves the schema untouched
	SkipMigrate bool
}

func (o *Options) withDefaults() Options {
	out := Options{}
	if o != nil {
		out = *o
	}
	if out.LogLevel == 0 {
		out.LogLevel = gormlogger.Warn
	}
	if out.SlowThreshold == 0 {
		out.SlowThreshold = 500 * time.Millisecond
	}
	if out.MaxOpenConns == 0 {
		out.MaxOpenConns = 20
	}
	if out.MaxIdleConns == 0 {
		out.MaxIdleConns = 10
	}
	if out.ConnMaxLifetime == 0 {
		out.ConnMaxLifetime = 30 * time.Minute
	}
	return out
}

// Initialize opens the Postgres store and, unless told otherwise, migrates the scrim schema.
func Initialize(dsn string, opts *Options) (*gorm.DB, error) {
	o := opts.withDefaults()

	// SQL logging goes through logrus so it shares the JSON format of the request logs
	queryLogger := gormlogger.New(logrus.StandardLogger(), gormlogger.Config{
		SlowThreshold:             o.SlowThreshold,
		LogLevel:                  o.LogLevel,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: queryLogger})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(o.ConnMaxLifetime)

	if !o.SkipMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate creates or updates the users, teams, schedules and results tables
func Migrate(db *gorm.DB) error {
	// gen_random_uuid() defaults need pgcrypto on Postgres < 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		logrus.WithError(err).Warn("Could not ensure pgcrypto extension")
	}

	// Referenced tables first: teams point at users, results at schedules
	if err := db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.Schedule{},
		&models.Result{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Ping checks that the store answers within timeout
func Ping(ctx context.Context, db *gorm.DB, timeout time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Tables lists the scrim tables, children before parents
func Tables() []string {
	return []string{
		models.Result{}.TableName(),
		models.Team{}.TableName(),
		models.Schedule{}.TableName(),
		models.User{}.TableName(),
	}
}
