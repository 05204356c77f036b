// Package database opens the relational store behind every repository.
package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

type Options struct {
	Driver   string
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	Path     string
	Silent   bool
}

func Open(opts Options) (*gorm.DB, error) {
	switch strings.ToLower(opts.Driver) {
	case "", "postgres":
		return OpenPostgres(opts)
	case "sqlite":
		return OpenSQLite(opts.Path, opts.Silent)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", opts.Driver)
	}
}

func gormConfig(silent bool) *gorm.Config {
	cfg := &gorm.Config{TranslateError: true}
	if silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	return cfg
}

func OpenPostgres(opts Options) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		opts.Host,
		opts.User,
		opts.Password,
		opts.Name,
		opts.Port,
	)
	return gorm.Open(postgres.Open(dsn), gormConfig(opts.Silent))
}

// OpenSQLite opens a file-backed SQLite database through the pure-Go driver
// with foreign keys enforced.
func OpenSQLite(path string, silent bool) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
	}, gormConfig(silent))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite serialises writers anyway; one connection avoids SQLITE_BUSY churn.
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
