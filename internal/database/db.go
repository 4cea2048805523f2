// Package database provides database connection management and schema migrations.
package database

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite3 "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/at-ishikawa/phrasebook/internal/config"
	"github.com/at-ishikawa/phrasebook/schemas"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite3  = "sqlite3"
)

// Open opens a connection for driver using the provided config.
func Open(driver string, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn, err := dataSourceName(driver, cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open() > %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}
	if driver == DriverSQLite3 {
		// sqlite allows one writer at a time
		db.SetMaxOpenConns(1)
	}

	return db, nil
}

func dataSourceName(driver string, cfg config.DatabaseConfig) (string, error) {
	switch driver {
	case DriverMySQL:
		mysqlCfg := mysql.NewConfig()
		mysqlCfg.User = cfg.Username
		mysqlCfg.Passwd = cfg.Password
		mysqlCfg.Net = "tcp"
		mysqlCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		mysqlCfg.DBName = cfg.Database
		mysqlCfg.ParseTime = true
		mysqlCfg.MultiStatements = true
		if cfg.TLS {
			mysqlCfg.TLSConfig = "true"
		}
		if len(cfg.Params) > 0 {
			mysqlCfg.Params = cfg.Params
		}
		return mysqlCfg.FormatDSN(), nil
	case DriverPostgres:
		sslMode := "disable"
		if cfg.TLS {
			sslMode = "require"
		}
		dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.Database, cfg.Username, cfg.Password, sslMode)
		for key, value := range cfg.Params {
			dsn += fmt.Sprintf(" %s=%s", key, value)
		}
		return dsn, nil
	case DriverSQLite3:
		if cfg.Path == "" {
			return "", errors.New("database.path is required for sqlite3")
		}
		return "file:" + cfg.Path + "?_busy_timeout=5000", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// Migrate applies the embedded migrations for driver.
// The returned migrate instance is not closed because closing it closes db as well.
func Migrate(db *sqlx.DB, driver string) error {
	source, err := fs.Sub(schemas.Migrations, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("fs.Sub(%s) > %w", driver, err)
	}
	sourceDriver, err := iofs.New(source, ".")
	if err != nil {
		return fmt.Errorf("iofs.New > %w", err)
	}

	var databaseDriver database.Driver
	switch driver {
	case DriverMySQL:
		databaseDriver, err = migratemysql.WithInstance(db.DB, &migratemysql.Config{})
	case DriverPostgres:
		databaseDriver, err = migratepostgres.WithInstance(db.DB, &migratepostgres.Config{})
	case DriverSQLite3:
		databaseDriver, err = migratesqlite3.WithInstance(db.DB, &migratesqlite3.Config{})
	default:
		return fmt.Errorf("unsupported database driver: %s", driver)
	}
	if err != nil {
		return fmt.Errorf("WithInstance(%s) > %w", driver, err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, driver, databaseDriver)
	if err != nil {
		return fmt.Errorf("migrate.NewWithInstance > %w", err)
	}
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Debug("no new migrations to apply", "driver", driver)
			return nil
		}
		return fmt.Errorf("m.Up > %w", err)
	}
	slog.Info("migrations applied", "driver", driver)
	return nil
}
