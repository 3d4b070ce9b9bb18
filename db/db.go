// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

var ErrUnsupportedType = errors.New("unsupported database type")

//go:embed migrations/*.sql
var embedMigrations embed.FS

// goose keeps its dialect and filesystem in package globals
var migrateMu sync.Mutex

// New opens a connection of the given type and applies pending migrations.
//
// For sqlite, url is a file path; WAL mode, a busy timeout and foreign keys
// are enabled and the pool is limited to one connection. For postgres, url
// is a standard connection string.
func New(dbType, url string) (*sqlx.DB, error) {
	var (
		conn *sqlx.DB
		err  error
	)

	switch dbType {
	case TypeSQLite:
		conn, err = sqlx.Connect("sqlite", sqliteDSN(url))
		if err != nil {
			return nil, fmt.Errorf("connecting to sqlite: %w", err)
		}
		conn.SetMaxOpenConns(1)
	case TypePostgres:
		conn, err = sqlx.Connect("postgres", url)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, dbType)
	}

	if err := Migrate(conn, dbType); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

// Migrate applies all embedded migrations. Safe to call multiple times.
func Migrate(conn *sqlx.DB, dbType string) error {
	dialect := goose.DialectSQLite3
	if dbType == TypePostgres {
		dialect = goose.DialectPostgres
	}

	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("setting dialect for migrations: %w", err)
	}

	if err := goose.Up(conn.DB, "migrations"); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}
