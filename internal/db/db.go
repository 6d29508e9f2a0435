package db

import (
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect names the SQL flavour behind a *sql.DB.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// DB wraps the connection pool with its dialect so stores can adapt
// placeholders and DDL.
type DB struct {
	*sql.DB
	Dialect Dialect
}

func Connect(driver, connString string) (*DB, error) {
	dialect := Dialect(driver)
	if dialect != Postgres && dialect != SQLite {
		return nil, fmt.Errorf("unsupported db driver: %s", driver)
	}

	db, err := sql.Open(driver, connString)
	if err != nil {
		return nil, err
	}

	if dialect == SQLite {
		// every new connection to ":memory:" is a fresh database
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	err = db.Ping()
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{DB: db, Dialect: dialect}, nil
}

var placeholder = regexp.MustCompile(`\$\d+`)

// Rebind turns $1, $2 placeholders into ? for SQLite. Queries must use each
// placeholder once and in order.
func (d *DB) Rebind(query string) string {
	if d.Dialect != SQLite {
		return query
	}
	return placeholder.ReplaceAllString(query, "?")
}
