// Package store persists extraction job history on database/sql, backed by
// embedded SQLite by default or Postgres when given a postgres:// DSN.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver
	_ "modernc.org/sqlite"             // sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS extraction_job (
	id            TEXT PRIMARY KEY,
	batch_name    TEXT NOT NULL,
	doc_count     INTEGER NOT NULL,
	processed     INTEGER NOT NULL DEFAULT 0,
	status        TEXT NOT NULL,
	error_message TEXT NOT NULL DEFAULT '',
	started_at    TIMESTAMP NOT NULL,
	finished_at   TIMESTAMP
);
`

var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 10000",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA foreign_keys = ON",
}

// DB wraps a sql.DB with the placeholder dialect of its driver.
type DB struct {
	*sql.DB
	postgres bool
}

// Open connects according to the DSN scheme:
//
//	sqlite:<path>    embedded SQLite (also bare paths and ":memory:")
//	postgres://...   Postgres via the pgx stdlib driver
//
// The job schema is created if missing.
func Open(ctx context.Context, dsn string) (*DB, error) {
	var db *sql.DB
	var err error
	pg := false

	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		pg = true
		db, err = sql.Open("pgx", dsn)
	default:
		path := strings.TrimPrefix(dsn, "sqlite:")
		db, err = sql.Open("sqlite", path)
	}
	if err != nil {
		return nil, fmt.Errorf("store open: %w", err)
	}

	if !pg {
		for _, pragma := range sqlitePragmas {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				db.Close()
				return nil, fmt.Errorf("store pragma: %w", err)
			}
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store ping: %w", err)
	}

	s := &DB{DB: db, postgres: pg}
	if _, err := db.ExecContext(ctx, s.rebind(schema)); err != nil {
		db.Close()
		return nil, fmt.Errorf("store schema: %w", err)
	}
	return s, nil
}

// rebind converts ? placeholders to $n for the Postgres dialect.
func (s *DB) rebind(query string) string {
	if !s.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
