package db

import (
	"context"
	"fmt"
	"strings"
)

const schemaTemplate = `
CREATE TABLE IF NOT EXISTS tasks (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	workflow     TEXT NOT NULL CHECK (workflow IN ('Distributed', 'Konfidants', 'Career Wheel', 'Personal')),
	priority     TEXT NOT NULL CHECK (priority IN ('urgent', 'important', 'normal')),
	status       TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'completed')),
	created_at   {{timestamp}} NOT NULL,
	completed_at {{timestamp}}
);

CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks (status);
CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks (created_at);

CREATE TABLE IF NOT EXISTS ai_memory (
	id           {{serial}},
	input        TEXT NOT NULL,
	response     TEXT NOT NULL,
	context_type TEXT NOT NULL,
	provider     TEXT NOT NULL DEFAULT '',
	model        TEXT NOT NULL DEFAULT '',
	error        TEXT NOT NULL DEFAULT '',
	created_at   {{timestamp}} NOT NULL
);

CREATE TABLE IF NOT EXISTS analytics_events (
	id               {{serial}},
	event_name       TEXT NOT NULL,
	event_time       {{timestamp}} NOT NULL,
	session_id       TEXT,
	platform         TEXT NOT NULL DEFAULT 'unknown',
	app_version      TEXT NOT NULL DEFAULT '',
	device_locale    TEXT,
	source_event_key TEXT UNIQUE,
	properties       {{json}} NOT NULL
);
`

var dialectTypes = map[Dialect]map[string]string{
	Postgres: {
		"timestamp": "TIMESTAMPTZ",
		"serial":    "BIGSERIAL PRIMARY KEY",
		"json":      "JSONB",
	},
	SQLite: {
		"timestamp": "DATETIME",
		"serial":    "INTEGER PRIMARY KEY AUTOINCREMENT",
		"json":      "TEXT",
	},
}

// Schema renders the DDL for the connection's dialect.
func (d *DB) Schema() string {
	out := schemaTemplate
	for name, typ := range dialectTypes[d.Dialect] {
		out = strings.ReplaceAll(out, "{{"+name+"}}", typ)
	}
	return out
}

// Migrate creates missing tables. It is safe to run on every start.
func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(d.Schema(), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := d.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
