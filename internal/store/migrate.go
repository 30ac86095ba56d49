package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS results (
		id TEXT PRIMARY KEY,
		sequence INTEGER NOT NULL,
		item_type TEXT NOT NULL,
		item_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		status TEXT NOT NULL,
		details TEXT,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS results_sequence ON results (sequence)`,
	`CREATE INDEX IF NOT EXISTS results_item ON results (item_type, item_id)`,
	`CREATE TABLE IF NOT EXISTS gem_awards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		gem_type TEXT NOT NULL,
		rarity TEXT NOT NULL,
		session_id TEXT NOT NULL,
		reason TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS gem_awards_session ON gem_awards (session_id)`,
}

// migrate creates any missing tables. Statements are idempotent.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range schema {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
