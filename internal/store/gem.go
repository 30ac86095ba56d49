package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const gemsTable = "gem_awards"

func (r *gemRepo) AppendGem(ctx context.Context, rec GemRecord) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(gemsTable).
		Columns("sequence", "gem_type", "rarity", "session_id", "reason", "created_at").
		Values(seqNum, rec.GemType, rec.Rarity, rec.SessionID, rec.Reason, rec.CreatedAt.UnixMilli()).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save gem award: %w", err)
	}
	return nil
}

type gemRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *gemRepo) QueryGems(ctx context.Context, opts QueryOpts) ([]GemRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "gem_type", "rarity", "session_id", "reason", "created_at").
		From(entsql.Table(gemsTable)).
		OrderBy(entsql.Desc("sequence"))
	applyOpts(sel, opts)

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query gem awards: %w", err)
	}
	defer rows.Close()

	var records []GemRecord
	for rows.Next() {
		var (
			rec     GemRecord
			created int64
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.GemType, &rec.Rarity, &rec.SessionID, &rec.Reason, &created); err != nil {
			return nil, fmt.Errorf("scan gem award: %w", err)
		}
		rec.CreatedAt = time.UnixMilli(created)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *gemRepo) GemCounts(ctx context.Context) (map[string]int, int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("gem_type", entsql.Count("*")).
		From(entsql.Table(gemsTable)).
		GroupBy("gem_type").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, 0, fmt.Errorf("query gem counts: %w", err)
	}
	defer rows.Close()

	byType := make(map[string]int)
	total := 0
	for rows.Next() {
		var (
			gemType string
			n       int
		)
		if err := rows.Scan(&gemType, &n); err != nil {
			return nil, 0, fmt.Errorf("scan gem count: %w", err)
		}
		byType[gemType] = n
		total += n
	}
	return byType, total, rows.Err()
}

func (r *gemRepo) SessionGemCount(ctx context.Context, sessionID string) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(gemsTable)).
		Where(entsql.EQ("session_id", sessionID)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("count session gems: %w", err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("scan session gem count: %w", err)
		}
	}
	return n, rows.Err()
}
