package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/quizrush/internal/session"
)

const resultsTable = "results"

var resultColumns = []string{"id", "sequence", "item_type", "item_id", "score", "status", "details", "created_at"}

type resultRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *resultRepo) RecordResult(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		return fmt.Errorf("record result: empty id")
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	var details any
	if rec.Details != nil {
		data, err := json.Marshal(rec.Details)
		if err != nil {
			return fmt.Errorf("marshal result details: %w", err)
		}
		details = string(data)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(resultsTable).
		Columns(resultColumns...).
		Values(rec.ID, seqNum, rec.ItemType, rec.ItemID, rec.Score, string(rec.Status), details, rec.CreatedAt.UnixMilli()).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

func (r *resultRepo) QueryResults(ctx context.Context, opts QueryOpts) ([]Record, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(resultColumns...).
		From(entsql.Table(resultsTable)).
		OrderBy(entsql.Desc("sequence"))
	applyOpts(sel, opts)
	if opts.Status != "" {
		sel.Where(entsql.EQ("status", string(opts.Status)))
	}
	if opts.ItemID != "" {
		sel.Where(entsql.EQ("item_id", opts.ItemID))
	}

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec     Record
			status  string
			details sql.NullString
			created int64
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.ItemType, &rec.ItemID, &rec.Score, &status, &details, &created); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		rec.Status = ResultStatus(status)
		rec.CreatedAt = time.UnixMilli(created)
		if details.Valid {
			var res session.GameResult
			if err := json.Unmarshal([]byte(details.String), &res); err != nil {
				return nil, fmt.Errorf("decode details of %s: %w", rec.ID, err)
			}
			rec.Details = &res
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	return records, nil
}

func (r *resultRepo) BestScore(ctx context.Context, itemType, itemID string) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("COALESCE(MAX(score), 0)").
		From(entsql.Table(resultsTable)).
		Where(entsql.And(
			entsql.EQ("item_type", itemType),
			entsql.EQ("item_id", itemID),
			entsql.EQ("status", string(StatusCompleted)),
		)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("query best score: %w", err)
	}
	defer rows.Close()

	var best int
	if rows.Next() {
		if err := rows.Scan(&best); err != nil {
			return 0, fmt.Errorf("scan best score: %w", err)
		}
	}
	return best, rows.Err()
}

// applyOpts adds the shared pagination and time filters to sel.
func applyOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("created_at", opts.To.UnixMilli()))
	}
}
