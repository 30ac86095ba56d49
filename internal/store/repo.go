package store

import (
	"context"
	"time"

	"github.com/abhisek/quizrush/internal/session"
)

// QueryOpts configures record queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // created_at >= From
	To     time.Time // created_at <= To

	// Result queries only.
	Status ResultStatus
	ItemID string
}

// ResultStatus is the status of a recorded session.
type ResultStatus string

const (
	StatusCompleted ResultStatus = "COMPLETED"
	StatusAbandoned ResultStatus = "ABANDONED"
)

// Record is one recorded session result.
type Record struct {
	ID        string
	Sequence  int64
	ItemType  string // e.g. "deck"
	ItemID    string
	Score     int
	Status    ResultStatus
	Details   *session.GameResult // nil for abandoned sessions
	CreatedAt time.Time
}

// ResultRepo records finished or abandoned sessions.
type ResultRepo interface {
	// RecordResult stores a result. Sequence is assigned by the repo and
	// CreatedAt defaults to now.
	RecordResult(ctx context.Context, rec Record) error

	// QueryResults returns results newest first.
	QueryResults(ctx context.Context, opts QueryOpts) ([]Record, error)

	// BestScore returns the highest completed score for an item, 0 if none.
	BestScore(ctx context.Context, itemType, itemID string) (int, error)
}

// GemRecord is one persisted gem award.
type GemRecord struct {
	ID        int64
	Sequence  int64
	GemType   string
	Rarity    string
	SessionID string
	Reason    string
	CreatedAt time.Time
}

// GemRepo records gem awards.
type GemRepo interface {
	// AppendGem stores an award.
	AppendGem(ctx context.Context, rec GemRecord) error

	// QueryGems returns awards newest first.
	QueryGems(ctx context.Context, opts QueryOpts) ([]GemRecord, error)

	// GemCounts returns award counts by gem type and the overall total.
	GemCounts(ctx context.Context) (map[string]int, int, error)

	// SessionGemCount returns the number of awards for one session.
	SessionGemCount(ctx context.Context, sessionID string) (int, error)
}
