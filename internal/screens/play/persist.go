package play

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/quizrush/internal/gems"
	"github.com/abhisek/quizrush/internal/replay"
	"github.com/abhisek/quizrush/internal/session"
	"github.com/abhisek/quizrush/internal/store"
)

// ItemTypeDeck is the item type recorded for deck sessions.
const ItemTypeDeck = "deck"

// Sink persists finished sessions. Every field is optional.
type Sink struct {
	Results    store.ResultRepo
	Gems       *gems.Service
	RecordPath string // replay log destination
	Logger     *slog.Logger
	Now        func() time.Time
}

// Finish records a terminal session: the result row, gems for completed
// sessions, and the replay log. Failures are logged and collected on the
// outcome; none of them stop the others.
func (s Sink) Finish(ctx context.Context, sessionID, deckID string, m *session.Machine) Outcome {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	out := Outcome{
		SessionID: sessionID,
		Status:    m.Status(),
		Score:     m.Snapshot().Score,
	}
	status := store.StatusAbandoned
	if res, ok := m.Result(); ok {
		out.Result = &res
		out.Score = res.FinalScore
		status = store.StatusCompleted
	}

	if s.Results != nil {
		err := s.Results.RecordResult(ctx, store.Record{
			ID:        sessionID,
			ItemType:  ItemTypeDeck,
			ItemID:    deckID,
			Score:     out.Score,
			Status:    status,
			Details:   out.Result,
			CreatedAt: now(),
		})
		if err != nil {
			logger.Warn("failed to record result", "session", sessionID, "error", err)
			out.Errs = append(out.Errs, fmt.Errorf("record result: %w", err))
		}
		best, err := s.Results.BestScore(ctx, ItemTypeDeck, deckID)
		if err != nil {
			logger.Warn("failed to load best score", "deck", deckID, "error", err)
		} else {
			out.BestScore = best
		}
	}

	if s.Gems != nil && out.Result != nil {
		out.Gems = s.Gems.AwardSession(ctx, sessionID, *out.Result)
	}

	if s.RecordPath != "" {
		if err := replay.WriteFile(s.RecordPath, replay.NewLog(sessionID, deckID, m)); err != nil {
			logger.Warn("failed to write replay log", "path", s.RecordPath, "error", err)
			out.Errs = append(out.Errs, fmt.Errorf("write replay log: %w", err))
		} else {
			out.Recorded = s.RecordPath
		}
	}

	logger.Info("session finished",
		"session", sessionID, "deck", deckID, "status", out.Status,
		"score", out.Score, "gems", len(out.Gems))
	return out
}
