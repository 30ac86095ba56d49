package gems

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/quizrush/internal/session"
	"github.com/abhisek/quizrush/internal/store"
)

// Service evaluates finished sessions and records the gems they earn.
type Service struct {
	repo   store.GemRepo
	logger *slog.Logger
	now    func() time.Time

	// SessionGems accumulates gems awarded during the current session.
	SessionGems []GemAward
}

// NewService creates a gem service. A nil repo disables persistence.
func NewService(repo store.GemRepo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// AwardSession evaluates a completed session, persists each award and
// returns them. Persistence failures are logged, not returned.
func (s *Service) AwardSession(ctx context.Context, sessionID string, res session.GameResult) []GemAward {
	awards := Evaluate(sessionID, res, s.now())
	for i := range awards {
		s.persist(ctx, &awards[i])
	}
	s.SessionGems = append(s.SessionGems, awards...)
	return awards
}

// ResetSession clears the session gem accumulator. Called at session start.
func (s *Service) ResetSession() {
	s.SessionGems = nil
}

// Totals returns lifetime gem counts by type and overall.
func (s *Service) Totals(ctx context.Context) (map[GemType]int, int) {
	if s.repo == nil {
		return map[GemType]int{}, 0
	}
	counts, total, err := s.repo.GemCounts(ctx)
	if err != nil {
		s.logger.Warn("failed to load gem counts", "error", err)
		return map[GemType]int{}, 0
	}
	out := make(map[GemType]int, len(counts))
	for t, n := range counts {
		out[GemType(t)] = n
	}
	return out, total
}

func (s *Service) persist(ctx context.Context, award *GemAward) {
	if s.repo == nil {
		return
	}
	err := s.repo.AppendGem(ctx, store.GemRecord{
		GemType:   string(award.Type),
		Rarity:    string(award.Rarity),
		SessionID: award.SessionID,
		Reason:    award.Reason,
		CreatedAt: award.AwardedAt,
	})
	if err != nil {
		s.logger.Warn("failed to record gem", "type", award.Type, "session", award.SessionID, "error", err)
	}
}
