package cmd

import (
	"fmt"

	"github.com/abhisek/quizrush/internal/content"
	"github.com/abhisek/quizrush/internal/replay"
	"github.com/abhisek/quizrush/internal/screens/play"
	"github.com/abhisek/quizrush/internal/session"
	"github.com/abhisek/quizrush/internal/store"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Re-run a recorded session and check it reproduces the same result",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func init() {
	replayCmd.Flags().String("deck", "", "Deck file the session was played from (required)")
	_ = replayCmd.MarkFlagRequired("deck")
}

func runReplay(cmd *cobra.Command, args []string) error {
	log, err := replay.ReadFile(args[0])
	if err != nil {
		return err
	}
	deckPath, _ := cmd.Flags().GetString("deck")
	deck, err := content.LoadDeck(deckPath)
	if err != nil {
		return fmt.Errorf("load deck: %w", err)
	}
	if deck.ID != log.DeckID {
		return fmt.Errorf("%w: log was recorded on deck %q, got %q", replay.ErrDeckMismatch, log.DeckID, deck.ID)
	}

	cfg, err := log.Config(deck.Questions)
	if err != nil {
		return err
	}
	m, err := replay.Run(cfg, log.Events)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "session %s on %s, recorded %s\n", log.SessionID, log.DeckID, humanize.Time(log.Recorded()))
	fmt.Fprintf(out, "%d events, final status %s\n", len(log.Events), m.Status())

	res, ok := m.Result()
	if !ok {
		fmt.Fprintf(out, "abandoned with score %s\n", humanize.Comma(int64(m.Snapshot().Score)))
		return compareRecorded(cmd, log, m.Snapshot().Score, store.StatusAbandoned)
	}
	printResult(cmd, res)
	return compareRecorded(cmd, log, res.FinalScore, store.StatusCompleted)
}

// compareRecorded checks the replayed score against the stored result, if
// the session was recorded in this database.
func compareRecorded(cmd *cobra.Command, log *replay.Log, score int, status store.ResultStatus) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	recs, err := st.ResultRepo().QueryResults(cmd.Context(), store.QueryOpts{ItemID: log.DeckID})
	if err != nil {
		return fmt.Errorf("query results: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, rec := range recs {
		if rec.ID != log.SessionID || rec.ItemType != play.ItemTypeDeck {
			continue
		}
		if rec.Score != score || rec.Status != status {
			return fmt.Errorf("replay diverged: recorded %s score %d, replayed %s score %d",
				rec.Status, rec.Score, status, score)
		}
		fmt.Fprintln(out, "matches the recorded result")
		return nil
	}
	fmt.Fprintln(out, "no recorded result for this session in the database")
	return nil
}

func printResult(cmd *cobra.Command, res session.GameResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "outcome:   %s\n", res.Outcome)
	fmt.Fprintf(out, "score:     %s\n", humanize.Comma(int64(res.FinalScore)))
	fmt.Fprintf(out, "accuracy:  %.1f%% (%d/%d)\n", res.Accuracy, res.Correct, res.Answered)
	fmt.Fprintf(out, "streak:    %d\n", res.MaxStreak)
	fmt.Fprintf(out, "mastery:   %.1f%%\n", res.MasteryPercentage)
	fmt.Fprintf(out, "time:      %.1fs\n", float64(res.TotalTimeMs)/1000)
	if len(res.WeakItems) > 0 {
		fmt.Fprintf(out, "weak:      ")
		for i, w := range res.WeakItems {
			if i > 0 {
				fmt.Fprint(out, ", ")
			}
			fmt.Fprintf(out, "%s (%dx)", w.QuestionID, w.IncorrectCount)
		}
		fmt.Fprintln(out)
	}
}
