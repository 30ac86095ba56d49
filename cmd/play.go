package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/quizrush/internal/app"
	"github.com/abhisek/quizrush/internal/content"
	"github.com/abhisek/quizrush/internal/gems"
	"github.com/abhisek/quizrush/internal/screens/play"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play DECK",
	Short: "Start a quiz session from a deck file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().String("record", "", "Write a replay log of the session to this file")
	playCmd.Flags().Uint64("seed", 0, "Seed for shuffling and 50/50 (default: random)")
	playCmd.Flags().Int("timeout", 0, "Seconds per question, 0 disables (default: from config)")
	playCmd.Flags().Bool("shuffle", false, "Shuffle the deck (default: from config)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	deck, err := content.LoadDeck(args[0])
	if err != nil {
		return fmt.Errorf("load deck: %w", err)
	}

	seed := uint64(time.Now().UnixNano())
	if cmd.Flags().Changed("seed") {
		seed, _ = cmd.Flags().GetUint64("seed")
	}

	shuffle := settings.Game.Shuffle
	if cmd.Flags().Changed("shuffle") {
		shuffle, _ = cmd.Flags().GetBool("shuffle")
	}
	questions := deck.Questions
	if shuffle {
		questions = deck.Shuffled(seed)
	}

	timeoutSec := settings.Game.QuestionTimeoutSec
	if cmd.Flags().Changed("timeout") {
		timeoutSec, _ = cmd.Flags().GetInt("timeout")
		if timeoutSec < 0 {
			return fmt.Errorf("--timeout must not be negative")
		}
	}

	sessCfg, err := settings.SessionConfig(questions, seed)
	if err != nil {
		return fmt.Errorf("session config: %w", err)
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	record, _ := cmd.Flags().GetString("record")
	logger := slog.Default()
	slog.Debug("starting session", "deck", deck.ID, "questions", len(questions), "seed", seed)

	return app.Run(app.Options{
		Play: play.Options{
			Session:         sessCfg,
			DeckID:          deck.ID,
			DeckTitle:       deck.Title,
			QuestionTimeout: time.Duration(timeoutSec) * time.Second,
			Sink: play.Sink{
				Results:    st.ResultRepo(),
				Gems:       gems.NewService(st.GemRepo(), logger),
				RecordPath: record,
				Logger:     logger,
			},
		},
	})
}
