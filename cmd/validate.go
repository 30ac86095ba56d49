package cmd

import (
	"fmt"

	"github.com/abhisek/quizrush/internal/content"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate DECK...",
	Short: "Check deck files against the deck schema",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			deck, err := content.LoadDeck(path)
			if err != nil {
				failed++
				fmt.Fprintf(out, "FAIL  %s: %v\n", path, err)
				continue
			}
			fmt.Fprintf(out, "ok    %s: %s (%d questions, format %s)\n",
				path, deck.ID, len(deck.Questions), deck.Format)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d decks invalid", failed, len(args))
		}
		return nil
	},
}
