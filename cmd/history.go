package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/quizrush/internal/gems"
	"github.com/abhisek/quizrush/internal/store"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded sessions and gem totals",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of sessions to show (0 = all)")
	historyCmd.Flags().String("deck", "", "Only show sessions of this deck id")
	historyCmd.Flags().Bool("completed", false, "Only show completed sessions")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}
	deck, _ := cmd.Flags().GetString("deck")
	completed, _ := cmd.Flags().GetBool("completed")

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	opts := store.QueryOpts{Limit: limit, ItemID: deck}
	if completed {
		opts.Status = store.StatusCompleted
	}
	recs, err := st.ResultRepo().QueryResults(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("query results: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintln(out, "No sessions recorded yet.")
	} else {
		fmt.Fprintf(out, "%-16s  %-20s  %-9s  %8s  %8s  %6s\n",
			"When", "Deck", "Status", "Score", "Accuracy", "Streak")
		fmt.Fprintln(out, strings.Repeat("─", 76))
		for _, rec := range recs {
			acc, streak := "-", "-"
			if rec.Details != nil {
				acc = fmt.Sprintf("%.1f%%", rec.Details.Accuracy)
				streak = fmt.Sprintf("%d", rec.Details.MaxStreak)
			}
			fmt.Fprintf(out, "%-16s  %-20s  %-9s  %8s  %8s  %6s\n",
				humanize.Time(rec.CreatedAt), clip(rec.ItemID, 20), rec.Status,
				humanize.Comma(int64(rec.Score)), acc, streak)
		}
	}

	counts, total := gems.NewService(st.GemRepo(), slog.Default()).Totals(cmd.Context())
	fmt.Fprintf(out, "\nGems: %d", total)
	if total > 0 {
		parts := make([]string, 0, len(counts))
		for _, t := range gems.AllGemTypes() {
			if n := counts[t]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s %s %d", t.Icon(), t.DisplayName(), n))
			}
		}
		fmt.Fprintf(out, "  (%s)", strings.Join(parts, ", "))
	}
	fmt.Fprintln(out)
	return nil
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
