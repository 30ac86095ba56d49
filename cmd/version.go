package cmd

import (
	"fmt"

	"github.com/abhisek/quizrush/internal/content"
	"github.com/abhisek/quizrush/internal/replay"
	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "quizrush", version)
		fmt.Fprintf(out, "deck format %s.x, replay log v%d\n", content.SupportedFormatMajor, replay.Version)
	},
}
