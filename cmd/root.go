package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/quizrush/internal/config"
	"github.com/abhisek/quizrush/internal/store"
	"github.com/spf13/cobra"
)

// settings is resolved once per invocation in PersistentPreRunE.
var settings config.Config

var rootCmd = &cobra.Command{
	Use:           "quizrush",
	Short:         "Arcade-style quiz sessions in the terminal",
	Long:          "QuizRush runs timed multiple-choice quiz sessions with spaced repetition, power-ups, streaks and lives.",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZRUSH_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides QUIZRUSH_CONFIG env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// configPath returns --config, falling back to the default location.
func configPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return config.DefaultConfigPath()
}

// loadSettings reads the config file and installs the default logger.
func loadSettings(cmd *cobra.Command) error {
	cfg, err := config.Load(configPath(cmd))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	settings = cfg

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	slog.SetDefault(slog.New(handler))
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZRUSH_DB env var, then the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if os.Getenv("QUIZRUSH_DB") == "" && settings.DBPath != "" {
		return settings.DBPath, store.EnsureDir(settings.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the result store at the resolved path.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	slog.Debug("opened store", "path", dbPath)
	return st, nil
}

// closeStore closes st, logging rather than returning a failure.
func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Warn("failed to close store", "error", err)
	}
}
