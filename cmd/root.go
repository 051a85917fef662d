package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizmat",
	Short: "Timed arithmetic quiz for the terminal",
	Long: `QuizMat — ten everyday math word problems against a 10 minute clock.

Answers are ranked by score, then by time. Results are kept in a local
SQLite leaderboard and can optionally be mirrored to Redis.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (overrides QUIZMAT_CONFIG env var)")
	pf.String("db", "", "Path to SQLite database file (overrides QUIZMAT_DB env var)")
	pf.String("redis-addr", "", "Redis address for the leaderboard mirror, e.g. localhost:6379")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
