package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/expomatematica/quizmat/internal/leaderboard"
)

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"ranking"},
	Short:   "Print the ranking",
	RunE: func(cmd *cobra.Command, args []string) error {
		top, _ := cmd.Flags().GetInt("top")
		fromRedis, _ := cmd.Flags().GetBool("redis")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		var ranked []leaderboard.PlayerRecord
		if fromRedis {
			if e.mirror == nil {
				return errors.New("--redis needs a reachable Redis mirror (set --redis-addr)")
			}
			if top > 0 {
				ranked, err = e.mirror.Top(ctx, top)
			} else {
				ranked, err = leaderboard.Ranked(ctx, e.mirror)
			}
		} else {
			ranked, err = leaderboard.Ranked(ctx, e.records)
		}
		if err != nil {
			return err
		}

		printBoard(cmd.OutOrStdout(), ranked, top)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Write the leaderboard as a JSON document (stdout when FILE is omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		records, err := e.records.All(cmd.Context())
		if err != nil {
			return err
		}

		if len(args) == 0 {
			return leaderboard.Export(cmd.OutOrStdout(), records, time.Now())
		}

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		if err := leaderboard.Export(f, records, time.Now()); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close export file: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d records to %s\n", len(records), args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Merge records from an export document or a legacy JSON array",
	Long: `Merge leaderboard records into the local database.

FILE may be a document written by "quizmat export" or the plain JSON array
of records kept by the browser version of the quiz. Records already present
(same id) are skipped, so importing the same file twice is harmless.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()

		records, err := leaderboard.Import(f)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		added, err := leaderboard.ImportInto(cmd.Context(), e.records, records)
		if err != nil {
			return err
		}
		e.logger.Info("leaderboard imported", "file", args[0], "read", len(records), "added", added)
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new records (%d already present).\n", added, len(records)-added)
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().Int("top", 10, "Number of positions to show (0 = all)")
	leaderboardCmd.Flags().Bool("redis", false, "Read the ranking from the Redis mirror")
}

// printBoard writes ranked as a table. top <= 0 prints everything.
func printBoard(w io.Writer, ranked []leaderboard.PlayerRecord, top int) {
	if len(ranked) == 0 {
		fmt.Fprintln(w, "Ainda não há recordes! Seja o primeiro a jogar.")
		return
	}
	if top > 0 && len(ranked) > top {
		ranked = ranked[:top]
	}

	fmt.Fprintf(w, "%-4s  %-24s  %-8s  %-6s  %s\n", "Pos", "Jogador", "Acertos", "Tempo", "Data")
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for i, r := range ranked {
		pos := fmt.Sprintf("%d.", i+1)
		if m := leaderboard.Medal(i + 1); m != "" {
			pos = m
		}
		name := r.Name
		if runes := []rune(name); len(runes) > 24 {
			name = string(runes[:23]) + "…"
		}
		fmt.Fprintf(w, "%-4s  %-24s  %-8d  %-6s  %s\n",
			pos,
			name,
			r.Score,
			leaderboard.FormatClock(r.TimeSpentSeconds),
			leaderboard.FormatDate(r.Timestamp.Local()),
		)
	}
}
