package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/expomatematica/quizmat/internal/leaderboard"
	"github.com/expomatematica/quizmat/internal/session"
	"github.com/expomatematica/quizmat/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show play statistics from the event log",
	RunE: func(cmd *cobra.Command, args []string) error {
		since, _ := cmd.Flags().GetDuration("since")
		recent, _ := cmd.Flags().GetInt("recent")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		opts := store.QueryOpts{}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}

		ctx := cmd.Context()
		events := e.store.EventRepo()
		st, err := events.Stats(ctx, opts)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}
		opts.Limit = recent
		sessions, err := events.RecentSessions(ctx, opts)
		if err != nil {
			return fmt.Errorf("load recent sessions: %w", err)
		}

		printStats(cmd.OutOrStdout(), st, sessions)
		return nil
	},
}

func init() {
	statsCmd.Flags().Duration("since", 0, "Only count events newer than this, e.g. 168h (0 = all time)")
	statsCmd.Flags().Int("recent", 5, "Number of recent games to list")
}

var reasonLabels = map[string]string{
	string(session.ReasonCompleted): "Concluídas",
	string(session.ReasonTimedOut):  "Tempo esgotado",
	string(session.ReasonForfeited): "Desistências",
}

func printStats(w io.Writer, st *store.Stats, recent []store.SessionEventData) {
	fmt.Fprintf(w, "Partidas iniciadas:   %d\n", st.GamesStarted)
	fmt.Fprintf(w, "Partidas finalizadas: %d\n", st.GamesFinished)
	if st.GamesFinished == 0 {
		return
	}
	fmt.Fprintf(w, "Média de acertos:     %.1f\n", st.AverageScore)

	for _, r := range []session.Reason{session.ReasonCompleted, session.ReasonTimedOut, session.ReasonForfeited} {
		if n := st.ByReason[string(r)]; n > 0 {
			fmt.Fprintf(w, "  %-18s %d\n", reasonLabels[string(r)]+":", n)
		}
	}

	if len(st.Categories) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%-14s  %-10s  %s\n", "Categoria", "Acertos", "Precisão")
		fmt.Fprintln(w, strings.Repeat("─", 38))
		for _, c := range st.Categories {
			fmt.Fprintf(w, "%-14s  %-10s  %3.0f%%\n",
				c.Category.DisplayName(),
				fmt.Sprintf("%d/%d", c.Correct, c.Answered),
				c.Accuracy()*100,
			)
		}
	}

	if len(recent) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Últimas partidas:")
		for _, s := range recent {
			fmt.Fprintf(w, "  %s  %-24s  %d/%d  %s  %s\n",
				s.Timestamp.Local().Format("02/01/2006 15:04"),
				s.PlayerName,
				s.Score,
				s.QuestionCount,
				leaderboard.FormatClock(s.TimeSpentSeconds),
				reasonLabels[s.Reason],
			)
		}
	}
}
