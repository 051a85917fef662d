package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every leaderboard record and logged event",
	Long: `Delete every leaderboard record and logged event from the local
database. The Redis mirror, if any, is left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Fprint(cmd.OutOrStdout(), "Apagar todo o ranking e o histórico? (s/N): ")
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if !strings.EqualFold(strings.TrimSpace(line), "s") {
				fmt.Fprintln(cmd.OutOrStdout(), "Nada foi apagado.")
				return nil
			}
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.store.Reset(cmd.Context()); err != nil {
			return err
		}
		e.logger.Warn("local data reset", "db", e.cfg.DBPath)
		fmt.Fprintln(cmd.OutOrStdout(), "Ranking e histórico apagados.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
