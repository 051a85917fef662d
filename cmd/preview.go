package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/expomatematica/quizmat/internal/quiz"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print generated questions with their answers (no database)",
	Long: `Build a question bank and print questions with options and answers.

Without --category a full quiz set is sampled using the configured quotas.
This is a stateless developer tool: no database, no leaderboard, no events.
Use --seed to get the same bank twice.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("category", "", "Only show one category: ADD, SUB, MULT or DIV")
	previewCmd.Flags().Int("count", 0, "Number of questions to show (0 = one quiz set, or 5 per category)")
	previewCmd.Flags().Uint64("seed", 0, "Random seed (0 = random)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	catVal, _ := cmd.Flags().GetString("category")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetUint64("seed")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var rnd quiz.Rand = quiz.NewRand()
	if seed != 0 {
		rnd = quiz.NewSeededRand(seed)
	}
	bank := quiz.BuildBank(rnd, cfg.Quiz.BankSizes)

	var questions []quiz.Question
	if catVal != "" {
		cat, err := quiz.ParseCategory(catVal)
		if err != nil {
			return err
		}
		if count <= 0 {
			count = 5
		}
		pool := bank.Questions(cat)
		questions = pool[:min(count, len(pool))]
	} else {
		questions = quiz.NewSampler(bank, cfg.Quiz.Quotas, rnd).Sample()
		if count > 0 && count < len(questions) {
			questions = questions[:count]
		}
	}

	printQuestions(cmd.OutOrStdout(), questions)
	return nil
}

func printQuestions(w io.Writer, questions []quiz.Question) {
	for i, q := range questions {
		fmt.Fprintf(w, "── Questão %d/%d · %s · %s ──\n", i+1, len(questions), q.Category.DisplayName(), q.ID)
		fmt.Fprintln(w, q.Text)
		for j, o := range q.Options {
			mark := ""
			if o == q.Answer {
				mark = "  ✓"
			}
			fmt.Fprintf(w, "  %d) %d%s\n", j+1, o, mark)
		}
		fmt.Fprintln(w)
	}

	counts := quiz.CountByCategory(questions)
	fmt.Fprint(w, "Total:")
	for _, c := range quiz.AllCategories() {
		if n := counts[c]; n > 0 {
			fmt.Fprintf(w, " %s %d", c.DisplayName(), n)
		}
	}
	fmt.Fprintln(w)
}
