package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/expomatematica/quizmat/internal/leaderboard"
	gamescreen "github.com/expomatematica/quizmat/internal/screens/game"
	"github.com/expomatematica/quizmat/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a game right away",
	Long: `Start a game without the welcome splash.

With --plain the game runs line by line on stdin/stdout, for terminals
that can't host the full-screen interface. The countdown keeps running
while the prompt waits for input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		if !plain {
			return runApp(cmd, true)
		}
		name, _ := cmd.Flags().GetString("name")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		return playPlain(cmd.Context(), e.gameDeps(), name, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	playCmd.Flags().Bool("plain", false, "Line-oriented mode without the full-screen interface")
	playCmd.Flags().String("name", "", "Player name (plain mode asks when omitted)")
}

// errInputClosed ends a plain game whose input reached EOF.
var errInputClosed = errors.New("input closed")

// playPlain runs one game on a line-oriented terminal. opts are passed to
// session.NewGame.
func playPlain(ctx context.Context, deps gamescreen.Deps, name string, in io.Reader, out io.Writer, opts ...session.GameOption) error {
	if deps.Sampler == nil {
		return errors.New("no question bank configured")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	p := &plainGame{deps: deps, log: log, out: out, lines: readLines(ctx, in)}

	player, err := p.askName(ctx, name)
	if err != nil {
		if errors.Is(err, errInputClosed) {
			return nil
		}
		return err
	}

	g, err := session.NewGame(deps.Sampler.Sample(), deps.Budget, opts...)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	sessionID := uuid.NewString()
	deps.LogStart(ctx, sessionID, player, g.State())

	clockCtx, stopClock := context.WithCancel(ctx)
	var grp errgroup.Group
	grp.Go(func() error {
		if err := g.Run(clockCtx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	playErr := p.loop(ctx, g, sessionID)
	stopClock()
	if err := grp.Wait(); err != nil {
		return fmt.Errorf("run countdown: %w", err)
	}

	if errors.Is(playErr, errInputClosed) {
		log.Warn("session abandoned", "session_id", sessionID)
		fmt.Fprintln(out, "\nEntrada encerrada. Partida abandonada.")
		return nil
	}
	if playErr != nil {
		return playErr
	}

	res, ok := g.Result()
	if !ok {
		return errors.New("session ended without a result")
	}
	summary, rec := deps.Finish(ctx, sessionID, player, g.State(), res)
	p.printResult(ctx, player, summary, rec)
	return nil
}

type plainGame struct {
	deps  gamescreen.Deps
	log   *slog.Logger
	out   io.Writer
	lines <-chan string
}

// readLines feeds in line by line until EOF or ctx is done. The channel
// is closed at EOF.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func (p *plainGame) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			return "", errInputClosed
		}
		return strings.TrimSpace(line), nil
	}
}

// askName returns name when it is valid and otherwise prompts until a
// valid one is typed.
func (p *plainGame) askName(ctx context.Context, name string) (string, error) {
	if clean, err := leaderboard.ValidateName(name); err == nil {
		return clean, nil
	}
	for {
		fmt.Fprint(p.out, "Nome do Jogador: ")
		line, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		clean, err := leaderboard.ValidateName(line)
		if err == nil {
			return clean, nil
		}
		var verr *leaderboard.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(p.out, verr.Msg)
		} else {
			fmt.Fprintln(p.out, err)
		}
	}
}

// loop asks questions until the session finishes.
func (p *plainGame) loop(ctx context.Context, g *session.Game, sessionID string) error {
	for {
		st := g.State()
		if st.Stage != session.StageInProgress {
			return nil
		}
		q, _ := st.Current()

		fmt.Fprintf(p.out, "\n── Questão %d de %d · %s · ⏱ %s ──\n",
			st.CurrentIndex+1, len(st.Questions), q.Category.DisplayName(),
			session.FormatCountdown(st.TimeRemaining))
		fmt.Fprintln(p.out, q.Text)
		for i, o := range q.Options {
			fmt.Fprintf(p.out, "  %d) %d\n", i+1, o)
		}
		fmt.Fprintf(p.out, "Resposta (1-%d, d = desistir): ", len(q.Options))

		line, done, err := p.await(ctx, g)
		if err != nil || done {
			return err
		}

		if strings.EqualFold(line, "d") || strings.EqualFold(line, "desistir") {
			if done, err := p.forfeit(ctx, g); err != nil || done {
				return err
			}
			continue
		}

		k, err := strconv.Atoi(line)
		if err != nil || k < 1 || k > len(q.Options) {
			fmt.Fprintf(p.out, "Opção inválida. Digite um número de 1 a %d.\n", len(q.Options))
			continue
		}

		err = g.Select(q.Options[k-1])
		if err == nil {
			err = g.Submit()
		}
		if err != nil {
			if isDone(g) {
				return nil
			}
			return err
		}

		after := g.State()
		if n := len(after.Answers); n > 0 {
			a := after.Answers[n-1]
			p.deps.LogAnswer(ctx, sessionID, q, a.Chosen, a.TimeRemaining)
		}
	}
}

// forfeit asks for confirmation. done reports that the session ended.
func (p *plainGame) forfeit(ctx context.Context, g *session.Game) (bool, error) {
	if err := g.RequestForfeit(); err != nil {
		if isDone(g) {
			return true, nil
		}
		return false, err
	}
	fmt.Fprint(p.out, "Desistir do jogo? Sua pontuação será zerada e o tempo atual será registrado no ranking. (s/N): ")

	line, done, err := p.await(ctx, g)
	if err != nil || done {
		return done, err
	}
	if strings.EqualFold(line, "s") || strings.EqualFold(line, "sim") {
		if err := g.ConfirmForfeit(); err != nil && !isDone(g) {
			return false, err
		}
		return true, nil
	}
	if err := g.CancelForfeit(); err != nil && !isDone(g) {
		return false, err
	}
	return isDone(g), nil
}

// await waits for the next line or the end of the session.
func (p *plainGame) await(ctx context.Context, g *session.Game) (line string, done bool, err error) {
	select {
	case <-g.Done():
		fmt.Fprintln(p.out)
		return "", true, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	case l, ok := <-p.lines:
		if !ok {
			return "", false, errInputClosed
		}
		return strings.TrimSpace(l), false, nil
	}
}

func isDone(g *session.Game) bool {
	select {
	case <-g.Done():
		return true
	default:
		return false
	}
}

func (p *plainGame) printResult(ctx context.Context, player string, sum session.Summary, rec leaderboard.PlayerRecord) {
	res := sum.Result
	w := p.out

	fmt.Fprintln(w, "\n── Resultado Final ──")
	fmt.Fprintf(w, "Jogador: %s\n", player)
	switch res.Reason {
	case session.ReasonTimedOut:
		fmt.Fprintln(w, "Tempo esgotado!")
	case session.ReasonForfeited:
		fmt.Fprintf(w, "Você desistiu. Acertos antes de desistir: %d\n", sum.Correct)
	}
	fmt.Fprintf(w, "Acertos: %d/%d (%d%%)\n", res.Score, res.Total, leaderboard.Percent(res.Score, res.Total))
	fmt.Fprintf(w, "Tempo:   %s\n", leaderboard.FormatDuration(res.TimeSpentSeconds))
	fmt.Fprintln(w, leaderboard.Feedback(res.Score, res.Total))

	if rec.ID == "" || p.deps.Records == nil {
		return
	}
	ranked, err := leaderboard.Ranked(ctx, p.deps.Records)
	if err != nil {
		p.log.Error("load ranking", "record_id", rec.ID, "err", err)
		return
	}
	if pos := leaderboard.Position(ranked, rec.ID); pos > 0 {
		fmt.Fprintln(w, strings.TrimSpace(fmt.Sprintf("%s Posição no ranking: %dº", leaderboard.Medal(pos), pos)))
	}
}
