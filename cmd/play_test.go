package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expomatematica/quizmat/internal/quiz"
	gamescreen "github.com/expomatematica/quizmat/internal/screens/game"
	"github.com/expomatematica/quizmat/internal/session"
	"github.com/expomatematica/quizmat/internal/store"
)

type fakeTicker struct{ c chan time.Time }

func (f fakeTicker) C() <-chan time.Time { return f.c }
func (f fakeTicker) Stop()               {}

const testSeed = 42

// testSampler returns a sampler and the quiz set its first Sample call
// will produce.
func testSampler() (*quiz.Sampler, []quiz.Question) {
	cfg := quiz.DefaultConfig()
	build := func() *quiz.Sampler {
		rnd := quiz.NewSeededRand(testSeed)
		return quiz.NewSampler(quiz.BuildBank(rnd, cfg.BankSizes), cfg.Quotas, rnd)
	}
	return build(), build().Sample()
}

func testDeps(t *testing.T) (gamescreen.Deps, []quiz.Question, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "quizmat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	sampler, questions := testSampler()
	return gamescreen.Deps{
		Sampler: sampler,
		Budget:  quiz.DefaultConfig().TimeBudgetSeconds,
		Records: st.LeaderboardRepo(),
		Events:  st.EventRepo(),
	}, questions, st
}

// answerKey returns the 1-based option number of value in q.
func answerKey(q quiz.Question, value int) string {
	return fmt.Sprint(slices.Index(q.Options, value) + 1)
}

func wrongKey(q quiz.Question) string {
	for i, o := range q.Options {
		if o != q.Answer {
			return fmt.Sprint(i + 1)
		}
	}
	return ""
}

func idleTicker() session.GameOption {
	return session.WithTicker(func() session.Ticker { return fakeTicker{c: make(chan time.Time)} })
}

func TestPlayPlain_CompleteQuiz(t *testing.T) {
	deps, questions, st := testDeps(t)
	ctx := context.Background()

	var in strings.Builder
	in.WriteString("Ana\n")
	for i, q := range questions {
		if i < 7 {
			in.WriteString(answerKey(q, q.Answer) + "\n")
		} else {
			in.WriteString(wrongKey(q) + "\n")
		}
	}

	var out bytes.Buffer
	err := playPlain(ctx, deps, "", strings.NewReader(in.String()), &out, idleTicker())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Questão 1 de 10")
	assert.Contains(t, out.String(), "Acertos: 7/10 (70%)")
	assert.Contains(t, out.String(), "Excelente trabalho! Continue assim!")
	assert.Contains(t, out.String(), "Posição no ranking: 1º")

	recs, err := st.LeaderboardRepo().All(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Ana", recs[0].Name)
	assert.Equal(t, 7, recs[0].Score)
	assert.Equal(t, 0, recs[0].TimeSpentSeconds)

	stats, err := st.EventRepo().Stats(ctx, store.QueryOpts{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.GamesStarted)
	assert.Equal(t, 1, stats.ByReason[string(session.ReasonCompleted)])
	answered := 0
	for _, c := range stats.Categories {
		answered += c.Answered
	}
	assert.Equal(t, 10, answered)
}

func TestPlayPlain_NameRetryAndInvalidOption(t *testing.T) {
	deps, questions, _ := testDeps(t)

	var in strings.Builder
	in.WriteString("   \n")
	in.WriteString("Rui\n")
	in.WriteString("9\n")
	in.WriteString("abc\n")
	for _, q := range questions {
		in.WriteString(answerKey(q, q.Answer) + "\n")
	}

	var out bytes.Buffer
	err := playPlain(context.Background(), deps, "", strings.NewReader(in.String()), &out, idleTicker())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Por favor, digite seu nome para começar.")
	assert.Equal(t, 2, strings.Count(out.String(), "Opção inválida"))
	assert.Contains(t, out.String(), "Perfeito! Você é um gênio da matemática!")
}

func TestPlayPlain_ForfeitCancelThenConfirm(t *testing.T) {
	deps, questions, st := testDeps(t)
	ctx := context.Background()

	in := strings.Join([]string{
		answerKey(questions[0], questions[0].Answer),
		"d", "n", // cancel
		answerKey(questions[1], questions[1].Answer),
		"d", "s", // give up
	}, "\n") + "\n"

	var out bytes.Buffer
	err := playPlain(ctx, deps, "Ana", strings.NewReader(in), &out, idleTicker())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Você desistiu. Acertos antes de desistir: 2")
	assert.Contains(t, out.String(), "Acertos: 0/10")

	recs, err := st.LeaderboardRepo().All(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 0, recs[0].Score)
}

func TestPlayPlain_Timeout(t *testing.T) {
	deps, questions, st := testDeps(t)
	deps.Budget = 3
	ctx := context.Background()

	ticks := make(chan time.Time)
	opt := session.WithTicker(func() session.Ticker { return fakeTicker{c: ticks} })

	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	errc := make(chan error, 1)
	var out bytes.Buffer
	go func() {
		errc <- playPlain(ctx, deps, "Ana", pr, &out, opt)
	}()

	_, err := io.WriteString(pw, answerKey(questions[0], questions[0].Answer)+"\n")
	require.NoError(t, err)

	// Let the first answer land before the clock runs out.
	require.Eventually(t, func() bool {
		stats, err := st.EventRepo().Stats(ctx, store.QueryOpts{})
		if err != nil {
			return false
		}
		n := 0
		for _, c := range stats.Categories {
			n += c.Answered
		}
		return n == 1
	}, 5*time.Second, 10*time.Millisecond)

	for i := 0; i < deps.Budget; i++ {
		ticks <- time.Now()
	}

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("game did not end on timeout")
	}

	assert.Contains(t, out.String(), "Tempo esgotado!")
	recs, err := st.LeaderboardRepo().All(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 1, recs[0].Score)
	assert.Equal(t, 3, recs[0].TimeSpentSeconds)
}

func TestPlayPlain_InputClosedAbandons(t *testing.T) {
	deps, _, st := testDeps(t)
	ctx := context.Background()

	var out bytes.Buffer
	err := playPlain(ctx, deps, "Ana", strings.NewReader(""), &out, idleTicker())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Partida abandonada")

	recs, err := st.LeaderboardRepo().All(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestPlayPlain_NoSampler(t *testing.T) {
	err := playPlain(context.Background(), gamescreen.Deps{}, "Ana", strings.NewReader(""), io.Discard)
	assert.Error(t, err)
}
