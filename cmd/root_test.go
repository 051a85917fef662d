package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expomatematica/quizmat/internal/leaderboard"
	"github.com/expomatematica/quizmat/internal/store"
)

// resetFlags restores every flag to its default so tests sharing rootCmd
// don't leak values into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// isolate points config, state and data dirs at a temp dir and returns a
// database path inside it.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("QUIZMAT_CONFIG", "")
	t.Setenv("QUIZMAT_DB", "")
	t.Setenv("QUIZMAT_REDIS_ADDR", "")
	return filepath.Join(dir, "data", "quizmat.db")
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seedRecords(t *testing.T, db string, recs ...leaderboard.PlayerRecord) {
	t.Helper()
	require.NoError(t, store.EnsureDir(db))
	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	for _, r := range recs {
		require.NoError(t, st.LeaderboardRepo().Append(context.Background(), r))
	}
}

func TestVersionCmd(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "quizmat (devel)\n", out)
}

func TestLeaderboardCmd(t *testing.T) {
	db := isolate(t)
	ts := time.Date(2025, 10, 3, 12, 0, 0, 0, time.Local)
	seedRecords(t, db,
		leaderboard.PlayerRecord{ID: "a", Name: "Ana", Score: 8, TimeSpentSeconds: 300, Timestamp: ts},
		leaderboard.PlayerRecord{ID: "b", Name: "Júlia", Score: 9, TimeSpentSeconds: 500, Timestamp: ts},
		leaderboard.PlayerRecord{ID: "c", Name: "Tiago", Score: 8, TimeSpentSeconds: 200, Timestamp: ts},
	)

	out, err := execute(t, "", "--db", db, "leaderboard")
	require.NoError(t, err)

	julia := strings.Index(out, "Júlia")
	tiago := strings.Index(out, "Tiago")
	ana := strings.Index(out, "Ana")
	require.True(t, julia > 0 && tiago > 0 && ana > 0, out)
	assert.Less(t, julia, tiago)
	assert.Less(t, tiago, ana)
	assert.Contains(t, out, "🥇")
	assert.Contains(t, out, "8:20")
	assert.Contains(t, out, "03/10/2025")

	out, err = execute(t, "", "--db", db, "leaderboard", "--top", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Júlia")
	assert.NotContains(t, out, "Tiago")
}

func TestLeaderboardCmd_Empty(t *testing.T) {
	db := isolate(t)
	out, err := execute(t, "", "--db", db, "leaderboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Ainda não há recordes!")
}

func TestLeaderboardCmd_RedisWithoutMirror(t *testing.T) {
	db := isolate(t)
	_, err := execute(t, "", "--db", db, "leaderboard", "--redis")
	assert.Error(t, err)
}

func TestExportImportCmds(t *testing.T) {
	db := isolate(t)
	seedRecords(t, db,
		leaderboard.PlayerRecord{ID: "a", Name: "Ana", Score: 8, TimeSpentSeconds: 300, Timestamp: time.Now()},
	)

	file := filepath.Join(t.TempDir(), "board.json")
	_, err := execute(t, "", "--db", db, "export", file)
	require.NoError(t, err)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"format": "quizmat-leaderboard"`)

	other := filepath.Join(t.TempDir(), "other.db")
	out, err := execute(t, "", "--db", other, "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 new records (0 already present).")

	out, err = execute(t, "", "--db", other, "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 new records (1 already present).")
}

func TestImportCmd_LegacyArray(t *testing.T) {
	db := isolate(t)
	file := filepath.Join(t.TempDir(), "legacy.json")
	legacy := `[{"id":"1733240000000","name":"Maria","score":9,"timeSpentSeconds":245,"timestamp":1733240000000}]`
	require.NoError(t, os.WriteFile(file, []byte(legacy), 0o644))

	_, err := execute(t, "", "--db", db, "import", file)
	require.NoError(t, err)

	out, err := execute(t, "", "--db", db, "leaderboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Maria")
	assert.Contains(t, out, "4:05")
}

func TestResetCmd(t *testing.T) {
	db := isolate(t)
	seedRecords(t, db,
		leaderboard.PlayerRecord{ID: "a", Name: "Ana", Score: 8, TimeSpentSeconds: 300, Timestamp: time.Now()},
	)

	out, err := execute(t, "n\n", "--db", db, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Nada foi apagado.")

	out, err = execute(t, "", "--db", db, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Ranking e histórico apagados.")

	out, err = execute(t, "", "--db", db, "leaderboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Ainda não há recordes!")
}

func TestStatsCmd(t *testing.T) {
	db := isolate(t)
	require.NoError(t, store.EnsureDir(db))
	st, err := store.Open(db)
	require.NoError(t, err)
	ctx := context.Background()
	events := st.EventRepo()
	require.NoError(t, events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: "s1", Action: store.ActionStart, PlayerName: "Ana", QuestionCount: 10,
	}))
	require.NoError(t, events.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID: "s1", QuestionID: "add-1", Category: "ADD", CorrectAnswer: 5, ChosenAnswer: 5, Correct: true,
	}))
	require.NoError(t, events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: "s1", Action: store.ActionEnd, PlayerName: "Ana", QuestionCount: 10,
		Score: 1, TimeSpentSeconds: 600, Reason: "timed_out",
	}))
	require.NoError(t, st.Close())

	out, err := execute(t, "", "--db", db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Partidas iniciadas:   1")
	assert.Contains(t, out, "Tempo esgotado:")
	assert.Contains(t, out, "Adição")
	assert.Contains(t, out, "Ana")
}

func TestPreviewCmd(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "preview", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Questão 10/10")
	assert.Contains(t, out, "Total: Adição 2 Subtração 2 Multiplicação 3 Divisão 3")

	again, err := execute(t, "", "preview", "--seed", "7")
	require.NoError(t, err)
	assert.Equal(t, out, again)

	out, err = execute(t, "", "preview", "--category", "div", "--count", "3", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Questão 3/3 · Divisão")
	assert.NotContains(t, out, "Adição")
}

func TestPreviewCmd_BadCategory(t *testing.T) {
	isolate(t)
	_, err := execute(t, "", "preview", "--category", "pow")
	assert.Error(t, err)
}

func TestConfigFlags(t *testing.T) {
	isolate(t)
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("log:\n  level: warn\n"), 0o644))

	_, err := execute(t, "", "--config", cfgFile, "--log-level", "bogus", "preview")
	assert.Error(t, err)

	_, err = execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "preview")
	assert.Error(t, err)
}
