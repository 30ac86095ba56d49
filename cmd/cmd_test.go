package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizrush/internal/content"
	"github.com/abhisek/quizrush/internal/replay"
	"github.com/abhisek/quizrush/internal/screens/play"
	"github.com/abhisek/quizrush/internal/session"
	"github.com/abhisek/quizrush/internal/store"
)

const testDeck = `{
  "format": "v1.0.0",
  "id": "capitals",
  "title": "Capitals",
  "questions": [
    {"id": "fr", "content": "Capital of France?", "options": [{"id": "a", "text": "Paris"}, {"id": "b", "text": "Lyon"}], "correct_option_id": "a"},
    {"id": "it", "content": "Capital of Italy?", "options": [{"id": "a", "text": "Milan"}, {"id": "b", "text": "Rome"}], "correct_option_id": "b"}
  ]
}`

type env struct {
	dir    string
	db     string
	config string
	deck   string
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	e := env{
		dir:    dir,
		db:     filepath.Join(dir, "data", "quizrush.db"),
		config: filepath.Join(dir, "config.toml"),
		deck:   filepath.Join(dir, "capitals.json"),
	}
	require.NoError(t, os.WriteFile(e.deck, []byte(testDeck), 0o644))
	return e
}

func (e env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--db", e.db, "--config", e.config}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "validate", e.deck)
	require.NoError(t, err)
	assert.Contains(t, out, "capitals (2 questions")

	bad := filepath.Join(e.dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"format": "v9.0.0", "id": "x", "questions": []}`), 0o644))
	out, err = e.run(t, "validate", e.deck, bad)
	require.Error(t, err)
	assert.Contains(t, out, "FAIL  "+bad)
}

func TestHistory_Empty(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded yet.")
	assert.Contains(t, out, "Gems: 0")
}

func TestHistory_ListsResults(t *testing.T) {
	e := newEnv(t)
	st, err := store.Open(e.db)
	require.NoError(t, err)
	res := session.GameResult{FinalScore: 1500, Accuracy: 87.5, MaxStreak: 6}
	require.NoError(t, st.ResultRepo().RecordResult(context.Background(), store.Record{
		ID: "s1", ItemType: play.ItemTypeDeck, ItemID: "capitals", Score: 1500,
		Status: store.StatusCompleted, Details: &res,
	}))
	require.NoError(t, st.Close())

	out, err := e.run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "capitals")
	assert.Contains(t, out, "1,500")
	assert.Contains(t, out, "87.5%")
}

func TestReplay_MatchesRecordedResult(t *testing.T) {
	e := newEnv(t)
	deck, err := content.LoadDeck(e.deck)
	require.NoError(t, err)

	cfg := session.DefaultConfig(deck.Questions)
	cfg.SRSEnabled = false
	cfg.Seed = 3
	m := session.New()
	require.NoError(t, m.Start(cfg))
	m.Tick(1200)
	_, err = m.SubmitAnswer("a", -1)
	require.NoError(t, err)
	m.Tick(900)
	_, err = m.SubmitAnswer("b", -1)
	require.NoError(t, err)
	res, ok := m.Result()
	require.True(t, ok)

	logPath := filepath.Join(e.dir, "run.qrr")
	require.NoError(t, replay.WriteFile(logPath, replay.NewLog("sess-1", deck.ID, m)))

	st, err := store.Open(e.db)
	require.NoError(t, err)
	require.NoError(t, st.ResultRepo().RecordResult(context.Background(), store.Record{
		ID: "sess-1", ItemType: play.ItemTypeDeck, ItemID: deck.ID, Score: res.FinalScore,
		Status: store.StatusCompleted, Details: &res,
	}))
	require.NoError(t, st.Close())

	out, err := e.run(t, "replay", logPath, "--deck", e.deck)
	require.NoError(t, err)
	assert.Contains(t, out, "matches the recorded result")
	assert.Contains(t, out, "outcome:   cleared")
}

func TestReplay_WrongDeck(t *testing.T) {
	e := newEnv(t)
	deck, err := content.LoadDeck(e.deck)
	require.NoError(t, err)

	cfg := session.DefaultConfig(deck.Questions)
	m := session.New()
	require.NoError(t, m.Start(cfg))
	l := replay.NewLog("sess-2", "other-deck", m)
	logPath := filepath.Join(e.dir, "other.qrr")
	require.NoError(t, replay.WriteFile(logPath, l))

	_, err = e.run(t, "replay", logPath, "--deck", e.deck)
	require.ErrorIs(t, err, replay.ErrDeckMismatch)
}

func TestConfigShowAndInit(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[game]")
	assert.Contains(t, out, "question-timeout = 20")

	out, err = e.run(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+e.config)
	_, err = os.Stat(e.config)
	require.NoError(t, err)
}

func TestReset(t *testing.T) {
	e := newEnv(t)
	st, err := store.Open(e.db)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	_, err = e.run(t, "reset")
	require.Error(t, err, "reset needs --yes")
	_, err = os.Stat(e.db)
	require.NoError(t, err)

	out, err := e.run(t, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed")
	_, err = os.Stat(e.db)
	assert.True(t, os.IsNotExist(err))
}
