package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should be created with its parent directory")
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.tetris/test.db")
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(home, ".tetris", "test.db"))
	assert.NoError(t, err)
}

func TestStoreSaveAndRetrieveScores(t *testing.T) {
	store := openTemp(t)

	for _, s := range []int{3, 1, 7} {
		_, err := store.SaveScore("tetris", s)
		require.NoError(t, err)
	}
	_, err := store.SaveScore("tetris_bot", 40)
	require.NoError(t, err)

	scores, err := store.TopScores("tetris", 10)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, 7, scores[0].Score)
	assert.Equal(t, 3, scores[1].Score)
	assert.Equal(t, 1, scores[2].Score)
	assert.False(t, scores[0].CreatedAt.IsZero(), "created_at should be populated")

	limited, err := store.TopScores("tetris", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	high, err := store.HighScore("tetris_bot")
	require.NoError(t, err)
	assert.Equal(t, 40, high)
}

func TestStoreHighScoreEmpty(t *testing.T) {
	store := openTemp(t)

	high, err := store.HighScore("tetris")
	require.NoError(t, err)
	assert.Zero(t, high)
}

func TestStoreClearScores(t *testing.T) {
	store := openTemp(t)

	_, err := store.SaveScore("tetris", 5)
	require.NoError(t, err)
	_, err = store.SaveScore("tetris_bot", 9)
	require.NoError(t, err)

	require.NoError(t, store.ClearScores("tetris"))

	scores, err := store.TopScores("tetris", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)

	other, err := store.TopScores("tetris_bot", 10)
	require.NoError(t, err)
	assert.Len(t, other, 1, "other modes should be untouched")
}

func TestStoreGameStats(t *testing.T) {
	store := openTemp(t)

	for _, s := range []int{2, 4} {
		_, err := store.SaveScore("tetris", s)
		require.NoError(t, err)
	}

	stats, err := store.GetGameStats("tetris")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.GamesCount)
	assert.Equal(t, 4, stats.HighScore)
	assert.InDelta(t, 3.0, stats.AvgScore, 1e-9)

	empty, err := store.GetGameStats("tetris_bot")
	require.NoError(t, err)
	assert.Zero(t, empty.GamesCount)
	assert.True(t, empty.LastPlayed.IsZero())
}

func TestStoreEpisodes(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()

	records := []EpisodeRecord{
		{Policy: "heuristic", Seed: 1, Steps: 500, Lines: 12, Score: 12, TotalReward: 30.5},
		{Policy: "heuristic", Seed: 2, Steps: 300, Lines: 20, Score: 20, TotalReward: 80, Truncated: true},
		{Policy: "random", Seed: 1, Steps: 60, Lines: 0, Score: 0, TotalReward: -40},
	}
	require.NoError(t, store.SaveEpisodes(ctx, records))
	require.NoError(t, store.SaveEpisodes(ctx, nil))

	top, err := store.TopEpisodes("heuristic", 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(2), top[0].Seed)
	assert.Equal(t, 20, top[0].Lines)
	assert.True(t, top[0].Truncated)
	assert.False(t, top[1].Truncated)
	assert.InDelta(t, 30.5, top[1].TotalReward, 1e-9)

	all, err := store.TopEpisodes("", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	stats, err := store.PolicyStats()
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "heuristic", stats[0].Policy)
	assert.Equal(t, 2, stats[0].Episodes)
	assert.InDelta(t, 16.0, stats[0].MeanLines, 1e-9)
	assert.Equal(t, 20, stats[0].MaxLines)
	assert.InDelta(t, 400.0, stats[0].MeanSteps, 1e-9)
	assert.Equal(t, "random", stats[1].Policy)

	require.NoError(t, store.ClearEpisodes("random"))
	stats, err = store.PolicyStats()
	require.NoError(t, err)
	assert.Len(t, stats, 1)
}

func TestStoreSaveEpisodesCancelled(t *testing.T) {
	store := openTemp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.SaveEpisodes(ctx, []EpisodeRecord{{Policy: "random", Seed: 1}})
	assert.Error(t, err)

	all, err := store.TopEpisodes("", 10)
	require.NoError(t, err)
	assert.Empty(t, all, "a failed batch must not leave partial rows")
}
