package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileScoreStore_MissingFileIsZero(t *testing.T) {
	st := &FileScoreStore{Path: filepath.Join(t.TempDir(), "none.json")}
	best, err := st.Load()
	require.NoError(t, err)
	assert.Zero(t, best)
}

func TestFileScoreStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "best.json")
	st := &FileScoreStore{Path: path}
	require.NoError(t, st.Save(1234))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"best_score":1234}`, string(data))

	best, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, 1234, best)
}

func TestFileScoreStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))
	_, err := (&FileScoreStore{Path: path}).Load()
	assert.ErrorContains(t, err, "decode best score")
}

func TestSession_LoadsBestFromFile(t *testing.T) {
	st := &FileScoreStore{Path: filepath.Join(t.TempDir(), "best.json")}
	require.NoError(t, st.Save(77))
	s, err := NewSession(Config{Seed: 1}, WithScoreStore(st))
	require.NoError(t, err)
	assert.Equal(t, 77, s.BestScore())
}
