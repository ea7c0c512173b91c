package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ScoreStore persists the best score between runs.
type ScoreStore interface {
	Load() (int, error)
	Save(best int) error
}

// MemoryScoreStore keeps the best score in memory.
type MemoryScoreStore struct {
	Best int
}

func (m *MemoryScoreStore) Load() (int, error) { return m.Best, nil }

func (m *MemoryScoreStore) Save(best int) error {
	m.Best = best
	return nil
}

type scoreFile struct {
	BestScore int `json:"best_score"`
}

// FileScoreStore keeps the best score as JSON on disk.
type FileScoreStore struct {
	Path string
}

// DefaultScorePath returns the best-score file under the user config dir.
func DefaultScorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "shape-arcade", "best_score.json"), nil
}

// Load returns 0 without error when the file does not exist yet.
func (f *FileScoreStore) Load() (int, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read best score: %w", err)
	}
	var sf scoreFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return 0, fmt.Errorf("decode best score %s: %w", f.Path, err)
	}
	return sf.BestScore, nil
}

func (f *FileScoreStore) Save(best int) error {
	data, err := json.Marshal(scoreFile{BestScore: best})
	if err != nil {
		return fmt.Errorf("encode best score: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o750); err != nil {
		return fmt.Errorf("create score dir: %w", err)
	}
	if err := os.WriteFile(f.Path, data, 0o600); err != nil {
		return fmt.Errorf("write best score: %w", err)
	}
	return nil
}
