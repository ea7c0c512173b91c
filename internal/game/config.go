package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Logical screen layout. The play area sits inside an 800x600 field with the
// event feed panel to its right.
const (
	fieldWidth  = 800
	fieldHeight = 600
)

// Level bounds. Levels outside this range are clamped.
const (
	minLevel = 1
	maxLevel = 3
)

// frameMs is the duration of a 60 Hz frame. Speeds tuned per frame are
// scaled by dt/frameMs.
const frameMs = 1000.0 / 60.0

// PlayArea is the square region in which shape gameplay and collisions occur.
type PlayArea struct {
	X    float64
	Y    float64
	Size float64
}

// DefaultPlayArea is used when no geometry is configured.
var DefaultPlayArea = PlayArea{X: 100, Y: 0, Size: 600}

// CenterX returns the horizontal centre of the area.
func (a PlayArea) CenterX() float64 { return a.X + a.Size/2 }

// CenterY returns the vertical centre of the area.
func (a PlayArea) CenterY() float64 { return a.Y + a.Size/2 }

// Right returns the right edge.
func (a PlayArea) Right() float64 { return a.X + a.Size }

// Bottom returns the bottom edge.
func (a PlayArea) Bottom() float64 { return a.Y + a.Size }

// Contains reports whether (x,y) lies inside the area (edges included).
func (a PlayArea) Contains(x, y float64) bool {
	return x >= a.X && x <= a.Right() && y >= a.Y && y <= a.Bottom()
}

// Config holds the tunables of a session. The zero value is usable: absent
// fields fall back to defaults.
type Config struct {
	Area            PlayArea
	LevelDurations  []float64 // seconds per level; the last level runs indefinitely
	MaxMistakes     int       // rhythm mistakes before the heart breaks
	HitScore        int       // points per scoring click
	CompletionBonus int       // points per completed sequence, multiplied by level
	Shapes          []string  // enabled registry names; empty = registry defaults
	Seed            int64     // 0 = seeded from the clock
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Area:            DefaultPlayArea,
		LevelDurations:  []float64{60, 120, 180},
		MaxMistakes:     3,
		HitScore:        10,
		CompletionBonus: 100,
	}
}

// withDefaults fills absent fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Area.Size == 0 {
		c.Area = d.Area
	}
	if len(c.LevelDurations) == 0 {
		c.LevelDurations = d.LevelDurations
	}
	if c.MaxMistakes == 0 {
		c.MaxMistakes = d.MaxMistakes
	}
	if c.HitScore == 0 {
		c.HitScore = d.HitScore
	}
	if c.CompletionBonus == 0 {
		c.CompletionBonus = d.CompletionBonus
	}
	return c
}

// Validate reports the first problem with the config.
func (c Config) Validate() error {
	if c.Area.Size <= 0 {
		return fmt.Errorf("%w: play area size %.1f must be positive", ErrInvalidConfig, c.Area.Size)
	}
	if len(c.LevelDurations) == 0 {
		return fmt.Errorf("%w: at least one level duration required", ErrInvalidConfig)
	}
	if len(c.LevelDurations) > maxLevel {
		return fmt.Errorf("%w: %d level durations given, at most %d levels exist", ErrInvalidConfig, len(c.LevelDurations), maxLevel)
	}
	for i, d := range c.LevelDurations {
		if d <= 0 {
			return fmt.Errorf("%w: level %d duration %.1fs must be positive", ErrInvalidConfig, i+1, d)
		}
	}
	if c.MaxMistakes < 1 {
		return fmt.Errorf("%w: max mistakes %d must be at least 1", ErrInvalidConfig, c.MaxMistakes)
	}
	for _, name := range c.Shapes {
		if _, ok := lookupShape(name); !ok {
			return fmt.Errorf("%w: unknown shape %q", ErrInvalidConfig, name)
		}
	}
	return nil
}

// clampLevel keeps a level inside [minLevel, maxLevel].
func clampLevel(level int) int {
	if level < minLevel {
		return minLevel
	}
	if level > maxLevel {
		return maxLevel
	}
	return level
}

// byLevel picks the value for a level from a three-entry table.
func byLevel[T any](level int, table [3]T) T {
	return table[clampLevel(level)-1]
}

// ParseLevelDurations parses a comma-separated list of seconds, e.g. "60,120,180".
func ParseLevelDurations(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: level duration %q: %w", ErrInvalidConfig, p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseShapeList splits a comma-separated list of shape names, dropping blanks.
func ParseShapeList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
