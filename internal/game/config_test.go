package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero area", func(c *Config) { c.Area.Size = 0 }, true},
		{"no levels", func(c *Config) { c.LevelDurations = nil }, true},
		{"too many levels", func(c *Config) { c.LevelDurations = []float64{1, 2, 3, 4} }, true},
		{"negative duration", func(c *Config) { c.LevelDurations = []float64{60, -1} }, true},
		{"zero mistakes", func(c *Config) { c.MaxMistakes = 0 }, true},
		{"unknown shape", func(c *Config) { c.Shapes = []string{"Blob"} }, true},
		{"case-insensitive shape", func(c *Config) { c.Shapes = []string{"crescentmoon", "HEART"} }, false},
		{"single level", func(c *Config) { c.LevelDurations = []float64{30} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_WithDefaultsFillsZeroValue(t *testing.T) {
	c := Config{}.withDefaults()
	assert.Equal(t, DefaultPlayArea, c.Area)
	assert.Equal(t, []float64{60, 120, 180}, c.LevelDurations)
	assert.Equal(t, 3, c.MaxMistakes)
	require.NoError(t, c.Validate())
}

func TestParseLevelDurations(t *testing.T) {
	got, err := ParseLevelDurations(" 30, 45.5 ,90")
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 45.5, 90}, got)

	got, err = ParseLevelDurations("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseLevelDurations("60,abc")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseShapeList(t *testing.T) {
	assert.Equal(t, []string{"Heart", "Kite"}, ParseShapeList(" Heart,, Kite ,"))
	assert.Nil(t, ParseShapeList(""))
}

func TestClampLevelAndByLevel(t *testing.T) {
	assert.Equal(t, 1, clampLevel(-4))
	assert.Equal(t, 2, clampLevel(2))
	assert.Equal(t, 3, clampLevel(9))

	table := [3]string{"one", "two", "three"}
	assert.Equal(t, "one", byLevel(0, table))
	assert.Equal(t, "three", byLevel(7, table))
}

func TestPlayArea(t *testing.T) {
	a := DefaultPlayArea
	assert.Equal(t, 400.0, a.CenterX())
	assert.Equal(t, 300.0, a.CenterY())
	assert.Equal(t, 700.0, a.Right())
	assert.Equal(t, 600.0, a.Bottom())
	assert.True(t, a.Contains(100, 0), "edges are inside")
	assert.False(t, a.Contains(99, 300))
}

func TestBuildShapes(t *testing.T) {
	all := buildShapes(nil, ShapeContext{})
	assert.Len(t, all, len(shapeRegistry))

	some := buildShapes([]string{"kite", "Arrow", "nope"}, ShapeContext{})
	require.Len(t, some, 2)
	assert.Equal(t, "Kite", some[0].Name())
	assert.Equal(t, "Arrow", some[1].Name())
}
