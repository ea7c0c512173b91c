package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestSession_Options(t *testing.T) {
	area := PlayArea{X: 50, Y: 20, Size: 400}
	ts := NewTestSession(
		WithLevel(3),
		WithArea(area),
		WithShapes("Kite"),
		WithLevelDurations(10, 20, 30),
		WithVerbose(true),
	)
	s := ts.Session
	assert.Equal(t, 3, s.Level())
	assert.Equal(t, area, s.Config().Area)
	assert.Equal(t, "Kite", ts.Current().Name())

	ts.RunFor(1000, 100)
	assert.Equal(t, 10, ts.Frame)
	assert.Equal(t, 10, ts.SimLog.CountCategory("frame", "score"), "verbose frames recorded")
}

func TestTestSession_RunForStopsAtGameOver(t *testing.T) {
	ts := NewTestSession(WithShapes("Octagon"))
	ts.RunFor(60000, frameMs)
	require.True(t, ts.Session.Over())
	assert.Less(t, ts.Session.Elapsed(), 10000.0)
	assert.Equal(t, "Octagon", ts.Session.EndedBy())
}

func TestTestSession_PanicsOnInvalidConfig(t *testing.T) {
	assert.Panics(t, func() { NewTestSession(WithShapes("Rhombus")) })
}

func TestRandomClicker_ScoresOnShrinker(t *testing.T) {
	ts := NewTestSession(WithShapes("Pentagon"), WithSeed(5))
	ts.Play(NewRandomClicker(30, 5), 6000, frameMs)
	assert.Positive(t, ts.SimLog.Len())
	assert.GreaterOrEqual(t, ts.Session.Score(), 0)
}
