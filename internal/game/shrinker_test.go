package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeShrinker(t *testing.T, build func(ShapeContext) *Shrinker) (*Shrinker, *SimLog) {
	t.Helper()
	sl := NewSimLog(false)
	s := build(ShapeContext{Events: sl})
	s.Update(introDuration, 1)
	require.Equal(t, PhaseActive, s.fsm.phase)
	return s, sl
}

func TestShrinker_VanishingBelowQuotaFails(t *testing.T) {
	s, sl := activeShrinker(t, NewTriangle)
	for i := 0; i < 100 && !s.fsm.finished(); i++ {
		s.Update(100, 1)
	}
	assert.Equal(t, PhaseFailed, s.fsm.phase)
	assert.Zero(t, s.Size())
	assert.True(t, s.CheckBoundary(100, 0, 600))
	assert.True(t, sl.HasEntry("shape", "failed", "vanished"))
}

func TestShrinker_QuotaThenVanishCompletes(t *testing.T) {
	s, sl := activeShrinker(t, NewTriangle)
	cx, cy := s.ctx.Area.CenterX(), s.ctx.Area.CenterY()
	for i := 0; i < byLevel(1, shrinkQuota); i++ {
		require.True(t, s.HandleClick(cx, cy), "tap %d", i)
	}
	assert.InDelta(t, shrinkStartSize+8*shrinkTapGrowth, s.Size(), 1e-9)

	for i := 0; i < 100 && !s.fsm.finished(); i++ {
		s.Update(100, 1)
	}
	assert.True(t, s.IsSequenceCompleted())
	assert.False(t, s.CheckBoundary(100, 0, 600))
	assert.Equal(t, 1, sl.CountCategory("shape", "completed"))
}

func TestShrinker_OutgrowingTheAreaFails(t *testing.T) {
	s, _ := activeShrinker(t, NewTriangle)
	cx, cy := s.ctx.Area.CenterX(), s.ctx.Area.CenterY()
	for i := 0; i < 20 && !s.fsm.finished(); i++ {
		assert.True(t, s.HandleClick(cx, cy))
	}
	assert.Equal(t, PhaseFailed, s.fsm.phase)
	assert.Equal(t, 10, s.Taps(), "size 300 reaches the area edge")
	assert.False(t, s.HandleClick(cx, cy))
}

func TestShrinker_MissedTapDoesNothing(t *testing.T) {
	s, _ := activeShrinker(t, NewPentagon)
	assert.False(t, s.HandleClick(110, 10))
	assert.Zero(t, s.Taps())
	assert.Equal(t, shrinkStartSize, s.Size())
}

func TestShrinker_CrescentCutoutIgnoresTaps(t *testing.T) {
	s, _ := activeShrinker(t, NewCrescentMoon)
	cutX, _ := crescentCutout(s.x, s.size)
	assert.False(t, s.HandleClick(cutX, s.y))
	assert.True(t, s.HandleClick(s.x-70, s.y))
	assert.Equal(t, 1, s.Taps())
}

func TestShrinker_Variants(t *testing.T) {
	for _, build := range []func(ShapeContext) *Shrinker{NewTriangle, NewPentagon, NewOctagon, NewTrapezoid, NewCrescentMoon} {
		s := build(ShapeContext{})
		t.Run(s.Name(), func(t *testing.T) {
			s.Update(introDuration, 1)
			assert.True(t, s.HandleClick(s.x, s.y+1) || s.crescent)
			s.ResetSequence(2)
			assert.Equal(t, PhaseIntro, s.fsm.phase)
			assert.Zero(t, s.Taps())
			assert.Equal(t, shrinkStartSize, s.Size())
		})
	}
}
