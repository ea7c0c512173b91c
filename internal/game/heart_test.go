package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHeart(maxMistakes int) (*Heart, *SimLog) {
	sl := NewSimLog(false)
	h := NewHeart(ShapeContext{Events: sl, MaxMistakes: maxMistakes})
	return h, sl
}

// stepHeartUntil advances the heart in 5 ms frames until cond holds.
func stepHeartUntil(t *testing.T, h *Heart, cond func() bool, maxMs float64) {
	t.Helper()
	for elapsed := 0.0; elapsed < maxMs; elapsed += 5 {
		if cond() {
			return
		}
		h.Update(5, h.level)
	}
	require.True(t, cond(), "condition not reached within %.0fms (phase %s)", maxMs, h.Phase())
}

func TestHeart_IntroDisplayInput(t *testing.T) {
	h, _ := newTestHeart(3)
	require.Equal(t, PhaseIntro, h.Phase())

	h.Update(introDuration-1, 1)
	assert.Equal(t, PhaseIntro, h.Phase())
	h.Update(1, 1)
	require.Equal(t, PhaseDisplay, h.Phase())
	require.Len(t, h.pattern, byLevel(1, heartBeatCount))

	total := heartDisplayTail
	for _, iv := range h.pattern {
		total += iv
	}
	stepHeartUntil(t, h, func() bool { return h.Phase() == PhaseInput }, total+50)
	assert.Len(t, h.markers, len(h.pattern))
}

func TestHeart_OnTimeTapsCompleteAllRounds(t *testing.T) {
	h, sl := newTestHeart(3)
	cx, cy := h.ctx.Area.CenterX(), h.ctx.Area.CenterY()

	for round := 0; round < h.rounds; round++ {
		stepHeartUntil(t, h, func() bool { return h.Phase() == PhaseInput }, 10000)
		markers := h.markers
		for i, m := range markers {
			target := m.TargetTime
			stepHeartUntil(t, h, func() bool { return h.clock >= target }, 5000)
			require.True(t, h.HandleClick(cx, cy), "round %d marker %d should hit", round, i)
		}
	}
	h.Update(5, 1)

	assert.True(t, h.IsSequenceCompleted())
	assert.Equal(t, 0, h.Mistakes())
	assert.Equal(t, 1, sl.CountCategory("shape", "completed"))
	assert.False(t, h.CheckBoundary(100, 0, 600))
}

func TestHeart_MissedBeatsBreakTheHeart(t *testing.T) {
	h, sl := newTestHeart(3)

	stepHeartUntil(t, h, func() bool { return h.Phase() == PhaseBroken }, 20000)
	assert.Equal(t, 3, h.Mistakes())
	assert.True(t, h.Broken())
	assert.False(t, h.CheckBoundary(100, 0, 600), "fall animation still playing")

	stepHeartUntil(t, h, func() bool { return h.Phase() == PhaseFailed }, heartFallDuration+50)
	assert.True(t, h.CheckBoundary(100, 0, 600))
	assert.Equal(t, 3, sl.CountCategory("rhythm", "miss"))
	assert.False(t, h.IsSequenceCompleted())
}

func TestHeart_LateTapIsNotCountedAgainstNextMarker(t *testing.T) {
	h, _ := newTestHeart(3)
	cx, cy := h.ctx.Area.CenterX(), h.ctx.Area.CenterY()
	stepHeartUntil(t, h, func() bool { return h.Phase() == PhaseInput }, 10000)

	first := h.markers[0]
	late := first.TargetTime + 200
	stepHeartUntil(t, h, func() bool { return h.clock >= late }, 5000)
	assert.False(t, h.HandleClick(cx, cy), "200ms late is outside the hit window")
	assert.False(t, h.markers[1].Judged)
}

func TestHeart_DoubleStrayTapStunsWithoutMistake(t *testing.T) {
	h, sl := newTestHeart(3)
	cx, cy := h.ctx.Area.CenterX(), h.ctx.Area.CenterY()
	stepHeartUntil(t, h, func() bool { return h.Phase() == PhaseInput }, 10000)

	assert.False(t, h.HandleClick(cx, cy))
	assert.False(t, h.HandleClick(cx, cy))
	assert.Equal(t, 1, sl.CountCategory("rhythm", "stun"))
	assert.Equal(t, 0, h.Mistakes())

	// Stunned taps are ignored entirely, even a third one.
	assert.False(t, h.HandleClick(cx, cy))
	assert.Equal(t, 1, sl.CountCategory("rhythm", "stun"))
}

func TestHeart_ClickOutsideAreaIgnored(t *testing.T) {
	h, _ := newTestHeart(3)
	stepHeartUntil(t, h, func() bool { return h.Phase() == PhaseInput }, 10000)
	target := h.markers[0].TargetTime
	stepHeartUntil(t, h, func() bool { return h.clock >= target }, 5000)

	assert.False(t, h.HandleClick(10, 10))
	assert.False(t, h.markers[0].Judged)
}

func TestHeart_CheckBoundaryWhenOutside(t *testing.T) {
	h, _ := newTestHeart(3)
	assert.False(t, h.CheckBoundary(100, 0, 600))
	h.x = 20
	assert.True(t, h.CheckBoundary(100, 0, 600))
}

func TestHeart_ResetClearsState(t *testing.T) {
	h, _ := newTestHeart(3)
	stepHeartUntil(t, h, func() bool { return h.Phase() == PhaseBroken }, 20000)

	h.ResetSequence(2)
	assert.Equal(t, PhaseIntro, h.Phase())
	assert.Equal(t, 0, h.Mistakes())
	assert.False(t, h.IsSequenceCompleted())
	assert.Equal(t, byLevel(2, heartRounds), h.rounds)
}

func TestLayoutMarkers_RespacesCloseSpawns(t *testing.T) {
	markers := layoutMarkers(0, []float64{600, 100, 600}, 1000, 300)
	require.Len(t, markers, 3)

	assert.InDelta(t, 1600, markers[0].TargetTime, 1e-9)
	assert.InDelta(t, 1780, markers[1].TargetTime, 1e-9)
	assert.InDelta(t, 2380, markers[2].TargetTime, 1e-9)
	for i := 1; i < len(markers); i++ {
		gap := markers[i].SpawnTime - markers[i-1].SpawnTime
		assert.GreaterOrEqual(t, gap, heartMinSpawnGap-1e-9)
	}

	frac := (300 - (heartTargetRing + heartMarkerRadius)) / 300
	assert.InDelta(t, markers[0].SpawnTime+1000*frac, markers[0].FirstContactTime, 1e-9)
	assert.True(t, markers[0].fromLeft)
	assert.False(t, markers[1].fromLeft)
}

func TestBeatMarker_JudgedOnce(t *testing.T) {
	m := &BeatMarker{TargetTime: 1000, FirstContactTime: 900}
	assert.True(t, m.hittable(1000))
	assert.True(t, m.judgeHit())
	assert.False(t, m.judgeMiss())
	assert.False(t, m.Missed)
	assert.False(t, m.hittable(1000))
	assert.False(t, m.overdue(5000))
}
