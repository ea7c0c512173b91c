package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimLog_FilterAndLookup(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(100, 1, "Heart", "rhythm", "hit", "offset +12ms", 12)
	sl.Add(900, 1, "Heart", "rhythm", "miss", "mistake 1/3", 1)
	sl.Add(1500, 2, "Kite", "shape", "failed", "hit the ground", 0)
	sl.AddVerbose(1600, 2, "Kite", "frame", "score", "0", 0)

	assert.Equal(t, 3, sl.Len(), "verbose entries dropped")
	assert.Len(t, sl.Filter("rhythm", ""), 2)
	assert.Len(t, sl.FilterShape("Kite"), 1)
	assert.Len(t, sl.FilterTimeRange(100, 900), 2)
	assert.True(t, sl.HasEntry("shape", "failed", "ground"))
	assert.False(t, sl.HasEntry("shape", "failed", "lightning"))

	e, ok := sl.LastOf("rhythm", "miss")
	require.True(t, ok)
	assert.Equal(t, 1.0, e.NumVal)
	_, ok = sl.LastOf("level", "advance")
	assert.False(t, ok)
}

func TestSimLog_VerboseKeepsFrames(t *testing.T) {
	sl := NewSimLog(true)
	sl.AddVerbose(16, 1, "Circle", "frame", "score", "0", 0)
	assert.Equal(t, 1, sl.Len())
}

func TestSimLog_EmitUsesBoundClock(t *testing.T) {
	sl := NewSimLog(false)
	sl.Emit("Arrow", "shape", "completed", "6 lotus passed", 6)
	assert.Equal(t, minLevel, sl.Entries()[0].Level)

	sl.bind(func() (float64, int) { return 4200, 3 })
	sl.Emit("Arrow", "shape", "completed", "10 lotus passed", 10)
	e := sl.Entries()[1]
	assert.Equal(t, 4200.0, e.Elapsed)
	assert.Equal(t, 3, e.Level)
}

func TestSimLog_Format(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(12345, 2, "Heart", "rhythm", "hit", "offset +18ms", 18)
	sl.Add(20000, 2, "Heart", "rhythm", "miss", "mistake 1/3", 1)

	line := sl.Entries()[0].String()
	assert.True(t, strings.HasPrefix(line, "[  12.345s L2] Heart"), line)
	assert.Equal(t, 2, strings.Count(sl.Format(), "\n"))
	assert.Equal(t, 1, strings.Count(sl.FormatRange(0, 15000), "\n"))
}

func TestEventFeed_RingBufferKeepsNewest(t *testing.T) {
	f := NewEventFeed()
	for i := 0; i < feedMaxEntries+5; i++ {
		f.Add(float64(i), "Kite", "hazard", "strike")
	}
	assert.Equal(t, feedMaxEntries, f.Len())
	recent := f.Recent()
	require.Len(t, recent, feedMaxEntries)
	assert.Equal(t, 5.0, recent[0].Elapsed)
	assert.Equal(t, float64(feedMaxEntries+4), recent[len(recent)-1].Elapsed)
}

func TestEventFeed_PartialFill(t *testing.T) {
	f := NewEventFeed()
	f.Add(1, "Square", "shape", "wrong_side")
	f.Add(2, "Square", "shape", "completed")
	recent := f.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "wrong_side", recent[0].Message)
}
