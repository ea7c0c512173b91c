package game

import (
	"math/rand"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubShape is a scriptable Shape for rotation and session tests.
type stubShape struct {
	name      string
	level     int
	resets    int
	updates   int
	completed bool
	outside   bool
	hit       bool
	pointerX  float64
}

func (s *stubShape) Name() string { return s.name }
func (s *stubShape) Update(_ float64, level int) {
	s.updates++
	s.level = level
}
func (s *stubShape) Draw(*ebiten.Image)                 {}
func (s *stubShape) HandleClick(_, _ float64) bool      { return s.hit }
func (s *stubShape) CheckBoundary(_, _, _ float64) bool { return s.outside }
func (s *stubShape) Reset()                             { s.ResetSequence(s.level) }
func (s *stubShape) IsSequenceCompleted() bool          { return s.completed }
func (s *stubShape) PointerMove(x, _ float64)           { s.pointerX = x }
func (s *stubShape) ResetSequence(level int) {
	s.level = level
	s.resets++
	s.completed = false
}

func stubShapes(names ...string) []Shape {
	out := make([]Shape, len(names))
	for i, n := range names {
		out[i] = &stubShape{name: n}
	}
	return out
}

func TestGenerateRotation_IsPermutation(t *testing.T) {
	shapes := stubShapes("a", "b", "c", "d", "e")
	m := NewShapeManager(shapes, rand.New(rand.NewSource(7)))

	for i := 0; i < 20; i++ {
		rot := m.GenerateRotation()
		assert.ElementsMatch(t, shapes, rot)
	}
	assert.Equal(t, shapes, m.Shapes(), "source order untouched")
}

func TestShapeManager_VisitsEveryShapeBeforeRepeating(t *testing.T) {
	shapes := stubShapes("a", "b", "c", "d")
	m := NewShapeManager(shapes, rand.New(rand.NewSource(3)))
	seen := map[string]bool{m.Current().Name(): true}
	assert.Equal(t, 3, m.Remaining())

	for i := 0; i < 3; i++ {
		m.ResetSequence(1)
		seen[m.Current().Name()] = true
	}
	assert.Len(t, seen, 4)
	assert.Zero(t, m.Remaining())

	m.ResetSequence(1)
	assert.Equal(t, 3, m.Remaining(), "exhausted rotation regenerates")
}

func TestShapeManager_LevelUpRegeneratesRotation(t *testing.T) {
	m := NewShapeManager(stubShapes("a", "b", "c"), rand.New(rand.NewSource(1)))
	m.ResetSequence(1)
	require.Equal(t, 1, m.Remaining())

	m.ResetSequence(2)
	assert.Equal(t, 2, m.Level())
	assert.Equal(t, 2, m.Remaining())
	cur := m.Current().(*stubShape)
	assert.Equal(t, 2, cur.level)
}

func TestShapeManager_Delegates(t *testing.T) {
	m := NewShapeManager(stubShapes("only"), nil)
	cur := m.Current().(*stubShape)
	cur.hit = true

	m.Update(16, 2)
	assert.Equal(t, 1, cur.updates)
	assert.True(t, m.HandleClick(1, 1))
	m.PointerMove(42, 0)
	assert.Equal(t, 42.0, cur.pointerX)

	cur.outside = true
	assert.True(t, m.CheckBoundary(0, 0, 1))
	cur.completed = true
	assert.True(t, m.IsSequenceCompleted())
	m.Reset()
	assert.False(t, m.IsSequenceCompleted())
}

func TestShapeManager_EmptyIsSafe(t *testing.T) {
	m := NewShapeManager(nil, nil)
	assert.Nil(t, m.Current())
	assert.NotPanics(t, func() {
		m.Update(16, 1)
		m.PointerMove(1, 1)
		m.Reset()
		m.ResetSequence(2)
	})
	assert.False(t, m.HandleClick(1, 1))
	assert.False(t, m.CheckBoundary(0, 0, 1))
	assert.False(t, m.IsSequenceCompleted())
}
