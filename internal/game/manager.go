package game

import (
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
)

// ShapeManager presents the active shapes one at a time in shuffled order and
// forwards the game loop's calls to whichever shape is current.
type ShapeManager struct {
	shapes    []Shape
	remaining []Shape
	current   Shape
	level     int
	rng       *rand.Rand
}

// NewShapeManager shuffles shapes and makes the first one of the rotation
// current at level 1. A nil rng is replaced with a fixed-seed source.
func NewShapeManager(shapes []Shape, rng *rand.Rand) *ShapeManager {
	if rng == nil {
		rng = rand.New(rand.NewSource(1)) // #nosec G404 -- gameplay only
	}
	m := &ShapeManager{shapes: shapes, level: minLevel, rng: rng}
	m.remaining = m.GenerateRotation()
	m.current = m.pop()
	return m
}

// GenerateRotation returns a Fisher–Yates shuffled copy of the active shapes.
func (m *ShapeManager) GenerateRotation() []Shape {
	out := make([]Shape, len(m.shapes))
	copy(out, m.shapes)
	for i := len(out) - 1; i > 0; i-- {
		j := m.rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (m *ShapeManager) pop() Shape {
	n := len(m.remaining)
	if n == 0 {
		return nil
	}
	s := m.remaining[n-1]
	m.remaining = m.remaining[:n-1]
	return s
}

// ResetSequence moves on to the next shape. A higher level regenerates the
// rotation, as does an exhausted one. The new shape starts fresh at level.
func (m *ShapeManager) ResetSequence(level int) {
	if level > m.level {
		m.level = level
		m.remaining = m.GenerateRotation()
	}
	if len(m.remaining) == 0 {
		m.remaining = m.GenerateRotation()
	}
	next := m.pop()
	if next == nil {
		return
	}
	m.current = next
	m.current.ResetSequence(level)
}

// Current returns the shape on screen, or nil when no shapes are active.
func (m *ShapeManager) Current() Shape { return m.current }

// Level returns the highest level the rotation was generated for.
func (m *ShapeManager) Level() int { return m.level }

// Remaining returns how many shapes are left in the current rotation.
func (m *ShapeManager) Remaining() int { return len(m.remaining) }

// Shapes returns every active shape in registry order.
func (m *ShapeManager) Shapes() []Shape { return m.shapes }

func (m *ShapeManager) Update(dt float64, level int) {
	if m.current != nil {
		m.current.Update(dt, level)
	}
}

func (m *ShapeManager) Draw(screen *ebiten.Image) {
	if m.current != nil {
		m.current.Draw(screen)
	}
}

func (m *ShapeManager) HandleClick(x, y float64) bool {
	if m.current == nil {
		return false
	}
	return m.current.HandleClick(x, y)
}

// PointerMove forwards cursor motion to shapes that track it.
func (m *ShapeManager) PointerMove(x, y float64) {
	if pt, ok := m.current.(PointerTracker); ok {
		pt.PointerMove(x, y)
	}
}

func (m *ShapeManager) CheckBoundary(areaX, areaY, areaSize float64) bool {
	if m.current == nil {
		return false
	}
	return m.current.CheckBoundary(areaX, areaY, areaSize)
}

func (m *ShapeManager) Reset() {
	if m.current != nil {
		m.current.Reset()
	}
}

func (m *ShapeManager) IsSequenceCompleted() bool {
	if m.current == nil {
		return false
	}
	return m.current.IsSequenceCompleted()
}
