package game

import (
	"math/rand"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Shape is one self-contained minigame presented inside the play area.
//
// Update advances state by dt milliseconds at the given level (1..3). Draw
// renders without mutating gameplay state. HandleClick reports whether a
// click counted as a scoring hit. CheckBoundary reports that the shape has
// failed or left the play area. IsSequenceCompleted is false after any reset.
type Shape interface {
	Name() string
	Update(dt float64, level int)
	Draw(screen *ebiten.Image)
	HandleClick(x, y float64) bool
	CheckBoundary(areaX, areaY, areaSize float64) bool
	Reset()
	ResetSequence(level int)
	IsSequenceCompleted() bool
}

// PointerTracker is implemented by shapes that follow the cursor.
type PointerTracker interface {
	PointerMove(x, y float64)
}

// EventSink receives notable gameplay moments from shapes.
type EventSink interface {
	Emit(shape, category, key, value string, numVal float64)
}

type nopSink struct{}

func (nopSink) Emit(string, string, string, string, float64) {}

// ShapeContext carries the collaborators a shape needs. It replaces the
// window-level globals the shapes would otherwise read.
type ShapeContext struct {
	Area        PlayArea
	Rng         *rand.Rand
	Events      EventSink
	MaxMistakes int
}

func (c ShapeContext) withDefaults() ShapeContext {
	if c.Area.Size == 0 {
		c.Area = DefaultPlayArea
	}
	if c.Rng == nil {
		c.Rng = rand.New(rand.NewSource(1)) // #nosec G404 -- gameplay only
	}
	if c.Events == nil {
		c.Events = nopSink{}
	}
	if c.MaxMistakes < 1 {
		c.MaxMistakes = DefaultConfig().MaxMistakes
	}
	return c
}

// ShapeEntry is one row of the shape registry.
type ShapeEntry struct {
	Name   string
	Active bool // enabled when the config names no shapes
	New    func(ctx ShapeContext) Shape
}

// shapeRegistry lists every shape in presentation order.
var shapeRegistry = []ShapeEntry{
	{Name: "Circle", Active: true, New: func(ctx ShapeContext) Shape { return NewCircle(ctx) }},
	{Name: "Triangle", Active: true, New: func(ctx ShapeContext) Shape { return NewTriangle(ctx) }},
	{Name: "Square", Active: true, New: func(ctx ShapeContext) Shape { return NewSquare(ctx) }},
	{Name: "Pentagon", Active: true, New: func(ctx ShapeContext) Shape { return NewPentagon(ctx) }},
	{Name: "Octagon", Active: true, New: func(ctx ShapeContext) Shape { return NewOctagon(ctx) }},
	{Name: "Heart", Active: true, New: func(ctx ShapeContext) Shape { return NewHeart(ctx) }},
	{Name: "Kite", Active: true, New: func(ctx ShapeContext) Shape { return NewKite(ctx) }},
	{Name: "Trapezoid", Active: true, New: func(ctx ShapeContext) Shape { return NewTrapezoid(ctx) }},
	{Name: "CrescentMoon", Active: true, New: func(ctx ShapeContext) Shape { return NewCrescentMoon(ctx) }},
	{Name: "Arrow", Active: true, New: func(ctx ShapeContext) Shape { return NewArrow(ctx) }},
}

// ShapeNames returns every registered shape name.
func ShapeNames() []string {
	names := make([]string, len(shapeRegistry))
	for i, e := range shapeRegistry {
		names[i] = e.Name
	}
	return names
}

// lookupShape finds a registry entry by case-insensitive name.
func lookupShape(name string) (ShapeEntry, bool) {
	for _, e := range shapeRegistry {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return ShapeEntry{}, false
}

// buildShapes instantiates the enabled shapes. With no names, the registry's
// active entries are used. Unknown names are skipped; Config.Validate
// rejects them earlier.
func buildShapes(names []string, ctx ShapeContext) []Shape {
	var shapes []Shape
	if len(names) == 0 {
		for _, e := range shapeRegistry {
			if e.Active {
				shapes = append(shapes, e.New(ctx))
			}
		}
		return shapes
	}
	for _, n := range names {
		if e, ok := lookupShape(n); ok {
			shapes = append(shapes, e.New(ctx))
		}
	}
	return shapes
}
