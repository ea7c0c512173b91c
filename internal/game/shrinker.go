package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	shrinkStartSize = 100.0
	shrinkTapGrowth = 20.0
)

var (
	shrinkRate  = [3]float64{0.09, 0.12, 0.15} // px per ms
	shrinkQuota = [3]int{8, 10, 12}
)

// outlineFunc returns the closed outline of a shape of the given size at (cx,cy).
type outlineFunc func(cx, cy, size float64) []point

func triangleOutline(cx, cy, size float64) []point {
	return []point{{cx, cy - size}, {cx + size, cy + size}, {cx - size, cy + size}}
}

func trapezoidOutline(cx, cy, size float64) []point {
	w, h := size*1.5, size
	top := w * 0.6
	return []point{
		{cx - w/2, cy + h/2},
		{cx + w/2, cy + h/2},
		{cx + top/2, cy - h/2},
		{cx - top/2, cy - h/2},
	}
}

func polygonOutline(sides int) outlineFunc {
	return func(cx, cy, size float64) []point {
		return regularPolygon(cx, cy, size, sides)
	}
}

// crescentCutout is the offset disc removed from the moon's full disc.
func crescentCutout(cx, size float64) (float64, float64) {
	return cx + size*0.4, size * 0.7
}

// Shrinker is the shrink-and-tap shape. It shrinks steadily and grows a
// little with every tap inside its outline. Reaching the tap quota before it
// vanishes completes it; vanishing early or growing into the area edge fails.
type Shrinker struct {
	ctx      ShapeContext
	name     string
	colour   color.RGBA
	outline  outlineFunc
	crescent bool

	level int
	fsm   phaseMachine
	x, y  float64
	size  float64
	taps  int
}

func newShrinker(ctx ShapeContext, name string, c color.RGBA, outline outlineFunc) *Shrinker {
	s := &Shrinker{ctx: ctx.withDefaults(), name: name, colour: c, outline: outline}
	s.ResetSequence(1)
	return s
}

// NewTriangle creates the triangle variant.
func NewTriangle(ctx ShapeContext) *Shrinker {
	return newShrinker(ctx, "Triangle", color.RGBA{R: 0x00, G: 0xF7, B: 0xC1, A: 255}, triangleOutline)
}

// NewPentagon creates the pentagon variant.
func NewPentagon(ctx ShapeContext) *Shrinker {
	return newShrinker(ctx, "Pentagon", color.RGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 255}, polygonOutline(5))
}

// NewOctagon creates the octagon variant.
func NewOctagon(ctx ShapeContext) *Shrinker {
	return newShrinker(ctx, "Octagon", color.RGBA{R: 0xFF, G: 0x63, B: 0x47, A: 255}, polygonOutline(8))
}

// NewTrapezoid creates the trapezoid variant.
func NewTrapezoid(ctx ShapeContext) *Shrinker {
	return newShrinker(ctx, "Trapezoid", color.RGBA{R: 0xFF, G: 0x45, B: 0x00, A: 255}, trapezoidOutline)
}

// NewCrescentMoon creates the crescent variant. Its outline is the full disc;
// taps inside the cutout do not count.
func NewCrescentMoon(ctx ShapeContext) *Shrinker {
	s := newShrinker(ctx, "CrescentMoon", color.RGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 255}, polygonOutline(32))
	s.crescent = true
	return s
}

func (s *Shrinker) Name() string { return s.name }

// Size is the current half-extent of the outline.
func (s *Shrinker) Size() float64 { return s.size }

// Taps is the number of counted taps this sequence.
func (s *Shrinker) Taps() int { return s.taps }

// Status summarises progress for the HUD.
func (s *Shrinker) Status() string {
	return fmt.Sprintf("taps %d/%d", s.taps, byLevel(s.level, shrinkQuota))
}

func (s *Shrinker) ResetSequence(level int) {
	s.level = clampLevel(level)
	s.fsm.reset()
	s.x = s.ctx.Area.CenterX()
	s.y = s.ctx.Area.CenterY()
	s.size = shrinkStartSize
	s.taps = 0
}

func (s *Shrinker) Reset() { s.ResetSequence(s.level) }

func (s *Shrinker) IsSequenceCompleted() bool { return s.fsm.is(PhaseDone) }

func (s *Shrinker) Update(dt float64, level int) {
	if clampLevel(level) != s.level {
		s.ResetSequence(level)
	}
	s.fsm.tick(dt)
	if s.fsm.is(PhaseIntro) {
		if s.fsm.elapsed >= introDuration {
			s.fsm.to(PhaseActive)
		}
		return
	}
	if s.fsm.finished() {
		return
	}

	s.size -= byLevel(s.level, shrinkRate) * dt
	if s.size > 0 {
		return
	}
	s.size = 0
	quota := byLevel(s.level, shrinkQuota)
	if s.taps >= quota {
		s.fsm.to(PhaseDone)
		s.ctx.Events.Emit(s.name, "shape", "completed", fmt.Sprintf("%d taps", s.taps), float64(s.taps))
		return
	}
	s.fsm.to(PhaseFailed)
	s.ctx.Events.Emit(s.name, "shape", "failed", fmt.Sprintf("vanished at %d/%d taps", s.taps, quota), float64(s.taps))
}

func (s *Shrinker) contains(x, y float64) bool {
	if s.size <= 0 {
		return false
	}
	if s.crescent {
		if math.Hypot(x-s.x, y-s.y) > s.size {
			return false
		}
		cx, r := crescentCutout(s.x, s.size)
		return math.Hypot(x-cx, y-s.y) > r
	}
	return pointInPolygon(point{x, y}, s.outline(s.x, s.y, s.size))
}

func (s *Shrinker) HandleClick(x, y float64) bool {
	if !s.fsm.is(PhaseActive) || !s.contains(x, y) {
		return false
	}
	s.size += shrinkTapGrowth
	s.taps++
	a := s.ctx.Area
	if boundsOf(s.outline(s.x, s.y, s.size)).touches(a.X, a.Y, a.Size) {
		s.fsm.to(PhaseFailed)
		s.ctx.Events.Emit(s.name, "shape", "failed", fmt.Sprintf("outgrew the area at %.0fpx", s.size), s.size)
	}
	return true
}

func (s *Shrinker) CheckBoundary(areaX, areaY, areaSize float64) bool {
	if s.fsm.is(PhaseFailed) {
		return true
	}
	if s.size <= 0 {
		return false
	}
	return boundsOf(s.outline(s.x, s.y, s.size)).outside(areaX, areaY, areaSize)
}

func (s *Shrinker) Draw(screen *ebiten.Image) {
	if s.size <= 0 {
		return
	}
	alpha := 1.0
	if s.fsm.is(PhaseIntro) {
		alpha = introAlpha(s.fsm.elapsed)
	}
	pts := s.outline(s.x, s.y, s.size)
	fillPolygon(screen, pts, withAlpha(s.colour, alpha))
	if s.crescent {
		cx, r := crescentCutout(s.x, s.size)
		fillEllipse(screen, cx, s.y, r, r, 0, color.Black)
	}
	if s.fsm.is(PhaseIntro) {
		if p, ok := introGlint(s.fsm.elapsed); ok {
			drawPerimeterGlint(screen, pts, p)
		}
	}
}
