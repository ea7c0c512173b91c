package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Square sides in clockwise order, matching the tap sequence values.
const (
	sideTop = iota
	sideRight
	sideBottom
	sideLeft
)

const (
	squareStartSize   = 80.0
	squareTapShrink   = 8.0
	squareWrongGrowth = 30.0
	squareOrbitRadius = 50.0
)

var (
	squareGrowthRate = [3]float64{12, 18, 24} // px per second
	squarePulseMs    = [3]float64{1000, 800, 600}
	squareSeqLen     = [3]int{4, 4, 6}
	squareColor      = color.RGBA{R: 0x22, G: 0x8B, B: 0x22, A: 255}
)

// Square grows steadily. It shows a sequence of sides, and the player taps
// just outside those sides in order to complete it before it touches the
// edge of the play area.
type Square struct {
	ctx   ShapeContext
	level int
	fsm   phaseMachine
	clock float64

	x, y     float64
	cx, cy   float64 // orbit centre
	size     float64
	sequence []int
	index    int // next side to tap during input; side shown during display
	showing  float64
}

// NewSquare creates the side-sequence square.
func NewSquare(ctx ShapeContext) *Square {
	s := &Square{ctx: ctx.withDefaults()}
	s.cx = s.ctx.Area.CenterX()
	s.cy = s.ctx.Area.CenterY()
	s.ResetSequence(1)
	return s
}

func (s *Square) Name() string { return "Square" }

// Status summarises progress for the HUD.
func (s *Square) Status() string {
	if s.fsm.is(PhaseInput) {
		return fmt.Sprintf("tap sides %d/%d", s.index, len(s.sequence))
	}
	return s.fsm.phase.String()
}

func (s *Square) ResetSequence(level int) {
	s.level = clampLevel(level)
	s.fsm.reset()
	s.clock = 0
	s.x, s.y = s.cx, s.cy
	s.size = squareStartSize
	s.newSequence()
}

func (s *Square) Reset() { s.ResetSequence(s.level) }

func (s *Square) IsSequenceCompleted() bool { return s.fsm.is(PhaseDone) }

func (s *Square) newSequence() {
	n := byLevel(s.level, squareSeqLen)
	s.sequence = make([]int, n)
	for i := range s.sequence {
		s.sequence[i] = s.ctx.Rng.Intn(4)
	}
	s.index = 0
	s.showing = 0
}

func (s *Square) Update(dt float64, level int) {
	if clampLevel(level) != s.level {
		s.ResetSequence(level)
	}
	s.clock += dt
	s.fsm.tick(dt)

	switch s.fsm.phase {
	case PhaseIntro:
		if s.fsm.elapsed >= introDuration {
			s.fsm.to(PhaseDisplay)
		}
		return
	case PhaseDisplay:
		s.showing += dt
		pulse := byLevel(s.level, squarePulseMs)
		for s.showing >= pulse && s.index < len(s.sequence) {
			s.showing -= pulse
			s.index++
		}
		if s.index >= len(s.sequence) {
			s.index = 0
			s.fsm.to(PhaseInput)
		}
	case PhaseDone, PhaseFailed:
		return
	}

	s.size += byLevel(s.level, squareGrowthRate) * dt / 1000
	if s.level == 3 {
		t := s.clock / 1000
		s.x = s.cx + math.Sin(t)*squareOrbitRadius
		s.y = s.cy + math.Cos(t)*squareOrbitRadius
	}
	a := s.ctx.Area
	if squareBounds(s.x, s.y, s.size/2).touches(a.X, a.Y, a.Size) {
		s.fsm.to(PhaseFailed)
		s.ctx.Events.Emit(s.Name(), "shape", "failed", fmt.Sprintf("grew to %.0fpx", s.size), s.size)
	}
}

// sideAt returns which side band (x,y) falls in, or -1.
func (s *Square) sideAt(x, y float64) int {
	half := s.size / 2
	left, right := s.x-half, s.x+half
	top, bottom := s.y-half, s.y+half
	switch {
	case y >= top && y <= bottom && x < left:
		return sideLeft
	case y >= top && y <= bottom && x > right:
		return sideRight
	case x >= left && x <= right && y < top:
		return sideTop
	case x >= left && x <= right && y > bottom:
		return sideBottom
	}
	return -1
}

func (s *Square) HandleClick(x, y float64) bool {
	if !s.fsm.is(PhaseInput) || !s.ctx.Area.Contains(x, y) {
		return false
	}
	side := s.sideAt(x, y)
	if side < 0 {
		return false
	}
	if side != s.sequence[s.index] {
		s.size += squareWrongGrowth
		s.newSequence()
		s.fsm.to(PhaseDisplay)
		s.ctx.Events.Emit(s.Name(), "shape", "wrong_side", fmt.Sprintf("size %.0fpx", s.size), s.size)
		return false
	}
	s.index++
	s.size = math.Max(squareStartSize/2, s.size-squareTapShrink)
	if s.index >= len(s.sequence) {
		s.fsm.to(PhaseDone)
		s.ctx.Events.Emit(s.Name(), "shape", "completed", fmt.Sprintf("%d sides", len(s.sequence)), float64(len(s.sequence)))
	}
	return true
}

func (s *Square) CheckBoundary(areaX, areaY, areaSize float64) bool {
	if s.fsm.is(PhaseFailed) {
		return true
	}
	b := squareBounds(s.x, s.y, s.size/2)
	return b.outside(areaX, areaY, areaSize) || b.touches(areaX, areaY, areaSize)
}

func (s *Square) Draw(screen *ebiten.Image) {
	half := s.size / 2
	alpha := 1.0
	if s.fsm.is(PhaseIntro) {
		alpha = introAlpha(s.fsm.elapsed)
	}
	x0, y0 := float32(s.x-half), float32(s.y-half)
	sz := float32(s.size)
	vector.FillRect(screen, x0, y0, sz, sz, withAlpha(squareColor, alpha), true)

	if s.fsm.is(PhaseIntro) {
		if p, ok := introGlint(s.fsm.elapsed); ok {
			corners := []point{{s.x - half, s.y - half}, {s.x + half, s.y - half}, {s.x + half, s.y + half}, {s.x - half, s.y + half}}
			drawPerimeterGlint(screen, corners, p)
		}
	}

	lit := -1
	if s.fsm.is(PhaseDisplay) && s.index < len(s.sequence) {
		lit = s.sequence[s.index]
	}
	if lit < 0 {
		return
	}
	pulse := byLevel(s.level, squarePulseMs)
	a := math.Sin(math.Pi * s.showing / pulse)
	glow := withAlpha(color.RGBA{R: 255, G: 255, B: 255, A: 255}, a)
	x1, y1 := x0+sz, y0+sz
	switch lit {
	case sideTop:
		vector.StrokeLine(screen, x0, y0, x1, y0, 6, glow, true)
	case sideRight:
		vector.StrokeLine(screen, x1, y0, x1, y1, 6, glow, true)
	case sideBottom:
		vector.StrokeLine(screen, x0, y1, x1, y1, 6, glow, true)
	case sideLeft:
		vector.StrokeLine(screen, x0, y0, x0, y1, 6, glow, true)
	}
}
