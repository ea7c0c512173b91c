package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	arrowSize          = 50.0
	arrowBaseSpeed     = 0.2  // px per ms
	arrowAngularSpeed  = 0.02 // rad per ms
	lotusSpawnInterval = 2000.0
	lotusSpawnOffset   = 30.0
)

var (
	arrowSpeedFactor = [3]float64{1, 1.5, 2}
	arrowLotusToWin  = [3]int{6, 8, 10}
	arrowColor       = color.RGBA{R: 0xFF, G: 0x91, B: 0xA4, A: 255}
)

// Arrow flies forward on its own. Each tap turns it a quarter turn
// anticlockwise. It must stay in the play area and avoid drifting lotuses.
type Arrow struct {
	ctx   ShapeContext
	level int
	fsm   phaseMachine

	x, y        float64
	angle       float64
	targetAngle float64

	lotuses    []*Lotus
	spawnTimer float64
	passed     int
}

// NewArrow creates the steering arrow.
func NewArrow(ctx ShapeContext) *Arrow {
	a := &Arrow{ctx: ctx.withDefaults()}
	a.ResetSequence(1)
	return a
}

func (a *Arrow) Name() string { return "Arrow" }

// Status summarises progress for the HUD.
func (a *Arrow) Status() string {
	return fmt.Sprintf("lotus passed %d/%d", a.passed, byLevel(a.level, arrowLotusToWin))
}

func (a *Arrow) ResetSequence(level int) {
	a.level = clampLevel(level)
	a.fsm.reset()
	// The tail sits left of centre so the whole arrow starts centred.
	a.x = a.ctx.Area.CenterX() - arrowSize
	a.y = a.ctx.Area.CenterY()
	a.angle = 0
	a.targetAngle = 0
	a.lotuses = a.lotuses[:0]
	a.spawnTimer = 0
	a.passed = 0
}

func (a *Arrow) Reset() { a.ResetSequence(a.level) }

func (a *Arrow) IsSequenceCompleted() bool { return a.fsm.is(PhaseDone) }

// Lotuses exposes the live obstacles.
func (a *Arrow) Lotuses() []*Lotus { return a.lotuses }

func (a *Arrow) polygon() []point {
	eff := arrowSize * 2
	body := eff * 0.6
	shaft := eff * 0.3
	head := eff * 0.7
	local := []point{
		{0, -shaft / 2},
		{body, -shaft / 2},
		{body, -head / 2},
		{eff, 0},
		{body, head / 2},
		{body, shaft / 2},
		{0, shaft / 2},
	}
	return transformPoints(local, a.x, a.y, a.angle)
}

// wrapAngle maps d into [-π, π).
func wrapAngle(d float64) float64 {
	d = math.Mod(d+math.Pi, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d - math.Pi
}

func (a *Arrow) Update(dt float64, level int) {
	if clampLevel(level) != a.level {
		a.ResetSequence(level)
	}
	a.fsm.tick(dt)
	if a.fsm.is(PhaseIntro) {
		if a.fsm.elapsed >= introDuration {
			a.fsm.to(PhaseActive)
		}
		return
	}
	if a.fsm.finished() {
		return
	}

	diff := wrapAngle(a.targetAngle - a.angle)
	maxTurn := arrowAngularSpeed * dt
	if math.Abs(diff) <= maxTurn {
		a.angle = a.targetAngle
	} else {
		a.angle += math.Copysign(maxTurn, diff)
	}

	dist := arrowBaseSpeed * byLevel(a.level, arrowSpeedFactor) * dt
	a.x += math.Cos(a.angle) * dist
	a.y += math.Sin(a.angle) * dist

	area := a.ctx.Area
	a.spawnTimer += dt
	if a.spawnTimer >= lotusSpawnInterval {
		a.spawnTimer = 0
		y := area.Y + a.ctx.Rng.Float64()*area.Size
		a.lotuses = append(a.lotuses, newLotus(area.Right()+lotusSpawnOffset, y, a.ctx.Rng))
	}

	poly := a.polygon()
	kept := a.lotuses[:0]
	for _, l := range a.lotuses {
		l.update(dt, a.level)
		if circleIntersectsPolygon(point{l.X, l.Y}, l.Radius(), poly) {
			l.touched = true
			a.fsm.to(PhaseFailed)
			a.ctx.Events.Emit(a.Name(), "shape", "failed", "hit a lotus", float64(a.passed))
			return
		}
		if l.gone(area) {
			if !l.touched {
				a.passed++
			}
			continue
		}
		kept = append(kept, l)
	}
	a.lotuses = kept

	if a.passed >= byLevel(a.level, arrowLotusToWin) {
		a.fsm.to(PhaseDone)
		a.ctx.Events.Emit(a.Name(), "shape", "completed", fmt.Sprintf("%d lotus passed", a.passed), float64(a.passed))
	}
}

// HandleClick turns the arrow a quarter turn; every tap counts as a hit.
func (a *Arrow) HandleClick(_, _ float64) bool {
	if !a.fsm.is(PhaseActive) {
		return false
	}
	a.targetAngle = math.Mod(a.targetAngle-math.Pi/2+2*math.Pi, 2*math.Pi)
	return true
}

func (a *Arrow) CheckBoundary(areaX, areaY, areaSize float64) bool {
	if a.fsm.is(PhaseFailed) {
		return true
	}
	return boundsOf(a.polygon()).outside(areaX, areaY, areaSize)
}

func (a *Arrow) Draw(screen *ebiten.Image) {
	alpha := 1.0
	if a.fsm.is(PhaseIntro) {
		alpha = introAlpha(a.fsm.elapsed)
	}
	poly := a.polygon()
	fillPolygon(screen, poly, withAlpha(arrowColor, alpha))
	if a.fsm.is(PhaseIntro) {
		if p, ok := introGlint(a.fsm.elapsed); ok {
			drawPerimeterGlint(screen, poly, p)
		}
	}
	for _, l := range a.lotuses {
		l.draw(screen)
	}
}
