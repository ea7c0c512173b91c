package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	kiteSize         = 100.0
	kiteGravity      = 0.001 // px per ms²
	kiteFallDelay    = 500.0
	kiteFlap         = -0.5 // px per ms
	kiteHitMargin    = 10.0
	strikeLifetime   = 300.0
	strikeWarning    = 500.0
	strikePoints     = 10
	strikeJitter     = 20.0
	strikeGlowWidth  = 50.0
	strikeGlowHeight = 100.0
)

var (
	strikeInterval   = [3]float64{3000, 2000, 1500}
	strikesPerVolley = [3]int{1, 1, 2}
	kiteStrikesToWin = [3]int{5, 6, 8}
	kiteColor        = color.RGBA{R: 0x19, G: 0x19, B: 0x70, A: 255}
)

type strike struct {
	path     []point
	lifetime float64
}

type strikeWarningMark struct {
	left bool
	y    float64
}

// Kite hangs in the wind under gravity. Taps flap it upward while lightning
// crosses the play area sideways at the height an edge glow warns of. It fails
// when it hits the floor or a bolt.
type Kite struct {
	ctx   ShapeContext
	level int
	fsm   phaseMachine

	x, y     float64
	vy       float64
	rotation float64
	clock    float64
	fallWait float64

	strikeTimer float64
	strikes     []strike
	warning     *strikeWarningMark
	survived    int
}

// NewKite creates the lightning-dodging kite.
func NewKite(ctx ShapeContext) *Kite {
	k := &Kite{ctx: ctx.withDefaults()}
	k.ResetSequence(1)
	return k
}

func (k *Kite) Name() string { return "Kite" }

// Status summarises progress for the HUD.
func (k *Kite) Status() string {
	return fmt.Sprintf("strikes dodged %d/%d", k.survived, byLevel(k.level, kiteStrikesToWin))
}

func (k *Kite) ResetSequence(level int) {
	k.level = clampLevel(level)
	k.fsm.reset()
	k.x = k.ctx.Area.CenterX()
	k.y = k.ctx.Area.CenterY()
	k.vy = 0
	k.rotation = 0
	k.clock = 0
	k.fallWait = 0
	k.strikeTimer = 0
	k.strikes = k.strikes[:0]
	k.warning = nil
	k.survived = 0
}

func (k *Kite) Reset() { k.ResetSequence(k.level) }

func (k *Kite) IsSequenceCompleted() bool { return k.fsm.is(PhaseDone) }

// polygon returns the tilted diamond in world space.
func (k *Kite) polygon() []point {
	local := []point{
		{0, 0.625 * kiteSize},
		{0.425 * kiteSize, 0},
		{0, -0.425 * kiteSize},
		{-0.425 * kiteSize, 0},
	}
	return transformPoints(local, k.x, k.y, k.rotation)
}

func (k *Kite) Update(dt float64, level int) {
	if clampLevel(level) != k.level {
		k.ResetSequence(level)
	}
	k.fsm.tick(dt)
	if k.fsm.is(PhaseIntro) {
		if k.fsm.elapsed >= introDuration {
			k.fsm.to(PhaseActive)
		}
		return
	}
	if k.fsm.finished() {
		return
	}

	k.clock += dt
	k.rotation = 0.1 * math.Sin(k.clock/200)
	if k.fallWait < kiteFallDelay {
		k.fallWait += dt
	} else {
		k.vy += kiteGravity * dt
		k.y += k.vy * dt
	}

	interval := byLevel(k.level, strikeInterval)
	k.strikeTimer += dt
	if k.strikeTimer >= interval-strikeWarning && k.warning == nil {
		a := k.ctx.Area
		k.warning = &strikeWarningMark{
			left: k.ctx.Rng.Float64() < 0.5,
			y:    a.Y + k.ctx.Rng.Float64()*a.Size,
		}
	}
	if k.strikeTimer >= interval {
		k.strikeTimer = 0
		k.spawnStrikes(byLevel(k.level, strikesPerVolley))
		k.warning = nil
	}

	kept := k.strikes[:0]
	for _, s := range k.strikes {
		s.lifetime -= dt
		if s.lifetime <= 0 {
			k.survived++
			continue
		}
		kept = append(kept, s)
	}
	k.strikes = kept

	if reason, failed := k.hazard(); failed {
		k.fsm.to(PhaseFailed)
		k.ctx.Events.Emit(k.Name(), "shape", "failed", reason, float64(k.survived))
		return
	}
	if k.survived >= byLevel(k.level, kiteStrikesToWin) {
		k.fsm.to(PhaseDone)
		k.ctx.Events.Emit(k.Name(), "shape", "completed", fmt.Sprintf("%d strikes dodged", k.survived), float64(k.survived))
	}
}

// spawnStrikes sends count bolts across the play area from the warned edge at
// the warned height. A kite flying in that band is struck.
func (k *Kite) spawnStrikes(count int) {
	a := k.ctx.Area
	left := k.ctx.Rng.Float64() < 0.5
	y0 := a.Y + k.ctx.Rng.Float64()*a.Size
	if k.warning != nil {
		left = k.warning.left
		y0 = k.warning.y
	}
	baseX, dir := a.Right(), -1.0
	if left {
		baseX, dir = a.X, 1.0
	}
	step := a.Size / (strikePoints - 1)
	for n := 0; n < count; n++ {
		path := make([]point, strikePoints)
		for i := range path {
			path[i] = point{
				x: baseX + dir*float64(i)*step + (k.ctx.Rng.Float64()-0.5)*strikeJitter,
				y: y0 + (k.ctx.Rng.Float64()-0.5)*strikeJitter,
			}
		}
		k.strikes = append(k.strikes, strike{path: path, lifetime: strikeLifetime})
	}
	k.ctx.Events.Emit(k.Name(), "hazard", "strike", fmt.Sprintf("%d bolt(s) at y=%.0f", count, y0), float64(count))
}

// hazard reports floor contact or a bolt crossing the kite.
func (k *Kite) hazard() (string, bool) {
	a := k.ctx.Area
	if k.y+kiteSize/2 >= a.Bottom() {
		return "hit the ground", true
	}
	poly := k.polygon()
	for _, s := range k.strikes {
		for i := 0; i+1 < len(s.path); i++ {
			if segmentIntersectsPolygon(s.path[i], s.path[i+1], poly) {
				return "struck by lightning", true
			}
		}
	}
	return "", false
}

// HandleClick flaps the kite when the tap lands within its enlarged box.
func (k *Kite) HandleClick(x, y float64) bool {
	if !k.fsm.is(PhaseActive) {
		return false
	}
	half := kiteSize/2 + kiteHitMargin
	if x < k.x-half || x > k.x+half || y < k.y-half || y > k.y+half {
		return false
	}
	k.vy = kiteFlap
	return true
}

func (k *Kite) CheckBoundary(areaX, areaY, areaSize float64) bool {
	if k.fsm.is(PhaseFailed) {
		return true
	}
	if k.y+kiteSize/2 >= areaY+areaSize {
		return true
	}
	return boundsOf(k.polygon()).outside(areaX, areaY, areaSize)
}

func (k *Kite) Draw(screen *ebiten.Image) {
	alpha := 1.0
	if k.fsm.is(PhaseIntro) {
		alpha = introAlpha(k.fsm.elapsed)
	}
	poly := k.polygon()
	fillPolygon(screen, poly, withAlpha(kiteColor, alpha))
	if k.fsm.is(PhaseIntro) {
		if p, ok := introGlint(k.fsm.elapsed); ok {
			drawPerimeterGlint(screen, poly, p)
		}
	}

	for _, s := range k.strikes {
		strokePolyline(screen, s.path, 8, color.RGBA{R: 0x40, G: 0, B: 0x40, A: 0x60})
		strokePolyline(screen, s.path, 4, color.White)
	}

	if k.warning == nil {
		return
	}
	a := k.ctx.Area
	gx := a.Right() - strikeGlowWidth
	if k.warning.left {
		gx = a.X
	}
	gy := k.warning.y - strikeGlowHeight/2
	if gy < a.Y {
		gy = a.Y
	}
	if gy+strikeGlowHeight > a.Bottom() {
		gy = a.Bottom() - strikeGlowHeight
	}
	// Horizontal fade: bright in the middle column, clear at both ends.
	const bands = 10
	w := strikeGlowWidth / bands
	for i := 0; i < bands; i++ {
		t := (float64(i) + 0.5) / bands
		intensity := 0.5 * (1 - math.Abs(2*t-1))
		vector.FillRect(screen, float32(gx+float64(i)*w), float32(gy), float32(w), strikeGlowHeight,
			withAlpha(color.RGBA{R: 255, G: 255, B: 255, A: 255}, intensity), false)
	}
}
