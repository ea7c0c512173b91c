package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Heart rhythm tuning (milliseconds unless noted).
const (
	heartRadius         = 60.0 // px, collision and contact radius
	heartMarkerRadius   = 12.0 // px
	heartTargetRing     = 20.0 // px, radius of the ring markers must reach
	heartDisplayTail    = 600.0
	heartEarlyAllowance = 120.0
	heartHitWindowEnd   = 150.0
	heartMissWindowEnd  = 250.0
	heartMinSpawnGap    = 180.0
	heartRefractory     = 220.0
	heartStunDuration   = 900.0
	heartFallDuration   = 1500.0
	heartFadeOut        = 300.0
	heartPulseDecay     = 250.0
	heartFallGravity    = 0.0012 // px/ms²
)

var (
	heartBeatChoices = [3][]float64{{600, 800}, {450, 600, 800}, {350, 450, 600}}
	heartBeatCount   = [3]int{4, 5, 6}
	heartRounds      = [3]int{2, 2, 3}
	heartTravel      = [3]float64{1400, 1200, 1000}
	heartColor       = color.RGBA{R: 255, A: 255}
)

// BeatMarker is a timed target that must be clicked as it reaches the heart.
// Times are on the heart clock.
type BeatMarker struct {
	SpawnTime        float64
	TargetTime       float64
	FirstContactTime float64
	Hit              bool
	Missed           bool
	Judged           bool
	Fading           bool
	FadeOutTimer     float64
	fromLeft         bool
}

// hittable reports whether a click at now lands inside the marker's window.
func (m *BeatMarker) hittable(now float64) bool {
	return !m.Judged &&
		now >= m.FirstContactTime-heartEarlyAllowance &&
		now <= m.TargetTime+heartHitWindowEnd
}

// overdue reports whether the marker passed its miss deadline unhit.
func (m *BeatMarker) overdue(now float64) bool {
	return !m.Judged && now > m.TargetTime+heartMissWindowEnd
}

func (m *BeatMarker) judgeHit() bool {
	if m.Judged {
		return false
	}
	m.Hit = true
	m.Judged = true
	m.startFade()
	return true
}

func (m *BeatMarker) judgeMiss() bool {
	if m.Judged {
		return false
	}
	m.Missed = true
	m.Judged = true
	m.startFade()
	return true
}

func (m *BeatMarker) startFade() {
	if m.Fading {
		return
	}
	m.Fading = true
	m.FadeOutTimer = heartFadeOut
}

func (m *BeatMarker) fade(dt float64) {
	if m.Fading {
		m.FadeOutTimer = math.Max(0, m.FadeOutTimer-dt)
	}
}

// layoutMarkers builds one marker per interval for an input phase starting at
// t0. Targets sit at t0 + travel + cumulative interval; markers whose spawn
// would come within heartMinSpawnGap of the previous one are pushed later,
// together with every marker after them.
func layoutMarkers(t0 float64, intervals []float64, travel, distance float64) []*BeatMarker {
	contactFrac := (distance - (heartTargetRing + heartMarkerRadius)) / distance
	if contactFrac < 0 {
		contactFrac = 0
	}
	markers := make([]*BeatMarker, 0, len(intervals))
	cumulative := 0.0
	shift := 0.0
	for i, iv := range intervals {
		cumulative += iv
		target := t0 + travel + cumulative + shift
		spawn := target - travel
		if i > 0 {
			prev := markers[i-1]
			if gap := spawn - prev.SpawnTime; gap < heartMinSpawnGap {
				d := heartMinSpawnGap - gap
				shift += d
				target += d
				spawn += d
			}
		}
		markers = append(markers, &BeatMarker{
			SpawnTime:        spawn,
			TargetTime:       target,
			FirstContactTime: spawn + travel*contactFrac,
			fromLeft:         i%2 == 0,
		})
	}
	return markers
}

type heartHalf struct {
	x, y   float64
	vx, vy float64
	angle  float64
	spin   float64
}

// Heart is the rhythm-tap shape: it plays a beat pattern, then the player
// taps the pattern back as markers converge on it.
type Heart struct {
	ctx   ShapeContext
	x, y  float64
	level int
	fsm   phaseMachine
	clock float64 // ms since the last reset

	pattern      []float64
	displayIndex int
	displayTimer float64
	pulse        float64
	round        int
	rounds       int

	markers        []*BeatMarker
	travelDuration float64
	travelDistance float64

	mistakes  int
	cracks    [][]point // offsets from the heart centre
	lastStray float64
	hasStray  bool
	stunUntil float64
	stuns     int

	halves [2]heartHalf
}

// NewHeart creates a heart centred in the play area.
func NewHeart(ctx ShapeContext) *Heart {
	h := &Heart{ctx: ctx.withDefaults()}
	h.ResetSequence(1)
	return h
}

func (h *Heart) Name() string { return "Heart" }

// Phase returns the current lifecycle phase.
func (h *Heart) Phase() Phase { return h.fsm.phase }

// Mistakes returns the number of missed markers this sequence.
func (h *Heart) Mistakes() int { return h.mistakes }

// Broken reports whether the heart has exhausted its mistake budget.
func (h *Heart) Broken() bool {
	return h.fsm.is(PhaseBroken) || h.fsm.is(PhaseFailed)
}

// Status summarises progress for the HUD.
func (h *Heart) Status() string {
	return fmt.Sprintf("%s  round %d/%d  mistakes %d/%d", h.fsm.phase, min(h.round+1, h.rounds), h.rounds, h.mistakes, h.ctx.MaxMistakes)
}

func (h *Heart) ResetSequence(level int) {
	h.level = clampLevel(level)
	h.x = h.ctx.Area.CenterX()
	h.y = h.ctx.Area.CenterY()
	h.fsm.reset()
	h.clock = 0
	h.pattern = nil
	h.displayIndex = 0
	h.displayTimer = 0
	h.pulse = 0
	h.round = 0
	h.rounds = byLevel(h.level, heartRounds)
	h.markers = nil
	h.travelDuration = byLevel(h.level, heartTravel)
	h.travelDistance = h.ctx.Area.Size / 2
	h.mistakes = 0
	h.cracks = nil
	h.hasStray = false
	h.stunUntil = 0
	h.stuns = 0
}

func (h *Heart) Reset() { h.ResetSequence(h.level) }

func (h *Heart) IsSequenceCompleted() bool { return h.fsm.is(PhaseDone) }

// newPattern picks the inter-beat intervals for one round.
func (h *Heart) newPattern() []float64 {
	choices := byLevel(h.level, heartBeatChoices)
	n := byLevel(h.level, heartBeatCount)
	p := make([]float64, n)
	for i := range p {
		p[i] = choices[h.ctx.Rng.Intn(len(choices))]
	}
	return p
}

func (h *Heart) startDisplay() {
	h.pattern = h.newPattern()
	h.displayIndex = 0
	h.displayTimer = 0
	h.markers = nil
	h.fsm.to(PhaseDisplay)
	h.ctx.Events.Emit(h.Name(), "rhythm", "display", fmt.Sprintf("round %d pattern %v", h.round+1, h.pattern), float64(len(h.pattern)))
}

func (h *Heart) startInput() {
	h.fsm.to(PhaseInput)
	h.markers = layoutMarkers(h.clock, h.pattern, h.travelDuration, h.travelDistance)
	h.hasStray = false
	h.ctx.Events.Emit(h.Name(), "rhythm", "input", fmt.Sprintf("%d markers", len(h.markers)), float64(len(h.markers)))
}

func (h *Heart) Update(dt float64, level int) {
	if clampLevel(level) != h.level {
		h.ResetSequence(level)
	}
	h.clock += dt
	h.fsm.tick(dt)
	h.pulse = math.Max(0, h.pulse-dt/heartPulseDecay)
	for _, m := range h.markers {
		m.fade(dt)
	}

	switch h.fsm.phase {
	case PhaseIntro:
		if h.fsm.elapsed >= introDuration {
			h.startDisplay()
		}
	case PhaseDisplay:
		h.displayTimer += dt
		for h.displayIndex < len(h.pattern) && h.displayTimer >= h.pattern[h.displayIndex] {
			h.displayTimer -= h.pattern[h.displayIndex]
			h.displayIndex++
			h.pulse = 1
			h.ctx.Events.Emit(h.Name(), "rhythm", "beat", fmt.Sprintf("beat %d/%d", h.displayIndex, len(h.pattern)), float64(h.displayIndex))
		}
		if h.displayIndex >= len(h.pattern) && h.displayTimer >= heartDisplayTail {
			h.startInput()
		}
	case PhaseInput:
		h.updateInput()
	case PhaseBroken:
		for i := range h.halves {
			hh := &h.halves[i]
			hh.vy += heartFallGravity * dt
			hh.x += hh.vx * dt
			hh.y += hh.vy * dt
			hh.angle += hh.spin * dt
		}
		if h.fsm.elapsed >= heartFallDuration {
			h.fsm.to(PhaseFailed)
			h.ctx.Events.Emit(h.Name(), "shape", "failed", "heart fell apart", float64(h.mistakes))
		}
	}
}

func (h *Heart) updateInput() {
	for _, m := range h.markers {
		if !m.overdue(h.clock) {
			continue
		}
		m.judgeMiss()
		h.mistakes++
		h.regenerateCracks()
		h.ctx.Events.Emit(h.Name(), "rhythm", "miss", fmt.Sprintf("mistake %d/%d", h.mistakes, h.ctx.MaxMistakes), float64(h.mistakes))
		if h.mistakes >= h.ctx.MaxMistakes {
			h.breakApart()
			return
		}
	}
	for _, m := range h.markers {
		if !m.Judged {
			return
		}
	}
	h.round++
	if h.round < h.rounds {
		h.startDisplay()
		return
	}
	h.fsm.to(PhaseDone)
	h.ctx.Events.Emit(h.Name(), "shape", "completed", fmt.Sprintf("%d rounds, %d mistakes", h.rounds, h.mistakes), float64(h.mistakes))
}

// regenerateCracks redraws the damage overlay with one crack per mistake.
func (h *Heart) regenerateCracks() {
	h.cracks = h.cracks[:0]
	rng := h.ctx.Rng
	for i := 0; i < h.mistakes; i++ {
		a := rng.Float64() * 2 * math.Pi
		pts := []point{{x: 0, y: -10}}
		r := 0.0
		for j := 0; j < 4; j++ {
			r += heartRadius * (0.15 + rng.Float64()*0.12)
			a += (rng.Float64() - 0.5) * 0.9
			pts = append(pts, point{x: r * math.Cos(a), y: r*math.Sin(a) - 10})
		}
		h.cracks = append(h.cracks, pts)
	}
}

func (h *Heart) breakApart() {
	h.fsm.to(PhaseBroken)
	h.halves = [2]heartHalf{
		{x: h.x, y: h.y, vx: -0.08, vy: -0.25, spin: -0.002},
		{x: h.x, y: h.y, vx: 0.08, vy: -0.25, spin: 0.002},
	}
	h.ctx.Events.Emit(h.Name(), "rhythm", "broken", fmt.Sprintf("%d mistakes", h.mistakes), float64(h.mistakes))
}

func (h *Heart) HandleClick(x, y float64) bool {
	if !h.fsm.is(PhaseInput) || !h.ctx.Area.Contains(x, y) {
		return false
	}
	if h.clock < h.stunUntil {
		return false
	}
	for _, m := range h.markers {
		if m.hittable(h.clock) {
			m.judgeHit()
			h.hasStray = false
			h.ctx.Events.Emit(h.Name(), "rhythm", "hit", fmt.Sprintf("offset %+.0fms", h.clock-m.TargetTime), h.clock-m.TargetTime)
			return true
		}
	}
	if h.hasStray && h.clock-h.lastStray <= heartRefractory {
		h.hasStray = false
		h.stunUntil = h.clock + heartStunDuration
		h.stuns++
		h.ctx.Events.Emit(h.Name(), "rhythm", "stun", "double tap without a beat", float64(h.stuns))
		return false
	}
	h.lastStray = h.clock
	h.hasStray = true
	return false
}

func (h *Heart) CheckBoundary(areaX, areaY, areaSize float64) bool {
	if h.fsm.is(PhaseFailed) {
		return true
	}
	return squareBounds(h.x, h.y, heartRadius).outside(areaX, areaY, areaSize)
}

// markerPos returns where a marker is drawn at the current clock.
func (h *Heart) markerPos(m *BeatMarker) (float64, float64) {
	progress := (h.clock - m.SpawnTime) / h.travelDuration
	dir := 1.0
	start := h.x - h.travelDistance
	if !m.fromLeft {
		dir = -1
		start = h.x + h.travelDistance
	}
	return start + dir*progress*h.travelDistance, h.y
}

// heartLobes returns the right and left halves of the heart outline as
// closed polygons, relative to the centre, at the given scale.
func heartLobes(scale float64) (right, left []point) {
	const steps = 20
	bez := func(p0, p1, p2, p3 point) []point {
		out := make([]point, 0, steps+1)
		for i := 0; i <= steps; i++ {
			t := float64(i) / steps
			u := 1 - t
			out = append(out, point{
				x: u*u*u*p0.x + 3*u*u*t*p1.x + 3*u*t*t*p2.x + t*t*t*p3.x,
				y: u*u*u*p0.y + 3*u*u*t*p1.y + 3*u*t*t*p2.y + t*t*t*p3.y,
			})
		}
		return out
	}
	s := scale
	right = bez(point{0, 40 * s}, point{120 * s, 0}, point{55 * s, -110 * s}, point{0, -50 * s})
	left = bez(point{0, -50 * s}, point{-55 * s, -110 * s}, point{-120 * s, 0}, point{0, 40 * s})
	return right, left
}

func (h *Heart) Draw(screen *ebiten.Image) {
	scale := heartRadius / 60 * (1 + 0.12*h.pulse)

	if h.fsm.is(PhaseBroken) || h.fsm.is(PhaseFailed) {
		right, left := heartLobes(scale)
		for i, lobe := range [][]point{left, right} {
			hh := h.halves[i]
			fillPolygon(screen, transformPoints(lobe, hh.x, hh.y, hh.angle), heartColor)
		}
		return
	}

	cx := h.x
	if h.clock < h.stunUntil {
		cx += math.Sin(float64(time.Now().UnixMilli())/50) * 6
	}

	alpha := 1.0
	if h.fsm.is(PhaseIntro) {
		alpha = introAlpha(h.fsm.elapsed)
	}
	right, left := heartLobes(scale)
	outline := append(append([]point{}, right...), left[1:]...)
	world := transformPoints(outline, cx, h.y, 0)
	fillPolygon(screen, world, withAlpha(heartColor, alpha))

	if h.fsm.is(PhaseIntro) {
		if p, ok := introGlint(h.fsm.elapsed); ok {
			drawPerimeterGlint(screen, world, p)
		}
	}

	crackCol := color.RGBA{R: 40, G: 0, B: 0, A: 230}
	for _, c := range h.cracks {
		strokePolyline(screen, transformPoints(c, cx, h.y, 0), 2, crackCol)
	}

	if h.fsm.is(PhaseInput) {
		ring := color.RGBA{R: 255, G: 200, B: 200, A: 120}
		vector.StrokeCircle(screen, float32(cx), float32(h.y), heartTargetRing+heartMarkerRadius, 2, ring, true)
		for _, m := range h.markers {
			if h.clock < m.SpawnTime {
				continue
			}
			a := 1.0
			if m.Fading {
				a = m.FadeOutTimer / heartFadeOut
			}
			if a <= 0 {
				continue
			}
			mc := color.RGBA{R: 255, G: 255, B: 255, A: 255}
			if m.Hit {
				mc = color.RGBA{R: 120, G: 255, B: 140, A: 255}
			} else if m.Missed {
				mc = color.RGBA{R: 90, G: 90, B: 90, A: 255}
			}
			mx, my := h.markerPos(m)
			vector.FillCircle(screen, float32(mx), float32(my), heartMarkerRadius, withAlpha(mc, a), true)
		}
	}
}
