package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Paddle-and-ball tuning. Speeds are px per 60 Hz frame and scaled by dt.
const (
	paddleWidth       = 120.0
	paddleHeight      = 12.0
	paddleLerp        = 0.2
	ballMaxSpeed      = 3.5
	ballBaseSpeed     = 2.0
	ballLaunchStagger = 600.0 // ms between ball launches
	ballSquishMs      = 180.0
	crossingThreshold = 10     // wall touches that stun the paddle
	crossingWindow    = 2000.0 // ms
	paddleStunMs      = 1500.0
)

var (
	circleReturnsToClear = [3]int{6, 8, 10}
	circleColor          = color.RGBA{R: 0x33, G: 0x99, B: 0xFF, A: 255}
)

type squishAxis int

const (
	squishNone squishAxis = iota
	squishHorizontal
	squishVertical
)

type ball struct {
	x, y       float64
	vx, vy     float64
	baseVX     float64
	baseVY     float64
	radius     float64
	launched   bool
	launchWait float64
	scaleX     float64
	scaleY     float64
	squish     float64
	lastBounce squishAxis
}

// Circle keeps one or more balls in the air with a paddle that follows the
// pointer. A ball falling past the bottom ends the game.
type Circle struct {
	ctx   ShapeContext
	level int
	fsm   phaseMachine

	paddleX       float64
	paddleY       float64
	paddleTargetX float64
	morph         float64 // 0..1 paddle morph during intro

	balls   []*ball
	returns int
	toClear int

	clock      float64
	crossings  []float64
	lastSide   int // -1 left, 1 right, 0 none
	stunned    bool
	stunTimer  float64
	ballRadius float64
}

// NewCircle creates the paddle-and-ball shape.
func NewCircle(ctx ShapeContext) *Circle {
	c := &Circle{ctx: ctx.withDefaults(), ballRadius: 20}
	c.paddleY = c.ctx.Area.Bottom() - paddleHeight
	c.paddleX = c.ctx.Area.CenterX() - paddleWidth/2
	c.paddleTargetX = c.paddleX
	c.ResetSequence(1)
	return c
}

func (c *Circle) Name() string { return "Circle" }

// Status summarises progress for the HUD.
func (c *Circle) Status() string {
	s := fmt.Sprintf("returns %d/%d", c.returns, c.toClear)
	if c.stunned {
		s += "  paddle stunned"
	}
	return s
}

func (c *Circle) ResetSequence(level int) {
	c.level = clampLevel(level)
	c.fsm.reset()
	c.morph = 0
	c.returns = 0
	c.toClear = byLevel(c.level, circleReturnsToClear)
	c.crossings = c.crossings[:0]
	c.lastSide = 0
	c.stunned = false
	c.stunTimer = 0
	c.balls = c.balls[:0]

	area := c.ctx.Area
	speed := ballBaseSpeed * (1 + 0.05*float64(c.level-1))
	for i := 0; i < c.level; i++ {
		dir := 1.0
		if c.ctx.Rng.Float64() > 0.5 {
			dir = -1
		}
		c.balls = append(c.balls, &ball{
			x:          area.CenterX(),
			y:          area.CenterY(),
			radius:     c.ballRadius,
			launchWait: float64(i) * ballLaunchStagger,
			scaleX:     1,
			scaleY:     1,
			baseVX:     dir * speed * (0.9 + c.ctx.Rng.Float64()*0.2),
			baseVY:     -speed,
		})
	}
}

func (c *Circle) Reset() { c.ResetSequence(c.level) }

func (c *Circle) IsSequenceCompleted() bool { return c.fsm.is(PhaseDone) }

// PointerMove steers the paddle.
func (c *Circle) PointerMove(x, _ float64) {
	if c.fsm.is(PhaseIntro) || c.stunned {
		return
	}
	c.paddleTargetX = x - paddleWidth/2
}

// trackCrossings stuns the paddle when it is slammed from wall to wall too often.
func (c *Circle) trackCrossings() {
	area := c.ctx.Area
	side := 0
	if c.paddleX <= area.X {
		side = -1
	} else if c.paddleX+paddleWidth >= area.Right() {
		side = 1
	}
	if side != 0 && side != c.lastSide {
		c.crossings = append(c.crossings, c.clock)
		c.lastSide = side
	}
	cutoff := c.clock - crossingWindow
	kept := c.crossings[:0]
	for _, t := range c.crossings {
		if t >= cutoff {
			kept = append(kept, t)
		}
	}
	c.crossings = kept
	if len(c.crossings) >= crossingThreshold {
		c.stunned = true
		c.stunTimer = paddleStunMs
		c.crossings = c.crossings[:0]
		c.ctx.Events.Emit(c.Name(), "hazard", "stun", "paddle overheated", paddleStunMs)
	}
}

func (c *Circle) Update(dt float64, level int) {
	if clampLevel(level) != c.level {
		c.ResetSequence(level)
	}
	c.clock += dt
	c.fsm.tick(dt)
	c.trackCrossings()

	if c.stunned {
		c.stunTimer -= dt
		if c.stunTimer <= 0 {
			c.stunned = false
		}
	} else {
		c.paddleX += (c.paddleTargetX - c.paddleX) * lerpFrame(paddleLerp, dt)
	}

	if c.fsm.is(PhaseIntro) {
		c.morph = math.Min(1, c.fsm.elapsed/introDuration)
		c.paddleX = c.ctx.Area.CenterX() - paddleWidth/2
		if c.fsm.elapsed >= introDuration {
			c.morph = 1
			c.paddleX = c.paddleTargetX
			c.fsm.to(PhaseActive)
		}
		return
	}
	if c.fsm.finished() {
		return
	}

	frames := dt / frameMs
	for _, b := range c.balls {
		if !b.launched {
			b.launchWait -= dt
			if b.launchWait <= 0 {
				b.vx, b.vy = b.baseVX, b.baseVY
				b.launched = true
			}
			continue
		}
		c.stepBall(b, frames, dt)
	}

	if c.returns >= c.toClear {
		c.fsm.to(PhaseDone)
		c.ctx.Events.Emit(c.Name(), "shape", "completed", fmt.Sprintf("%d returns", c.returns), float64(c.returns))
		return
	}
	if c.ballLost() {
		c.fsm.to(PhaseFailed)
		c.ctx.Events.Emit(c.Name(), "shape", "failed", "ball dropped", float64(c.returns))
	}
}

func (c *Circle) stepBall(b *ball, frames, dt float64) {
	area := c.ctx.Area
	b.vx = math.Max(-ballMaxSpeed, math.Min(ballMaxSpeed, b.vx))
	b.vy = math.Max(-ballMaxSpeed, math.Min(ballMaxSpeed, b.vy))
	b.x += b.vx * frames
	b.y += b.vy * frames

	if b.x-b.radius <= area.X {
		b.x = area.X + b.radius
		b.vx = -b.vx
		b.startSquish(squishVertical)
	}
	if b.x+b.radius >= area.Right() {
		b.x = area.Right() - b.radius
		b.vx = -b.vx
		b.startSquish(squishVertical)
	}
	if b.y-b.radius <= area.Y {
		b.y = area.Y + b.radius
		b.vy = -b.vy
		b.startSquish(squishHorizontal)
	}

	colliding := b.y+b.radius >= c.paddleY &&
		b.y-b.radius <= c.paddleY+paddleHeight &&
		b.x+b.radius >= c.paddleX &&
		b.x-b.radius <= c.paddleX+paddleWidth &&
		b.vy > 0
	if colliding {
		b.vy = -b.vy
		offset := (b.x-c.paddleX)/paddleWidth - 0.5
		b.vx += offset * 1.2
		b.y = c.paddleY - b.radius
		b.startSquish(squishHorizontal)
		c.returns++
		c.ctx.Events.Emit(c.Name(), "score", "return", fmt.Sprintf("return %d/%d", c.returns, c.toClear), float64(c.returns))
	}

	if b.squish > 0 {
		b.squish -= dt
		progress := 1 - b.squish/ballSquishMs
		amount := 0.25 * (1 - progress) * math.Sin(progress*math.Pi*2)
		if b.lastBounce == squishHorizontal {
			b.scaleX, b.scaleY = 1+amount, 1-amount
		} else {
			b.scaleX, b.scaleY = 1-amount, 1+amount
		}
	} else {
		b.scaleX, b.scaleY = 1, 1
	}
}

func (b *ball) startSquish(axis squishAxis) {
	b.lastBounce = axis
	b.squish = ballSquishMs
}

// lowestFallingBall returns the launched ball nearest the paddle that is
// moving down, or nil.
func (c *Circle) lowestFallingBall() *ball {
	var best *ball
	for _, b := range c.balls {
		if !b.launched || b.vy <= 0 {
			continue
		}
		if best == nil || b.y > best.y {
			best = b
		}
	}
	return best
}

func (c *Circle) ballLost() bool {
	bottom := c.ctx.Area.Bottom()
	for _, b := range c.balls {
		if b.y-b.radius > bottom {
			return true
		}
	}
	return false
}

// HandleClick never scores: the paddle follows the pointer instead.
func (c *Circle) HandleClick(_, _ float64) bool { return false }

func (c *Circle) CheckBoundary(areaX, areaY, areaSize float64) bool {
	if c.fsm.is(PhaseFailed) {
		return true
	}
	for _, b := range c.balls {
		if b.y-b.radius > areaY+areaSize {
			return true
		}
		if squareBounds(b.x, b.y, b.radius).outside(areaX, areaY, areaSize) {
			return true
		}
	}
	return false
}

func (c *Circle) Draw(screen *ebiten.Image) {
	area := c.ctx.Area

	// Paddle morphs from a full-width floor line into the paddle during intro.
	w := paddleWidth + (1-c.morph)*(area.Size-paddleWidth)
	h := paddleHeight*c.morph + (1 - c.morph)
	px := c.paddleX - (w-paddleWidth)/2
	py := area.Bottom() - h
	if c.stunned {
		px += math.Sin(float64(time.Now().UnixMilli())/50) * 6
	}
	pc := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if c.stunned {
		pc = withAlpha(pc, 0.3)
	}
	vector.FillRect(screen, float32(px), float32(py), float32(w), float32(h), pc, false)

	alpha := 1.0
	if c.fsm.is(PhaseIntro) {
		alpha = introAlpha(c.fsm.elapsed)
	}
	for _, b := range c.balls {
		fillEllipse(screen, b.x, b.y, b.radius*b.scaleX, b.radius*b.scaleY, 0, withAlpha(circleColor, alpha))
		if c.fsm.is(PhaseIntro) {
			if p, ok := introGlint(c.fsm.elapsed); ok {
				drawCircleGlint(screen, b.x, b.y, b.radius+2, p)
			}
		}
	}
}
