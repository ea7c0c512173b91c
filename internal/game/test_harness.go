package game

import (
	"fmt"
	"math/rand"
)

// TestSession is a headless session harness used by tests and the headless
// report. It drives Session exactly as Game.Update does, without Ebiten.
type TestSession struct {
	Session *Session
	SimLog  *SimLog
	Frame   int

	cfg        Config
	startLevel int
	verbose    bool
	store      ScoreStore
}

// SimOption is a builder function applied to a TestSession before the
// session is created.
type SimOption func(*TestSession)

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return func(ts *TestSession) { ts.cfg.Seed = seed }
}

// WithLevel starts the session at level.
func WithLevel(level int) SimOption {
	return func(ts *TestSession) { ts.startLevel = level }
}

// WithShapes restricts the rotation to the named shapes.
func WithShapes(names ...string) SimOption {
	return func(ts *TestSession) { ts.cfg.Shapes = names }
}

// WithMaxMistakes sets the heart's mistake budget.
func WithMaxMistakes(n int) SimOption {
	return func(ts *TestSession) { ts.cfg.MaxMistakes = n }
}

// WithLevelDurations sets the per-level durations in seconds.
func WithLevelDurations(seconds ...float64) SimOption {
	return func(ts *TestSession) { ts.cfg.LevelDurations = seconds }
}

// WithArea sets the play area.
func WithArea(area PlayArea) SimOption {
	return func(ts *TestSession) { ts.cfg.Area = area }
}

// WithStore persists the best score through st.
func WithStore(st ScoreStore) SimOption {
	return func(ts *TestSession) { ts.store = st }
}

// WithVerbose enables per-frame verbose logging.
func WithVerbose(v bool) SimOption {
	return func(ts *TestSession) { ts.verbose = v }
}

// NewTestSession builds a seeded session (seed 1 unless WithSeed is given).
// It panics on an invalid configuration; callers validate user input first.
func NewTestSession(opts ...SimOption) *TestSession {
	ts := &TestSession{
		cfg:        DefaultConfig(),
		startLevel: minLevel,
		store:      &MemoryScoreStore{},
	}
	ts.cfg.Seed = 1
	for _, o := range opts {
		o(ts)
	}
	ts.SimLog = NewSimLog(ts.verbose)
	s, err := NewSession(ts.cfg,
		WithSimLog(ts.SimLog),
		WithScoreStore(ts.store),
		WithStartLevel(ts.startLevel),
	)
	if err != nil {
		panic(fmt.Sprintf("test session: %v", err))
	}
	ts.Session = s
	return ts
}

// Step advances one frame of dt ms.
func (ts *TestSession) Step(dt float64) {
	ts.Frame++
	ts.Session.Step(dt)
	if cur := ts.Session.CurrentShape(); cur != nil {
		ts.SimLog.AddVerbose(ts.Session.Elapsed(), ts.Session.Level(), cur.Name(), "frame", "score",
			fmt.Sprintf("%d", ts.Session.Score()), float64(ts.Session.Score()))
	}
}

// RunFor advances ms of game time in frames of dt ms. It stops early at game over.
func (ts *TestSession) RunFor(ms, dt float64) {
	for t := 0.0; t < ms && !ts.Session.Over(); t += dt {
		ts.Step(dt)
	}
}

// RunUntil advances frames of dt ms until predicate holds or maxMs passes.
// It returns the elapsed session time when the predicate held, or -1.
func (ts *TestSession) RunUntil(predicate func(*TestSession) bool, maxMs, dt float64) float64 {
	for t := 0.0; t < maxMs; t += dt {
		ts.Step(dt)
		if predicate(ts) {
			return ts.Session.Elapsed()
		}
	}
	return -1
}

// Click presses at (x,y).
func (ts *TestSession) Click(x, y float64) bool { return ts.Session.Click(x, y) }

// Current returns the shape on screen.
func (ts *TestSession) Current() Shape { return ts.Session.CurrentShape() }

// Player is a scripted input source for headless runs.
type Player interface {
	Act(ts *TestSession, dt float64)
}

// RandomClicker taps random points in the play area at a mean rate, and
// steers toward the lowest falling ball when a paddle is on screen.
type RandomClicker struct {
	Rate float64 // mean clicks per second
	rng  *rand.Rand
}

// NewRandomClicker creates a clicker with its own seeded source.
func NewRandomClicker(rate float64, seed int64) *RandomClicker {
	return &RandomClicker{Rate: rate, rng: rand.New(rand.NewSource(seed))} // #nosec G404 -- scripted player
}

func (rc *RandomClicker) Act(ts *TestSession, dt float64) {
	s := ts.Session
	if c, ok := s.CurrentShape().(*Circle); ok {
		if b := c.lowestFallingBall(); b != nil {
			s.PointerMove(b.x, b.y)
		}
	}
	if rc.rng.Float64() >= rc.Rate*dt/1000 {
		return
	}
	a := s.Config().Area
	s.Click(a.X+rc.rng.Float64()*a.Size, a.Y+rc.rng.Float64()*a.Size)
}

// Play runs the session with p acting before every frame until game over or
// maxMs passes.
func (ts *TestSession) Play(p Player, maxMs, dt float64) {
	for t := 0.0; t < maxMs && !ts.Session.Over(); t += dt {
		p.Act(ts, dt)
		ts.Step(dt)
	}
}
