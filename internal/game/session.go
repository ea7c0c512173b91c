package game

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxStepMs bounds a single frame delta so a stalled tab does not fast-forward
// the level timer or tunnel shapes through walls.
const maxStepMs = 250.0

// Session owns one play-through: the level timer, score, best score and the
// shape rotation. It has no window dependency; Game drives it once per frame.
type Session struct {
	cfg    Config
	rng    *rand.Rand
	log    *SimLog
	feed   *EventFeed
	sounds SoundSink
	store  ScoreStore

	manager    *ShapeManager
	startLevel int
	level      int
	levelTime  float64
	elapsed    float64
	score      int
	best       int
	over       bool
	endedBy    string
	failCued   bool
}

// SessionOption configures optional collaborators.
type SessionOption func(*Session)

// WithScoreStore persists the best score through st.
func WithScoreStore(st ScoreStore) SessionOption {
	return func(s *Session) { s.store = st }
}

// WithSounds plays cues through snd.
func WithSounds(snd SoundSink) SessionOption {
	return func(s *Session) { s.sounds = snd }
}

// WithSimLog records events into sl instead of a fresh log.
func WithSimLog(sl *SimLog) SessionOption {
	return func(s *Session) { s.log = sl }
}

// WithStartLevel begins (and restarts) the session at level.
func WithStartLevel(level int) SessionOption {
	return func(s *Session) { s.startLevel = clampLevel(level) }
}

// NewSession validates cfg and starts a session at its first level.
func NewSession(cfg Config, opts ...SessionOption) (*Session, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Session{
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay only
		log:        NewSimLog(false),
		feed:       NewEventFeed(),
		sounds:     &NopSounds{},
		store:      &MemoryScoreStore{},
		startLevel: minLevel,
	}
	for _, o := range opts {
		o(s)
	}
	s.log.bind(func() (float64, int) { return s.elapsed, s.level })

	best, err := s.store.Load()
	if err != nil {
		log.Printf("session: load best score: %v", err)
	}
	s.best = best
	s.start()
	return s, nil
}

// start (re)builds the shapes and resets the run state.
func (s *Session) start() {
	s.level = s.startLevel
	s.levelTime = 0
	s.elapsed = 0
	s.score = 0
	s.over = false
	s.endedBy = ""
	s.failCued = false

	ctx := ShapeContext{
		Area:        s.cfg.Area,
		Rng:         s.rng,
		Events:      s,
		MaxMistakes: s.cfg.MaxMistakes,
	}
	s.manager = NewShapeManager(buildShapes(s.cfg.Shapes, ctx), s.rng)
	s.manager.level = s.level
	if cur := s.manager.Current(); cur != nil {
		cur.ResetSequence(s.level)
	}
	s.Emit("--", "session", "start", fmt.Sprintf("level %d", s.level), float64(s.level))
}

// Emit implements EventSink. Events go to the log, the feed and the speaker.
// A failure ends the run, so the fail cue sounds once even when a shape
// reports both breaking and failing.
func (s *Session) Emit(shape, category, key, value string, numVal float64) {
	s.log.Emit(shape, category, key, value, numVal)
	s.feed.Add(s.elapsed, shape, category, key+" "+value)
	c, ok := cueFor(category, key)
	if !ok {
		return
	}
	if c == CueFail {
		if s.failCued {
			return
		}
		s.failCued = true
	}
	s.sounds.Play(c)
}

// Step advances the session by dt milliseconds. Negative deltas count as zero
// and deltas above maxStepMs are clamped to it, so a driver that wants to skip
// a long stretch of game time must feed it in frame-sized steps.
func (s *Session) Step(dt float64) {
	if s.over {
		return
	}
	if dt < 0 {
		dt = 0
	}
	if dt > maxStepMs {
		dt = maxStepMs
	}
	s.levelTime += dt
	s.elapsed += dt

	s.manager.Update(dt, s.level)

	a := s.cfg.Area
	if s.manager.CheckBoundary(a.X, a.Y, a.Size) {
		s.gameOver()
		return
	}
	completed := s.manager.IsSequenceCompleted()
	if completed {
		bonus := s.cfg.CompletionBonus * s.level
		s.score += bonus
		s.Emit(s.currentName(), "score", "bonus", fmt.Sprintf("+%d", bonus), float64(bonus))
	}
	// One advance per step: a level change already brings on the next shape.
	if s.level < s.finalLevel() && s.levelTime >= s.cfg.LevelDurations[s.level-1]*1000 {
		s.level++
		s.levelTime = 0
		s.Emit("--", "level", "advance", fmt.Sprintf("level %d", s.level), float64(s.level))
		s.manager.ResetSequence(s.level)
	} else if completed {
		s.manager.ResetSequence(s.level)
	}
}

func (s *Session) finalLevel() int {
	n := len(s.cfg.LevelDurations)
	if n > maxLevel {
		n = maxLevel
	}
	return n
}

func (s *Session) currentName() string {
	if cur := s.manager.Current(); cur != nil {
		return cur.Name()
	}
	return "--"
}

func (s *Session) gameOver() {
	s.over = true
	s.endedBy = s.currentName()
	s.Emit(s.endedBy, "session", "game_over", fmt.Sprintf("score %d", s.score), float64(s.score))
	if s.score <= s.best {
		return
	}
	s.best = s.score
	s.Emit("--", "session", "best_score", fmt.Sprintf("new best %d", s.best), float64(s.best))
	if err := s.store.Save(s.best); err != nil {
		log.Printf("session: save best score: %v", err)
	}
}

// Click forwards a press to the current shape. A scoring hit adds HitScore.
func (s *Session) Click(x, y float64) bool {
	if s.over {
		return false
	}
	if !s.manager.HandleClick(x, y) {
		return false
	}
	s.score += s.cfg.HitScore
	return true
}

// PointerMove forwards cursor motion.
func (s *Session) PointerMove(x, y float64) {
	if s.over {
		return
	}
	s.manager.PointerMove(x, y)
}

// Restart begins a fresh run, keeping the best score.
func (s *Session) Restart() {
	s.start()
}

// Draw renders the current shape.
func (s *Session) Draw(screen *ebiten.Image) { s.manager.Draw(screen) }

func (s *Session) Level() int             { return s.level }
func (s *Session) Score() int             { return s.score }
func (s *Session) BestScore() int         { return s.best }
func (s *Session) Elapsed() float64       { return s.elapsed }
func (s *Session) LevelTime() float64     { return s.levelTime }
func (s *Session) Over() bool             { return s.over }
func (s *Session) EndedBy() string        { return s.endedBy }
func (s *Session) Config() Config         { return s.cfg }
func (s *Session) Log() *SimLog           { return s.log }
func (s *Session) Feed() *EventFeed       { return s.feed }
func (s *Session) Sounds() SoundSink      { return s.sounds }
func (s *Session) Manager() *ShapeManager { return s.manager }
func (s *Session) CurrentShape() Shape    { return s.manager.Current() }

// LevelRemaining returns ms until the next level, or -1 on the final level.
func (s *Session) LevelRemaining() float64 {
	if s.level >= s.finalLevel() {
		return -1
	}
	return s.cfg.LevelDurations[s.level-1]*1000 - s.levelTime
}
