package game

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const sampleRate = 44100

// Cue identifies a short sound effect.
type Cue int

const (
	CueHit Cue = iota
	CueMiss
	CueBeat
	CueComplete
	CueFail
	CueLevel
)

// SoundSink plays cues. Implementations must not block.
type SoundSink interface {
	Play(c Cue)
	SetMuted(muted bool)
	Muted() bool
}

// NopSounds is a silent sink for headless and muted runs.
type NopSounds struct{ muted bool }

func (n *NopSounds) Play(Cue)            {}
func (n *NopSounds) SetMuted(muted bool) { n.muted = muted }
func (n *NopSounds) Muted() bool         { return n.muted }

// BeepSounds synthesises a decaying sine tone per cue.
type BeepSounds struct {
	players map[Cue]*audio.Player
	muted   bool
}

// NewBeepSounds builds the cue players on the process-wide audio context.
func NewBeepSounds() *BeepSounds {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return &BeepSounds{players: map[Cue]*audio.Player{
		CueHit:      newBeepPlayer(ctx, 880, 0.08),
		CueMiss:     newBeepPlayer(ctx, 196, 0.15),
		CueBeat:     newBeepPlayer(ctx, 440, 0.06),
		CueComplete: newBeepPlayer(ctx, 1320, 0.25),
		CueFail:     newBeepPlayer(ctx, 110, 0.6),
		CueLevel:    newBeepPlayer(ctx, 660, 0.35),
	}}
}

func newBeepPlayer(ctx *audio.Context, freq, durSec float64) *audio.Player {
	n := int(float64(sampleRate) * durSec)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		envelope := math.Exp(-6 * t / durSec)
		v := int16(math.Sin(2*math.Pi*freq*t) * 6000 * envelope)
		for ch := 0; ch < 2; ch++ {
			idx := i*4 + ch*2
			buf[idx] = byte(v)
			buf[idx+1] = byte(v >> 8)
		}
	}
	return ctx.NewPlayerFromBytes(buf)
}

func (b *BeepSounds) Play(c Cue) {
	if b.muted {
		return
	}
	p, ok := b.players[c]
	if !ok {
		return
	}
	if err := p.SetPosition(0); err != nil {
		log.Printf("sound: rewind cue %d: %v", c, err)
		return
	}
	p.Play()
}

func (b *BeepSounds) SetMuted(muted bool) { b.muted = muted }

func (b *BeepSounds) Muted() bool { return b.muted }

// cueFor maps a gameplay event onto a sound cue.
func cueFor(category, key string) (Cue, bool) {
	switch {
	case key == "completed":
		return CueComplete, true
	case key == "failed" || key == "broken":
		return CueFail, true
	case category == "level":
		return CueLevel, true
	case key == "hit" || key == "return":
		return CueHit, true
	case key == "miss" || key == "wrong_side" || key == "stun":
		return CueMiss, true
	case key == "beat":
		return CueBeat, true
	}
	return 0, false
}
