package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCueFor(t *testing.T) {
	tests := []struct {
		category, key string
		want          Cue
		ok            bool
	}{
		{"shape", "completed", CueComplete, true},
		{"shape", "failed", CueFail, true},
		{"rhythm", "broken", CueFail, true},
		{"level", "advance", CueLevel, true},
		{"rhythm", "hit", CueHit, true},
		{"score", "return", CueHit, true},
		{"shape", "wrong_side", CueMiss, true},
		{"rhythm", "stun", CueMiss, true},
		{"rhythm", "beat", CueBeat, true},
		{"session", "start", 0, false},
		{"score", "bonus", 0, false},
	}
	for _, tt := range tests {
		got, ok := cueFor(tt.category, tt.key)
		assert.Equal(t, tt.ok, ok, "%s/%s", tt.category, tt.key)
		if tt.ok {
			assert.Equal(t, tt.want, got, "%s/%s", tt.category, tt.key)
		}
	}
}

func TestNopSounds_Mute(t *testing.T) {
	var snd SoundSink = &NopSounds{}
	assert.False(t, snd.Muted())
	snd.SetMuted(true)
	assert.True(t, snd.Muted())
	assert.NotPanics(t, func() { snd.Play(CueHit) })
}
