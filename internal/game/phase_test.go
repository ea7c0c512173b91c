package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseMachine_LegalTransitions(t *testing.T) {
	var m phaseMachine
	m.reset()
	m.tick(100)
	assert.Equal(t, 100.0, m.elapsed)

	m.to(PhaseDisplay)
	assert.Zero(t, m.elapsed)
	m.to(PhaseInput)
	m.to(PhaseBroken)
	m.to(PhaseFailed)
	assert.True(t, m.finished())

	m.reset()
	assert.True(t, m.is(PhaseIntro))
	assert.False(t, m.finished())
}

func TestPhaseMachine_IllegalTransitionPanics(t *testing.T) {
	var m phaseMachine
	m.reset()
	assert.Panics(t, func() { m.to(PhaseDone) })

	m.to(PhaseActive)
	m.to(PhaseDone)
	assert.Panics(t, func() { m.to(PhaseActive) }, "done is terminal")
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "input", PhaseInput.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
