package game

import "fmt"

// Phase is the lifecycle stage of a shape.
type Phase int

const (
	PhaseIntro   Phase = iota // fade-in and glint, no gameplay
	PhaseDisplay              // the shape shows what the player must reproduce
	PhaseInput                // the player reproduces it
	PhaseActive               // free play for shapes without a display step
	PhaseBroken               // failure animation is playing
	PhaseDone                 // sequence completed
	PhaseFailed               // failure animation finished (or instant failure)
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhaseDisplay:
		return "display"
	case PhaseInput:
		return "input"
	case PhaseActive:
		return "active"
	case PhaseBroken:
		return "broken"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// phaseTransitions lists the legal next phases for each phase. Any phase may
// go back to intro through a reset, which bypasses this table.
var phaseTransitions = map[Phase][]Phase{
	PhaseIntro:   {PhaseDisplay, PhaseActive},
	PhaseDisplay: {PhaseInput, PhaseFailed},
	PhaseInput:   {PhaseDisplay, PhaseBroken, PhaseDone, PhaseFailed},
	PhaseActive:  {PhaseBroken, PhaseDone, PhaseFailed},
	PhaseBroken:  {PhaseFailed},
}

// canTransition reports whether from -> to is legal.
func canTransition(from, to Phase) bool {
	for _, p := range phaseTransitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

// phaseMachine holds a shape's current phase and the time spent in it.
type phaseMachine struct {
	phase   Phase
	elapsed float64 // ms since entering phase
}

// reset returns to intro.
func (m *phaseMachine) reset() {
	m.phase = PhaseIntro
	m.elapsed = 0
}

// to moves to the next phase. An illegal transition is a programming error.
func (m *phaseMachine) to(next Phase) {
	if !canTransition(m.phase, next) {
		panic(fmt.Sprintf("illegal phase transition %s -> %s", m.phase, next))
	}
	m.phase = next
	m.elapsed = 0
}

// tick advances the time spent in the current phase.
func (m *phaseMachine) tick(dt float64) {
	m.elapsed += dt
}

// is reports whether the machine is in phase p.
func (m *phaseMachine) is(p Phase) bool {
	return m.phase == p
}

// finished reports whether the shape has reached a terminal phase.
func (m *phaseMachine) finished() bool {
	return m.phase == PhaseDone || m.phase == PhaseFailed
}
