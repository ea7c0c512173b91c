package game

import "math"

// Intro timings shared by every shape.
const (
	introDuration = 2500.0 // ms
	introFadeIn   = 1200.0 // ms to reach full opacity
	introGlintAt  = 1800.0 // ms at which the glint sweep starts
	introGlintLen = 400.0  // ms the glint sweep lasts
)

// introAlpha returns the fade-in opacity after t ms of intro.
func introAlpha(t float64) float64 {
	return math.Min(1, t/introFadeIn)
}

// introGlint returns the glint sweep progress in [0,1) and whether the glint
// is visible after t ms of intro.
func introGlint(t float64) (float64, bool) {
	if t < introGlintAt || t >= introGlintAt+introGlintLen {
		return 0, false
	}
	return (t - introGlintAt) / introGlintLen, true
}
