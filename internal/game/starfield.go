package game

import (
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	numStars = 200
	numDust  = 50
)

type mote struct {
	x, y    float64
	size    float64
	speed   float64 // px per 60 Hz frame
	opacity float64
}

// Starfield is the slowly falling background of stars and space dust.
type Starfield struct {
	w, h  float64
	stars []mote
	dust  []mote
}

// NewStarfield scatters stars and dust over a w×h backdrop.
func NewStarfield(w, h float64, rng *rand.Rand) *Starfield {
	sf := &Starfield{w: w, h: h}
	for i := 0; i < numStars; i++ {
		sf.stars = append(sf.stars, mote{
			x:       rng.Float64() * w,
			y:       rng.Float64() * h,
			size:    rng.Float64()*2 + 0.5,
			speed:   rng.Float64()*0.5 + 0.1,
			opacity: 1,
		})
	}
	for i := 0; i < numDust; i++ {
		sf.dust = append(sf.dust, mote{
			x:       rng.Float64() * w,
			y:       rng.Float64() * h,
			size:    rng.Float64()*4 + 1,
			speed:   rng.Float64()*0.3 + 0.1,
			opacity: rng.Float64()*0.5 + 0.2,
		})
	}
	return sf
}

// Update drifts every mote downward, wrapping at the bottom.
func (sf *Starfield) Update(dt float64) {
	frames := dt / frameMs
	for _, set := range [][]mote{sf.stars, sf.dust} {
		for i := range set {
			set[i].y += set[i].speed * frames
			if set[i].y > sf.h {
				set[i].y = 0
			}
		}
	}
}

func (sf *Starfield) Draw(screen *ebiten.Image) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for _, m := range sf.stars {
		vector.FillCircle(screen, float32(m.x), float32(m.y), float32(m.size), white, true)
	}
	for _, m := range sf.dust {
		vector.FillCircle(screen, float32(m.x), float32(m.y), float32(m.size), withAlpha(white, m.opacity), true)
	}
}
