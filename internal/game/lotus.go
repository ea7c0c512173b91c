package game

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	lotusSize      = 50.0
	lotusBaseSpeed = 0.05 // px per ms
	lotusPetals    = 6
)

var (
	lotusSpeedFactor = [3]float64{1, 1.5, 2}
	lotusCenterColor = color.RGBA{R: 0xFF, G: 0xD1, B: 0xDC, A: 255}
	lotusPetalColor  = color.RGBA{R: 0xFF, G: 0xB6, B: 0xC1, A: 255}
)

// Lotus is a drifting obstacle. It is approximated by a circle for collision.
type Lotus struct {
	X, Y         float64
	Size         float64
	drift        float64
	angle        float64
	angularSpeed float64
	touched      bool
}

func newLotus(x, y float64, rng *rand.Rand) *Lotus {
	return &Lotus{
		X:            x,
		Y:            y,
		Size:         lotusSize,
		drift:        (rng.Float64() - 0.5) * 0.03,
		angularSpeed: 0.001 + rng.Float64()*0.001,
	}
}

// Radius is the collision radius.
func (l *Lotus) Radius() float64 { return l.Size * 0.5 }

func (l *Lotus) update(dt float64, level int) {
	l.X -= lotusBaseSpeed * byLevel(level, lotusSpeedFactor) * dt
	l.Y += l.drift * dt
	l.angle += l.angularSpeed * dt
}

// gone reports that the lotus has drifted past the left edge or off the top
// or bottom. A freshly spawned lotus to the right is still incoming.
func (l *Lotus) gone(area PlayArea) bool {
	r := l.Radius()
	return l.X+r < area.X || l.Y+r < area.Y || l.Y-r > area.Bottom()
}

func (l *Lotus) draw(screen *ebiten.Image) {
	for i := 0; i < lotusPetals; i++ {
		a := l.angle + float64(i)/lotusPetals*2*math.Pi
		px := l.X + math.Cos(a)*l.Size*0.3
		py := l.Y + math.Sin(a)*l.Size*0.3
		fillEllipse(screen, px, py, l.Size*0.2, l.Size*0.1, a, lotusPetalColor)
	}
	vector.FillCircle(screen, float32(l.X), float32(l.Y), float32(l.Size*0.2), lotusCenterColor, true)
}
