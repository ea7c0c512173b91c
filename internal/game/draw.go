package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// withAlpha scales a premultiplied colour by a in [0,1].
func withAlpha(c color.RGBA, a float64) color.RGBA {
	a = math.Max(0, math.Min(1, a))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// polygonPath builds a closed path through pts.
func polygonPath(pts []point) *vector.Path {
	var path vector.Path
	for i, p := range pts {
		if i == 0 {
			path.MoveTo(float32(p.x), float32(p.y))
			continue
		}
		path.LineTo(float32(p.x), float32(p.y))
	}
	path.Close()
	return &path
}

// fillPath fills a path with a solid colour.
func fillPath(screen *ebiten.Image, path *vector.Path, c color.Color) {
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c)
	vector.FillPath(screen, path, &vector.FillOptions{}, op)
}

// fillPolygon fills the polygon through pts.
func fillPolygon(screen *ebiten.Image, pts []point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	fillPath(screen, polygonPath(pts), c)
}

// strokePolyline draws connected segments through pts.
func strokePolyline(screen *ebiten.Image, pts []point, width float32, c color.Color) {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		vector.StrokeLine(screen, float32(a.x), float32(a.y), float32(b.x), float32(b.y), width, c, true)
	}
}

// fillEllipse fills an ellipse centred at (cx,cy) with radii rx, ry rotated by angle.
func fillEllipse(screen *ebiten.Image, cx, cy, rx, ry, angle float64, c color.Color) {
	const steps = 24
	local := make([]point, steps)
	for i := 0; i < steps; i++ {
		t := 2 * math.Pi * float64(i) / steps
		local[i] = point{x: rx * math.Cos(t), y: ry * math.Sin(t)}
	}
	fillPolygon(screen, transformPoints(local, cx, cy, angle), c)
}

// drawPerimeterGlint strokes a highlight that travels along the polygon outline.
// progress is in [0,1); the highlight covers 15% of the perimeter.
func drawPerimeterGlint(screen *ebiten.Image, pts []point, progress float64) {
	if len(pts) < 2 {
		return
	}
	perim := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		perim += math.Hypot(pts[j].x-pts[i].x, pts[j].y-pts[i].y)
	}
	start := perim * progress
	end := start + perim*0.15
	glint := color.RGBA{R: 166, G: 166, B: 166, A: 166}

	walked := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		a, b := pts[i], pts[j]
		segLen := math.Hypot(b.x-a.x, b.y-a.y)
		segStart, segEnd := walked, walked+segLen
		walked = segEnd
		lo := math.Max(start, segStart)
		hi := math.Min(end, segEnd)
		if hi <= lo || segLen == 0 {
			continue
		}
		t0 := (lo - segStart) / segLen
		t1 := (hi - segStart) / segLen
		vector.StrokeLine(screen,
			float32(a.x+(b.x-a.x)*t0), float32(a.y+(b.y-a.y)*t0),
			float32(a.x+(b.x-a.x)*t1), float32(a.y+(b.y-a.y)*t1),
			4, glint, true)
	}
}

// drawCircleGlint sweeps a soft vertical band across a circle of radius r.
func drawCircleGlint(screen *ebiten.Image, cx, cy, r, progress float64) {
	gx := cx - r + 2*r*progress
	for i := -3; i <= 3; i++ {
		x := gx + float64(i)*4
		dx := x - cx
		if math.Abs(dx) >= r {
			continue
		}
		h := math.Sqrt(r*r - dx*dx)
		a := 0.65 * (1 - math.Abs(float64(i))/4)
		vector.StrokeLine(screen, float32(x), float32(cy-h), float32(x), float32(cy+h), 4,
			withAlpha(color.RGBA{R: 255, G: 255, B: 255, A: 255}, a), true)
	}
}

// clipToArea returns the sub-image covering the play area.
func clipToArea(screen *ebiten.Image, area PlayArea) *ebiten.Image {
	r := image.Rect(int(area.X), int(area.Y), int(area.Right()), int(area.Bottom()))
	return screen.SubImage(r).(*ebiten.Image)
}
