package game

import "math"

// point is a 2D position in screen space.
type point struct {
	x float64
	y float64
}

// transformPoints rotates local points by angle and translates them to (ox,oy).
func transformPoints(local []point, ox, oy, angle float64) []point {
	cosA, sinA := math.Cos(angle), math.Sin(angle)
	out := make([]point, len(local))
	for i, p := range local {
		out[i] = point{
			x: ox + p.x*cosA - p.y*sinA,
			y: oy + p.x*sinA + p.y*cosA,
		}
	}
	return out
}

// regularPolygon returns the vertices of a regular n-gon, first vertex pointing up.
func regularPolygon(cx, cy, radius float64, sides int) []point {
	pts := make([]point, sides)
	step := 2 * math.Pi / float64(sides)
	for i := 0; i < sides; i++ {
		a := float64(i)*step - math.Pi/2
		pts[i] = point{x: cx + radius*math.Cos(a), y: cy + radius*math.Sin(a)}
	}
	return pts
}

// segmentsIntersect is the standard parametric test for segments AB and CD.
// Parallel segments never intersect.
func segmentsIntersect(a, b, c, d point) bool {
	denom := (d.y-c.y)*(b.x-a.x) - (d.x-c.x)*(b.y-a.y)
	if math.Abs(denom) < 1e-12 {
		return false
	}
	ua := ((d.x-c.x)*(a.y-c.y) - (d.y-c.y)*(a.x-c.x)) / denom
	ub := ((b.x-a.x)*(a.y-c.y) - (b.y-a.y)*(a.x-c.x)) / denom
	return ua >= 0 && ua <= 1 && ub >= 0 && ub <= 1
}

// segmentIntersectsPolygon reports whether segment p1-p2 crosses any polygon edge.
func segmentIntersectsPolygon(p1, p2 point, poly []point) bool {
	for i := range poly {
		j := (i + 1) % len(poly)
		if segmentsIntersect(p1, p2, poly[i], poly[j]) {
			return true
		}
	}
	return false
}

// pointInPolygon uses the even-odd ray crossing rule.
func pointInPolygon(p point, poly []point) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.y > p.y) != (b.y > p.y) {
			xCross := (b.x-a.x)*(p.y-a.y)/(b.y-a.y) + a.x
			if p.x < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// distToSegment returns the distance from p to segment a-b.
func distToSegment(p, a, b point) float64 {
	dx, dy := b.x-a.x, b.y-a.y
	lenSq := dx*dx + dy*dy
	if lenSq < 1e-12 {
		return math.Hypot(p.x-a.x, p.y-a.y)
	}
	t := ((p.x-a.x)*dx + (p.y-a.y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.x-(a.x+t*dx), p.y-(a.y+t*dy))
}

// circleIntersectsPolygon reports overlap between a circle and a polygon.
func circleIntersectsPolygon(c point, r float64, poly []point) bool {
	if pointInPolygon(c, poly) {
		return true
	}
	for i := range poly {
		j := (i + 1) % len(poly)
		if distToSegment(c, poly[i], poly[j]) <= r {
			return true
		}
	}
	return false
}

// bbox is an axis-aligned bounding box.
type bbox struct {
	minX, minY float64
	maxX, maxY float64
}

// boundsOf returns the bounding box of a point set.
func boundsOf(pts []point) bbox {
	b := bbox{minX: math.Inf(1), minY: math.Inf(1), maxX: math.Inf(-1), maxY: math.Inf(-1)}
	for _, p := range pts {
		b.minX = math.Min(b.minX, p.x)
		b.minY = math.Min(b.minY, p.y)
		b.maxX = math.Max(b.maxX, p.x)
		b.maxY = math.Max(b.maxY, p.y)
	}
	return b
}

// squareBounds returns the box of half-extent half around (cx,cy).
func squareBounds(cx, cy, half float64) bbox {
	return bbox{minX: cx - half, minY: cy - half, maxX: cx + half, maxY: cy + half}
}

// outside reports whether the box lies entirely left, right, above or below
// the square area.
func (b bbox) outside(areaX, areaY, areaSize float64) bool {
	return b.maxX < areaX ||
		b.minX > areaX+areaSize ||
		b.maxY < areaY ||
		b.minY > areaY+areaSize
}

// touches reports whether the box reaches or crosses any edge of the area.
func (b bbox) touches(areaX, areaY, areaSize float64) bool {
	return b.minX <= areaX ||
		b.maxX >= areaX+areaSize ||
		b.minY <= areaY ||
		b.maxY >= areaY+areaSize
}

// lerpFrame converts a per-60Hz-frame lerp factor into one for dt milliseconds.
func lerpFrame(factor, dt float64) float64 {
	return 1 - math.Pow(1-factor, dt/frameMs)
}
