package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentsIntersect(t *testing.T) {
	assert.True(t, segmentsIntersect(point{0, 0}, point{10, 10}, point{0, 10}, point{10, 0}))
	assert.False(t, segmentsIntersect(point{0, 0}, point{4, 4}, point{6, 0}, point{10, -4}))
	assert.False(t, segmentsIntersect(point{0, 0}, point{10, 0}, point{0, 1}, point{10, 1}), "parallel")
}

func TestPointInPolygon(t *testing.T) {
	sq := []point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	assert.True(t, pointInPolygon(point{5, 5}, sq))
	assert.False(t, pointInPolygon(point{15, 5}, sq))
	assert.False(t, pointInPolygon(point{-1, -1}, sq))
}

func TestCircleIntersectsPolygon(t *testing.T) {
	sq := []point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	assert.True(t, circleIntersectsPolygon(point{5, 5}, 1, sq), "centre inside")
	assert.True(t, circleIntersectsPolygon(point{13, 5}, 3, sq), "touching an edge")
	assert.False(t, circleIntersectsPolygon(point{20, 20}, 3, sq))
}

func TestSegmentIntersectsPolygon(t *testing.T) {
	sq := []point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	assert.True(t, segmentIntersectsPolygon(point{-5, 5}, point{5, 5}, sq))
	assert.False(t, segmentIntersectsPolygon(point{2, 2}, point{8, 8}, sq), "fully inside crosses no edge")
}

func TestRegularPolygonFirstVertexUp(t *testing.T) {
	pts := regularPolygon(0, 0, 10, 5)
	assert.Len(t, pts, 5)
	assert.InDelta(t, 0, pts[0].x, 1e-9)
	assert.InDelta(t, -10, pts[0].y, 1e-9)
}

func TestTransformPoints(t *testing.T) {
	out := transformPoints([]point{{1, 0}}, 5, 5, math.Pi/2)
	assert.InDelta(t, 5, out[0].x, 1e-9)
	assert.InDelta(t, 6, out[0].y, 1e-9)
}

func TestBBoxOutsideAndTouches(t *testing.T) {
	inside := squareBounds(400, 300, 50)
	assert.False(t, inside.outside(100, 0, 600))
	assert.False(t, inside.touches(100, 0, 600))

	edge := squareBounds(150, 300, 50)
	assert.True(t, edge.touches(100, 0, 600))
	assert.False(t, edge.outside(100, 0, 600))

	gone := squareBounds(20, 300, 50)
	assert.True(t, gone.outside(100, 0, 600))
}

func TestLerpFrameMatchesPerFrameFactor(t *testing.T) {
	assert.InDelta(t, 0.2, lerpFrame(0.2, frameMs), 1e-9)
	assert.InDelta(t, 1-0.8*0.8, lerpFrame(0.2, 2*frameMs), 1e-9)
	assert.Zero(t, lerpFrame(0.2, 0))
}
