package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeCircle(t *testing.T) (*Circle, *SimLog) {
	t.Helper()
	sl := NewSimLog(false)
	c := NewCircle(ShapeContext{Events: sl})
	c.Update(introDuration, 1)
	require.Equal(t, PhaseActive, c.fsm.phase)
	return c, sl
}

func TestCircle_PointerIgnoredDuringIntro(t *testing.T) {
	c := NewCircle(ShapeContext{})
	start := c.paddleTargetX
	c.PointerMove(150, 0)
	assert.Equal(t, start, c.paddleTargetX)
}

func TestCircle_PaddleEasesTowardPointer(t *testing.T) {
	c, _ := activeCircle(t)
	c.PointerMove(200, 0)
	before := c.paddleX
	for i := 0; i < 30; i++ {
		c.Update(frameMs, 1)
	}
	assert.Less(t, c.paddleX, before)
	assert.InDelta(t, 200-paddleWidth/2, c.paddleX, 2)
}

func TestCircle_ReturnsCompleteSequence(t *testing.T) {
	c, sl := activeCircle(t)
	b := c.balls[0]
	b.launched = true
	b.x = c.paddleX + paddleWidth/2
	b.y = c.paddleY - b.radius - 1
	b.vx, b.vy = 0, 2
	c.returns = c.toClear - 1

	c.Update(frameMs, 1)
	assert.True(t, c.IsSequenceCompleted())
	assert.Less(t, b.vy, 0.0, "ball bounced upward")
	assert.Equal(t, 1, sl.CountCategory("score", "return"))
}

func TestCircle_DroppedBallFails(t *testing.T) {
	c, _ := activeCircle(t)
	b := c.balls[0]
	b.launched = true
	b.y = c.ctx.Area.Bottom() + b.radius + 10
	b.vy = 1

	c.Update(frameMs, 1)
	assert.Equal(t, PhaseFailed, c.fsm.phase)
	assert.True(t, c.CheckBoundary(100, 0, 600))
	assert.False(t, c.IsSequenceCompleted())
}

func TestCircle_WallSlammingStunsPaddle(t *testing.T) {
	c, sl := activeCircle(t)
	area := c.ctx.Area
	for i := 0; i < crossingThreshold; i++ {
		if i%2 == 0 {
			c.paddleX = area.X
		} else {
			c.paddleX = area.Right() - paddleWidth
		}
		c.clock += 50
		c.trackCrossings()
	}
	require.True(t, c.stunned)
	assert.Equal(t, 1, sl.CountCategory("hazard", "stun"))

	target := c.paddleTargetX
	c.PointerMove(300, 0)
	assert.Equal(t, target, c.paddleTargetX, "stunned paddle ignores the pointer")

	c.Update(paddleStunMs+1, 1)
	assert.False(t, c.stunned)
}

func TestCircle_LevelAddsBalls(t *testing.T) {
	c := NewCircle(ShapeContext{})
	c.ResetSequence(3)
	assert.Len(t, c.balls, 3)
	assert.Equal(t, byLevel(3, circleReturnsToClear), c.toClear)
	assert.False(t, c.HandleClick(400, 300))
}
