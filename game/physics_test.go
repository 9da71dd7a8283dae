package game

import (
	"testing"

	"github.com/mazehunt/mazehunt-api/maze"
	"github.com/stretchr/testify/assert"
)

func TestVec2Normalized(t *testing.T) {
	assert.Equal(t, Vec2{}, Vec2{}.Normalized())

	n := Vec2{X: 3, Z: 4}.Normalized()
	assert.InDelta(t, 0.6, n.X, 1e-9)
	assert.InDelta(t, 0.8, n.Z, 1e-9)
	assert.InDelta(t, 1.0, n.Len(), 1e-9)
}

func TestCircleRectIntersect(t *testing.T) {
	rect := maze.WallRect{X: 0, Z: 0, W: 3, H: 0.1}

	testCases := []struct {
		name   string
		center Vec2
		radius float64
		want   bool
	}{
		{"center inside", Vec2{X: 1.5, Z: 0.05}, 0.3, true},
		{"touching from above", Vec2{X: 1.5, Z: -0.3}, 0.3, true},
		{"clear above", Vec2{X: 1.5, Z: -0.5}, 0.3, false},
		{"touching the corner", Vec2{X: -0.2, Z: -0.2}, 0.3, true},
		{"clear off the corner", Vec2{X: -0.3, Z: -0.3}, 0.3, false},
		{"clear beside", Vec2{X: 4.0, Z: 0.05}, 0.3, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, circleRectIntersect(tc.center, tc.radius, rect))
		})
	}
}

func TestCirclesIntersect(t *testing.T) {
	assert.True(t, circlesIntersect(Vec2{}, 0.3, Vec2{X: 0.5}, 0.35))
	assert.False(t, circlesIntersect(Vec2{}, 0.3, Vec2{X: 0.7}, 0.35))
}

func TestSlideStepSlidesAlongWall(t *testing.T) {
	// A vertical wall just east of the mover blocks X but not Z.
	walls := []maze.WallRect{{X: 0.5, Z: -5, W: 0.1, H: 10, Vertical: true}}

	pos := slideStep(Vec2{X: 0, Z: 0}, Vec2{X: 0.4, Z: 0.4}, 0.3, walls)
	assert.Equal(t, 0.0, pos.X)
	assert.InDelta(t, 0.4, pos.Z, 1e-9)
}

func TestSlideStepUnobstructed(t *testing.T) {
	pos := slideStep(Vec2{X: 1, Z: 2}, Vec2{X: -0.25, Z: 0.5}, 0.3, nil)
	assert.InDelta(t, 0.75, pos.X, 1e-9)
	assert.InDelta(t, 2.5, pos.Z, 1e-9)
}
