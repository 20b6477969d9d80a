package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAxisGizmo(t *testing.T) {
	verts := BuildAxisGizmo(2)
	require.Len(t, verts, 6)

	// Each axis runs from the origin to length along its own direction.
	assert.Equal(t, [3]float32{0, 0, 0}, verts[0].Pos)
	assert.Equal(t, [3]float32{2, 0, 0}, verts[1].Pos)
	assert.Equal(t, [3]float32{0, 2, 0}, verts[3].Pos)
	assert.Equal(t, [3]float32{0, 0, 2}, verts[5].Pos)

	// Segment endpoints share their axis color.
	assert.Equal(t, verts[0].Color, verts[1].Color)
	assert.Equal(t, verts[2].Color, verts[3].Color)
	assert.Equal(t, verts[4].Color, verts[5].Color)
	assert.NotEqual(t, verts[0].Color, verts[2].Color)
}

func TestBuildDirectionVectors(t *testing.T) {
	start := mgl32.Vec3{0, 1, 0}
	end := mgl32.Vec3{1, 0, 0}
	verts := BuildDirectionVectors(start, end, 2)
	require.Len(t, verts, 4)

	// Both rays leave the origin.
	assert.Equal(t, [3]float32{0, 0, 0}, verts[0].Pos)
	assert.Equal(t, [3]float32{0, 0, 0}, verts[2].Pos)

	// Tips sit at DirectionScale times the cone height along each axis.
	wantLen := 2 * DirectionScale
	tip := mgl32.Vec3{verts[1].Pos[0], verts[1].Pos[1], verts[1].Pos[2]}
	assert.InDelta(t, wantLen, tip.Len(), 1e-5)
	assert.InDelta(t, 1, tip.Normalize().Dot(start), 1e-5)

	tip = mgl32.Vec3{verts[3].Pos[0], verts[3].Pos[1], verts[3].Pos[2]}
	assert.InDelta(t, 1, tip.Normalize().Dot(end), 1e-5)

	// Start and end rays use distinct colors.
	assert.Equal(t, verts[0].Color, verts[1].Color)
	assert.NotEqual(t, verts[0].Color, verts[2].Color)
}
