package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/slerpview/core"
)

func TestBuildConeCounts(t *testing.T) {
	for _, segments := range []int{3, 4, 32, 128} {
		p := ConeParams{Radius: 1, Height: 2, Segments: segments}
		mesh, err := BuildCone(p)
		require.NoError(t, err)

		assert.Len(t, mesh.Positions, p.VertexCount())
		assert.Len(t, mesh.Normals, p.VertexCount())
		assert.Len(t, mesh.Indices, p.IndexCount())
	}
}

func TestBuildConeSmallestMesh(t *testing.T) {
	mesh, err := BuildCone(ConeParams{Radius: 1, Height: 2, Segments: 4})
	require.NoError(t, err)

	require.Len(t, mesh.Positions, 7)
	require.Len(t, mesh.Indices, 24)

	// Apex on top, base center underneath.
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, mesh.Positions[0])
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, mesh.Positions[6])

	// Every index addresses a real vertex.
	for _, idx := range mesh.Indices {
		assert.Less(t, int(idx), len(mesh.Positions))
	}
}

func TestBuildConeRejectsDegenerateParams(t *testing.T) {
	cases := []struct {
		name   string
		params ConeParams
		field  string
	}{
		{"too few segments", ConeParams{Radius: 1, Height: 2, Segments: 2}, "segmentCount"},
		{"zero radius", ConeParams{Radius: 0, Height: 2, Segments: 16}, "radius"},
		{"negative radius", ConeParams{Radius: -1, Height: 2, Segments: 16}, "radius"},
		{"zero height", ConeParams{Radius: 1, Height: 0, Segments: 16}, "height"},
		{"negative height", ConeParams{Radius: 1, Height: -3, Segments: 16}, "height"},
		{"segments past index capacity", ConeParams{Radius: 1, Height: 2, Segments: MaxSegments + 1}, "segmentCount"},
		{"segments far past index capacity", ConeParams{Radius: 1, Height: 2, Segments: 70000}, "segmentCount"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mesh, err := BuildCone(tc.params)
			require.Error(t, err)
			assert.Nil(t, mesh)

			var verr *core.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestBuildConeMaxSegments(t *testing.T) {
	p := ConeParams{Radius: 1, Height: 2, Segments: MaxSegments}
	mesh, err := BuildCone(p)
	require.NoError(t, err)
	require.Len(t, mesh.Positions, p.VertexCount())

	// The base-center vertex carries the highest index emitted; it must
	// survive the uint16 conversion unwrapped.
	baseCenter := mesh.Indices[len(mesh.Indices)-3]
	assert.Equal(t, uint16(p.Segments+2), baseCenter)
	assert.Less(t, int(baseCenter), len(mesh.Positions))
}

func TestBuildConeSeamCloses(t *testing.T) {
	mesh, err := BuildCone(ConeParams{Radius: 1.5, Height: 2, Segments: 32})
	require.NoError(t, err)

	first := mesh.Positions[1]
	last := mesh.Positions[1+32]
	assert.InDelta(t, first.X(), last.X(), 1e-5)
	assert.InDelta(t, first.Y(), last.Y(), 1e-5)
	assert.InDelta(t, first.Z(), last.Z(), 1e-5)
}

func TestBuildConeRingGeometry(t *testing.T) {
	p := ConeParams{Radius: 2, Height: 3, Segments: 16}
	mesh, err := BuildCone(p)
	require.NoError(t, err)

	halfH := p.Height / 2
	for i := 1; i <= p.Segments+1; i++ {
		pos := mesh.Positions[i]
		assert.InDelta(t, -halfH, pos.Y(), 1e-5)

		radial := mgl32.Vec2{pos.X(), pos.Z()}.Len()
		assert.InDelta(t, p.Radius, radial, 1e-4)
	}
}

func TestBuildConeNormals(t *testing.T) {
	p := ConeParams{Radius: 1, Height: 2, Segments: 24}
	mesh, err := BuildCone(p)
	require.NoError(t, err)

	for i, n := range mesh.Normals {
		assert.InDelta(t, 1, n.Len(), 1e-5, "normal %d not unit length", i)
	}

	// Lateral normals tilt upward and point away from the axis.
	for i := 1; i <= p.Segments+1; i++ {
		n := mesh.Normals[i]
		pos := mesh.Positions[i]
		assert.Greater(t, n.Y(), float32(0))

		outward := mgl32.Vec2{pos.X(), pos.Z()}.Dot(mgl32.Vec2{n.X(), n.Z()})
		assert.Greater(t, outward, float32(0), "ring normal %d points inward", i)
	}
}

func TestBuildConeOutwardWinding(t *testing.T) {
	mesh, err := BuildCone(ConeParams{Radius: 1, Height: 2, Segments: 8})
	require.NoError(t, err)

	// Each triangle's geometric normal must agree with the direction from
	// the cone's center out through the triangle's centroid. A flipped
	// winding would face the surface inward and get culled.
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a := mesh.Positions[mesh.Indices[i]]
		b := mesh.Positions[mesh.Indices[i+1]]
		c := mesh.Positions[mesh.Indices[i+2]]

		normal := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3.0)
		assert.Greater(t, normal.Dot(centroid), float32(0), "triangle %d wound inward", i/3)
	}
}
