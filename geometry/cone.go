// Package geometry procedurally generates the cone mesh and the auxiliary
// line lists of the visualization.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/slerpview/core"
)

// ConeParams fully determines the cone topology. Changing any field means
// the mesh is regenerated wholesale, never patched.
type ConeParams struct {
	Radius   float32
	Height   float32
	Segments int
}

// Mesh is index-aligned vertex data: Normals[i] belongs to Positions[i].
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint16
}

// MaxSegments caps the ring so the base-center vertex, the highest index
// emitted, still fits in the uint16 index buffer.
const MaxSegments = math.MaxUint16 - 2

// BuildCone generates a cone centered on the origin: apex at +height/2, base
// ring at -height/2. The seam vertex is duplicated so the ring closes with
// Segments+1 entries, giving Segments+3 vertices and 6*Segments indices in
// total. Lateral normals are analytic, so the side shades smoothly.
func BuildCone(p ConeParams) (*Mesh, error) {
	if p.Segments < 3 {
		return nil, &core.ValidationError{Field: "segmentCount", Reason: "cone needs at least 3 segments"}
	}
	if p.Segments > MaxSegments {
		return nil, &core.ValidationError{Field: "segmentCount", Reason: "exceeds 16-bit index capacity"}
	}
	if p.Radius <= 0 {
		return nil, &core.ValidationError{Field: "radius", Reason: "must be positive"}
	}
	if p.Height <= 0 {
		return nil, &core.ValidationError{Field: "height", Reason: "must be positive"}
	}

	n := p.Segments
	mesh := &Mesh{
		Positions: make([]mgl32.Vec3, 0, n+3),
		Normals:   make([]mgl32.Vec3, 0, n+3),
		Indices:   make([]uint16, 0, 6*n),
	}

	halfH := p.Height / 2

	// Apex
	mesh.Positions = append(mesh.Positions, mgl32.Vec3{0, halfH, 0})
	mesh.Normals = append(mesh.Normals, mgl32.Vec3{0, 1, 0})

	// Base ring, seam duplicated at i == n to close the loop.
	for i := 0; i <= n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		c := float32(math.Cos(theta))
		s := float32(math.Sin(theta))
		mesh.Positions = append(mesh.Positions, mgl32.Vec3{p.Radius * c, -halfH, p.Radius * s})
		mesh.Normals = append(mesh.Normals, mgl32.Vec3{c * p.Height, p.Radius, s * p.Height}.Normalize())
	}

	// Base center
	baseCenter := uint16(n + 2)
	mesh.Positions = append(mesh.Positions, mgl32.Vec3{0, -halfH, 0})
	mesh.Normals = append(mesh.Normals, mgl32.Vec3{0, -1, 0})

	// Side fan. Winding is CCW viewed from outside the lateral surface.
	for i := 0; i < n; i++ {
		ring := uint16(1 + i)
		mesh.Indices = append(mesh.Indices, 0, ring+1, ring)
	}
	// Base fan, wound to face downward.
	for i := 0; i < n; i++ {
		ring := uint16(1 + i)
		mesh.Indices = append(mesh.Indices, baseCenter, ring, ring+1)
	}

	return mesh, nil
}

// VertexCount reports the number of vertices BuildCone produces for the
// given segment count.
func (p ConeParams) VertexCount() int { return p.Segments + 3 }

// IndexCount reports the number of indices BuildCone produces for the given
// segment count.
func (p ConeParams) IndexCount() int { return 6 * p.Segments }
