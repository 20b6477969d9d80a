package gpu

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

// The uniform block must mirror the WGSL layout exactly; any drift shows up
// as garbled lighting rather than a validation error.
func TestConeUniformsMatchesShaderLayout(t *testing.T) {
	var u ConeUniforms

	assert.Equal(t, uintptr(UniformSlotSize), unsafe.Sizeof(u))

	assert.Equal(t, uintptr(0), unsafe.Offsetof(u.ModelView))
	assert.Equal(t, uintptr(64), unsafe.Offsetof(u.Projection))
	assert.Equal(t, uintptr(128), unsafe.Offsetof(u.NormalMat))
	assert.Equal(t, uintptr(192), unsafe.Offsetof(u.LightPos))
	assert.Equal(t, uintptr(204), unsafe.Offsetof(u.Shininess))
	assert.Equal(t, uintptr(208), unsafe.Offsetof(u.Ambient))
	assert.Equal(t, uintptr(220), unsafe.Offsetof(u.Alpha))
	assert.Equal(t, uintptr(224), unsafe.Offsetof(u.Diffuse))
	assert.Equal(t, uintptr(240), unsafe.Offsetof(u.Specular))
}

func TestConeVertexStride(t *testing.T) {
	var v ConeVertex
	assert.Equal(t, uintptr(24), unsafe.Sizeof(v))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(v.Normal))
}
