package shaders

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSources(t *testing.T) {
	src := Embedded()

	require.NotEmpty(t, src.Cone)
	require.NotEmpty(t, src.Line)

	// Entry points and the uniform names the CPU side writes against.
	for _, name := range []string{"vs_main", "fs_main", "uModelViewMatrix", "uProjectionMatrix", "uNormalMatrix", "uAlpha"} {
		assert.Contains(t, src.Cone, name)
	}
	for _, name := range []string{"vs_main", "fs_main", "uViewProjectionMatrix"} {
		assert.Contains(t, src.Line, name)
	}
}

func TestFromDirOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cone.wgsl"), []byte("// cone override"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "line.wgsl"), []byte("// line override"), 0644))

	src, err := FromDir(dir)
	require.NoError(t, err)
	assert.True(t, strings.Contains(src.Cone, "cone override"))
	assert.True(t, strings.Contains(src.Line, "line override"))
}

func TestFromDirMissingFile(t *testing.T) {
	_, err := FromDir(t.TempDir())
	require.Error(t, err)
}
