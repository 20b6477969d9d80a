// Package shaders holds the WGSL sources for the render pipelines.
package shaders

import (
	_ "embed"
	"os"
	"path/filepath"
)

//go:embed cone.wgsl
var ConeWGSL string

//go:embed line.wgsl
var LineWGSL string

// Sources is the pair of shader texts the renderer compiles at startup.
type Sources struct {
	Cone string
	Line string
}

// Embedded returns the compiled-in shader sources.
func Embedded() Sources {
	return Sources{Cone: ConeWGSL, Line: LineWGSL}
}

// FromDir loads cone.wgsl and line.wgsl from dir, for iterating on shaders
// without rebuilding the binary.
func FromDir(dir string) (Sources, error) {
	cone, err := os.ReadFile(filepath.Join(dir, "cone.wgsl"))
	if err != nil {
		return Sources{}, err
	}
	line, err := os.ReadFile(filepath.Join(dir, "line.wgsl"))
	if err != nil {
		return Sources{}, err
	}
	return Sources{Cone: string(cone), Line: string(line)}, nil
}
