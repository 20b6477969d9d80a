package snapshot

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"github.com/gekko3d/slerpview/core"
)

// Save writes the image to dir as a timestamped WebP and returns its path.
func Save(img *image.NRGBA, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &core.ResourceError{Resource: "snapshot dir", Err: err}
	}

	path := filepath.Join(dir, fmt.Sprintf("slerpview-%s.webp", time.Now().Format("20060102-150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", &core.ResourceError{Resource: "snapshot file", Err: err}
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return "", &core.ResourceError{Resource: "webp encode", Err: err}
	}

	return path, nil
}

// Capture renders the scene and saves it in one step.
func Capture(in *Input, size, supersample int, dir string) (string, error) {
	return Save(Render(in, size, supersample), dir)
}
