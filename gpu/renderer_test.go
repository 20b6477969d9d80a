package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gekko3d/slerpview/core"
)

func TestRenderFrameRequiresDepthView(t *testing.T) {
	// A failed depth texture recreation leaves the manager without a depth
	// view. The frame must be refused up front rather than handed to a
	// render pass with a nil depth attachment.
	r := &Renderer{mgr: &Manager{}, log: zap.NewNop()}

	err := r.RenderFrame(Frame{})
	require.Error(t, err)

	var rerr *core.ResourceError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "depth view", rerr.Resource)
}
