// Package gpu wraps the webgpu device, surface and buffer lifetime for the
// visualizer's two render passes.
package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gekko3d/slerpview/core"
)

const depthFormat = wgpu.TextureFormatDepth24Plus

// BufferHandle identifies an uploaded buffer. Callers treat it as opaque;
// the manager owns the underlying resource until it is released.
type BufferHandle string

func newBufferHandle() BufferHandle {
	return BufferHandle(uuid.NewString())
}

// Manager owns the device, swapchain and all uploaded buffers.
type Manager struct {
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter
	Device  *wgpu.Device
	Queue   *wgpu.Queue
	Config  *wgpu.SurfaceConfiguration

	DepthView    *wgpu.TextureView
	depthTexture *wgpu.Texture

	instance *wgpu.Instance
	buffers  map[BufferHandle]*wgpu.Buffer
	log      *zap.Logger
}

// NewManager initializes the graphics context against the given window.
// Any failure here is an InitializationError: the render loop must never
// start on a half-initialized device.
func NewManager(window *glfw.Window, vsync bool, log *zap.Logger) (*Manager, error) {
	m := &Manager{
		instance: wgpu.CreateInstance(nil),
		buffers:  map[BufferHandle]*wgpu.Buffer{},
		log:      log,
	}

	m.Surface = m.instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))

	adapter, err := m.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: m.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, &core.InitializationError{Stage: "adapter", Err: err}
	}
	m.Adapter = adapter

	m.Device, err = adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "slerpview device",
	})
	if err != nil {
		return nil, &core.InitializationError{Stage: "device", Err: err}
	}
	m.Queue = m.Device.GetQueue()

	width, height := window.GetFramebufferSize()
	caps := m.Surface.GetCapabilities(adapter)

	presentMode := wgpu.PresentModeFifo
	if !vsync {
		presentMode = wgpu.PresentModeImmediate
	}
	m.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: presentMode,
		AlphaMode:   caps.AlphaModes[0],
	}
	m.Surface.Configure(adapter, m.Device, m.Config)

	if err := m.createDepthTexture(); err != nil {
		return nil, &core.InitializationError{Stage: "depth texture", Err: err}
	}

	log.Info("graphics context ready",
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return m, nil
}

// Resize reconfigures the swapchain and the depth texture. The caller reads
// the viewport at the start of each frame, so no other state changes here.
func (m *Manager) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.Config.Width = uint32(width)
	m.Config.Height = uint32(height)
	m.Surface.Configure(m.Adapter, m.Device, m.Config)
	if err := m.createDepthTexture(); err != nil {
		m.log.Error("depth texture recreation failed", zap.Error(err))
	}
}

func (m *Manager) createDepthTexture() error {
	if m.DepthView != nil {
		m.DepthView.Release()
		m.depthTexture.Release()
		m.DepthView = nil
		m.depthTexture = nil
	}

	tex, err := m.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              m.Config.Width,
			Height:             m.Config.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return &core.ResourceError{Resource: "depth texture", Err: err}
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return &core.ResourceError{Resource: "depth texture view", Err: err}
	}
	m.depthTexture = tex
	m.DepthView = view
	return nil
}

// CreateBuffer uploads data and returns an opaque handle. The manager keeps
// ownership; ReleaseBuffer or ReleaseAll frees the GPU copy.
func (m *Manager) CreateBuffer(label string, data []byte, usage wgpu.BufferUsage) (BufferHandle, error) {
	buf, err := m.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: data,
		Usage:    usage,
	})
	if err != nil {
		return "", &core.ResourceError{Resource: label, Err: err}
	}
	h := newBufferHandle()
	m.buffers[h] = buf
	return h, nil
}

// CreateEmptyBuffer allocates a zeroed buffer of the given size.
func (m *Manager) CreateEmptyBuffer(label string, size uint64, usage wgpu.BufferUsage) (BufferHandle, error) {
	buf, err := m.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return "", &core.ResourceError{Resource: label, Err: err}
	}
	h := newBufferHandle()
	m.buffers[h] = buf
	return h, nil
}

func (m *Manager) Buffer(h BufferHandle) *wgpu.Buffer {
	return m.buffers[h]
}

func (m *Manager) WriteBuffer(h BufferHandle, offset uint64, data []byte) {
	if buf, ok := m.buffers[h]; ok {
		m.Queue.WriteBuffer(buf, offset, data)
	}
}

func (m *Manager) ReleaseBuffer(h BufferHandle) {
	if buf, ok := m.buffers[h]; ok {
		buf.Release()
		delete(m.buffers, h)
	}
}

// ReleaseAll frees every buffer, the depth texture and the device. Called
// once on engine teardown.
func (m *Manager) ReleaseAll() {
	for h, buf := range m.buffers {
		buf.Release()
		delete(m.buffers, h)
	}
	if m.DepthView != nil {
		m.DepthView.Release()
		m.depthTexture.Release()
	}
	if m.Device != nil {
		m.Device.Release()
	}
	if m.instance != nil {
		m.instance.Release()
	}
}

// sliceBytes reinterprets a slice of fixed-size values as raw bytes for
// buffer upload.
func sliceBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(s[0])))
}

func structBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(unsafe.Sizeof(*v)))
}
