package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/slerpview/core"
	"github.com/gekko3d/slerpview/geometry"
)

type lineUniforms struct {
	ViewProjection mgl32.Mat4
}

// LinePass draws the axis gizmo and the two direction vectors as opaque,
// depth-tested line lists. The gizmo buffer is uploaded once; the direction
// buffer is rewritten in place whenever an axis changes.
type LinePass struct {
	pipeline  *wgpu.RenderPipeline
	bindGroup *wgpu.BindGroup
	uniforms  BufferHandle

	gizmoBuf   BufferHandle
	gizmoCount uint32
	dirBuf     BufferHandle
	dirCount   uint32

	mgr *Manager
}

func NewLinePass(mgr *Manager, source string) (*LinePass, error) {
	shader, err := mgr.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "LineShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: source},
	})
	if err != nil {
		return nil, &core.InitializationError{Stage: "line shader compile", Err: err}
	}
	defer shader.Release()

	bgl, err := mgr.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "LineUniformBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(unsafe.Sizeof(lineUniforms{})),
				},
			},
		},
	})
	if err != nil {
		return nil, &core.InitializationError{Stage: "line bind group layout", Err: err}
	}
	defer bgl.Release()

	layout, err := mgr.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		return nil, &core.InitializationError{Stage: "line pipeline layout", Err: err}
	}
	defer layout.Release()

	p := &LinePass{mgr: mgr}

	p.pipeline, err = mgr.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "LinePipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(geometry.LineVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    mgr.Config.Format,
					Blend:     nil,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyLineList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilReadMask:   0xFFFFFFFF,
			StencilWriteMask:  0xFFFFFFFF,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, &core.InitializationError{Stage: "line pipeline", Err: err}
	}

	p.uniforms, err = mgr.CreateEmptyBuffer(
		"LineUniformBuffer",
		uint64(unsafe.Sizeof(lineUniforms{})),
		wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst,
	)
	if err != nil {
		return nil, err
	}

	p.bindGroup, err = mgr.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "LineUniformBG",
		Layout: p.pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  mgr.Buffer(p.uniforms),
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return nil, &core.InitializationError{Stage: "line bind group", Err: err}
	}

	return p, nil
}

// SetGizmo uploads the static axis gizmo. Called once at startup.
func (p *LinePass) SetGizmo(verts []geometry.LineVertex) error {
	h, err := p.mgr.CreateBuffer("GizmoLineBuffer", sliceBytes(verts), wgpu.BufferUsageVertex)
	if err != nil {
		return err
	}
	p.gizmoBuf = h
	p.gizmoCount = uint32(len(verts))
	return nil
}

// SetDirectionVectors replaces the direction-vector segments. The buffer is
// created on first use and rewritten in place afterwards; the vertex count
// never changes.
func (p *LinePass) SetDirectionVectors(verts []geometry.LineVertex) error {
	data := sliceBytes(verts)
	if p.dirBuf == "" {
		h, err := p.mgr.CreateBuffer("DirectionLineBuffer", data, wgpu.BufferUsageVertex|wgpu.BufferUsageCopyDst)
		if err != nil {
			return err
		}
		p.dirBuf = h
	} else {
		p.mgr.WriteBuffer(p.dirBuf, 0, data)
	}
	p.dirCount = uint32(len(verts))
	return nil
}

func (p *LinePass) Update(viewProjection mgl32.Mat4) {
	u := lineUniforms{ViewProjection: viewProjection}
	p.mgr.WriteBuffer(p.uniforms, 0, structBytes(&u))
}

func (p *LinePass) Draw(rp *wgpu.RenderPassEncoder) {
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, p.bindGroup, nil)

	if p.gizmoBuf != "" {
		buf := p.mgr.Buffer(p.gizmoBuf)
		rp.SetVertexBuffer(0, buf, 0, buf.GetSize())
		rp.Draw(p.gizmoCount, 1, 0, 0)
	}
	if p.dirBuf != "" {
		buf := p.mgr.Buffer(p.dirBuf)
		rp.SetVertexBuffer(0, buf, 0, buf.GetSize())
		rp.Draw(p.dirCount, 1, 0, 0)
	}
}

func (p *LinePass) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
	}
	if p.pipeline != nil {
		p.pipeline.Release()
	}
}
