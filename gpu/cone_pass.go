package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/slerpview/core"
	"github.com/gekko3d/slerpview/geometry"
)

// ConeVertex matches the WGSL vertex inputs aPosition / aNormal.
type ConeVertex struct {
	Position [3]float32
	Normal   [3]float32
}

// ConeUniforms mirrors the WGSL ConeUniforms block byte for byte. The vec3
// members pack a scalar into their fourth slot; the blank fields cover the
// block's trailing padding. Total size must stay at UniformSlotSize.
type ConeUniforms struct {
	ModelView  mgl32.Mat4
	Projection mgl32.Mat4
	NormalMat  mgl32.Mat4
	LightPos   [3]float32
	Shininess  float32
	Ambient    [3]float32
	Alpha      float32
	Diffuse    [3]float32
	_          float32
	Specular   [3]float32
	_          float32
}

// UniformSlotSize is the stride between per-draw uniform slots. 256 bytes
// satisfies webgpu's dynamic-offset alignment on every backend.
const UniformSlotSize = 256

// ConePass draws the cone mesh, opaque for live playback or as a stack of
// translucent ghost frames. Each draw reads its uniforms from its own
// dynamic-offset slot in one shared buffer.
type ConePass struct {
	opaque      *wgpu.RenderPipeline
	translucent *wgpu.RenderPipeline
	bindGroup   *wgpu.BindGroup
	uniforms    BufferHandle

	vertexBuf  BufferHandle
	indexBuf   BufferHandle
	indexCount uint32

	drawCount uint32
	blended   bool

	mgr *Manager
}

func NewConePass(mgr *Manager, source string, maxDraws int) (*ConePass, error) {
	shader, err := mgr.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "ConeShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: source},
	})
	if err != nil {
		return nil, &core.InitializationError{Stage: "cone shader compile", Err: err}
	}
	defer shader.Release()

	bgl, err := mgr.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "ConeUniformBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					MinBindingSize:   UniformSlotSize,
					HasDynamicOffset: true,
				},
			},
		},
	})
	if err != nil {
		return nil, &core.InitializationError{Stage: "cone bind group layout", Err: err}
	}
	defer bgl.Release()

	layout, err := mgr.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		return nil, &core.InitializationError{Stage: "cone pipeline layout", Err: err}
	}
	defer layout.Release()

	vertexLayout := wgpu.VertexBufferLayout{
		ArrayStride: uint64(unsafe.Sizeof(ConeVertex{})),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		},
	}

	makePipeline := func(label string, blend *wgpu.BlendState, depthWrite bool) (*wgpu.RenderPipeline, error) {
		return mgr.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
			Label:  label,
			Layout: layout,
			Vertex: wgpu.VertexState{
				Module:     shader,
				EntryPoint: "vs_main",
				Buffers:    []wgpu.VertexBufferLayout{vertexLayout},
			},
			Fragment: &wgpu.FragmentState{
				Module:     shader,
				EntryPoint: "fs_main",
				Targets: []wgpu.ColorTargetState{
					{
						Format:    mgr.Config.Format,
						Blend:     blend,
						WriteMask: wgpu.ColorWriteMaskAll,
					},
				},
			},
			Primitive: wgpu.PrimitiveState{
				Topology:  wgpu.PrimitiveTopologyTriangleList,
				FrontFace: wgpu.FrontFaceCCW,
				CullMode:  wgpu.CullModeBack,
			},
			DepthStencil: &wgpu.DepthStencilState{
				Format:            depthFormat,
				DepthWriteEnabled: depthWrite,
				DepthCompare:      wgpu.CompareFunctionLess,
				StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
				StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
				StencilReadMask:   0xFFFFFFFF,
				StencilWriteMask:  0xFFFFFFFF,
			},
			Multisample: wgpu.MultisampleState{
				Count:                  1,
				Mask:                   0xFFFFFFFF,
				AlphaToCoverageEnabled: false,
			},
		})
	}

	p := &ConePass{mgr: mgr}

	p.opaque, err = makePipeline("ConeOpaquePipeline", nil, true)
	if err != nil {
		return nil, &core.InitializationError{Stage: "cone opaque pipeline", Err: err}
	}

	// Ghost frames blend src-alpha over one-minus-src-alpha with depth writes
	// off, so draw order inside the table stays consistent.
	p.translucent, err = makePipeline("ConeTranslucentPipeline", &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			Operation: wgpu.BlendOperationAdd,
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		},
		Alpha: wgpu.BlendComponent{
			Operation: wgpu.BlendOperationAdd,
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		},
	}, false)
	if err != nil {
		return nil, &core.InitializationError{Stage: "cone translucent pipeline", Err: err}
	}

	p.uniforms, err = mgr.CreateEmptyBuffer(
		"ConeUniformBuffer",
		uint64(maxDraws)*UniformSlotSize,
		wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst,
	)
	if err != nil {
		return nil, err
	}

	p.bindGroup, err = mgr.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "ConeUniformBG",
		Layout: p.opaque.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  mgr.Buffer(p.uniforms),
				Size:    UniformSlotSize,
			},
		},
	})
	if err != nil {
		return nil, &core.InitializationError{Stage: "cone bind group", Err: err}
	}

	return p, nil
}

// SetMesh replaces the vertex and index buffers. The previous buffers are
// released; the mesh is treated as regenerated wholesale.
func (p *ConePass) SetMesh(mesh *geometry.Mesh) error {
	vertices := make([]ConeVertex, len(mesh.Positions))
	for i, pos := range mesh.Positions {
		n := mesh.Normals[i]
		vertices[i] = ConeVertex{
			Position: [3]float32{pos.X(), pos.Y(), pos.Z()},
			Normal:   [3]float32{n.X(), n.Y(), n.Z()},
		}
	}

	if p.vertexBuf != "" {
		p.mgr.ReleaseBuffer(p.vertexBuf)
		p.mgr.ReleaseBuffer(p.indexBuf)
	}

	var err error
	p.vertexBuf, err = p.mgr.CreateBuffer("ConeVertexBuffer", sliceBytes(vertices), wgpu.BufferUsageVertex)
	if err != nil {
		return err
	}
	p.indexBuf, err = p.mgr.CreateBuffer("ConeIndexBuffer", wgpu.ToBytes(mesh.Indices), wgpu.BufferUsageIndex)
	if err != nil {
		return err
	}
	p.indexCount = uint32(len(mesh.Indices))
	return nil
}

// Update writes one uniform slot per draw and records whether this frame
// renders the translucent trail or a single opaque cone.
func (p *ConePass) Update(draws []ConeUniforms, blended bool) {
	for i := range draws {
		p.mgr.WriteBuffer(p.uniforms, uint64(i)*UniformSlotSize, structBytes(&draws[i]))
	}
	p.drawCount = uint32(len(draws))
	p.blended = blended
}

func (p *ConePass) Draw(rp *wgpu.RenderPassEncoder) {
	if p.drawCount == 0 || p.vertexBuf == "" {
		return
	}

	if p.blended {
		rp.SetPipeline(p.translucent)
	} else {
		rp.SetPipeline(p.opaque)
	}

	vbuf := p.mgr.Buffer(p.vertexBuf)
	ibuf := p.mgr.Buffer(p.indexBuf)
	rp.SetVertexBuffer(0, vbuf, 0, vbuf.GetSize())
	rp.SetIndexBuffer(ibuf, wgpu.IndexFormatUint16, 0, ibuf.GetSize())

	for i := uint32(0); i < p.drawCount; i++ {
		rp.SetBindGroup(0, p.bindGroup, []uint32{i * UniformSlotSize})
		rp.DrawIndexed(p.indexCount, 1, 0, 0, 0)
	}
}

func (p *ConePass) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
	}
	if p.opaque != nil {
		p.opaque.Release()
	}
	if p.translucent != nil {
		p.translucent.Release()
	}
}
