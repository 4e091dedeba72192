package dieselxr

import (
	"fmt"

	"github.com/andewx/dieselxr/internal/owned"
	vk "github.com/vulkan-go/vulkan"
	"go.uber.org/zap"
)

// PipelineConfig holds every fixed-function setting the builder bakes into
// a pipeline. DefaultPipelineConfig is the single-triangle setup; other
// values are accepted as long as Validate passes.
type PipelineConfig struct {
	EntryPoint     string
	Topology       vk.PrimitiveTopology
	PolygonMode    vk.PolygonMode
	CullMode       vk.CullModeFlagBits
	FrontFace      vk.FrontFace
	LineWidth      float32
	Samples        vk.SampleCountFlagBits
	DepthTest      bool
	DepthWrite     bool
	Stencil        vk.StencilOpState
	BlendEnable    bool
	SrcColorFactor vk.BlendFactor
	DstColorFactor vk.BlendFactor
	ColorBlendOp   vk.BlendOp
	ColorWriteMask vk.ColorComponentFlags
	// Viewport and scissor are always one each and supplied per draw.
	DynamicStates []vk.DynamicState
	Subpass       uint32
}

// DefaultPipelineConfig: triangle list, no culling, fill, one sample, no
// depth/stencil, ONE/ZERO additive blend writing RGB only.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		EntryPoint:  "main",
		Topology:    vk.PrimitiveTopologyTriangleList,
		PolygonMode: vk.PolygonModeFill,
		CullMode:    vk.CullModeNone,
		FrontFace:   vk.FrontFaceCounterClockwise,
		LineWidth:   1.0,
		Samples:     vk.SampleCount1Bit,
		Stencil: vk.StencilOpState{
			FailOp:      vk.StencilOpKeep,
			PassOp:      vk.StencilOpKeep,
			DepthFailOp: vk.StencilOpKeep,
			CompareOp:   vk.CompareOpAlways,
		},
		BlendEnable:    true,
		SrcColorFactor: vk.BlendFactorOne,
		DstColorFactor: vk.BlendFactorZero,
		ColorBlendOp:   vk.BlendOpAdd,
		ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit | vk.ColorComponentBBit),
		DynamicStates:  []vk.DynamicState{vk.DynamicStateViewport, vk.DynamicStateScissor},
		Subpass:        0,
	}
}

// Validate rejects configs Build cannot turn into a usable pipeline.
func (c PipelineConfig) Validate() error {
	if c.EntryPoint == "" {
		return fmt.Errorf("%w: empty entry point", ErrInvalidConfig)
	}
	if c.LineWidth <= 0 {
		return fmt.Errorf("%w: line width %v", ErrInvalidConfig, c.LineWidth)
	}
	if c.Samples == 0 {
		return fmt.Errorf("%w: zero sample count", ErrInvalidConfig)
	}
	var viewport, scissor bool
	for _, s := range c.DynamicStates {
		viewport = viewport || s == vk.DynamicStateViewport
		scissor = scissor || s == vk.DynamicStateScissor
	}
	if !viewport || !scissor {
		return fmt.Errorf("%w: viewport and scissor must be dynamic", ErrInvalidConfig)
	}
	return nil
}

// Pipeline is a graphics pipeline and the layout it created for itself.
// The device and render pass it was built against are borrowed. A Pipeline
// is immutable and can be shared: extra holders Retain and later Release,
// the handles go away with the last holder.
type Pipeline struct {
	device Device
	handle vk.Pipeline
	layout vk.PipelineLayout
	ref    *owned.Ref
}

func newPipeline(device Device, handle vk.Pipeline, layout vk.PipelineLayout) *Pipeline {
	p := &Pipeline{device: device, handle: handle, layout: layout}
	p.ref = owned.New(p.destroy)
	return p
}

func (p *Pipeline) Handle() vk.Pipeline             { return p.handle }
func (p *Pipeline) Layout() vk.PipelineLayout       { return p.layout }
func (p *Pipeline) BindPoint() vk.PipelineBindPoint { return vk.PipelineBindPointGraphics }

func (p *Pipeline) Retain() error {
	if !p.ref.Retain() {
		return ErrReleased
	}
	return nil
}

func (p *Pipeline) Release() { p.ref.Release() }

// Destroy drops the builder's hold.
func (p *Pipeline) Destroy() { p.ref.Release() }

func (p *Pipeline) destroy() {
	p.device.DestroyPipeline(p.handle)
	p.device.DestroyPipelineLayout(p.layout)
	logger().Debug("pipeline destroyed")
}

// PipelineBuilder builds graphics pipelines from a config and a vertex and
// fragment SPIR-V blob.
type PipelineBuilder struct {
	config   PipelineConfig
	vertex   []byte
	fragment []byte
}

// NewPipelineBuilder keeps vertex and fragment as given; they are decoded on Build.
func NewPipelineBuilder(config PipelineConfig, vertex, fragment []byte) *PipelineBuilder {
	return &PipelineBuilder{config: config, vertex: vertex, fragment: fragment}
}

// NewDefaultPipelineBuilder uses DefaultPipelineConfig and the embedded triangle shaders.
func NewDefaultPipelineBuilder() *PipelineBuilder {
	vert, frag := DefaultShaders()
	return NewPipelineBuilder(DefaultPipelineConfig(), vert, frag)
}

func (b *PipelineBuilder) Config() PipelineConfig { return b.config }

// Build creates the layout, both shader modules and the pipeline for subpass
// Config().Subpass of renderPass. The shader modules are destroyed before
// Build returns. On failure every handle created so far is released and no
// Pipeline is returned.
func (b *PipelineBuilder) Build(device Device, renderPass vk.RenderPass) (_ *Pipeline, err error) {
	if err := b.config.Validate(); err != nil {
		return nil, err
	}
	vertWords, err := DecodeSPIRV(b.vertex)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	fragWords, err := DecodeSPIRV(b.fragment)
	if err != nil {
		return nil, fmt.Errorf("fragment shader: %w", err)
	}

	layout, err := device.CreatePipelineLayout(&vk.PipelineLayoutCreateInfo{
		SType: vk.StructureTypePipelineLayoutCreateInfo,
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}
	defer func() {
		if err != nil {
			device.DestroyPipelineLayout(layout)
		}
	}()

	vert, err := createShaderModule(device, vk.ShaderStageVertexBit, vertWords)
	if err != nil {
		return nil, err
	}
	defer vert.Destroy()
	frag, err := createShaderModule(device, vk.ShaderStageFragmentBit, fragWords)
	if err != nil {
		return nil, err
	}
	defer frag.Destroy()

	info := b.createInfo(layout, renderPass, vert, frag)
	handle, err := device.CreateGraphicsPipeline(&info)
	if err != nil {
		return nil, fmt.Errorf("create graphics pipeline: %w", err)
	}
	logger().Info("graphics pipeline built",
		zap.Int("stages", len(info.PStages)),
		zap.Uint32("subpass", info.Subpass))
	return newPipeline(device, handle, layout), nil
}

// Rebuild builds a replacement for old, e.g. after the render pass changed,
// and releases the builder's hold on old only once the new one exists.
func (b *PipelineBuilder) Rebuild(device Device, old *Pipeline, renderPass vk.RenderPass) (*Pipeline, error) {
	p, err := b.Build(device, renderPass)
	if err != nil {
		return nil, err
	}
	if old != nil {
		old.Release()
	}
	return p, nil
}

func (b *PipelineBuilder) createInfo(layout vk.PipelineLayout, renderPass vk.RenderPass, vert, frag *ShaderModule) vk.GraphicsPipelineCreateInfo {
	c := b.config

	stages := []vk.PipelineShaderStageCreateInfo{
		vert.stageInfo(c.EntryPoint),
		frag.stageInfo(c.EntryPoint),
	}

	//No bindings or attributes, vertices come from the vertex index
	vertexInput := vk.PipelineVertexInputStateCreateInfo{
		SType: vk.StructureTypePipelineVertexInputStateCreateInfo,
	}

	assembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               c.Topology,
		PrimitiveRestartEnable: vk.False,
	}

	//Counts only, values are set per draw
	viewport := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}

	rasterizer := vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        vk.False,
		RasterizerDiscardEnable: vk.False,
		PolygonMode:             c.PolygonMode,
		CullMode:                vk.CullModeFlags(c.CullMode),
		FrontFace:               c.FrontFace,
		DepthBiasEnable:         vk.False,
		LineWidth:               c.LineWidth,
	}

	multisample := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples: c.Samples,
		SampleShadingEnable:  vk.False,
		MinSampleShading:     1.0,
	}

	depthStencil := vk.PipelineDepthStencilStateCreateInfo{
		SType:             vk.StructureTypePipelineDepthStencilStateCreateInfo,
		DepthTestEnable:   vkBool(c.DepthTest),
		DepthWriteEnable:  vkBool(c.DepthWrite),
		DepthCompareOp:    vk.CompareOpAlways,
		StencilTestEnable: vk.False,
		Front:             c.Stencil,
		Back:              c.Stencil,
	}

	blend := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		LogicOpEnable:   vk.False,
		LogicOp:         vk.LogicOpCopy,
		AttachmentCount: 1,
		PAttachments: []vk.PipelineColorBlendAttachmentState{{
			BlendEnable:         vkBool(c.BlendEnable),
			SrcColorBlendFactor: c.SrcColorFactor,
			DstColorBlendFactor: c.DstColorFactor,
			ColorBlendOp:        c.ColorBlendOp,
			SrcAlphaBlendFactor: vk.BlendFactorZero,
			DstAlphaBlendFactor: vk.BlendFactorZero,
			AlphaBlendOp:        vk.BlendOpAdd,
			ColorWriteMask:      c.ColorWriteMask,
		}},
	}

	dynamic := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(c.DynamicStates)),
		PDynamicStates:    c.DynamicStates,
	}

	return vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(stages)),
		PStages:             stages,
		PVertexInputState:   &vertexInput,
		PInputAssemblyState: &assembly,
		PViewportState:      &viewport,
		PRasterizationState: &rasterizer,
		PMultisampleState:   &multisample,
		PDepthStencilState:  &depthStencil,
		PColorBlendState:    &blend,
		PDynamicState:       &dynamic,
		Layout:              layout,
		RenderPass:          renderPass,
		Subpass:             c.Subpass,
		BasePipelineIndex:   -1,
	}
}

func vkBool(b bool) vk.Bool32 {
	if b {
		return vk.True
	}
	return vk.False
}
