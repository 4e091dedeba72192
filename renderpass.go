package dieselxr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// RenderPass is a single-subpass pass with one color attachment, enough to
// build and exercise the pipeline without a swapchain.
type RenderPass struct {
	device Device
	handle vk.RenderPass
	format vk.Format
}

// Creates a render pass whose only attachment is a color target of format
func NewColorRenderPass(device Device, format vk.Format) (*RenderPass, error) {
	attachments := []vk.AttachmentDescription{{
		Format:         format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutColorAttachmentOptimal,
	}}

	colorReferences := []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}

	subpasses := []vk.SubpassDescription{{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    colorReferences,
	}}

	dependencies := []vk.SubpassDependency{{
		SrcSubpass:    ^uint32(0), // external
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentReadBit | vk.AccessColorAttachmentWriteBit),
	}}

	handle, err := device.CreateRenderPass(&vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
		SubpassCount:    uint32(len(subpasses)),
		PSubpasses:      subpasses,
		DependencyCount: uint32(len(dependencies)),
		PDependencies:   dependencies,
	})
	if err != nil {
		return nil, fmt.Errorf("create render pass: %w", err)
	}
	return &RenderPass{device: device, handle: handle, format: format}, nil
}

func (r *RenderPass) Handle() vk.RenderPass { return r.handle }
func (r *RenderPass) Format() vk.Format     { return r.format }

func (r *RenderPass) Destroy() {
	if r == nil || r.handle == vk.NullRenderPass {
		return
	}
	r.device.DestroyRenderPass(r.handle)
	r.handle = vk.NullRenderPass
}
