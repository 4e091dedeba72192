package dieselxr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Device is the set of Vulkan device entry points the renderer core uses.
// The device itself is created and destroyed by the caller; the core only
// borrows it.
type Device interface {
	// QueueFamilyCount is the number of queue families on the physical
	// device behind this device.
	QueueFamilyCount() uint32

	CreatePipelineLayout(info *vk.PipelineLayoutCreateInfo) (vk.PipelineLayout, error)
	DestroyPipelineLayout(layout vk.PipelineLayout)
	CreateShaderModule(info *vk.ShaderModuleCreateInfo) (vk.ShaderModule, error)
	DestroyShaderModule(module vk.ShaderModule)
	CreateGraphicsPipeline(info *vk.GraphicsPipelineCreateInfo) (vk.Pipeline, error)
	DestroyPipeline(pipeline vk.Pipeline)
	CreateCommandPool(info *vk.CommandPoolCreateInfo) (vk.CommandPool, error)
	DestroyCommandPool(pool vk.CommandPool)
	AllocateCommandBuffers(info *vk.CommandBufferAllocateInfo) ([]vk.CommandBuffer, error)
	FreeCommandBuffers(pool vk.CommandPool, buffers []vk.CommandBuffer)
	ResetCommandBuffer(buffer vk.CommandBuffer) error
	CreateRenderPass(info *vk.RenderPassCreateInfo) (vk.RenderPass, error)
	DestroyRenderPass(pass vk.RenderPass)
}

type vkDevice struct {
	handle   vk.Device
	families uint32
}

// NewDevice binds a logical device created elsewhere.
func NewDevice(handle vk.Device, queueFamilyCount uint32) Device {
	return &vkDevice{handle: handle, families: queueFamilyCount}
}

func (d *vkDevice) QueueFamilyCount() uint32 {
	return d.families
}

func (d *vkDevice) CreatePipelineLayout(info *vk.PipelineLayoutCreateInfo) (vk.PipelineLayout, error) {
	var layout vk.PipelineLayout
	ret := vk.CreatePipelineLayout(d.handle, info, nil, &layout)
	if isError(ret) {
		return vk.NullPipelineLayout, newError(ret)
	}
	return layout, nil
}

func (d *vkDevice) DestroyPipelineLayout(layout vk.PipelineLayout) {
	vk.DestroyPipelineLayout(d.handle, layout, nil)
}

func (d *vkDevice) CreateShaderModule(info *vk.ShaderModuleCreateInfo) (vk.ShaderModule, error) {
	var module vk.ShaderModule
	ret := vk.CreateShaderModule(d.handle, info, nil, &module)
	if isError(ret) {
		return vk.NullShaderModule, newError(ret)
	}
	return module, nil
}

func (d *vkDevice) DestroyShaderModule(module vk.ShaderModule) {
	vk.DestroyShaderModule(d.handle, module, nil)
}

func (d *vkDevice) CreateGraphicsPipeline(info *vk.GraphicsPipelineCreateInfo) (vk.Pipeline, error) {
	pipelines := []vk.Pipeline{vk.NullPipeline}
	ret := vk.CreateGraphicsPipelines(d.handle, nil, 1, []vk.GraphicsPipelineCreateInfo{*info}, nil, pipelines)
	if isError(ret) {
		return vk.NullPipeline, newError(ret)
	}
	return pipelines[0], nil
}

func (d *vkDevice) DestroyPipeline(pipeline vk.Pipeline) {
	vk.DestroyPipeline(d.handle, pipeline, nil)
}

func (d *vkDevice) CreateCommandPool(info *vk.CommandPoolCreateInfo) (vk.CommandPool, error) {
	// undefined behaviour in the driver without validation layers
	if info.QueueFamilyIndex >= d.families {
		return vk.NullCommandPool, fmt.Errorf("%w: %w: index %d, device has %d families",
			ErrResourceCreation, ErrInvalidQueueFamily, info.QueueFamilyIndex, d.families)
	}
	var pool vk.CommandPool
	ret := vk.CreateCommandPool(d.handle, info, nil, &pool)
	if isError(ret) {
		return vk.NullCommandPool, newError(ret)
	}
	return pool, nil
}

func (d *vkDevice) DestroyCommandPool(pool vk.CommandPool) {
	vk.DestroyCommandPool(d.handle, pool, nil)
}

func (d *vkDevice) AllocateCommandBuffers(info *vk.CommandBufferAllocateInfo) ([]vk.CommandBuffer, error) {
	buffers := make([]vk.CommandBuffer, info.CommandBufferCount)
	ret := vk.AllocateCommandBuffers(d.handle, info, buffers)
	if isError(ret) {
		return nil, newError(ret)
	}
	return buffers, nil
}

func (d *vkDevice) FreeCommandBuffers(pool vk.CommandPool, buffers []vk.CommandBuffer) {
	vk.FreeCommandBuffers(d.handle, pool, uint32(len(buffers)), buffers)
}

func (d *vkDevice) ResetCommandBuffer(buffer vk.CommandBuffer) error {
	ret := vk.ResetCommandBuffer(buffer, vk.CommandBufferResetFlags(vk.CommandBufferResetReleaseResourcesBit))
	if isError(ret) {
		return newError(ret)
	}
	return nil
}

func (d *vkDevice) CreateRenderPass(info *vk.RenderPassCreateInfo) (vk.RenderPass, error) {
	var pass vk.RenderPass
	ret := vk.CreateRenderPass(d.handle, info, nil, &pass)
	if isError(ret) {
		return vk.NullRenderPass, newError(ret)
	}
	return pass, nil
}

func (d *vkDevice) DestroyRenderPass(pass vk.RenderPass) {
	vk.DestroyRenderPass(d.handle, pass, nil)
}
