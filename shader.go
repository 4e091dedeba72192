package dieselxr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
	"go.uber.org/zap"
)

// ShaderModule is a device-resident SPIR-V module for a single stage.
// Modules only live for the duration of a pipeline build.
type ShaderModule struct {
	device Device
	handle vk.ShaderModule
	stage  vk.ShaderStageFlagBits
}

// LoadShaderModule decodes code and creates a module for stage. Malformed
// bytecode is rejected before the device is touched.
func LoadShaderModule(device Device, stage vk.ShaderStageFlagBits, code []byte) (*ShaderModule, error) {
	words, err := DecodeSPIRV(code)
	if err != nil {
		return nil, err
	}
	return createShaderModule(device, stage, words)
}

func createShaderModule(device Device, stage vk.ShaderStageFlagBits, words []uint32) (*ShaderModule, error) {
	handle, err := device.CreateShaderModule(&vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(words) * 4),
		PCode:    words,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s shader module: %w", stageName(stage), err)
	}
	logger().Debug("shader module created", zap.String("stage", stageName(stage)), zap.Int("words", len(words)))
	return &ShaderModule{device: device, handle: handle, stage: stage}, nil
}

func (m *ShaderModule) Handle() vk.ShaderModule       { return m.handle }
func (m *ShaderModule) Stage() vk.ShaderStageFlagBits { return m.stage }

// Destroy releases the module. Safe to call more than once.
func (m *ShaderModule) Destroy() {
	if m == nil || m.handle == vk.NullShaderModule {
		return
	}
	m.device.DestroyShaderModule(m.handle)
	m.handle = vk.NullShaderModule
	logger().Debug("shader module destroyed", zap.String("stage", stageName(m.stage)))
}

func (m *ShaderModule) stageInfo(entryPoint string) vk.PipelineShaderStageCreateInfo {
	return vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Flags:  vk.PipelineShaderStageCreateFlags(0),
		Stage:  m.stage,
		Module: m.handle,
		PName:  safeString(entryPoint),
	}
}

func stageName(stage vk.ShaderStageFlagBits) string {
	switch stage {
	case vk.ShaderStageVertexBit:
		return "vertex"
	case vk.ShaderStageFragmentBit:
		return "fragment"
	}
	return fmt.Sprintf("stage(%#x)", uint32(stage))
}
