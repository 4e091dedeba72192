package dieselxr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
	"go.uber.org/zap"
)

// CommandPoolFlags: buffers are short lived and individually resettable.
const CommandPoolFlags = vk.CommandPoolCreateFlags(vk.CommandPoolCreateTransientBit | vk.CommandPoolCreateResetCommandBufferBit)

// CommandPool backs the per-frame command buffers of one queue family.
// It is not synchronized: record from one goroutine per pool.
type CommandPool struct {
	device Device
	pool   vk.CommandPool
	family uint32
}

// NewCommandPool creates a pool for queueFamilyIndex, which must exist on device.
func NewCommandPool(device Device, queueFamilyIndex uint32) (*CommandPool, error) {
	if n := device.QueueFamilyCount(); queueFamilyIndex >= n {
		return nil, fmt.Errorf("%w: index %d, device has %d families", ErrInvalidQueueFamily, queueFamilyIndex, n)
	}
	pool, err := device.CreateCommandPool(&vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: queueFamilyIndex,
		Flags:            CommandPoolFlags,
	})
	if err != nil {
		return nil, fmt.Errorf("create command pool for queue family %d: %w", queueFamilyIndex, err)
	}
	logger().Debug("command pool created", zap.Uint32("queue_family", queueFamilyIndex))
	return &CommandPool{device: device, pool: pool, family: queueFamilyIndex}, nil
}

func (c *CommandPool) Handle() vk.CommandPool           { return c.pool }
func (c *CommandPool) QueueFamilyIndex() uint32         { return c.family }
func (c *CommandPool) Flags() vk.CommandPoolCreateFlags { return CommandPoolFlags }

func (c *CommandPool) Destroy() {
	if c == nil || c.pool == vk.NullCommandPool {
		return
	}
	c.device.DestroyCommandPool(c.pool)
	c.pool = vk.NullCommandPool
}
