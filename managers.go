package dieselxr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
	"go.uber.org/zap"
)

// CommandBufferManager allocates command buffers from a CommandPool and
// recycles them frame to frame. Call Reset at the start of a frame, once the
// GPU is done with the previous one; buffers handed out after that are reset
// copies of earlier ones before any new allocation happens.
// The manager is not thread-safe: one per recording goroutine, like the pool.
type CommandBufferManager struct {
	pool    *CommandPool
	level   vk.CommandBufferLevel
	buffers []vk.CommandBuffer
	count   int
}

// NewCommandBufferManager manages buffers of level (primary or secondary) from pool.
func NewCommandBufferManager(pool *CommandPool, level vk.CommandBufferLevel) *CommandBufferManager {
	return &CommandBufferManager{pool: pool, level: level}
}

// Reset marks every managed buffer recyclable.
func (m *CommandBufferManager) Reset() {
	m.count = 0
}

// NewCommandBuffer returns a fresh or recycled command buffer in the initial state.
func (m *CommandBufferManager) NewCommandBuffer() (vk.CommandBuffer, error) {
	if m.pool.pool == vk.NullCommandPool {
		return nil, fmt.Errorf("command buffer: %w", ErrReleased)
	}
	device := m.pool.device
	if m.count < len(m.buffers) {
		buf := m.buffers[m.count]
		if err := device.ResetCommandBuffer(buf); err != nil {
			return nil, fmt.Errorf("reset command buffer: %w", err)
		}
		m.count++
		return buf, nil
	}
	bufs, err := device.AllocateCommandBuffers(&vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        m.pool.pool,
		Level:              m.level,
		CommandBufferCount: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("allocate command buffer: %w", err)
	}
	m.buffers = append(m.buffers, bufs[0])
	m.count++
	logger().Debug("command buffer allocated",
		zap.Uint32("queue_family", m.pool.family),
		zap.Int("total", len(m.buffers)))
	return bufs[0], nil
}

// Active returns the buffers handed out since the last Reset.
func (m *CommandBufferManager) Active() []vk.CommandBuffer {
	return m.buffers[:m.count]
}

// Allocated is the number of buffers owned by the manager.
func (m *CommandBufferManager) Allocated() int {
	return len(m.buffers)
}

// Destroy frees every managed buffer. The pool itself stays.
func (m *CommandBufferManager) Destroy() {
	if len(m.buffers) > 0 && m.pool.pool != vk.NullCommandPool {
		m.pool.device.FreeCommandBuffers(m.pool.pool, m.buffers)
	}
	m.buffers = nil
	m.count = 0
}
