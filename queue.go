package dieselxr

import (
	vk "github.com/vulkan-go/vulkan"
)

// QueueFamilies lists the queue family properties of a physical device.
func QueueFamilies(gpu vk.PhysicalDevice) []vk.QueueFamilyProperties {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, nil)
	props := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, props)
	for i := range props {
		props[i].Deref()
	}
	return props
}

// selectQueueFamily returns the first family that has every bit in required
// and at least one queue.
func selectQueueFamily(props []vk.QueueFamilyProperties, required vk.QueueFlags) (uint32, bool) {
	for i, family := range props {
		if family.QueueCount == 0 {
			continue
		}
		if family.QueueFlags&required == required {
			return uint32(i), true
		}
	}
	return 0, false
}
