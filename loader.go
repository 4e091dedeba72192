package dieselxr

import (
	"fmt"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
	"go.uber.org/zap"
)

// LoaderSource supplies vkGetInstanceProcAddr from a windowing library
// such as glfw.
type LoaderSource struct {
	Name      string
	Init      func() error
	ProcAddr  func() unsafe.Pointer
	Terminate func()
}

var (
	setProcAddr        = vk.SetGetInstanceProcAddr
	setDefaultProcAddr = vk.SetDefaultGetInstanceProcAddr
	initVulkan         = vk.Init
)

// InitLoader points vulkan-go at src's vkGetInstanceProcAddr and calls
// vk.Init. When src fails to initialise, as glfw does on a host without a
// display, the system Vulkan loader is used instead. release terminates
// src if it was initialised.
func InitLoader(src LoaderSource) (release func(), err error) {
	release = func() {}
	if initErr := src.Init(); initErr != nil {
		logger().Warn("falling back to the system vulkan loader",
			zap.String("source", src.Name), zap.Error(initErr))
		if err := setDefaultProcAddr(); err != nil {
			return release, fmt.Errorf("vulkan loader: %s: %v; system loader: %w", src.Name, initErr, err)
		}
	} else {
		if src.Terminate != nil {
			release = src.Terminate
		}
		setProcAddr(src.ProcAddr())
	}
	if err := initVulkan(); err != nil {
		release()
		return func() {}, fmt.Errorf("vulkan loader: %w", err)
	}
	return release, nil
}
