package dieselxr

import (
	"errors"
	"fmt"

	vk "github.com/vulkan-go/vulkan"
	"go.uber.org/zap"
)

// PlatformConfig describes the headless Vulkan bootstrap.
type PlatformConfig struct {
	AppName    string
	AppVersion uint32
	EngineName string
	// APIVersion is the packed Vulkan version requested from the driver.
	APIVersion uint32

	InstanceExtensions []string
	DeviceExtensions   []string
	ValidationLayers   []string
}

// Platform owns a Vulkan instance and a logical device on the first GPU,
// with one queue from the first graphics-capable family. There is no
// surface or swapchain.
type Platform struct {
	instance vk.Instance
	gpu      vk.PhysicalDevice
	device   vk.Device
	queue    vk.Queue

	families      uint32
	graphicsIndex uint32
	gpuProperties vk.PhysicalDeviceProperties
}

// NewPlatform creates the instance and device. vk.Init must have been
// called with a working loader.
func NewPlatform(cfg PlatformConfig) (_ *Platform, err error) {
	p := &Platform{}
	defer func() {
		if err != nil {
			p.Destroy()
		}
	}()
	defer checkErr(&err)
	log := logger()

	instanceExtensions, err := selectAvailable("instance extensions", InstanceExtensions, cfg.InstanceExtensions)
	orPanic(err)
	instanceExtensions.report(log)
	validationLayers, err := selectAvailable("validation layers", ValidationLayers, cfg.ValidationLayers)
	orPanic(err)
	validationLayers.report(log)

	var instance vk.Instance
	ret := vk.CreateInstance(&vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			ApiVersion:         cfg.APIVersion,
			ApplicationVersion: cfg.AppVersion,
			PApplicationName:   safeString(cfg.AppName),
			PEngineName:        safeString(cfg.EngineName),
		},
		EnabledExtensionCount:   instanceExtensions.count(),
		PpEnabledExtensionNames: instanceExtensions.enabled,
		EnabledLayerCount:       validationLayers.count(),
		PpEnabledLayerNames:     validationLayers.enabled,
	}, nil, &instance)
	orPanic(newError(ret))
	p.instance = instance
	orPanic(vk.InitInstance(instance))

	var gpuCount uint32
	ret = vk.EnumeratePhysicalDevices(instance, &gpuCount, nil)
	orPanic(newError(ret))
	if gpuCount == 0 {
		return nil, errors.New("vulkan: no GPU devices found")
	}
	gpus := make([]vk.PhysicalDevice, gpuCount)
	ret = vk.EnumeratePhysicalDevices(instance, &gpuCount, gpus)
	orPanic(newError(ret))
	// first GPU only
	p.gpu = gpus[0]
	vk.GetPhysicalDeviceProperties(p.gpu, &p.gpuProperties)
	p.gpuProperties.Deref()

	deviceExtensions, err := selectAvailable("device extensions", func() ([]string, error) {
		return DeviceExtensions(p.gpu)
	}, cfg.DeviceExtensions)
	orPanic(err)
	deviceExtensions.report(log)

	families := QueueFamilies(p.gpu)
	p.families = uint32(len(families))
	index, ok := selectQueueFamily(families, vk.QueueFlags(vk.QueueGraphicsBit))
	if !ok {
		return nil, fmt.Errorf("%w: no graphics queue family on %s", ErrInvalidQueueFamily, p.GPUName())
	}
	p.graphicsIndex = index

	var device vk.Device
	ret = vk.CreateDevice(p.gpu, &vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: 1,
		PQueueCreateInfos: []vk.DeviceQueueCreateInfo{{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: index,
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}},
		EnabledExtensionCount:   deviceExtensions.count(),
		PpEnabledExtensionNames: deviceExtensions.enabled,
		EnabledLayerCount:       validationLayers.count(),
		PpEnabledLayerNames:     validationLayers.enabled,
	}, nil, &device)
	orPanic(newError(ret))
	p.device = device
	vk.GetDeviceQueue(device, index, 0, &p.queue)

	log.Info("platform ready",
		zap.String("gpu", p.GPUName()),
		zap.Uint32("graphics_family", index),
		zap.Int("instance_extensions", len(instanceExtensions.enabled)),
		zap.Int("device_extensions", len(deviceExtensions.enabled)))
	return p, nil
}

// Device returns the logical device as the renderer core sees it.
func (p *Platform) Device() Device {
	return NewDevice(p.device, p.families)
}

func (p *Platform) Instance() vk.Instance             { return p.instance }
func (p *Platform) PhysicalDevice() vk.PhysicalDevice { return p.gpu }
func (p *Platform) GraphicsQueue() vk.Queue           { return p.queue }
func (p *Platform) GraphicsQueueFamilyIndex() uint32  { return p.graphicsIndex }

func (p *Platform) GPUName() string {
	return vk.ToString(p.gpuProperties.DeviceName[:])
}

// Destroy waits for the device to go idle and tears down device and
// instance. Every object created on the device must be gone by then.
func (p *Platform) Destroy() {
	if p.device != nil {
		vk.DeviceWaitIdle(p.device)
		vk.DestroyDevice(p.device, nil)
		p.device = nil
	}
	if p.instance != nil {
		vk.DestroyInstance(p.instance, nil)
		p.instance = nil
	}
}
