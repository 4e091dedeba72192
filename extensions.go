package dieselxr

import (
	"fmt"
	"strings"

	vk "github.com/vulkan-go/vulkan"
	"go.uber.org/zap"
)

// enumerateNames runs Vulkan's count-then-fill enumeration and maps each
// property struct to its name.
func enumerateNames[T any](enumerate func(count *uint32, list []T) vk.Result, name func(*T) string) ([]string, error) {
	var count uint32
	if ret := enumerate(&count, nil); isError(ret) {
		return nil, newError(ret)
	}
	list := make([]T, count)
	if ret := enumerate(&count, list); isError(ret) {
		return nil, newError(ret)
	}
	names := make([]string, 0, count)
	for i := range list[:count] {
		names = append(names, name(&list[i]))
	}
	return names, nil
}

func extensionName(p *vk.ExtensionProperties) string {
	p.Deref()
	return vk.ToString(p.ExtensionName[:])
}

func layerName(p *vk.LayerProperties) string {
	p.Deref()
	return vk.ToString(p.LayerName[:])
}

// InstanceExtensions lists the instance extensions the loader offers.
func InstanceExtensions() ([]string, error) {
	return enumerateNames(func(n *uint32, l []vk.ExtensionProperties) vk.Result {
		return vk.EnumerateInstanceExtensionProperties("", n, l)
	}, extensionName)
}

// DeviceExtensions lists the extensions gpu offers.
func DeviceExtensions(gpu vk.PhysicalDevice) ([]string, error) {
	return enumerateNames(func(n *uint32, l []vk.ExtensionProperties) vk.Result {
		return vk.EnumerateDeviceExtensionProperties(gpu, "", n, l)
	}, extensionName)
}

// ValidationLayers lists the instance layers the loader offers.
func ValidationLayers() ([]string, error) {
	return enumerateNames(func(n *uint32, l []vk.LayerProperties) vk.Result {
		return vk.EnumerateInstanceLayerProperties(n, l)
	}, layerName)
}

// selection is the result of matching requested names against what the
// driver offers. enabled is null terminated, ready for a create info.
type selection struct {
	kind    string
	enabled []string
	missing []string
}

// selectAvailable enumerates only when something was requested.
func selectAvailable(kind string, available func() ([]string, error), requested []string) (selection, error) {
	s := selection{kind: kind}
	if len(requested) == 0 {
		return s, nil
	}
	actual, err := available()
	if err != nil {
		return s, fmt.Errorf("enumerate %s: %w", kind, err)
	}
	s.enabled, s.missing = checkExisting(actual, requested)
	return s, nil
}

func (s selection) count() uint32 { return uint32(len(s.enabled)) }

func (s selection) report(log *zap.Logger) {
	if len(s.missing) > 0 {
		log.Warn("missing "+s.kind, zap.Strings("names", s.missing))
	}
	names := make([]string, len(s.enabled))
	for i, name := range s.enabled {
		names[i] = strings.TrimSuffix(name, "\x00")
	}
	log.Debug("enabling "+s.kind, zap.Strings("names", names))
}
