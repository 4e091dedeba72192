package xr

import (
	"fmt"
	"sort"
	"sync"
)

// Entry is a loaded runtime entry point, the first thing negotiation talks to.
type Entry interface {
	Name() string
	// InitializeLoader performs the loader side effect required on android
	// before any other call.
	InitializeLoader() error
	EnumerateExtensions() ([]string, error)
	CreateInstance(info ApplicationInfo, extensions []string) (Instance, error)
}

// Instance is a created runtime instance.
type Instance interface {
	System(formFactor FormFactor) (SystemID, error)
	EnumerateEnvironmentBlendModes(system SystemID, view ViewConfigurationType) ([]EnvironmentBlendMode, error)
	VulkanGraphicsRequirements(system SystemID) (GraphicsRequirements, error)
	Destroy() error
}

// LoaderFunc links or loads a runtime.
type LoaderFunc func() (Entry, error)

var (
	loadersMu sync.RWMutex
	loaders   = make(map[string]LoaderFunc)
)

// Register makes a runtime loader available by name, normally from init.
// Registering an existing name replaces it.
func Register(name string, fn LoaderFunc) {
	loadersMu.Lock()
	defer loadersMu.Unlock()
	loaders[name] = fn
}

// Unregister removes a loader. Used by tests.
func Unregister(name string) {
	loadersMu.Lock()
	defer loadersMu.Unlock()
	delete(loaders, name)
}

// Available lists registered loader names, sorted.
func Available() []string {
	loadersMu.RLock()
	defer loadersMu.RUnlock()
	names := make([]string, 0, len(loaders))
	for name := range loaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load runs the named loader. An empty name picks the first registered
// loader in name order.
func Load(name string) (Entry, error) {
	if name == "" {
		names := Available()
		if len(names) == 0 {
			return nil, ErrLoaderNotFound
		}
		name = names[0]
	}
	loadersMu.RLock()
	fn, ok := loaders[name]
	loadersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrLoaderNotFound, name, Available())
	}
	entry, err := fn()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrLoaderNotFound, name, err)
	}
	return entry, nil
}
