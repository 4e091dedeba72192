package simulated

import (
	"fmt"
	"os"
	"sync"

	"github.com/andewx/dieselxr/internal/logging"
	"github.com/andewx/dieselxr/xr"
	"go.uber.org/zap"
)

const (
	Name = "simulated"
	// ProfileEnv names a YAML profile loaded by the registered runtime.
	ProfileEnv = "DIESELXR_PROFILE"
)

func init() {
	xr.Register(Name, func() (xr.Entry, error) {
		p := DefaultProfile()
		if path := os.Getenv(ProfileEnv); path != "" {
			var err error
			if p, err = LoadProfile(path); err != nil {
				return nil, err
			}
		}
		return New(p), nil
	})
}

// Register installs a runtime for profile p under name.
func Register(name string, p Profile) {
	xr.Register(name, func() (xr.Entry, error) {
		return NewNamed(name, p), nil
	})
}

// Runtime implements xr.Entry for a Profile.
type Runtime struct {
	name    string
	profile Profile

	mu          sync.Mutex
	loaderReady bool
	live        int
}

// New returns a runtime named Name driving p.
func New(p Profile) *Runtime {
	return NewNamed(Name, p)
}

// NewNamed returns a runtime for p that reports name.
func NewNamed(name string, p Profile) *Runtime {
	return &Runtime{name: name, profile: p}
}

func (r *Runtime) Name() string { return r.name }

func (r *Runtime) InitializeLoader() error {
	r.mu.Lock()
	r.loaderReady = true
	r.mu.Unlock()
	return nil
}

func (r *Runtime) LoaderInitialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loaderReady
}

func (r *Runtime) EnumerateExtensions() ([]string, error) {
	return append([]string(nil), r.profile.Extensions...), nil
}

func (r *Runtime) CreateInstance(info xr.ApplicationInfo, extensions []string) (xr.Instance, error) {
	for _, e := range extensions {
		if !contains(r.profile.Extensions, e) {
			return nil, fmt.Errorf("%w: %s", xr.ErrExtensionNotPresent, e)
		}
	}
	r.mu.Lock()
	r.live++
	r.mu.Unlock()
	logging.L().Named("xr.simulated").Debug("instance created",
		zap.String("profile", r.profile.Name),
		zap.String("application", info.ApplicationName),
		zap.String("engine", info.EngineName),
		zap.Strings("extensions", extensions))
	return &instance{runtime: r}, nil
}

// LiveInstances counts instances not yet destroyed.
func (r *Runtime) LiveInstances() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live
}

type instance struct {
	runtime   *Runtime
	destroyed bool
}

func (i *instance) System(ff xr.FormFactor) (xr.SystemID, error) {
	if err := i.check(); err != nil {
		return 0, err
	}
	for _, have := range i.runtime.profile.FormFactors {
		if have == ff {
			return i.runtime.profile.SystemID, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", xr.ErrFormFactorUnavailable, ff)
}

func (i *instance) EnumerateEnvironmentBlendModes(system xr.SystemID, view xr.ViewConfigurationType) ([]xr.EnvironmentBlendMode, error) {
	if err := i.checkSystem(system); err != nil {
		return nil, err
	}
	if view != xr.ViewConfigurationPrimaryStereo {
		return nil, fmt.Errorf("simulated: view configuration %d unsupported", view)
	}
	return append([]xr.EnvironmentBlendMode(nil), i.runtime.profile.BlendModes...), nil
}

func (i *instance) VulkanGraphicsRequirements(system xr.SystemID) (xr.GraphicsRequirements, error) {
	if err := i.checkSystem(system); err != nil {
		return xr.GraphicsRequirements{}, err
	}
	return xr.GraphicsRequirements{
		MinAPIVersion: i.runtime.profile.Vulkan.Min,
		MaxAPIVersion: i.runtime.profile.Vulkan.Max,
	}, nil
}

func (i *instance) Destroy() error {
	if i.destroyed {
		return fmt.Errorf("simulated: instance destroyed twice")
	}
	i.destroyed = true
	i.runtime.mu.Lock()
	i.runtime.live--
	i.runtime.mu.Unlock()
	return nil
}

func (i *instance) check() error {
	if i.destroyed {
		return fmt.Errorf("simulated: instance used after destroy")
	}
	return nil
}

func (i *instance) checkSystem(system xr.SystemID) error {
	if err := i.check(); err != nil {
		return err
	}
	if system != i.runtime.profile.SystemID {
		return fmt.Errorf("simulated: unknown system %d", system)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
