package xr

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/andewx/dieselxr/internal/logging"
	"go.uber.org/zap"
)

// ViewConfiguration is the view configuration blend modes are enumerated for.
const ViewConfiguration = ViewConfigurationPrimaryStereo

// Options configures a negotiation attempt.
type Options struct {
	// Runtime names the registered loader; empty picks the first available.
	Runtime     string
	Application ApplicationInfo
	// BackendVersion is the Vulkan version the renderer will create its device with.
	BackendVersion Version
	Extensions     []string
	// GOOS overrides runtime.GOOS when choosing platform extensions.
	GOOS string
}

// Negotiate loads the runtime, creates an instance, finds the HMD system,
// picks a blend mode and checks BackendVersion against the runtime's
// Vulkan requirements. Every failure is terminal for the attempt; any
// instance created along the way is destroyed before returning.
func Negotiate(ctx context.Context, opts Options) (*Session, error) {
	log := logging.L().Named("xr")

	entry, err := Load(opts.Runtime)
	if err != nil {
		return nil, err
	}
	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	if goos == "android" {
		if err := entry.InitializeLoader(); err != nil {
			return nil, fmt.Errorf("xr: initialize %s loader: %w", entry.Name(), err)
		}
	}

	extensions := RequiredExtensions(goos, opts.Extensions...)
	if err := checkExtensions(entry, extensions); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inst, err := entry.CreateInstance(opts.Application, extensions)
	if err != nil {
		return nil, fmt.Errorf("xr: create instance on %s: %w", entry.Name(), err)
	}

	caps, err := negotiateInstance(ctx, inst, opts.BackendVersion)
	if err != nil {
		if derr := inst.Destroy(); derr != nil {
			log.Warn("destroy instance after failed negotiation", zap.Error(derr))
		}
		return nil, err
	}

	log.Info("display capabilities negotiated",
		zap.String("runtime", entry.Name()),
		zap.Uint64("system", uint64(caps.SystemID)),
		zap.Stringer("blend_mode", caps.EnvironmentBlendMode),
		zap.Stringer("vulkan_min", caps.MinAPIVersion),
		zap.Stringer("vulkan_max", caps.MaxAPIVersion),
		zap.Stringer("vulkan", caps.BackendVersion))
	return newSession(entry.Name(), inst, caps), nil
}

func negotiateInstance(ctx context.Context, inst Instance, backend Version) (Capabilities, error) {
	var caps Capabilities

	if err := ctx.Err(); err != nil {
		return caps, err
	}
	system, err := inst.System(FormFactorHeadMountedDisplay)
	if err != nil {
		if errors.Is(err, ErrFormFactorUnavailable) {
			return caps, err
		}
		return caps, fmt.Errorf("%w: %s: %v", ErrFormFactorUnavailable, FormFactorHeadMountedDisplay, err)
	}

	if err := ctx.Err(); err != nil {
		return caps, err
	}
	modes, err := inst.EnumerateEnvironmentBlendModes(system, ViewConfiguration)
	if err != nil {
		return caps, fmt.Errorf("xr: enumerate environment blend modes: %w", err)
	}
	mode, err := SelectBlendMode(modes)
	if err != nil {
		return caps, err
	}

	if err := ctx.Err(); err != nil {
		return caps, err
	}
	req, err := inst.VulkanGraphicsRequirements(system)
	if err != nil {
		return caps, fmt.Errorf("xr: query vulkan graphics requirements: %w", err)
	}
	if err := CheckVersion(backend, req); err != nil {
		return caps, err
	}

	return Capabilities{
		SystemID:             system,
		EnvironmentBlendMode: mode,
		MinAPIVersion:        req.MinAPIVersion,
		MaxAPIVersion:        req.MaxAPIVersion,
		BackendVersion:       backend,
	}, nil
}

// SelectBlendMode returns the first mode in runtime order.
func SelectBlendMode(modes []EnvironmentBlendMode) (EnvironmentBlendMode, error) {
	if len(modes) == 0 {
		return 0, ErrNoBlendModes
	}
	return modes[0], nil
}

// CheckVersion fails if v is below the minimum or its major component is
// above the maximum's. Minor and patch above the maximum are accepted.
func CheckVersion(v Version, req GraphicsRequirements) error {
	if v < req.MinAPIVersion || v.Major() > req.MaxAPIVersion.Major() {
		return &VersionError{Version: v, Required: req}
	}
	return nil
}

// RequiredExtensions returns the instance extensions for goos plus extra,
// without duplicates.
func RequiredExtensions(goos string, extra ...string) []string {
	exts := []string{ExtensionVulkanEnable2}
	if goos == "android" {
		exts = append(exts, ExtensionAndroidCreateInstance)
	}
	for _, e := range extra {
		if !contains(exts, e) {
			exts = append(exts, e)
		}
	}
	return exts
}

func checkExtensions(entry Entry, wanted []string) error {
	available, err := entry.EnumerateExtensions()
	if err != nil {
		return fmt.Errorf("xr: enumerate extensions on %s: %w", entry.Name(), err)
	}
	var missing []string
	for _, w := range wanted {
		if !contains(available, w) {
			missing = append(missing, w)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrExtensionNotPresent, missing)
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
