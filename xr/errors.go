package xr

import (
	"errors"
	"fmt"
)

var (
	// ErrLoaderNotFound means no runtime loader is registered under the requested name.
	ErrLoaderNotFound = errors.New("xr: no compatible runtime loader found")
	// ErrFormFactorUnavailable means the runtime has no attached head-mounted display.
	ErrFormFactorUnavailable = errors.New("xr: form factor unavailable")
	// ErrExtensionNotPresent means the runtime does not advertise a required extension.
	ErrExtensionNotPresent = errors.New("xr: extension not present")
	// ErrNoBlendModes means the runtime enumerated an empty blend mode list.
	ErrNoBlendModes = errors.New("xr: runtime reported no environment blend modes")
	// ErrVersionUnsupported matches every *VersionError.
	ErrVersionUnsupported = errors.New("xr: vulkan version not supported by runtime")
	// ErrSessionClosed is returned by a Session whose last holder has released it.
	ErrSessionClosed = errors.New("xr: session closed")
)

// VersionError reports a backend version outside the runtime's range.
type VersionError struct {
	Version  Version
	Required GraphicsRequirements
}

// Error names the exclusive upper bound as the next major version.
func (e *VersionError) Error() string {
	return fmt.Sprintf("xr: vulkan version %s not supported: runtime requires vulkan >= %s, < %d.0.0",
		e.Version, e.Required.MinAPIVersion, uint32(e.Required.MaxAPIVersion.Major())+1)
}

func (e *VersionError) Unwrap() error { return ErrVersionUnsupported }
