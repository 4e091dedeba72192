// Package simulated is a display runtime driven by a YAML device profile.
// It registers itself as the "simulated" runtime so headless hosts and CI
// can negotiate without a headset attached.
package simulated

import (
	"fmt"
	"os"

	"github.com/andewx/dieselxr/xr"
	"gopkg.in/yaml.v3"
)

// Profile describes the device the runtime pretends to drive.
type Profile struct {
	Name        string                    `yaml:"name"`
	SystemID    xr.SystemID               `yaml:"system_id"`
	FormFactors []xr.FormFactor           `yaml:"form_factors"`
	BlendModes  []xr.EnvironmentBlendMode `yaml:"blend_modes"`
	Vulkan      VulkanRange               `yaml:"vulkan"`
	Extensions  []string                  `yaml:"extensions"`
}

// VulkanRange is the inclusive Vulkan version range the profile reports.
type VulkanRange struct {
	Min xr.Version `yaml:"min"`
	Max xr.Version `yaml:"max"`
}

// DefaultProfile is an opaque/additive headset accepting Vulkan 1.0 through 1.3.
func DefaultProfile() Profile {
	return Profile{
		Name:        "simulated-hmd",
		SystemID:    1,
		FormFactors: []xr.FormFactor{xr.FormFactorHeadMountedDisplay},
		BlendModes:  []xr.EnvironmentBlendMode{xr.EnvironmentBlendModeOpaque, xr.EnvironmentBlendModeAdditive},
		Vulkan: VulkanRange{
			Min: xr.MakeVersion(1, 0, 0),
			Max: xr.MakeVersion(1, 3, 0),
		},
		Extensions: []string{xr.ExtensionVulkanEnable2, xr.ExtensionAndroidCreateInstance},
	}
}

// ParseProfile decodes YAML over DefaultProfile, so a profile only lists what it changes.
func ParseProfile(data []byte) (Profile, error) {
	p := DefaultProfile()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("simulated: parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// LoadProfile reads and validates a YAML profile file.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("simulated: read profile: %w", err)
	}
	return ParseProfile(data)
}

// Validate rejects an inverted Vulkan range and a zero system id.
func (p Profile) Validate() error {
	if p.Vulkan.Min > p.Vulkan.Max {
		return fmt.Errorf("simulated: profile %q: vulkan min %s above max %s", p.Name, p.Vulkan.Min, p.Vulkan.Max)
	}
	if p.SystemID == 0 {
		return fmt.Errorf("simulated: profile %q: system_id must be non-zero", p.Name)
	}
	return nil
}
