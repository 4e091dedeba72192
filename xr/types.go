package xr

import (
	"fmt"
	"strings"
)

// SystemID identifies a device (an HMD) within a runtime instance.
type SystemID uint64

// FormFactor is the kind of display device a system is looked up by.
type FormFactor int32

const (
	FormFactorHeadMountedDisplay FormFactor = 1
	FormFactorHandheldDisplay    FormFactor = 2
)

func (f FormFactor) String() string {
	switch f {
	case FormFactorHeadMountedDisplay:
		return "HEAD_MOUNTED_DISPLAY"
	case FormFactorHandheldDisplay:
		return "HANDHELD_DISPLAY"
	}
	return fmt.Sprintf("FormFactor(%d)", int32(f))
}

// ViewConfigurationType selects the views a system renders: one, or one per eye.
type ViewConfigurationType int32

const (
	ViewConfigurationPrimaryMono   ViewConfigurationType = 1
	ViewConfigurationPrimaryStereo ViewConfigurationType = 2
)

// EnvironmentBlendMode is how rendered pixels combine with the world behind the display.
type EnvironmentBlendMode int32

const (
	EnvironmentBlendModeOpaque     EnvironmentBlendMode = 1
	EnvironmentBlendModeAdditive   EnvironmentBlendMode = 2
	EnvironmentBlendModeAlphaBlend EnvironmentBlendMode = 3
)

var blendModeNames = map[EnvironmentBlendMode]string{
	EnvironmentBlendModeOpaque:     "OPAQUE",
	EnvironmentBlendModeAdditive:   "ADDITIVE",
	EnvironmentBlendModeAlphaBlend: "ALPHA_BLEND",
}

func (m EnvironmentBlendMode) String() string {
	if s, ok := blendModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("EnvironmentBlendMode(%d)", int32(m))
}

// ParseEnvironmentBlendMode accepts the String form in any case.
func ParseEnvironmentBlendMode(s string) (EnvironmentBlendMode, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for m, n := range blendModeNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("xr: unknown environment blend mode %q", s)
}

func (m *EnvironmentBlendMode) UnmarshalText(text []byte) error {
	parsed, err := ParseEnvironmentBlendMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m EnvironmentBlendMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ApplicationInfo identifies the application to the runtime. Informational only.
type ApplicationInfo struct {
	ApplicationName    string
	ApplicationVersion uint32
	EngineName         string
	EngineVersion      uint32
}

// GraphicsRequirements is the Vulkan version range a runtime accepts for a system.
type GraphicsRequirements struct {
	MinAPIVersion Version
	MaxAPIVersion Version
}

// Runtime extensions requested during negotiation.
const (
	ExtensionVulkanEnable2         = "XR_KHR_vulkan_enable2"
	ExtensionAndroidCreateInstance = "XR_KHR_android_create_instance"
)

// ParseFormFactor accepts the String form in any case, and HMD.
func ParseFormFactor(s string) (FormFactor, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HEAD_MOUNTED_DISPLAY", "HMD":
		return FormFactorHeadMountedDisplay, nil
	case "HANDHELD_DISPLAY":
		return FormFactorHandheldDisplay, nil
	}
	return 0, fmt.Errorf("xr: unknown form factor %q", s)
}

func (f *FormFactor) UnmarshalText(text []byte) error {
	parsed, err := ParseFormFactor(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f FormFactor) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
