package xr

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is an OpenXR packed version: major(16) minor(16) patch(32).
// Packed values order the same way as their components.
type Version uint64

// MakeVersion packs a version the way the runtime reports it.
func MakeVersion(major, minor uint16, patch uint32) Version {
	return Version(uint64(major)<<48 | uint64(minor)<<32 | uint64(patch))
}

func (v Version) Major() uint16 { return uint16(v >> 48) }
func (v Version) Minor() uint16 { return uint16(v >> 32) }
func (v Version) Patch() uint32 { return uint32(v) }

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}

// Compare returns -1, 0 or 1.
func (v Version) Compare(o Version) int {
	switch {
	case v < o:
		return -1
	case v > o:
		return 1
	}
	return 0
}

// FromVulkan unpacks a Vulkan major(10) minor(10) patch(12) version.
func FromVulkan(v uint32) Version {
	return MakeVersion(uint16(v>>22), uint16((v>>12)&0x3ff), v&0xfff)
}

// Vulkan packs v the way VK_MAKE_VERSION does. Components wider than the
// Vulkan fields are truncated.
func (v Version) Vulkan() uint32 {
	return uint32(v.Major())<<22 | (uint32(v.Minor())&0x3ff)<<12 | v.Patch()&0xfff
}

// ParseVersion reads "major.minor.patch"; missing trailing parts are zero.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimPrefix(strings.TrimSpace(s), "v"), ".")
	if len(parts) == 0 || len(parts) > 3 || parts[0] == "" {
		return 0, fmt.Errorf("xr: invalid version %q", s)
	}
	var nums [3]uint64
	for i, p := range parts {
		bits := 16
		if i == 2 {
			bits = 32
		}
		n, err := strconv.ParseUint(p, 10, bits)
		if err != nil {
			return 0, fmt.Errorf("xr: invalid version %q: %w", s, err)
		}
		nums[i] = n
	}
	return MakeVersion(uint16(nums[0]), uint16(nums[1]), uint32(nums[2])), nil
}

// UnmarshalText lets versions appear as "1.2.0" in YAML profiles and configs.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
