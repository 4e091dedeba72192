package xr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionComponents(t *testing.T) {
	v := MakeVersion(1, 2, 3)
	assert.Equal(t, uint16(1), v.Major())
	assert.Equal(t, uint16(2), v.Minor())
	assert.Equal(t, uint32(3), v.Patch())
	assert.Equal(t, "1.2.3", v.String())
	assert.Equal(t, -1, MakeVersion(1, 1, 9).Compare(MakeVersion(1, 2, 0)))
	assert.Equal(t, 1, MakeVersion(2, 0, 0).Compare(MakeVersion(1, 9, 9)))
	assert.Equal(t, 0, v.Compare(MakeVersion(1, 2, 3)))
}

func TestVersionVulkanPacking(t *testing.T) {
	vk11 := uint32(1)<<22 | uint32(1)<<12
	assert.Equal(t, MakeVersion(1, 1, 0), FromVulkan(vk11))
	assert.Equal(t, vk11, MakeVersion(1, 1, 0).Vulkan())
	assert.Equal(t, MakeVersion(1, 3, 250), FromVulkan(MakeVersion(1, 3, 250).Vulkan()))
}

func TestParseVersion(t *testing.T) {
	for in, want := range map[string]Version{
		"1.2.0":  MakeVersion(1, 2, 0),
		"v1.3.7": MakeVersion(1, 3, 7),
		"1.1":    MakeVersion(1, 1, 0),
		"2":      MakeVersion(2, 0, 0),
	} {
		got, err := ParseVersion(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "1.2.3.4", "a.b", "70000.0.0"} {
		_, err := ParseVersion(in)
		assert.Error(t, err, in)
	}
}

func TestBlendModeText(t *testing.T) {
	var m EnvironmentBlendMode
	require.NoError(t, m.UnmarshalText([]byte("additive")))
	assert.Equal(t, EnvironmentBlendModeAdditive, m)
	assert.Equal(t, "ADDITIVE", m.String())
	assert.Error(t, m.UnmarshalText([]byte("holographic")))
	assert.Equal(t, "EnvironmentBlendMode(9)", EnvironmentBlendMode(9).String())
}

func TestLoadRegistry(t *testing.T) {
	Register("zz-registry", func() (Entry, error) { return newFakeEntry("zz-registry"), nil })
	t.Cleanup(func() { Unregister("zz-registry") })

	assert.Contains(t, Available(), "zz-registry")
	e, err := Load("zz-registry")
	require.NoError(t, err)
	assert.Equal(t, "zz-registry", e.Name())

	_, err = Load("missing")
	assert.ErrorIs(t, err, ErrLoaderNotFound)
}
