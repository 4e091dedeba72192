package xr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckVersion(t *testing.T) {
	cases := []struct {
		name     string
		v        Version
		min, max Version
		ok       bool
	}{
		{"inside range", MakeVersion(1, 1, 0), MakeVersion(1, 0, 0), MakeVersion(1, 2, 0), true},
		{"below minimum", MakeVersion(1, 1, 0), MakeVersion(1, 2, 0), MakeVersion(1, 3, 0), false},
		{"major above maximum", MakeVersion(2, 0, 0), MakeVersion(1, 0, 0), MakeVersion(1, 5, 0), false},
		{"equal to minimum", MakeVersion(1, 2, 0), MakeVersion(1, 2, 0), MakeVersion(1, 3, 0), true},
		{"minor above maximum tolerated", MakeVersion(1, 9, 0), MakeVersion(1, 0, 0), MakeVersion(1, 2, 0), true},
		{"patch above maximum tolerated", MakeVersion(1, 2, 200), MakeVersion(1, 0, 0), MakeVersion(1, 2, 0), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckVersion(tc.v, GraphicsRequirements{MinAPIVersion: tc.min, MaxAPIVersion: tc.max})
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrVersionUnsupported)
			var verr *VersionError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.v, verr.Version)
		})
	}
}

func TestCheckVersionProperty(t *testing.T) {
	for minMaj := uint16(0); minMaj < 3; minMaj++ {
		for minMin := uint16(0); minMin < 3; minMin++ {
			for maxMaj := minMaj; maxMaj < 3; maxMaj++ {
				for maxMin := uint16(0); maxMin < 3; maxMin++ {
					lo := MakeVersion(minMaj, minMin, 0)
					hi := MakeVersion(maxMaj, maxMin, 0)
					if lo > hi {
						continue
					}
					for vMaj := uint16(0); vMaj < 4; vMaj++ {
						for vMin := uint16(0); vMin < 4; vMin++ {
							v := MakeVersion(vMaj, vMin, 1)
							want := v >= lo && v.Major() <= hi.Major()
							err := CheckVersion(v, GraphicsRequirements{MinAPIVersion: lo, MaxAPIVersion: hi})
							assert.Equal(t, want, err == nil, "v=%s range=[%s,%s]", v, lo, hi)
						}
					}
				}
			}
		}
	}
}

func TestVersionErrorMessage(t *testing.T) {
	err := CheckVersion(MakeVersion(2, 0, 0), GraphicsRequirements{
		MinAPIVersion: MakeVersion(1, 0, 0),
		MaxAPIVersion: MakeVersion(1, 5, 0),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2.0.0")
	assert.Contains(t, err.Error(), ">= 1.0.0")
	assert.Contains(t, err.Error(), "< 2.0.0")
}

func TestSelectBlendModeFirst(t *testing.T) {
	modes := []EnvironmentBlendMode{EnvironmentBlendModeAlphaBlend, EnvironmentBlendModeOpaque, EnvironmentBlendModeAdditive}
	for i := 0; i < 10; i++ {
		got, err := SelectBlendMode(modes)
		require.NoError(t, err)
		assert.Equal(t, EnvironmentBlendModeAlphaBlend, got)
	}
	_, err := SelectBlendMode(nil)
	assert.ErrorIs(t, err, ErrNoBlendModes)
}

func TestRequiredExtensions(t *testing.T) {
	assert.Equal(t, []string{ExtensionVulkanEnable2}, RequiredExtensions("linux"))
	assert.Equal(t, []string{ExtensionVulkanEnable2, ExtensionAndroidCreateInstance}, RequiredExtensions("android"))
	assert.Equal(t, []string{ExtensionVulkanEnable2, "XR_EXT_debug_utils"},
		RequiredExtensions("windows", "XR_EXT_debug_utils", ExtensionVulkanEnable2))
}

func TestNegotiateEndToEnd(t *testing.T) {
	entry := newFakeEntry("fake-e2e")
	registerFake(t, entry)

	app := ApplicationInfo{ApplicationName: "demo", EngineName: "demo engine"}
	s, err := Negotiate(context.Background(), Options{
		Runtime:        "fake-e2e",
		Application:    app,
		BackendVersion: MakeVersion(1, 2, 0),
		GOOS:           "linux",
	})
	require.NoError(t, err)

	caps := s.Capabilities()
	assert.Equal(t, EnvironmentBlendModeOpaque, caps.EnvironmentBlendMode)
	assert.Equal(t, SystemID(7), caps.SystemID)
	assert.True(t, caps.VersionOK())
	assert.Equal(t, MakeVersion(1, 1, 0), caps.MinAPIVersion)
	assert.Equal(t, MakeVersion(1, 3, 0), caps.MaxAPIVersion)
	assert.Equal(t, app, entry.gotInfo)
	assert.Equal(t, []string{ExtensionVulkanEnable2}, entry.gotExts)
	assert.Equal(t, 0, entry.loaderInits)
	require.Len(t, entry.created, 1)
	assert.Equal(t, ViewConfigurationPrimaryStereo, entry.created[0].gotView)
	assert.Equal(t, "fake-e2e", s.Runtime())

	require.NoError(t, s.Close())
	assert.Equal(t, 1, entry.created[0].destroyed)
	_, err = s.Instance()
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestNegotiateAndroidInitializesLoader(t *testing.T) {
	entry := newFakeEntry("fake-android")
	registerFake(t, entry)

	s, err := Negotiate(context.Background(), Options{
		Runtime:        "fake-android",
		BackendVersion: MakeVersion(1, 1, 0),
		GOOS:           "android",
	})
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, 1, entry.loaderInits)
	assert.Equal(t, []string{ExtensionVulkanEnable2, ExtensionAndroidCreateInstance}, entry.gotExts)
}

func TestNegotiateLoaderMissing(t *testing.T) {
	_, err := Negotiate(context.Background(), Options{Runtime: "no-such-runtime"})
	assert.ErrorIs(t, err, ErrLoaderNotFound)
}

func TestNegotiateNoHMDDestroysInstance(t *testing.T) {
	entry := newFakeEntry("fake-nohmd")
	entry.instance.noHMD = true
	registerFake(t, entry)

	_, err := Negotiate(context.Background(), Options{Runtime: "fake-nohmd", BackendVersion: MakeVersion(1, 1, 0)})
	assert.ErrorIs(t, err, ErrFormFactorUnavailable)
	require.Len(t, entry.created, 1)
	assert.Equal(t, 1, entry.created[0].destroyed)
}

func TestNegotiateVersionRejected(t *testing.T) {
	entry := newFakeEntry("fake-version")
	registerFake(t, entry)

	_, err := Negotiate(context.Background(), Options{Runtime: "fake-version", BackendVersion: MakeVersion(1, 0, 0)})
	var verr *VersionError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MakeVersion(1, 1, 0), verr.Required.MinAPIVersion)
	assert.Equal(t, 1, entry.created[0].destroyed)
}

func TestNegotiateNoBlendModes(t *testing.T) {
	entry := newFakeEntry("fake-nomodes")
	entry.instance.modes = nil
	registerFake(t, entry)

	_, err := Negotiate(context.Background(), Options{Runtime: "fake-nomodes", BackendVersion: MakeVersion(1, 1, 0)})
	assert.ErrorIs(t, err, ErrNoBlendModes)
	assert.Equal(t, 1, entry.created[0].destroyed)
}

func TestNegotiateMissingExtension(t *testing.T) {
	entry := newFakeEntry("fake-noext")
	entry.extensions = nil
	registerFake(t, entry)

	_, err := Negotiate(context.Background(), Options{Runtime: "fake-noext", BackendVersion: MakeVersion(1, 1, 0)})
	assert.ErrorIs(t, err, ErrExtensionNotPresent)
	assert.Empty(t, entry.created)
}

func TestNegotiateCreateInstanceFails(t *testing.T) {
	entry := newFakeEntry("fake-createfail")
	entry.createErr = errors.New("XR_ERROR_RUNTIME_FAILURE")
	registerFake(t, entry)

	_, err := Negotiate(context.Background(), Options{Runtime: "fake-createfail", BackendVersion: MakeVersion(1, 1, 0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "XR_ERROR_RUNTIME_FAILURE")
}

func TestNegotiateCanceledContext(t *testing.T) {
	entry := newFakeEntry("fake-cancel")
	registerFake(t, entry)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Negotiate(ctx, Options{Runtime: "fake-cancel", BackendVersion: MakeVersion(1, 1, 0)})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, entry.created)
}

func TestNegotiateCanceledAfterCreateDestroysInstance(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	entry := newFakeEntry("fake-cancel-late")
	entry.instance.onSystem = cancel
	registerFake(t, entry)

	s, err := Negotiate(ctx, Options{Runtime: "fake-cancel-late", BackendVersion: MakeVersion(1, 2, 0)})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, s)
	require.Len(t, entry.created, 1)
	assert.Equal(t, 1, entry.created[0].destroyed)
}

func TestSessionSharedRelease(t *testing.T) {
	entry := newFakeEntry("fake-shared")
	registerFake(t, entry)

	s, err := Negotiate(context.Background(), Options{Runtime: "fake-shared", BackendVersion: MakeVersion(1, 1, 0)})
	require.NoError(t, err)
	require.NoError(t, s.Retain())

	require.NoError(t, s.Close())
	assert.Equal(t, 0, entry.created[0].destroyed)
	inst, err := s.Instance()
	require.NoError(t, err)
	assert.NotNil(t, inst)

	s.Release()
	assert.Equal(t, 1, entry.created[0].destroyed)
	assert.ErrorIs(t, s.Retain(), ErrSessionClosed)
	s.Release()
	assert.Equal(t, 1, entry.created[0].destroyed)
}
