package xr

import (
	"errors"
	"testing"
)

type fakeEntry struct {
	name        string
	extensions  []string
	loaderInits int
	created     []*fakeInstance
	gotInfo     ApplicationInfo
	gotExts     []string
	instance    fakeInstance
	createErr   error
}

func (e *fakeEntry) Name() string { return e.name }

func (e *fakeEntry) InitializeLoader() error {
	e.loaderInits++
	return nil
}

func (e *fakeEntry) EnumerateExtensions() ([]string, error) {
	return e.extensions, nil
}

func (e *fakeEntry) CreateInstance(info ApplicationInfo, exts []string) (Instance, error) {
	if e.createErr != nil {
		return nil, e.createErr
	}
	e.gotInfo = info
	e.gotExts = exts
	inst := e.instance
	e.created = append(e.created, &inst)
	return &inst, nil
}

type fakeInstance struct {
	noHMD     bool
	system    SystemID
	modes     []EnvironmentBlendMode
	req       GraphicsRequirements
	gotView   ViewConfigurationType
	destroyed int
	// onSystem runs inside System, before it answers.
	onSystem func()
}

func (i *fakeInstance) System(ff FormFactor) (SystemID, error) {
	if i.onSystem != nil {
		i.onSystem()
	}
	if i.noHMD || ff != FormFactorHeadMountedDisplay {
		return 0, errors.New("XR_ERROR_FORM_FACTOR_UNAVAILABLE")
	}
	return i.system, nil
}

func (i *fakeInstance) EnumerateEnvironmentBlendModes(_ SystemID, view ViewConfigurationType) ([]EnvironmentBlendMode, error) {
	i.gotView = view
	return i.modes, nil
}

func (i *fakeInstance) VulkanGraphicsRequirements(SystemID) (GraphicsRequirements, error) {
	return i.req, nil
}

func (i *fakeInstance) Destroy() error {
	i.destroyed++
	return nil
}

// registerFake installs entry under its name for the duration of the test.
func registerFake(t *testing.T, entry *fakeEntry) {
	t.Helper()
	Register(entry.name, func() (Entry, error) { return entry, nil })
	t.Cleanup(func() { Unregister(entry.name) })
}

func newFakeEntry(name string) *fakeEntry {
	return &fakeEntry{
		name:       name,
		extensions: []string{ExtensionVulkanEnable2, ExtensionAndroidCreateInstance},
		instance: fakeInstance{
			system: 7,
			modes:  []EnvironmentBlendMode{EnvironmentBlendModeOpaque, EnvironmentBlendModeAdditive},
			req: GraphicsRequirements{
				MinAPIVersion: MakeVersion(1, 1, 0),
				MaxAPIVersion: MakeVersion(1, 3, 0),
			},
		},
	}
}
