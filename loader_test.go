package dieselxr

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loaderCalls struct {
	procAddr   unsafe.Pointer
	defaults   int
	inits      int
	terminated int
}

// stubLoader swaps the vulkan-go entry points for the test.
func stubLoader(t *testing.T, defaultErr, initErr error) *loaderCalls {
	t.Helper()
	calls := &loaderCalls{}
	oldSet, oldDefault, oldInit := setProcAddr, setDefaultProcAddr, initVulkan
	t.Cleanup(func() { setProcAddr, setDefaultProcAddr, initVulkan = oldSet, oldDefault, oldInit })
	setProcAddr = func(p unsafe.Pointer) { calls.procAddr = p }
	setDefaultProcAddr = func() error {
		calls.defaults++
		return defaultErr
	}
	initVulkan = func() error {
		calls.inits++
		return initErr
	}
	return calls
}

var procAddrMarker byte

func testSource(calls *loaderCalls, initErr error) LoaderSource {
	return LoaderSource{
		Name:      "glfw",
		Init:      func() error { return initErr },
		ProcAddr:  func() unsafe.Pointer { return unsafe.Pointer(&procAddrMarker) },
		Terminate: func() { calls.terminated++ },
	}
}

func TestInitLoaderUsesSource(t *testing.T) {
	calls := stubLoader(t, nil, nil)
	release, err := InitLoader(testSource(calls, nil))
	require.NoError(t, err)
	assert.True(t, calls.procAddr == unsafe.Pointer(&procAddrMarker))
	assert.Zero(t, calls.defaults)
	assert.Equal(t, 1, calls.inits)

	release()
	assert.Equal(t, 1, calls.terminated)
}

func TestInitLoaderFallsBackWithoutDisplay(t *testing.T) {
	calls := stubLoader(t, nil, nil)
	release, err := InitLoader(testSource(calls, errors.New("X11: Failed to open display")))
	require.NoError(t, err)
	assert.Nil(t, calls.procAddr)
	assert.Equal(t, 1, calls.defaults)
	assert.Equal(t, 1, calls.inits)

	release()
	assert.Zero(t, calls.terminated, "an uninitialised source must not be terminated")
}

func TestInitLoaderFailures(t *testing.T) {
	noLoader := errors.New("libvulkan.so.1: cannot open shared object file")
	calls := stubLoader(t, noLoader, nil)
	_, err := InitLoader(testSource(calls, errors.New("no display")))
	assert.ErrorIs(t, err, noLoader)
	assert.Zero(t, calls.inits)

	initFailed := errors.New("vkCreateInstance missing")
	calls = stubLoader(t, nil, initFailed)
	release, err := InitLoader(testSource(calls, nil))
	assert.ErrorIs(t, err, initFailed)
	assert.Equal(t, 1, calls.terminated, "source is terminated when vk.Init fails")
	release()
	assert.Equal(t, 1, calls.terminated)
}
