package dieselxr

import (
	"errors"
	"fmt"
	"runtime"

	vk "github.com/vulkan-go/vulkan"
)

var (
	// ErrResourceCreation wraps every rejected vkCreate* call.
	ErrResourceCreation = errors.New("vulkan: resource creation failed")
	// ErrMalformedBytecode means a shader blob failed to decode as SPIR-V.
	ErrMalformedBytecode = errors.New("vulkan: malformed shader bytecode")
	// ErrInvalidQueueFamily means a queue family index is outside the device's range.
	ErrInvalidQueueFamily = errors.New("vulkan: invalid queue family index")
	// ErrInvalidConfig covers pipeline configs and config files that cannot be used.
	ErrInvalidConfig = errors.New("vulkan: invalid pipeline configuration")
	// ErrReleased is returned when using an object after its last holder let go.
	ErrReleased = errors.New("vulkan: object already released")
)

func isError(ret vk.Result) bool {
	return ret != vk.Success
}

// newError converts a failing vk.Result into an error carrying the result
// code and the frame that issued the call. Success yields nil.
func newError(ret vk.Result) error {
	if ret == vk.Success {
		return nil
	}
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return fmt.Errorf("%w: %w (%d)", ErrResourceCreation, vk.Error(ret), ret)
	}
	return fmt.Errorf("%w: %w (%d) on %s", ErrResourceCreation, vk.Error(ret), ret, newStackFrame(pc))
}

func orPanic(err error) {
	if err != nil {
		panic(err)
	}
}

func checkErr(err *error) {
	if v := recover(); v != nil {
		if e, ok := v.(error); ok {
			*err = e
			return
		}
		*err = fmt.Errorf("%+v", v)
	}
}
