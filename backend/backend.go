package backend

import (
	"errors"
	"io"

	"github.com/gogpu/frame/gpucore"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered or cannot create a context on this machine.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Backend name constants.
const (
	// Software is the name of the in-memory reference backend.
	Software = "software"
	// Native is the name of the gogpu/wgpu HAL backend.
	Native = "native"
)

// Factory creates a new GPU context.
//
// A context that holds device resources of its own, such as the native
// backend's Vulkan instance and device, implements io.Closer. Callers
// release such contexts with Close when done with them.
type Factory func() (gpucore.Context, error)

// Close releases ctx if it implements io.Closer. Contexts without device
// resources of their own need no release and Close returns nil.
func Close(ctx gpucore.Context) error {
	if c, ok := ctx.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
