//go:build !nogpu

package native

import "errors"

var (
	// ErrNilProvider is returned by FromProvider for a nil provider.
	ErrNilProvider = errors.New("native: nil device provider")

	// ErrNoHALAccess is returned when a provider does not expose HAL types.
	ErrNoHALAccess = errors.New("native: provider does not expose HAL device and queue")

	// ErrNilDevice is returned when the device or queue is nil.
	ErrNilDevice = errors.New("native: nil device or queue")

	// ErrUnknownTexture is returned for texture IDs that are not live.
	ErrUnknownTexture = errors.New("native: unknown texture")

	// ErrUnknownFramebuffer is returned for framebuffer IDs that are not live.
	ErrUnknownFramebuffer = errors.New("native: unknown framebuffer")

	// ErrIncompleteFramebuffer is returned for framebuffers without an attachment.
	ErrIncompleteFramebuffer = errors.New("native: framebuffer has no attachment")

	// ErrNoProgram is returned by Draw when no program is in use.
	ErrNoProgram = errors.New("native: no program in use")

	// ErrInvalidProgram is returned for descriptors without a SPIR-V module.
	ErrInvalidProgram = errors.New("native: invalid program")

	// ErrInvalidSize is returned for non-positive sizes and mismatched data.
	ErrInvalidSize = errors.New("native: invalid size")

	// ErrOutOfBounds is returned when a region exceeds its texture.
	ErrOutOfBounds = errors.New("native: region out of bounds")

	// ErrClosed is returned by every operation on a closed context.
	ErrClosed = errors.New("native: context is closed")

	// ErrGPUTimeout is returned when a submission does not finish in time.
	ErrGPUTimeout = errors.New("native: GPU wait timed out")
)
