package software

import "errors"

var (
	// ErrUnknownTexture is returned for texture IDs that are not live.
	ErrUnknownTexture = errors.New("software: unknown texture")

	// ErrUnknownFramebuffer is returned for framebuffer IDs that are not live.
	ErrUnknownFramebuffer = errors.New("software: unknown framebuffer")

	// ErrIncompleteFramebuffer is returned when drawing into or reading from
	// a framebuffer without an attachment.
	ErrIncompleteFramebuffer = errors.New("software: framebuffer has no attachment")

	// ErrNoProgram is returned by Draw when no program is in use.
	ErrNoProgram = errors.New("software: no program in use")

	// ErrInvalidProgram is returned for program descriptors that are not
	// valid SPIR-V.
	ErrInvalidProgram = errors.New("software: invalid program")

	// ErrUnknownEntryPoint is returned for entry points with no kernel.
	ErrUnknownEntryPoint = errors.New("software: unknown entry point")

	// ErrInvalidSize is returned for non-positive sizes and for pixel data
	// that does not match its size.
	ErrInvalidSize = errors.New("software: invalid size")

	// ErrOutOfBounds is returned when a region exceeds its texture.
	ErrOutOfBounds = errors.New("software: region out of bounds")
)
