package frame

import "errors"

// Container errors.
var (
	// ErrDimensionMismatch is returned when a representation's size differs
	// from the container's or from another representation's.
	ErrDimensionMismatch = errors.New("frame: dimension mismatch")

	// ErrEmptyInput is returned when a container is created without
	// representations, or with a nil one.
	ErrEmptyInput = errors.New("frame: no representations")

	// ErrUnsupportedConversion is returned when no path leads from the cached
	// representations to the requested kind.
	ErrUnsupportedConversion = errors.New("frame: unsupported conversion")

	// ErrClosedContainer is returned by every operation on a closed container.
	ErrClosedContainer = errors.New("frame: container is closed")

	// ErrDuplicateKind is returned when two initial representations share a kind.
	ErrDuplicateKind = errors.New("frame: duplicate representation kind")

	// ErrInvalidDimensions is returned for non-positive widths or heights.
	ErrInvalidDimensions = errors.New("frame: invalid dimensions")

	// ErrNilContext is returned when no GPU context is supplied.
	ErrNilContext = errors.New("frame: nil GPU context")

	// ErrNilPipeline is returned when no shader pipeline is supplied.
	ErrNilPipeline = errors.New("frame: nil shader pipeline")

	// ErrContextMismatch is returned when the pipeline was created on a
	// different GPU context than the container's surface.
	ErrContextMismatch = errors.New("frame: pipeline belongs to another GPU context")

	// ErrInvalidPixelData is returned when pixel bytes do not match the size.
	ErrInvalidPixelData = errors.New("frame: pixel data does not match dimensions")
)

// ErrPipelineClosed is returned by every operation on a closed pipeline.
var ErrPipelineClosed = errors.New("frame: shader pipeline is closed")
