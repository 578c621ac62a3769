package frame

import (
	_ "embed"

	"github.com/gogpu/frame/gpucore"
)

//go:embed shaders/copy.wgsl
var copyShaderWGSL string

//go:embed shaders/flip_y.wgsl
var flipYShaderWGSL string

// program names a conversion program the pipeline owns.
type program uint8

const (
	programCopy program = iota
	programFlipY
)

// programSource describes one embedded program.
type programSource struct {
	label      string
	wgsl       string
	entryPoint string
}

// programSources lists the embedded programs, indexed by program.
var programSources = [...]programSource{
	programCopy:  {label: "frame_copy", wgsl: copyShaderWGSL, entryPoint: gpucore.EntryCopy},
	programFlipY: {label: "frame_flip_y", wgsl: flipYShaderWGSL, entryPoint: gpucore.EntryFlipY},
}
