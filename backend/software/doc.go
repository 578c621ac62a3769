// Package software implements gpucore.Context and gpucore.Rasterizer in
// memory.
//
// Textures, the render surface and platform bitmaps are plain RGBA8 byte
// slices. Programs are validated SPIR-V whose entry point selects a CPU
// port of the matching compute kernel, so conversions run the same texel
// arithmetic the GPU would.
//
// The backend registers itself as backend.Software on import:
//
//	import _ "github.com/gogpu/frame/backend/software"
//
// A Context is safe for concurrent use; every call takes its lock. This
// matters for the rasterizer, whose asynchronous decode completes on a
// separate goroutine.
package software
