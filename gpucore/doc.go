// Package gpucore defines the contracts the frame package consumes from its
// external collaborators: the render surface with its GPU context, and the
// rasterizer that bridges opaque platform bitmaps and CPU pixel buffers.
//
// # Architecture
//
// The frame package implements image conversion once, against the [Context]
// interface. Thin backends translate that interface to a concrete device:
//
//	               +------------------+
//	               |      frame       |
//	               | (ShaderPipeline) |
//	               +--------+---------+
//	                        |
//	         +--------------+--------------+
//	         |                             |
//	+--------v--------+          +--------v--------+
//	|    software     |          |     native      |
//	| (in-memory GPU) |          |  (hal.Device)   |
//	+-----------------+          +--------+--------+
//	                                      |
//	                             +--------v--------+
//	                             |   gogpu/wgpu    |
//	                             +-----------------+
//
// # Binding State
//
// A Context carries mutable binding state (active texture unit, bound
// textures, bound framebuffer, current program) shared by everything that
// uses it. Callers that touch bindings snapshot [Context.Bindings] first and
// restore it when done, so that other users of the same context observe no
// leaked state.
//
// # Orientation
//
// Texel storage has no inherent orientation. [Context.WriteTexture] stores
// row 0 of the supplied pixels in storage row 0, [Context.ReadPixels]
// returns storage rows in order, and [Context.TransferToBitmap] emits the
// surface in storage order. Only [Context.UploadBitmap] may reverse rows,
// which a context reports through [Context.BitmapUploadFlipsY].
//
// # Thread Safety
//
// A Context is bound to a single thread of use. The asynchronous half of
// [Rasterizer] is the only operation that completes on another goroutine.
package gpucore
