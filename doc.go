// Package frame holds one image frame in up to three interchangeable
// representations: a CPU pixel buffer, a platform bitmap and a GPU texture.
//
// # Overview
//
// A Container is created from whatever representations the producer has at
// hand. Consumers ask for the kind they need and the container produces it
// lazily, converting through a ShaderPipeline, and caches the result:
//
//	ctx := software.New()
//	pipeline, err := frame.NewShaderPipeline(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pipeline.Close()
//
//	pb, _ := frame.NewPixelBuffer(640, 480, pixels)
//	c, err := frame.New(ctx, pipeline, 640, 480, []frame.Representation{pb})
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	tex, err := c.Texture()
//
// # Guarantees
//
// Converting A to B and back to A yields the original bytes for every pair
// of kinds. A texture produced from a platform bitmap on a platform whose
// upload flips rows is tagged OrientationFlipped and is flipped exactly once
// on the way out, including through clones.
//
// # Ownership
//
// Representations passed to New are owned by the caller unless
// WithBitmapOwnership or WithTextureOwnership says otherwise. Everything the
// container synthesizes is released by Close.
//
// # Backends
//
// The GPU context is supplied through the gpucore.Context interface:
//   - backend/software: in-memory reference context and rasterizer
//   - backend/native: gogpu/wgpu HAL compute context
//
// # Thread Safety
//
// Container and ShaderPipeline are not safe for concurrent use. A context
// belongs to one goroutine at a time; the only asynchronous step is the
// rasterizer's bitmap decode, which ImageContext waits for.
//
// # Logging
//
// The package is silent by default. See SetLogger.
package frame
