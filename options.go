package frame

import (
	"github.com/gogpu/frame/gpucore"
	"github.com/gogpu/frame/internal/shadercache"
)

// Option configures a Container during creation.
//
// Example:
//
//	// The container releases the caller's texture on Close.
//	c, err := frame.New(ctx, pipeline, w, h, reps, frame.WithTextureOwnership(true))
type Option func(*containerOptions)

// containerOptions holds optional configuration for Container creation.
type containerOptions struct {
	ownsBitmap  bool
	ownsTexture bool
	rasterizer  gpucore.Rasterizer
}

// defaultOptions returns the default container options: the caller keeps
// ownership of every representation it passes in.
func defaultOptions() containerOptions {
	return containerOptions{}
}

// WithBitmapOwnership transfers ownership of the initial Bitmap to the
// container, which then releases it on Close.
func WithBitmapOwnership(owns bool) Option {
	return func(o *containerOptions) {
		o.ownsBitmap = owns
	}
}

// WithTextureOwnership transfers ownership of the initial Texture to the
// container, which then destroys it on Close.
func WithTextureOwnership(owns bool) Option {
	return func(o *containerOptions) {
		o.ownsTexture = owns
	}
}

// WithRasterizer lets the container convert between pixel buffers and
// bitmaps directly instead of through an intermediate texture.
//
// Example:
//
//	ctx := software.New()
//	c, err := frame.New(ctx, pipeline, w, h, reps, frame.WithRasterizer(ctx))
func WithRasterizer(r gpucore.Rasterizer) Option {
	return func(o *containerOptions) {
		o.rasterizer = r
	}
}

// PipelineOption configures a ShaderPipeline during creation.
type PipelineOption func(*pipelineOptions)

// pipelineOptions holds optional configuration for ShaderPipeline creation.
type pipelineOptions struct {
	shaders *shadercache.Cache
}

// defaultPipelineOptions compiles through the process-wide shader cache.
func defaultPipelineOptions() pipelineOptions {
	return pipelineOptions{shaders: shadercache.Default()}
}

// WithShaderCompiler replaces naga as the WGSL to SPIR-V compiler. The
// pipeline gets a private shader cache around compile.
func WithShaderCompiler(compile func(source string) ([]byte, error)) PipelineOption {
	return func(o *pipelineOptions) {
		if compile != nil {
			o.shaders = shadercache.New(len(programSources), compile)
		}
	}
}
