//go:build !nogpu

// Package native implements gpucore.Context on gogpu/wgpu's HAL.
//
// Textures live in storage buffers holding packed RGBA8 texels, which is
// the layout the conversion programs address. Programs become compute
// pipelines over a shared three-entry bind group layout; Draw dispatches
// one 8x8 workgroup per tile and waits on a fence. Read-back goes through
// a MapRead staging buffer.
//
// A context can wrap a device directly or come from a gpucontext
// provider that exposes its HAL objects:
//
//	ctx, err := native.FromProvider(provider)
//
// The package also registers backend.Native, which opens the first Vulkan
// adapter it finds.
package native
