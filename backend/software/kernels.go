package software

import "github.com/gogpu/frame/gpucore"

// kernel is a CPU port of a conversion compute kernel. Strides are in
// texels; each texel is gpucore.BytesPerPixel bytes.
type kernel func(dst []byte, dstStride int, src []byte, srcStride int, width, height int)

// kernels maps compute entry points to their CPU ports.
var kernels = map[string]kernel{
	gpucore.EntryCopy:  copyKernel,
	gpucore.EntryFlipY: flipYKernel,
}

// copyKernel mirrors copy_main: dst[y][x] = src[y][x].
func copyKernel(dst []byte, dstStride int, src []byte, srcStride int, width, height int) {
	rowLen := width * gpucore.BytesPerPixel
	for y := 0; y < height; y++ {
		d := y * dstStride * gpucore.BytesPerPixel
		s := y * srcStride * gpucore.BytesPerPixel
		copy(dst[d:d+rowLen], src[s:s+rowLen])
	}
}

// flipYKernel mirrors flip_y_main: dst[y][x] = src[height-1-y][x].
func flipYKernel(dst []byte, dstStride int, src []byte, srcStride int, width, height int) {
	rowLen := width * gpucore.BytesPerPixel
	for y := 0; y < height; y++ {
		d := y * dstStride * gpucore.BytesPerPixel
		s := (height - 1 - y) * srcStride * gpucore.BytesPerPixel
		copy(dst[d:d+rowLen], src[s:s+rowLen])
	}
}
