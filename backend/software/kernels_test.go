package software

import (
	"bytes"
	"testing"
)

// rows builds a width x height image whose texel bytes encode (x, y).
func rows(width, height int) []byte {
	out := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			out[i], out[i+1], out[i+2], out[i+3] = byte(x), byte(y), byte(x^y), 0xA0
		}
	}
	return out
}

func TestCopyKernel(t *testing.T) {
	src := rows(3, 2)
	dst := make([]byte, len(src))
	copyKernel(dst, 3, src, 3, 3, 2)
	if !bytes.Equal(dst, src) {
		t.Errorf("copyKernel = %v, want %v", dst, src)
	}
}

func TestCopyKernelStrides(t *testing.T) {
	// Copy the top-left 2x2 of a 4x3 source into a 3x2 destination.
	src := rows(4, 3)
	dst := make([]byte, 3*2*4)
	copyKernel(dst, 3, src, 4, 2, 2)

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			d := (y*3 + x) * 4
			if dst[d] != byte(x) || dst[d+1] != byte(y) {
				t.Errorf("dst(%d,%d) = %v", x, y, dst[d:d+4])
			}
		}
		// Column 2 is outside the region and must stay zero.
		if d := (y*3 + 2) * 4; !bytes.Equal(dst[d:d+4], make([]byte, 4)) {
			t.Errorf("dst(2,%d) written outside region", y)
		}
	}
}

func TestFlipYKernel(t *testing.T) {
	src := rows(2, 3)
	dst := make([]byte, len(src))
	flipYKernel(dst, 2, src, 2, 2, 3)

	for y := 0; y < 3; y++ {
		got := dst[y*8 : y*8+8]
		want := src[(2-y)*8 : (2-y)*8+8]
		if !bytes.Equal(got, want) {
			t.Errorf("row %d = %v, want %v", y, got, want)
		}
	}

	back := make([]byte, len(src))
	flipYKernel(back, 2, dst, 2, 2, 3)
	if !bytes.Equal(back, src) {
		t.Error("flipping twice is not the identity")
	}
}

func TestKernelsCoverEntryPoints(t *testing.T) {
	for _, entry := range []string{"copy_main", "flip_y_main"} {
		if kernels[entry] == nil {
			t.Errorf("no kernel for entry point %q", entry)
		}
	}
}
