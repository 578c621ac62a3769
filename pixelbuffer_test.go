package frame

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

// gradient returns w*h RGBA8 pixels where every byte depends on its position.
func gradient(w, h int) []byte {
	data := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			data[i+0] = uint8(x * 37)
			data[i+1] = uint8(y * 53)
			data[i+2] = uint8(x + y*w)
			data[i+3] = uint8(255 - x - y)
		}
	}
	return data
}

func TestNewPixelBuffer(t *testing.T) {
	data := gradient(3, 2)
	pb, err := NewPixelBuffer(3, 2, data)
	if err != nil {
		t.Fatalf("NewPixelBuffer: %v", err)
	}
	if pb.Width() != 3 || pb.Height() != 2 || pb.Kind() != KindPixelBuffer {
		t.Errorf("got %dx%d %v, want 3x2 PixelBuffer", pb.Width(), pb.Height(), pb.Kind())
	}

	// Constructor must copy.
	data[0] ^= 0xFF
	if pb.Data()[0] == data[0] {
		t.Error("NewPixelBuffer aliases caller data")
	}
}

func TestNewPixelBufferErrors(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		n    int
		want error
	}{
		{"zero width", 0, 2, 0, ErrInvalidDimensions},
		{"negative height", 2, -1, 0, ErrInvalidDimensions},
		{"short data", 2, 2, 15, ErrInvalidPixelData},
		{"long data", 1, 1, 8, ErrInvalidPixelData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPixelBuffer(tt.w, tt.h, make([]byte, tt.n))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPixelBufferPixelAccess(t *testing.T) {
	pb, _ := NewPixelBuffer(4, 4, make([]byte, 64))
	c := color.NRGBA{R: 10, G: 20, B: 30, A: 40}
	pb.SetPixel(2, 3, c)
	if got := pb.Pixel(2, 3); got != c {
		t.Errorf("Pixel(2,3) = %v, want %v", got, c)
	}

	// Out-of-bounds writes are ignored, reads return transparent.
	pb.SetPixel(-1, 0, c)
	pb.SetPixel(4, 0, c)
	if got := pb.Pixel(4, 4); got != (color.NRGBA{}) {
		t.Errorf("Pixel(4,4) = %v, want zero", got)
	}
	if got := pb.At(2, 3); got != c {
		t.Errorf("At(2,3) = %v, want %v", got, c)
	}
	if pb.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Errorf("Bounds() = %v", pb.Bounds())
	}
	if pb.ColorModel() != color.NRGBAModel {
		t.Error("ColorModel() is not NRGBA")
	}
}

func TestPixelBufferCloneEqualChecksum(t *testing.T) {
	pb, _ := NewPixelBuffer(2, 2, gradient(2, 2))
	cl := pb.Clone()
	if !pb.Equal(cl) {
		t.Fatal("clone is not equal to original")
	}
	if pb.Checksum() != cl.Checksum() {
		t.Error("checksums differ for equal buffers")
	}

	cl.Data()[5]++
	if pb.Equal(cl) {
		t.Error("Equal ignores byte differences")
	}
	if pb.Checksum() == cl.Checksum() {
		t.Error("checksum ignores byte differences")
	}

	other, _ := NewPixelBuffer(1, 4, pb.Data())
	if pb.Equal(other) {
		t.Error("Equal ignores dimensions")
	}
	var nilBuf *PixelBuffer
	if pb.Equal(nilBuf) || !nilBuf.Equal(nil) {
		t.Error("Equal mishandles nil")
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	img.SetNRGBA(5, 5, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	img.SetNRGBA(6, 5, color.NRGBA{R: 5, G: 6, B: 7, A: 8})

	pb, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if string(pb.Data()) != string(want) {
		t.Errorf("Data() = %v, want %v", pb.Data(), want)
	}

	if _, err := FromImage(image.NewNRGBA(image.Rectangle{})); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("empty image err = %v, want ErrInvalidDimensions", err)
	}
}

func TestPixelBufferSavePNG(t *testing.T) {
	pb, _ := NewPixelBuffer(3, 3, gradient(3, 3))
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := pb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
}
