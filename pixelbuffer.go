package frame

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/gogpu/frame/gpucore"
	"github.com/gogpu/frame/internal/bitmaps"
)

// PixelBuffer is a CPU-resident RGBA8 image, row-major with the origin at
// the top-left. Colors are stored verbatim (non-premultiplied).
type PixelBuffer struct {
	width  int
	height int
	data   []uint8 // RGBA, 4 bytes per pixel
}

// NewPixelBuffer copies tightly packed RGBA8 pixels into a new buffer.
func NewPixelBuffer(width, height int, data []byte) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(data) != width*height*gpucore.BytesPerPixel {
		return nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrInvalidPixelData, width, height, len(data))
	}
	p := &PixelBuffer{width: width, height: height, data: make([]uint8, len(data))}
	copy(p.data, data)
	return p, nil
}

// newPixelBufferOwned adopts data without copying.
func newPixelBufferOwned(width, height int, data []byte) (*PixelBuffer, error) {
	if len(data) != width*height*gpucore.BytesPerPixel {
		return nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrInvalidPixelData, width, height, len(data))
	}
	return &PixelBuffer{width: width, height: height, data: data}, nil
}

// FromImage copies any image into a new buffer.
func FromImage(img image.Image) (*PixelBuffer, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDimensions, b)
	}
	n := bitmaps.ToNRGBA(img)
	return &PixelBuffer{width: b.Dx(), height: b.Dy(), data: n.Pix}, nil
}

// Kind returns KindPixelBuffer.
func (p *PixelBuffer) Kind() Kind { return KindPixelBuffer }

func (*PixelBuffer) representation() {}

// Width returns the width of the buffer.
func (p *PixelBuffer) Width() int {
	return p.width
}

// Height returns the height of the buffer.
func (p *PixelBuffer) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *PixelBuffer) Data() []uint8 {
	return p.data
}

// SetPixel sets the color of a single pixel.
func (p *PixelBuffer) SetPixel(x, y int, c color.NRGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// Pixel returns the color of a single pixel.
func (p *PixelBuffer) Pixel(x, y int) color.NRGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.NRGBA{}
	}
	i := (y*p.width + x) * 4
	return color.NRGBA{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Clone returns a deep copy.
func (p *PixelBuffer) Clone() *PixelBuffer {
	data := make([]uint8, len(p.data))
	copy(data, p.data)
	return &PixelBuffer{width: p.width, height: p.height, data: data}
}

// Equal reports whether both buffers have the same size and bytes.
func (p *PixelBuffer) Equal(o *PixelBuffer) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.width == o.width && p.height == o.height && bytes.Equal(p.data, o.data)
}

// Checksum returns the xxhash64 of the pixel bytes.
func (p *PixelBuffer) Checksum() uint64 {
	return xxhash.Sum64(p.data)
}

// ToImage converts the buffer to an image.NRGBA.
func (p *PixelBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// SavePNG saves the buffer to a PNG file.
func (p *PixelBuffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, p.ToImage())
}

// At implements the image.Image interface.
func (p *PixelBuffer) At(x, y int) color.Color {
	return p.Pixel(x, y)
}

// Bounds implements the image.Image interface.
func (p *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *PixelBuffer) ColorModel() color.Model {
	return color.NRGBAModel
}
