package frame

import (
	"fmt"

	"github.com/gogpu/frame/gpucore"
)

// Kind identifies one of the three representation kinds.
type Kind uint8

const (
	// KindPixelBuffer is a CPU-resident RGBA8 buffer.
	KindPixelBuffer Kind = iota

	// KindBitmap is an opaque platform bitmap.
	KindBitmap

	// KindTexture is a GPU texture.
	KindTexture

	kindCount
)

// kinds lists every kind in declaration order.
var kinds = [kindCount]Kind{KindPixelBuffer, KindBitmap, KindTexture}

// Kinds returns all representation kinds.
func Kinds() []Kind {
	out := kinds
	return out[:]
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPixelBuffer:
		return "PixelBuffer"
	case KindBitmap:
		return "Bitmap"
	case KindTexture:
		return "Texture"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// valid reports whether k names a known kind.
func (k Kind) valid() bool {
	return k < kindCount
}

// Representation is one concrete form of a frame.
//
// The set of implementations is closed: *PixelBuffer, *Bitmap and *Texture.
type Representation interface {
	Kind() Kind
	Width() int
	Height() int

	representation()
}

// Orientation records the row order of a texture's storage.
type Orientation uint8

const (
	// OrientationNormal stores the top image row in storage row 0.
	OrientationNormal Orientation = iota

	// OrientationFlipped stores the bottom image row in storage row 0.
	OrientationFlipped
)

// String returns the orientation name.
func (o Orientation) String() string {
	if o == OrientationFlipped {
		return "Flipped"
	}
	return "Normal"
}

// Bitmap is a handle to a platform bitmap owned by a gpucore.Context.
type Bitmap struct {
	handle gpucore.BitmapID
	width  int
	height int
}

// NewBitmap wraps a platform bitmap handle.
func NewBitmap(handle gpucore.BitmapID, width, height int) (*Bitmap, error) {
	if handle == gpucore.InvalidID {
		return nil, fmt.Errorf("%w: invalid bitmap handle", ErrEmptyInput)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Bitmap{handle: handle, width: width, height: height}, nil
}

// Handle returns the platform handle.
func (b *Bitmap) Handle() gpucore.BitmapID { return b.handle }

// Kind returns KindBitmap.
func (b *Bitmap) Kind() Kind { return KindBitmap }

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int { return b.width }

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int { return b.height }

func (*Bitmap) representation() {}

// Texture is a GPU texture owned by a gpucore.Context.
type Texture struct {
	id          gpucore.TextureID
	width       int
	height      int
	orientation Orientation
}

// NewTexture wraps an existing texture.
func NewTexture(id gpucore.TextureID, width, height int, orientation Orientation) (*Texture, error) {
	if id == gpucore.InvalidID {
		return nil, fmt.Errorf("%w: invalid texture id", ErrEmptyInput)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Texture{id: id, width: width, height: height, orientation: orientation}, nil
}

// ID returns the texture ID.
func (t *Texture) ID() gpucore.TextureID { return t.id }

// Orientation returns the storage row order.
func (t *Texture) Orientation() Orientation { return t.orientation }

// Flipped reports whether the texture is stored bottom row first.
func (t *Texture) Flipped() bool { return t.orientation == OrientationFlipped }

// Kind returns KindTexture.
func (t *Texture) Kind() Kind { return KindTexture }

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

func (*Texture) representation() {}
