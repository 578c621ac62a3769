// Package bitmaps keeps the platform bitmap handle table shared by the
// frame backends. A bitmap is an immutable *image.NRGBA addressed only
// through its gpucore.BitmapID.
package bitmaps

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/gogpu/frame/gpucore"
)

var (
	// ErrUnknownBitmap is returned for IDs that were never issued or were released.
	ErrUnknownBitmap = errors.New("bitmaps: unknown bitmap")

	// ErrInvalidPixels is returned when a pixel slice does not match its size.
	ErrInvalidPixels = errors.New("bitmaps: pixel data does not match dimensions")
)

// Store maps bitmap handles to images.
//
// Store is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	images map[gpucore.BitmapID]*image.NRGBA
	nextID atomic.Uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{images: make(map[gpucore.BitmapID]*image.NRGBA)}
	s.nextID.Store(1)
	return s
}

// Put takes ownership of img and returns its handle.
func (s *Store) Put(img *image.NRGBA) gpucore.BitmapID {
	id := gpucore.BitmapID(s.nextID.Add(1) - 1)
	s.mu.Lock()
	s.images[id] = img
	s.mu.Unlock()
	return id
}

// PutPixels copies tightly packed RGBA8 pixels into a new bitmap.
func (s *Store) PutPixels(width, height int, pixels []byte) (gpucore.BitmapID, error) {
	img, err := FromPixels(width, height, pixels)
	if err != nil {
		return gpucore.InvalidID, err
	}
	return s.Put(img), nil
}

// PutImage converts any image into a new bitmap.
func (s *Store) PutImage(src image.Image) gpucore.BitmapID {
	return s.Put(ToNRGBA(src))
}

// Get returns the image behind id.
func (s *Store) Get(id gpucore.BitmapID) (*image.NRGBA, error) {
	s.mu.Lock()
	img, ok := s.images[id]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBitmap, id)
	}
	return img, nil
}

// Release drops id. It reports whether id was live.
func (s *Store) Release(id gpucore.BitmapID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[id]; !ok {
		return false
	}
	delete(s.images, id)
	return true
}

// Len returns the number of live bitmaps.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.images)
}

// FromPixels copies tightly packed RGBA8 pixels into a new image.
func FromPixels(width, height int, pixels []byte) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*gpucore.BytesPerPixel {
		return nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrInvalidPixels, width, height, len(pixels))
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)
	return img, nil
}

// Pixels returns the tightly packed RGBA8 bytes of img, top row first.
func Pixels(img *image.NRGBA) []byte {
	b := img.Bounds()
	rowLen := b.Dx() * gpucore.BytesPerPixel
	out := make([]byte, rowLen*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(out[y*rowLen:(y+1)*rowLen], img.Pix[off:off+rowLen])
	}
	return out
}

// ToNRGBA returns src as a zero-origin *image.NRGBA. NRGBA sources are
// copied byte for byte; other models go through draw.Copy.
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if n, ok := src.(*image.NRGBA); ok {
		rowLen := b.Dx() * gpucore.BytesPerPixel
		for y := 0; y < b.Dy(); y++ {
			off := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:], n.Pix[off:off+rowLen])
		}
		return dst
	}
	draw.Copy(dst, image.Point{}, src, b, draw.Src, nil)
	return dst
}

// FlipV returns a vertically mirrored copy of img.
func FlipV(img *image.NRGBA) *image.NRGBA {
	return imaging.FlipV(img)
}
