package frame

import (
	"fmt"
	"log/slog"
)

// Clone returns an independent container holding a copy of every cached
// representation. The clone shares the surface, pipeline and rasterizer
// but owns all of its representations, so closing either container never
// affects the other.
//
// Pixel buffers are copied byte for byte. Textures are copied on the GPU
// and keep their orientation. Bitmaps are re-derived through a temporary
// texture that is released before Clone returns.
func (c *Container) Clone() (*Container, error) {
	if c.closed {
		return nil, ErrClosedContainer
	}

	n := &Container{
		surface:    c.surface,
		pipeline:   c.pipeline,
		rasterizer: c.rasterizer,
		width:      c.width,
		height:     c.height,
	}
	fail := func(err error) (*Container, error) {
		for _, r := range n.slots {
			if r != nil {
				release(n.surface, r)
			}
		}
		return nil, err
	}

	if pb, ok := c.slots[KindPixelBuffer].(*PixelBuffer); ok {
		n.slots[KindPixelBuffer] = pb.Clone()
	}

	if tex, ok := c.slots[KindTexture].(*Texture); ok {
		cp, err := c.pipeline.CopyTexture(tex)
		if err != nil {
			return fail(fmt.Errorf("frame: clone texture: %w", err))
		}
		n.slots[KindTexture] = cp
	}

	if bmp, ok := c.slots[KindBitmap].(*Bitmap); ok {
		cp, err := c.cloneBitmap(bmp)
		if err != nil {
			return fail(fmt.Errorf("frame: clone bitmap: %w", err))
		}
		n.slots[KindBitmap] = cp
	}

	for k, r := range n.slots {
		if r != nil {
			n.own.markSynthesized(Kind(k))
		}
	}
	Logger().Debug("frame: cloned container",
		slog.Bool("pixel_buffer", n.slots[KindPixelBuffer] != nil),
		slog.Bool("bitmap", n.slots[KindBitmap] != nil),
		slog.Bool("texture", n.slots[KindTexture] != nil))
	return n, nil
}

// cloneBitmap uploads bmp into a temporary texture and transfers it back
// into a new bitmap. Upload and transfer undo each other's flip.
func (c *Container) cloneBitmap(bmp *Bitmap) (*Bitmap, error) {
	tmp, err := c.pipeline.ToTexture(bmp)
	if err != nil {
		return nil, err
	}
	defer c.surface.DestroyTexture(tmp.id)

	r, err := c.pipeline.FromTexture(tmp, KindBitmap)
	if err != nil {
		return nil, err
	}
	return r.(*Bitmap), nil
}
