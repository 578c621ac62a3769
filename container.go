package frame

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/gogpu/frame/gpucore"
)

// Container holds one frame in any subset of the three representation
// kinds and produces missing kinds on demand.
//
// Produced representations are cached: asking twice for the same kind
// returns the same value. Container is not safe for concurrent use.
type Container struct {
	surface    gpucore.Context
	pipeline   *ShaderPipeline
	rasterizer gpucore.Rasterizer

	width  int
	height int

	slots  [kindCount]Representation
	own    ownership
	closed bool
}

// New creates a container over reps, which must all be width x height and
// of distinct kinds. pipeline must have been created on surface.
func New(surface gpucore.Context, pipeline *ShaderPipeline, width, height int, reps []Representation, opts ...Option) (*Container, error) {
	if surface == nil {
		return nil, ErrNilContext
	}
	if pipeline == nil {
		return nil, ErrNilPipeline
	}
	if pipeline.closed {
		return nil, ErrPipelineClosed
	}
	if !sameContext(pipeline.ctx, surface) {
		return nil, ErrContextMismatch
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(reps) == 0 {
		return nil, ErrEmptyInput
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Container{
		surface:    surface,
		pipeline:   pipeline,
		rasterizer: o.rasterizer,
		width:      width,
		height:     height,
		own:        ownership{ownsBitmap: o.ownsBitmap, ownsTexture: o.ownsTexture},
	}
	for i, r := range reps {
		if isNilRepresentation(r) {
			return nil, fmt.Errorf("%w: representation %d is nil", ErrEmptyInput, i)
		}
		if !r.Kind().valid() {
			return nil, fmt.Errorf("%w: representation %d has kind %v", ErrUnsupportedConversion, i, r.Kind())
		}
		if r.Width() != width || r.Height() != height {
			return nil, fmt.Errorf("%w: %v is %dx%d, container is %dx%d",
				ErrDimensionMismatch, r.Kind(), r.Width(), r.Height(), width, height)
		}
		if c.slots[r.Kind()] != nil {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateKind, r.Kind())
		}
		c.slots[r.Kind()] = r
	}
	return c, nil
}

// sameContext reports whether a and b are the same context. Contexts of a
// non-comparable dynamic type cannot be told apart and count as the same
// when their types match.
func sameContext(a, b gpucore.Context) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if !ta.Comparable() {
		return true
	}
	return a == b
}

// Width returns the frame width in pixels.
func (c *Container) Width() int { return c.width }

// Height returns the frame height in pixels.
func (c *Container) Height() int { return c.height }

// Closed reports whether Close has been called.
func (c *Container) Closed() bool { return c.closed }

// Has reports whether kind is currently cached. It never converts.
//
// Has does not fail on a closed container: it reports false for every
// kind, which is how a closed container answers. Use Closed to tell a
// closed container from an empty slot.
func (c *Container) Has(kind Kind) bool {
	return !c.closed && kind.valid() && c.slots[kind] != nil
}

// Image returns the representation of the given kind, producing and
// caching it on first request.
func (c *Container) Image(kind Kind) (Representation, error) {
	return c.ImageContext(context.Background(), kind)
}

// ImageContext is like Image. ctx bounds the wait for an asynchronous
// bitmap decode, the only step that can block on another goroutine.
//
// On failure the cache is left unchanged.
func (c *Container) ImageContext(ctx context.Context, kind Kind) (Representation, error) {
	if c.closed {
		return nil, ErrClosedContainer
	}
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedConversion, kind)
	}
	if r := c.slots[kind]; r != nil {
		return r, nil
	}

	var produced [kindCount]Representation
	if err := c.produce(ctx, kind, &produced); err != nil {
		for _, r := range produced {
			if r != nil {
				release(c.surface, r)
			}
		}
		return nil, err
	}
	for k, r := range produced {
		if r != nil {
			c.slots[k] = r
			c.own.markSynthesized(Kind(k))
		}
	}
	return c.slots[kind], nil
}

// PixelBuffer returns the frame as a pixel buffer.
func (c *Container) PixelBuffer() (*PixelBuffer, error) {
	r, err := c.Image(KindPixelBuffer)
	if err != nil {
		return nil, err
	}
	return r.(*PixelBuffer), nil
}

// Bitmap returns the frame as a platform bitmap.
func (c *Container) Bitmap() (*Bitmap, error) {
	r, err := c.Image(KindBitmap)
	if err != nil {
		return nil, err
	}
	return r.(*Bitmap), nil
}

// Texture returns the frame as a GPU texture.
func (c *Container) Texture() (*Texture, error) {
	r, err := c.Image(KindTexture)
	if err != nil {
		return nil, err
	}
	return r.(*Texture), nil
}

// Close releases every representation the container owns. It fails with
// ErrClosedContainer when called twice.
func (c *Container) Close() error {
	if c.closed {
		return ErrClosedContainer
	}
	for k, r := range c.slots {
		if r != nil && c.own.owns(Kind(k)) {
			release(c.surface, r)
		}
		c.slots[k] = nil
	}
	c.closed = true
	return nil
}

// produce converts the cached representations into kind. Everything it
// creates, including intermediates, is recorded in out.
func (c *Container) produce(ctx context.Context, kind Kind, out *[kindCount]Representation) error {
	var err error
	switch kind {
	case KindTexture:
		err = c.produceTexture(out)
	case KindPixelBuffer:
		err = c.producePixelBuffer(out)
	case KindBitmap:
		err = c.produceBitmap(ctx, out)
	}
	if err != nil {
		return err
	}
	if out[kind] == nil {
		return fmt.Errorf("%w: no source for %v", ErrUnsupportedConversion, kind)
	}
	return nil
}

// produceTexture prefers the pixel buffer over the bitmap.
func (c *Container) produceTexture(out *[kindCount]Representation) error {
	src := c.slots[KindPixelBuffer]
	if src == nil {
		src = c.slots[KindBitmap]
	}
	if src == nil {
		return nil
	}
	tex, err := c.pipeline.ToTexture(src)
	if err != nil {
		return fmt.Errorf("frame: %v to texture: %w", src.Kind(), err)
	}
	out[KindTexture] = tex
	c.logConversion(src.Kind(), KindTexture)
	return nil
}

// producePixelBuffer reads back the texture, else draws the bitmap with
// the rasterizer, else goes through an intermediate texture.
func (c *Container) producePixelBuffer(out *[kindCount]Representation) error {
	tex, _ := c.slots[KindTexture].(*Texture)
	if tex == nil {
		bmp, _ := c.slots[KindBitmap].(*Bitmap)
		if bmp == nil {
			return nil
		}
		if c.rasterizer != nil {
			return c.rasterizeBitmap(bmp, out)
		}
		if err := c.produceTexture(out); err != nil {
			return err
		}
		tex = out[KindTexture].(*Texture)
	}

	r, err := c.pipeline.FromTexture(tex, KindPixelBuffer)
	if err != nil {
		return fmt.Errorf("frame: texture to pixel buffer: %w", err)
	}
	out[KindPixelBuffer] = r
	c.logConversion(KindTexture, KindPixelBuffer)
	return nil
}

// produceBitmap transfers the texture, else decodes the pixel buffer with
// the rasterizer, else goes through an intermediate texture.
func (c *Container) produceBitmap(ctx context.Context, out *[kindCount]Representation) error {
	tex, _ := c.slots[KindTexture].(*Texture)
	if tex == nil {
		pb, _ := c.slots[KindPixelBuffer].(*PixelBuffer)
		if pb == nil {
			return nil
		}
		if c.rasterizer != nil {
			return c.decodePixelBuffer(ctx, pb, out)
		}
		if err := c.produceTexture(out); err != nil {
			return err
		}
		tex = out[KindTexture].(*Texture)
	}

	r, err := c.pipeline.FromTexture(tex, KindBitmap)
	if err != nil {
		return fmt.Errorf("frame: texture to bitmap: %w", err)
	}
	out[KindBitmap] = r
	c.logConversion(KindTexture, KindBitmap)
	return nil
}

func (c *Container) rasterizeBitmap(bmp *Bitmap, out *[kindCount]Representation) error {
	w, h, data, err := c.rasterizer.ReadBitmap(bmp.handle)
	if err != nil {
		return fmt.Errorf("frame: read bitmap: %w", err)
	}
	if w != c.width || h != c.height {
		return fmt.Errorf("%w: bitmap read back as %dx%d, container is %dx%d",
			ErrDimensionMismatch, w, h, c.width, c.height)
	}
	pb, err := newPixelBufferOwned(w, h, data)
	if err != nil {
		return err
	}
	out[KindPixelBuffer] = pb
	c.logConversion(KindBitmap, KindPixelBuffer)
	return nil
}

func (c *Container) decodePixelBuffer(ctx context.Context, pb *PixelBuffer, out *[kindCount]Representation) error {
	handle, err := c.rasterizer.DecodeBitmap(ctx, pb.width, pb.height, pb.data)
	if err != nil {
		return fmt.Errorf("frame: decode bitmap: %w", err)
	}
	out[KindBitmap] = &Bitmap{handle: handle, width: pb.width, height: pb.height}
	c.logConversion(KindPixelBuffer, KindBitmap)
	return nil
}

func (c *Container) logConversion(from, to Kind) {
	Logger().Debug("frame: converted",
		slog.String("from", from.String()),
		slog.String("to", to.String()),
		slog.Int("width", c.width),
		slog.Int("height", c.height))
}
