package frame

import (
	"testing"

	"github.com/gogpu/frame/backend/software"
)

// env is a software context with a pipeline built on it.
type env struct {
	ctx      *software.Context
	pipeline *ShaderPipeline
}

func newEnv(t *testing.T, opts ...software.Option) *env {
	t.Helper()
	ctx := software.New(opts...)
	p, err := NewShaderPipeline(ctx)
	if err != nil {
		t.Fatalf("NewShaderPipeline: %v", err)
	}
	t.Cleanup(func() {
		if !p.Closed() {
			_ = p.Close()
		}
	})
	return &env{ctx: ctx, pipeline: p}
}

// makeRep builds an initial representation of kind holding pixels.
func (e *env) makeRep(t *testing.T, kind Kind, w, h int, pixels []byte) Representation {
	t.Helper()
	pb, err := NewPixelBuffer(w, h, pixels)
	if err != nil {
		t.Fatalf("NewPixelBuffer: %v", err)
	}
	switch kind {
	case KindPixelBuffer:
		return pb
	case KindBitmap:
		id, err := e.ctx.BitmapFromPixels(w, h, pixels)
		if err != nil {
			t.Fatalf("BitmapFromPixels: %v", err)
		}
		bmp, err := NewBitmap(id, w, h)
		if err != nil {
			t.Fatalf("NewBitmap: %v", err)
		}
		return bmp
	case KindTexture:
		tex, err := e.pipeline.ToTexture(pb)
		if err != nil {
			t.Fatalf("ToTexture: %v", err)
		}
		return tex
	}
	t.Fatalf("unknown kind %v", kind)
	return nil
}

// content returns the logical pixels of r, top row first.
func (e *env) content(t *testing.T, r Representation) []byte {
	t.Helper()
	switch v := r.(type) {
	case *PixelBuffer:
		return v.Data()
	case *Bitmap:
		_, _, pixels, err := e.ctx.ReadBitmap(v.Handle())
		if err != nil {
			t.Fatalf("ReadBitmap: %v", err)
		}
		return pixels
	case *Texture:
		out, err := e.pipeline.FromTexture(v, KindPixelBuffer)
		if err != nil {
			t.Fatalf("FromTexture: %v", err)
		}
		return out.(*PixelBuffer).Data()
	}
	t.Fatalf("unknown representation %T", r)
	return nil
}

// newContainer creates a container over reps that owns them.
func (e *env) newContainer(t *testing.T, w, h int, reps []Representation, opts ...Option) *Container {
	t.Helper()
	opts = append([]Option{WithBitmapOwnership(true), WithTextureOwnership(true)}, opts...)
	c, err := New(e.ctx, e.pipeline, w, h, reps, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func mustImage(t *testing.T, c *Container, kind Kind) Representation {
	t.Helper()
	r, err := c.Image(kind)
	if err != nil {
		t.Fatalf("Image(%v): %v", kind, err)
	}
	return r
}
