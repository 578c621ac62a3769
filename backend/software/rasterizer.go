package software

import (
	"context"
	"log/slog"
	"time"

	"github.com/gogpu/frame/gpucore"
	"github.com/gogpu/frame/internal/bitmaps"
)

// DecodeBitmapAsync decodes a copy of pixels into a new bitmap on a
// separate goroutine.
func (c *Context) DecodeBitmapAsync(width, height int, pixels []byte) <-chan gpucore.DecodeResult {
	data := append([]byte(nil), pixels...)
	ch := make(chan gpucore.DecodeResult, 1)
	go func() {
		defer close(ch)
		if c.decodeLatency > 0 {
			time.Sleep(c.decodeLatency)
		}
		id, err := c.bitmaps.PutPixels(width, height, data)
		ch <- gpucore.DecodeResult{Bitmap: id, Err: err}
	}()
	return ch
}

// DecodeBitmap decodes pixels into a new bitmap, waiting for the result or
// for ctx to end. A decode abandoned through ctx is released when it
// completes.
func (c *Context) DecodeBitmap(ctx context.Context, width, height int, pixels []byte) (gpucore.BitmapID, error) {
	ch := c.DecodeBitmapAsync(width, height, pixels)
	select {
	case r := <-ch:
		return r.Bitmap, r.Err
	case <-ctx.Done():
		go func() {
			if r := <-ch; r.Err == nil {
				c.ReleaseBitmap(r.Bitmap)
				c.log().Debug("software: released abandoned decode", slog.Uint64("bitmap", uint64(r.Bitmap)))
			}
		}()
		return gpucore.InvalidID, ctx.Err()
	}
}

// ReadBitmap draws a bitmap and reads it back as RGBA8 pixels.
func (c *Context) ReadBitmap(id gpucore.BitmapID) (width, height int, pixels []byte, err error) {
	img, err := c.bitmaps.Get(id)
	if err != nil {
		return 0, 0, nil, err
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), bitmaps.Pixels(img), nil
}
