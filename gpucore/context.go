package gpucore

import "context"

// Context is a render surface together with the GPU context attached to it.
//
// It abstracts over backend implementations so the conversion pipeline can
// run on an in-memory device as well as on gogpu/wgpu.
//
// Resource lifecycle:
//   - Resources are created via Create* methods
//   - Resources must be explicitly destroyed via Destroy* methods
//   - Destroying a resource while it is bound unbinds it
//   - IDs become invalid after destruction and are never reused
type Context interface {
	// === Textures ===

	// CreateTexture creates an uninitialized RGBA8 texture.
	CreateTexture(width, height int) (TextureID, error)

	// DestroyTexture releases a texture. Unknown IDs are ignored.
	DestroyTexture(id TextureID)

	// WriteTexture uploads tightly packed RGBA8 pixels. Row 0 of pixels
	// lands in storage row 0.
	WriteTexture(id TextureID, width, height int, pixels []byte) error

	// UploadBitmap uploads a platform bitmap into a texture, resizing the
	// texture storage to the bitmap's size.
	UploadBitmap(id TextureID, bmp BitmapID) error

	// BitmapUploadFlipsY reports whether UploadBitmap stores the bitmap's
	// bottom row in storage row 0.
	BitmapUploadFlipsY() bool

	// === Framebuffers ===

	// CreateFramebuffer creates a framebuffer with no attachment.
	CreateFramebuffer() (FramebufferID, error)

	// DestroyFramebuffer releases a framebuffer. The attached texture is
	// not destroyed.
	DestroyFramebuffer(id FramebufferID)

	// AttachTexture makes tex the color attachment of fb.
	AttachTexture(fb FramebufferID, tex TextureID) error

	// ReadPixels reads the top-left width x height region of the bound
	// framebuffer, storage rows in order.
	ReadPixels(width, height int) ([]byte, error)

	// === Programs ===

	// CreateProgram links a conversion program.
	CreateProgram(desc *ProgramDescriptor) (ProgramID, error)

	// DestroyProgram releases a program. Unknown IDs are ignored.
	DestroyProgram(id ProgramID)

	// Draw runs the current program over a width x height region: the
	// texture bound to unit 0 is the source, the bound framebuffer is the
	// destination.
	Draw(width, height int) error

	// === Binding state ===

	// Bindings returns a snapshot of the binding state.
	Bindings() Bindings

	// ActiveTexture selects the texture unit addressed by BindTexture.
	ActiveTexture(unit uint32)

	// BindTexture binds a texture to the active unit.
	BindTexture(id TextureID)

	// BindFramebuffer binds the draw and read target.
	BindFramebuffer(id FramebufferID)

	// UseProgram selects the program run by Draw.
	UseProgram(id ProgramID)

	// === Surface ===

	// SurfaceSize returns the size of the default framebuffer.
	SurfaceSize() (width, height int)

	// ResizeSurface resizes the default framebuffer. Contents are not
	// preserved.
	ResizeSurface(width, height int) error

	// TransferToBitmap snapshots the surface into a new platform bitmap of
	// the surface's size.
	TransferToBitmap() (BitmapID, error)

	// ReleaseBitmap releases a platform bitmap. Unknown IDs are ignored.
	ReleaseBitmap(id BitmapID)
}

// Rasterizer bridges platform bitmaps and CPU pixel buffers without going
// through a texture.
type Rasterizer interface {
	// DecodeBitmapAsync starts decoding RGBA8 pixels into a new bitmap.
	// The channel receives exactly one result and is then closed.
	DecodeBitmapAsync(width, height int, pixels []byte) <-chan DecodeResult

	// DecodeBitmap decodes and waits for the result or for ctx to end.
	// A decode abandoned through ctx is released when it completes.
	DecodeBitmap(ctx context.Context, width, height int, pixels []byte) (BitmapID, error)

	// ReadBitmap draws a bitmap and reads it back as RGBA8 pixels in
	// top-left row order.
	ReadBitmap(id BitmapID) (width, height int, pixels []byte, err error)
}
