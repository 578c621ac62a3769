package software

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/frame/backend"
	"github.com/gogpu/frame/gpucore"
	"github.com/gogpu/frame/internal/bitmaps"
)

// nopLogger discards everything until SetLogger is called.
var nopLogger = slog.New(slog.DiscardHandler)

func init() {
	backend.Register(backend.Software, func() (gpucore.Context, error) {
		return New(), nil
	})
}

// texture is RGBA8 texel storage, row 0 first.
type texture struct {
	width  int
	height int
	texels []byte
}

func newTexture(width, height int) *texture {
	return &texture{
		width:  width,
		height: height,
		texels: make([]byte, width*height*gpucore.BytesPerPixel),
	}
}

type program struct {
	label      string
	entryPoint string
	run        kernel
}

// Stats counts live resources and work done.
type Stats struct {
	Textures     int
	Framebuffers int
	Programs     int
	Bitmaps      int
	Draws        uint64
}

// Context is an in-memory render surface with its GPU context.
type Context struct {
	mu sync.Mutex

	logger atomic.Pointer[slog.Logger]
	nextID atomic.Uint64

	textures     map[gpucore.TextureID]*texture
	framebuffers map[gpucore.FramebufferID]gpucore.TextureID
	programs     map[gpucore.ProgramID]*program
	bitmaps      *bitmaps.Store

	bindings gpucore.Bindings
	surface  *texture
	draws    uint64

	flipBitmapUpload bool
	decodeLatency    time.Duration
}

var (
	_ gpucore.Context    = (*Context)(nil)
	_ gpucore.Rasterizer = (*Context)(nil)
)

// New creates a context with an empty resource table.
func New(opts ...Option) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Context{
		textures:         make(map[gpucore.TextureID]*texture),
		framebuffers:     make(map[gpucore.FramebufferID]gpucore.TextureID),
		programs:         make(map[gpucore.ProgramID]*program),
		bitmaps:          bitmaps.NewStore(),
		surface:          newTexture(o.surfaceWidth, o.surfaceHeight),
		flipBitmapUpload: o.flipBitmapUpload,
		decodeLatency:    o.decodeLatency,
	}
	c.nextID.Store(1)
	c.SetLogger(o.logger)
	return c
}

// SetLogger sets the logger for diagnostics. Nil disables logging.
func (c *Context) SetLogger(l *slog.Logger) {
	if l == nil {
		l = nopLogger
	}
	c.logger.Store(l)
}

func (c *Context) log() *slog.Logger {
	return c.logger.Load()
}

func (c *Context) newID() uint64 {
	return c.nextID.Add(1) - 1
}

// Stats returns a snapshot of live resource counts.
func (c *Context) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Textures:     len(c.textures),
		Framebuffers: len(c.framebuffers),
		Programs:     len(c.programs),
		Bitmaps:      c.bitmaps.Len(),
		Draws:        c.draws,
	}
}

// === Textures ===

// CreateTexture creates a zeroed RGBA8 texture.
func (c *Context) CreateTexture(width, height int) (gpucore.TextureID, error) {
	if width <= 0 || height <= 0 {
		return gpucore.InvalidID, fmt.Errorf("%w: texture %dx%d", ErrInvalidSize, width, height)
	}
	id := gpucore.TextureID(c.newID())
	c.mu.Lock()
	c.textures[id] = newTexture(width, height)
	c.mu.Unlock()
	return id, nil
}

// DestroyTexture releases a texture and unbinds it everywhere.
func (c *Context) DestroyTexture(id gpucore.TextureID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.textures[id]; !ok {
		return
	}
	delete(c.textures, id)
	for unit, bound := range c.bindings.Textures {
		if bound == id {
			c.bindings.Textures[unit] = gpucore.InvalidID
		}
	}
	for fb, att := range c.framebuffers {
		if att == id {
			c.framebuffers[fb] = gpucore.InvalidID
		}
	}
}

// WriteTexture replaces the texture's storage with width x height pixels.
func (c *Context) WriteTexture(id gpucore.TextureID, width, height int, pixels []byte) error {
	if width <= 0 || height <= 0 || len(pixels) != width*height*gpucore.BytesPerPixel {
		return fmt.Errorf("%w: %dx%d with %d bytes", ErrInvalidSize, width, height, len(pixels))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.textures[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTexture, id)
	}
	t.width, t.height = width, height
	t.texels = append(t.texels[:0], pixels...)
	return nil
}

// UploadBitmap replaces the texture's storage with the bitmap's pixels.
func (c *Context) UploadBitmap(id gpucore.TextureID, bmp gpucore.BitmapID) error {
	img, err := c.bitmaps.Get(bmp)
	if err != nil {
		return err
	}
	if c.flipBitmapUpload {
		img = bitmaps.FlipV(img)
	}
	b := img.Bounds()
	return c.WriteTexture(id, b.Dx(), b.Dy(), bitmaps.Pixels(img))
}

// BitmapUploadFlipsY reports whether UploadBitmap reverses rows.
func (c *Context) BitmapUploadFlipsY() bool {
	return c.flipBitmapUpload
}

// TexturePixels returns a copy of a texture's storage, row 0 first.
func (c *Context) TexturePixels(id gpucore.TextureID) (width, height int, pixels []byte, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.textures[id]
	if !ok {
		return 0, 0, nil, fmt.Errorf("%w: %d", ErrUnknownTexture, id)
	}
	return t.width, t.height, append([]byte(nil), t.texels...), nil
}

// === Framebuffers ===

// CreateFramebuffer creates a framebuffer with no attachment.
func (c *Context) CreateFramebuffer() (gpucore.FramebufferID, error) {
	id := gpucore.FramebufferID(c.newID())
	c.mu.Lock()
	c.framebuffers[id] = gpucore.InvalidID
	c.mu.Unlock()
	return id, nil
}

// DestroyFramebuffer releases a framebuffer. Its attachment survives.
func (c *Context) DestroyFramebuffer(id gpucore.FramebufferID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.framebuffers[id]; !ok {
		return
	}
	delete(c.framebuffers, id)
	if c.bindings.Framebuffer == id {
		c.bindings.Framebuffer = gpucore.DefaultFramebuffer
	}
}

// AttachTexture makes tex the color attachment of fb.
func (c *Context) AttachTexture(fb gpucore.FramebufferID, tex gpucore.TextureID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.framebuffers[fb]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownFramebuffer, fb)
	}
	if _, ok := c.textures[tex]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTexture, tex)
	}
	c.framebuffers[fb] = tex
	return nil
}

// ReadPixels reads the top-left region of the bound framebuffer.
func (c *Context) ReadPixels(width, height int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, err := c.targetLocked()
	if err != nil {
		return nil, err
	}
	if err := checkRegion(t, width, height); err != nil {
		return nil, err
	}
	out := make([]byte, width*height*gpucore.BytesPerPixel)
	copyKernel(out, width, t.texels, t.width, width, height)
	return out, nil
}

// targetLocked returns the storage of the bound framebuffer.
func (c *Context) targetLocked() (*texture, error) {
	fb := c.bindings.Framebuffer
	if fb == gpucore.DefaultFramebuffer {
		return c.surface, nil
	}
	att, ok := c.framebuffers[fb]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFramebuffer, fb)
	}
	t, ok := c.textures[att]
	if !ok {
		return nil, fmt.Errorf("%w: framebuffer %d", ErrIncompleteFramebuffer, fb)
	}
	return t, nil
}

func checkRegion(t *texture, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: region %dx%d", ErrInvalidSize, width, height)
	}
	if width > t.width || height > t.height {
		return fmt.Errorf("%w: region %dx%d in %dx%d", ErrOutOfBounds, width, height, t.width, t.height)
	}
	return nil
}

// === Programs ===

// CreateProgram validates the SPIR-V module and binds its entry point to
// the matching CPU kernel.
func (c *Context) CreateProgram(desc *gpucore.ProgramDescriptor) (gpucore.ProgramID, error) {
	if desc == nil {
		return gpucore.InvalidID, fmt.Errorf("%w: nil descriptor", ErrInvalidProgram)
	}
	if len(desc.SPIRV) == 0 || desc.SPIRV[0] != gpucore.SPIRVMagic {
		return gpucore.InvalidID, fmt.Errorf("%w: %s: missing SPIR-V module", ErrInvalidProgram, desc.Label)
	}
	run, ok := kernels[desc.EntryPoint]
	if !ok {
		return gpucore.InvalidID, fmt.Errorf("%w: %q", ErrUnknownEntryPoint, desc.EntryPoint)
	}
	id := gpucore.ProgramID(c.newID())
	c.mu.Lock()
	c.programs[id] = &program{label: desc.Label, entryPoint: desc.EntryPoint, run: run}
	c.mu.Unlock()
	c.log().Debug("software: program created",
		slog.String("label", desc.Label),
		slog.String("entry", desc.EntryPoint),
		slog.Int("spirv_words", len(desc.SPIRV)))
	return id, nil
}

// DestroyProgram releases a program.
func (c *Context) DestroyProgram(id gpucore.ProgramID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.programs, id)
	if c.bindings.Program == id {
		c.bindings.Program = gpucore.InvalidID
	}
}

// Draw runs the current program from the unit 0 texture into the bound
// framebuffer over a width x height region.
func (c *Context) Draw(width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.programs[c.bindings.Program]
	if !ok {
		return ErrNoProgram
	}
	src, ok := c.textures[c.bindings.Textures[0]]
	if !ok {
		return fmt.Errorf("%w: unit 0 holds %d", ErrUnknownTexture, c.bindings.Textures[0])
	}
	dst, err := c.targetLocked()
	if err != nil {
		return err
	}
	if err := checkRegion(src, width, height); err != nil {
		return err
	}
	if err := checkRegion(dst, width, height); err != nil {
		return err
	}

	srcTexels := src.texels
	if src == dst {
		srcTexels = append([]byte(nil), src.texels...)
	}
	p.run(dst.texels, dst.width, srcTexels, src.width, width, height)
	c.draws++

	c.log().Debug("software: draw",
		slog.String("program", p.label),
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Uint64("framebuffer", uint64(c.bindings.Framebuffer)))
	return nil
}

// === Binding state ===

// Bindings returns a snapshot of the binding state.
func (c *Context) Bindings() gpucore.Bindings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindings
}

// ActiveTexture selects the unit addressed by BindTexture. Units past
// gpucore.MaxTextureUnits are ignored.
func (c *Context) ActiveTexture(unit uint32) {
	if unit >= gpucore.MaxTextureUnits {
		return
	}
	c.mu.Lock()
	c.bindings.ActiveUnit = unit
	c.mu.Unlock()
}

// BindTexture binds a texture to the active unit.
func (c *Context) BindTexture(id gpucore.TextureID) {
	c.mu.Lock()
	c.bindings.Textures[c.bindings.ActiveUnit] = id
	c.mu.Unlock()
}

// BindFramebuffer binds the draw and read target.
func (c *Context) BindFramebuffer(id gpucore.FramebufferID) {
	c.mu.Lock()
	c.bindings.Framebuffer = id
	c.mu.Unlock()
}

// UseProgram selects the program run by Draw.
func (c *Context) UseProgram(id gpucore.ProgramID) {
	c.mu.Lock()
	c.bindings.Program = id
	c.mu.Unlock()
}

// === Surface ===

// SurfaceSize returns the size of the render surface.
func (c *Context) SurfaceSize() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surface.width, c.surface.height
}

// ResizeSurface reallocates the render surface, clearing it.
func (c *Context) ResizeSurface(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: surface %dx%d", ErrInvalidSize, width, height)
	}
	c.mu.Lock()
	c.surface = newTexture(width, height)
	c.mu.Unlock()
	return nil
}

// TransferToBitmap snapshots the render surface into a new bitmap.
func (c *Context) TransferToBitmap() (gpucore.BitmapID, error) {
	c.mu.Lock()
	w, h := c.surface.width, c.surface.height
	pixels := append([]byte(nil), c.surface.texels...)
	c.mu.Unlock()
	return c.bitmaps.PutPixels(w, h, pixels)
}

// ReleaseBitmap releases a platform bitmap.
func (c *Context) ReleaseBitmap(id gpucore.BitmapID) {
	c.bitmaps.Release(id)
}

// === Bitmap helpers ===

// BitmapFromImage stores any image as a new platform bitmap.
func (c *Context) BitmapFromImage(img image.Image) gpucore.BitmapID {
	return c.bitmaps.PutImage(img)
}

// BitmapFromPixels stores tightly packed RGBA8 pixels as a new bitmap.
func (c *Context) BitmapFromPixels(width, height int, pixels []byte) (gpucore.BitmapID, error) {
	return c.bitmaps.PutPixels(width, height, pixels)
}

// BitmapImage returns the image behind a bitmap handle.
func (c *Context) BitmapImage(id gpucore.BitmapID) (*image.NRGBA, error) {
	return c.bitmaps.Get(id)
}
