//go:build !nogpu

package native

import (
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/frame/gpucore"
	"github.com/gogpu/frame/internal/bitmaps"
)

var nopLogger = slog.New(slog.DiscardHandler)

// texture is texel storage in a GPU buffer, row 0 first.
type texture struct {
	buf    hal.Buffer
	width  int
	height int
}

func (t *texture) size() uint64 {
	return uint64(t.width) * uint64(t.height) * gpucore.BytesPerPixel //nolint:gosec // sizes are positive
}

type program struct {
	label    string
	module   hal.ShaderModule
	pipeline hal.ComputePipeline
}

// Stats counts live resources.
type Stats struct {
	Textures     int
	Framebuffers int
	Programs     int
	Bitmaps      int
}

// Context is a render surface and GPU context on a HAL device.
//
// Thread Safety: Context is safe for concurrent use. All resource
// operations are protected by a mutex.
type Context struct {
	mu sync.Mutex

	device   hal.Device
	queue    hal.Queue
	instance hal.Instance // set when the context opened the device itself

	logger atomic.Pointer[slog.Logger]
	nextID atomic.Uint64

	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout

	textures     map[gpucore.TextureID]*texture
	framebuffers map[gpucore.FramebufferID]gpucore.TextureID
	programs     map[gpucore.ProgramID]*program
	bitmaps      *bitmaps.Store

	bindings gpucore.Bindings
	surface  *texture

	flipBitmapUpload bool
	fenceTimeout     time.Duration
	closed           bool
}

var (
	_ gpucore.Context = (*Context)(nil)
	_ io.Closer       = (*Context)(nil)
)

// New creates a context on device and queue. The caller keeps ownership
// of both.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Context, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Context{
		device:           device,
		queue:            queue,
		textures:         make(map[gpucore.TextureID]*texture),
		framebuffers:     make(map[gpucore.FramebufferID]gpucore.TextureID),
		programs:         make(map[gpucore.ProgramID]*program),
		bitmaps:          bitmaps.NewStore(),
		flipBitmapUpload: o.flipBitmapUpload,
		fenceTimeout:     o.fenceTimeout,
	}
	// Start ID generation at 1 (0 is invalid)
	c.nextID.Store(1)
	c.SetLogger(o.logger)

	if err := c.createLayouts(); err != nil {
		c.destroyLayouts()
		return nil, err
	}
	surface, err := c.newTexture("frame_surface", o.surfaceWidth, o.surfaceHeight)
	if err != nil {
		c.destroyLayouts()
		return nil, err
	}
	c.surface = surface
	return c, nil
}

// FromProvider creates a context on the device shared by provider. The
// provider must implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func FromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Context, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALAccess)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALAccess)
	}

	c, err := New(device, queue, opts...)
	if err != nil {
		return nil, err
	}
	c.log().Info("native: using shared GPU device",
		slog.Any("surface_format", provider.SurfaceFormat()))
	return c, nil
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

// Close destroys every resource the context created. A device the context
// opened itself is destroyed too.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	for id, t := range c.textures {
		c.device.DestroyBuffer(t.buf)
		delete(c.textures, id)
	}
	for id, p := range c.programs {
		c.destroyProgram(p)
		delete(c.programs, id)
	}
	clear(c.framebuffers)
	if c.surface != nil {
		c.device.DestroyBuffer(c.surface.buf)
		c.surface = nil
	}
	c.destroyLayouts()

	if c.instance != nil {
		c.device.Destroy()
		c.instance.Destroy()
		c.instance = nil
	}
	return nil
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
	}
}

// createLayouts builds the bind group layout shared by all programs.
func (c *Context) createLayouts() error {
	bindLayout, err := c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "frame_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("native: create bind group layout: %w", err)
	}
	c.bindLayout = bindLayout

	pipeLayout, err := c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "frame_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{c.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("native: create pipeline layout: %w", err)
	}
	c.pipeLayout = pipeLayout
	return nil
}

func (c *Context) destroyLayouts() {
	if c.pipeLayout != nil {
		c.device.DestroyPipelineLayout(c.pipeLayout)
		c.pipeLayout = nil
	}
	if c.bindLayout != nil {
		c.device.DestroyBindGroupLayout(c.bindLayout)
		c.bindLayout = nil
	}
}

func (c *Context) newTexture(label string, width, height int) (*texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: texture %dx%d", ErrInvalidSize, width, height)
	}
	t := &texture{width: width, height: height}
	buf, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label, Size: t.size(),
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create texture buffer: %w", err)
	}
	t.buf = buf
	return t, nil
}

// === Textures ===

// CreateTexture creates an uninitialized RGBA8 texture.
func (c *Context) CreateTexture(width, height int) (gpucore.TextureID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return gpucore.InvalidID, ErrClosed
	}
	t, err := c.newTexture("frame_texture", width, height)
	if err != nil {
		return gpucore.InvalidID, err
	}
	id := gpucore.TextureID(c.newID())
	c.textures[id] = t
	return id, nil
}

// DestroyTexture releases a texture and unbinds it everywhere.
func (c *Context) DestroyTexture(id gpucore.TextureID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.textures[id]
	if !ok {
		return
	}
	c.device.DestroyBuffer(t.buf)
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
	if c.closed {
		return ErrClosed
	}
	t, ok := c.textures[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTexture, id)
	}
	if t.width != width || t.height != height {
		resized, err := c.newTexture("frame_texture", width, height)
		if err != nil {
			return err
		}
		c.device.DestroyBuffer(t.buf)
		*t = *resized
	}
	c.queue.WriteBuffer(t.buf, 0, pixels)
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

// === Framebuffers ===

// CreateFramebuffer creates a framebuffer with no attachment.
func (c *Context) CreateFramebuffer() (gpucore.FramebufferID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return gpucore.InvalidID, ErrClosed
	}
	id := gpucore.FramebufferID(c.newID())
	c.framebuffers[id] = gpucore.InvalidID
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
	if c.closed {
		return ErrClosed
	}
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
	return c.readLocked(t, width, height)
}

// readLocked copies the first height rows of t through a staging buffer
// and returns the left width columns.
func (c *Context) readLocked(t *texture, width, height int) ([]byte, error) {
	rowBytes := t.width * gpucore.BytesPerPixel
	size := uint64(rowBytes) * uint64(height) //nolint:gosec // sizes are positive

	staging, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "frame_staging", Size: size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create staging buffer: %w", err)
	}
	defer c.device.DestroyBuffer(staging)

	err = c.submit("frame_readback", func(encoder hal.CommandEncoder) {
		encoder.CopyBufferToBuffer(t.buf, staging, []hal.BufferCopy{
			{SrcOffset: 0, DstOffset: 0, Size: size},
		})
	})
	if err != nil {
		return nil, err
	}

	readback := make([]byte, size)
	if err := c.queue.ReadBuffer(staging, 0, readback); err != nil {
		return nil, fmt.Errorf("native: readback: %w", err)
	}
	if width == t.width {
		return readback, nil
	}
	// Strip the columns outside the region.
	tight := width * gpucore.BytesPerPixel
	out := make([]byte, tight*height)
	for row := 0; row < height; row++ {
		copy(out[row*tight:(row+1)*tight], readback[row*rowBytes:row*rowBytes+tight])
	}
	return out, nil
}

func (c *Context) targetLocked() (*texture, error) {
	if c.closed {
		return nil, ErrClosed
	}
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

// CreateProgram creates a compute pipeline from the descriptor's SPIR-V.
func (c *Context) CreateProgram(desc *gpucore.ProgramDescriptor) (gpucore.ProgramID, error) {
	if desc == nil || desc.EntryPoint == "" {
		return gpucore.InvalidID, fmt.Errorf("%w: missing descriptor or entry point", ErrInvalidProgram)
	}
	if len(desc.SPIRV) == 0 || desc.SPIRV[0] != gpucore.SPIRVMagic {
		return gpucore.InvalidID, fmt.Errorf("%w: %s: missing SPIR-V module", ErrInvalidProgram, desc.Label)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return gpucore.InvalidID, ErrClosed
	}

	module, err := c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label,
		Source: hal.ShaderSource{SPIRV: desc.SPIRV},
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: compile %s: %w", desc.Label, err)
	}
	pipeline, err := c.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: desc.Label, Layout: c.pipeLayout,
		Compute: hal.ComputeState{Module: module, EntryPoint: desc.EntryPoint},
	})
	if err != nil {
		c.device.DestroyShaderModule(module)
		return gpucore.InvalidID, fmt.Errorf("native: create pipeline %s: %w", desc.Label, err)
	}

	id := gpucore.ProgramID(c.newID())
	c.programs[id] = &program{label: desc.Label, module: module, pipeline: pipeline}
	c.log().Debug("native: program created",
		slog.String("label", desc.Label),
		slog.String("entry", desc.EntryPoint))
	return id, nil
}

// DestroyProgram releases a program.
func (c *Context) DestroyProgram(id gpucore.ProgramID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.programs[id]
	if !ok {
		return
	}
	c.destroyProgram(p)
	delete(c.programs, id)
	if c.bindings.Program == id {
		c.bindings.Program = gpucore.InvalidID
	}
}

func (c *Context) destroyProgram(p *program) {
	if p.pipeline != nil {
		c.device.DestroyComputePipeline(p.pipeline)
	}
	if p.module != nil {
		c.device.DestroyShaderModule(p.module)
	}
}

// Draw dispatches the current program from the unit 0 texture into the
// bound framebuffer over a width x height region.
func (c *Context) Draw(width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

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

	uniform, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "frame_params", Size: gpucore.ParamsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("native: create uniform buffer: %w", err)
	}
	defer c.device.DestroyBuffer(uniform)
	c.queue.WriteBuffer(uniform, 0, makeParams(width, height, src.width, dst.width))

	// A texture drawn into itself is read from a snapshot.
	srcBuf := src.buf
	if src == dst {
		snapshot, err := c.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "frame_snapshot", Size: src.size(),
			Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("native: create snapshot buffer: %w", err)
		}
		defer c.device.DestroyBuffer(snapshot)
		srcBuf = snapshot
	}

	bg, err := c.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "frame_bind", Layout: c.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: uniform.NativeHandle(), Offset: 0, Size: gpucore.ParamsSize}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: srcBuf.NativeHandle(), Offset: 0, Size: src.size()}},
			{Binding: 2, Resource: gputypes.BufferBinding{Buffer: dst.buf.NativeHandle(), Offset: 0, Size: dst.size()}},
		},
	})
	if err != nil {
		return fmt.Errorf("native: create bind group: %w", err)
	}
	defer c.device.DestroyBindGroup(bg)

	err = c.submit("frame_draw", func(encoder hal.CommandEncoder) {
		if srcBuf != src.buf {
			encoder.CopyBufferToBuffer(src.buf, srcBuf, []hal.BufferCopy{
				{SrcOffset: 0, DstOffset: 0, Size: src.size()},
			})
		}
		pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: p.label})
		pass.SetPipeline(p.pipeline)
		pass.SetBindGroup(0, bg, nil)
		pass.Dispatch(uint32((width+7)/8), uint32((height+7)/8), 1) //nolint:gosec // region is positive
		pass.End()
	})
	if err != nil {
		return err
	}

	c.log().Debug("native: draw",
		slog.String("program", p.label),
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Uint64("framebuffer", uint64(c.bindings.Framebuffer)))
	return nil
}

// makeParams packs the Params uniform.
func makeParams(width, height, srcStride, dstStride int) []byte {
	params := make([]byte, gpucore.ParamsSize)
	binary.LittleEndian.PutUint32(params[0:], uint32(width))      //nolint:gosec // positive
	binary.LittleEndian.PutUint32(params[4:], uint32(height))     //nolint:gosec // positive
	binary.LittleEndian.PutUint32(params[8:], uint32(srcStride))  //nolint:gosec // positive
	binary.LittleEndian.PutUint32(params[12:], uint32(dstStride)) //nolint:gosec // positive
	return params
}

// submit records commands, submits them and waits on a fence.
func (c *Context) submit(label string, record func(hal.CommandEncoder)) error {
	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return fmt.Errorf("native: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return fmt.Errorf("native: begin encoding: %w", err)
	}
	record(encoder)
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("native: end encoding: %w", err)
	}
	defer c.device.FreeCommandBuffer(cmdBuf)

	fence, err := c.device.CreateFence()
	if err != nil {
		return fmt.Errorf("native: create fence: %w", err)
	}
	defer c.device.DestroyFence(fence)

	if err := c.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("native: submit: %w", err)
	}
	fenceOK, err := c.device.Wait(fence, 1, c.fenceTimeout)
	if err != nil {
		return fmt.Errorf("native: wait for GPU: %w", err)
	}
	if !fenceOK {
		return ErrGPUTimeout
	}
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
// A closed context reports 0x0.
func (c *Context) SurfaceSize() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, 0
	}
	return c.surface.width, c.surface.height
}

// ResizeSurface reallocates the render surface. Contents are lost.
func (c *Context) ResizeSurface(width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	surface, err := c.newTexture("frame_surface", width, height)
	if err != nil {
		return err
	}
	c.device.DestroyBuffer(c.surface.buf)
	c.surface = surface
	return nil
}

// TransferToBitmap reads the render surface back into a new bitmap.
func (c *Context) TransferToBitmap() (gpucore.BitmapID, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return gpucore.InvalidID, ErrClosed
	}
	s := c.surface
	pixels, err := c.readLocked(s, s.width, s.height)
	c.mu.Unlock()
	if err != nil {
		return gpucore.InvalidID, err
	}
	return c.bitmaps.PutPixels(s.width, s.height, pixels)
}

// ReleaseBitmap releases a platform bitmap.
func (c *Context) ReleaseBitmap(id gpucore.BitmapID) {
	c.bitmaps.Release(id)
}

// BitmapFromImage stores any image as a new platform bitmap.
func (c *Context) BitmapFromImage(img image.Image) gpucore.BitmapID {
	return c.bitmaps.PutImage(img)
}
