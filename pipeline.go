package frame

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/frame/gpucore"
)

// ShaderPipeline converts between textures and the other representation
// kinds on one GPU context.
//
// It owns the copy and flip_y programs and one framebuffer used for
// off-screen draws and read-back. Every operation leaves the context's
// binding state exactly as it found it.
//
// ShaderPipeline is not safe for concurrent use.
type ShaderPipeline struct {
	ctx         gpucore.Context
	programs    [len(programSources)]gpucore.ProgramID
	framebuffer gpucore.FramebufferID
	closed      bool
}

// NewShaderPipeline compiles the conversion programs and creates the
// pipeline's framebuffer on ctx.
func NewShaderPipeline(ctx gpucore.Context, opts ...PipelineOption) (*ShaderPipeline, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	o := defaultPipelineOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &ShaderPipeline{ctx: ctx}
	trackPipeline(p)

	for i, src := range programSources {
		words, err := o.shaders.Compile(src.wgsl)
		if err != nil {
			p.destroy()
			return nil, fmt.Errorf("frame: compile %s: %w", src.label, err)
		}
		id, err := ctx.CreateProgram(&gpucore.ProgramDescriptor{
			Label:      src.label,
			WGSL:       src.wgsl,
			SPIRV:      words,
			EntryPoint: src.entryPoint,
		})
		if err != nil {
			p.destroy()
			return nil, fmt.Errorf("frame: create program %s: %w", src.label, err)
		}
		p.programs[i] = id
	}

	fb, err := ctx.CreateFramebuffer()
	if err != nil {
		p.destroy()
		return nil, fmt.Errorf("frame: create framebuffer: %w", err)
	}
	p.framebuffer = fb

	Logger().Info("frame: shader pipeline created",
		slog.Uint64("copy", uint64(p.programs[programCopy])),
		slog.Uint64("flip_y", uint64(p.programs[programFlipY])),
		slog.Uint64("framebuffer", uint64(fb)))
	return p, nil
}

// Context returns the GPU context the pipeline draws with.
func (p *ShaderPipeline) Context() gpucore.Context {
	return p.ctx
}

// Closed reports whether Close has been called.
func (p *ShaderPipeline) Closed() bool {
	return p.closed
}

// Close destroys the programs and the framebuffer.
func (p *ShaderPipeline) Close() error {
	if p.closed {
		return ErrPipelineClosed
	}
	p.destroy()
	p.closed = true
	Logger().Info("frame: shader pipeline closed")
	return nil
}

// destroy releases whatever has been created so far.
func (p *ShaderPipeline) destroy() {
	for i, id := range p.programs {
		if id != gpucore.InvalidID {
			p.ctx.DestroyProgram(id)
			p.programs[i] = gpucore.InvalidID
		}
	}
	if p.framebuffer != gpucore.InvalidID {
		p.ctx.DestroyFramebuffer(p.framebuffer)
		p.framebuffer = gpucore.InvalidID
	}
	untrackPipeline(p)
}

// ToTexture uploads a pixel buffer or a bitmap into a new texture.
//
// Pixel buffers produce OrientationNormal textures. Bitmaps produce
// OrientationFlipped textures on contexts whose bitmap upload flips rows.
func (p *ShaderPipeline) ToTexture(src Representation) (*Texture, error) {
	if p.closed {
		return nil, ErrPipelineClosed
	}
	if isNilRepresentation(src) {
		return nil, fmt.Errorf("%w: nil source", ErrEmptyInput)
	}
	if src.Kind() == KindTexture {
		return nil, fmt.Errorf("%w: texture to texture", ErrUnsupportedConversion)
	}
	defer p.restore(p.ctx.Bindings())

	w, h := src.Width(), src.Height()
	id, err := p.ctx.CreateTexture(w, h)
	if err != nil {
		return nil, fmt.Errorf("frame: create texture: %w", err)
	}

	orientation := OrientationNormal
	switch s := src.(type) {
	case *PixelBuffer:
		err = p.ctx.WriteTexture(id, w, h, s.data)
	case *Bitmap:
		err = p.ctx.UploadBitmap(id, s.handle)
		if p.ctx.BitmapUploadFlipsY() {
			orientation = OrientationFlipped
		}
	}
	if err != nil {
		p.ctx.DestroyTexture(id)
		return nil, fmt.Errorf("frame: upload %v: %w", src.Kind(), err)
	}

	Logger().Debug("frame: uploaded texture",
		slog.String("source", src.Kind().String()),
		slog.Uint64("texture", uint64(id)),
		slog.String("orientation", orientation.String()))
	return &Texture{id: id, width: w, height: h, orientation: orientation}, nil
}

// FromTexture produces a pixel buffer or a bitmap from tex. Flipped
// textures are flipped exactly once on the way out.
func (p *ShaderPipeline) FromTexture(tex *Texture, kind Kind) (Representation, error) {
	if p.closed {
		return nil, ErrPipelineClosed
	}
	if tex == nil {
		return nil, fmt.Errorf("%w: nil texture", ErrEmptyInput)
	}
	defer p.restore(p.ctx.Bindings())

	switch kind {
	case KindPixelBuffer:
		return p.readPixels(tex)
	case KindBitmap:
		return p.transferToBitmap(tex)
	default:
		return nil, fmt.Errorf("%w: texture to %v", ErrUnsupportedConversion, kind)
	}
}

// CopyTexture copies tex into a new texture with the same orientation.
func (p *ShaderPipeline) CopyTexture(tex *Texture) (*Texture, error) {
	if p.closed {
		return nil, ErrPipelineClosed
	}
	if tex == nil {
		return nil, fmt.Errorf("%w: nil texture", ErrEmptyInput)
	}
	defer p.restore(p.ctx.Bindings())

	dst, err := p.drawToScratch(programCopy, tex)
	if err != nil {
		return nil, err
	}
	return &Texture{id: dst, width: tex.width, height: tex.height, orientation: tex.orientation}, nil
}

// readPixels reads tex back in top-row-first order.
func (p *ShaderPipeline) readPixels(tex *Texture) (*PixelBuffer, error) {
	w, h := tex.width, tex.height

	source := tex.id
	if tex.Flipped() {
		scratch, err := p.drawToScratch(programFlipY, tex)
		if err != nil {
			return nil, err
		}
		defer p.ctx.DestroyTexture(scratch)
		source = scratch
	} else if err := p.ctx.AttachTexture(p.framebuffer, source); err != nil {
		return nil, fmt.Errorf("frame: attach texture: %w", err)
	}

	p.ctx.BindFramebuffer(p.framebuffer)
	data, err := p.ctx.ReadPixels(w, h)
	if err != nil {
		return nil, fmt.Errorf("frame: read pixels: %w", err)
	}
	pb, err := newPixelBufferOwned(w, h, data)
	if err != nil {
		return nil, err
	}
	Logger().Debug("frame: read back texture",
		slog.Uint64("texture", uint64(tex.id)),
		slog.Bool("flipped", tex.Flipped()),
		slog.Uint64("checksum", pb.Checksum()))
	return pb, nil
}

// transferToBitmap draws tex onto the render surface and snapshots it.
// The surface is resized to the texture for the draw and restored after.
func (p *ShaderPipeline) transferToBitmap(tex *Texture) (*Bitmap, error) {
	w, h := tex.width, tex.height

	sw, sh := p.ctx.SurfaceSize()
	if sw != w || sh != h {
		if err := p.ctx.ResizeSurface(w, h); err != nil {
			return nil, fmt.Errorf("frame: resize surface: %w", err)
		}
		defer func() {
			if err := p.ctx.ResizeSurface(sw, sh); err != nil {
				Logger().Warn("frame: surface size not restored",
					slog.Int("width", sw), slog.Int("height", sh), slog.Any("err", err))
			}
		}()
	}

	prog := programCopy
	if tex.Flipped() {
		prog = programFlipY
	}
	if err := p.draw(prog, tex.id, gpucore.DefaultFramebuffer, w, h); err != nil {
		return nil, err
	}

	handle, err := p.ctx.TransferToBitmap()
	if err != nil {
		return nil, fmt.Errorf("frame: transfer to bitmap: %w", err)
	}
	Logger().Debug("frame: transferred texture to bitmap",
		slog.Uint64("texture", uint64(tex.id)),
		slog.Uint64("bitmap", uint64(handle)),
		slog.Bool("flipped", tex.Flipped()))
	return &Bitmap{handle: handle, width: w, height: h}, nil
}

// drawToScratch runs prog from tex into a new texture of the same size,
// attached to the pipeline framebuffer. The caller owns the result.
func (p *ShaderPipeline) drawToScratch(prog program, tex *Texture) (gpucore.TextureID, error) {
	dst, err := p.ctx.CreateTexture(tex.width, tex.height)
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("frame: create texture: %w", err)
	}
	if err := p.ctx.AttachTexture(p.framebuffer, dst); err != nil {
		p.ctx.DestroyTexture(dst)
		return gpucore.InvalidID, fmt.Errorf("frame: attach texture: %w", err)
	}
	if err := p.draw(prog, tex.id, p.framebuffer, tex.width, tex.height); err != nil {
		p.ctx.DestroyTexture(dst)
		return gpucore.InvalidID, err
	}
	return dst, nil
}

// draw binds src to unit 0 and fb as the target, then runs prog.
func (p *ShaderPipeline) draw(prog program, src gpucore.TextureID, fb gpucore.FramebufferID, w, h int) error {
	p.ctx.BindFramebuffer(fb)
	p.ctx.ActiveTexture(0)
	p.ctx.BindTexture(src)
	p.ctx.UseProgram(p.programs[prog])
	if err := p.ctx.Draw(w, h); err != nil {
		return fmt.Errorf("frame: draw %s: %w", programSources[prog].label, err)
	}
	return nil
}

// restore puts the context's binding state back to saved.
func (p *ShaderPipeline) restore(saved gpucore.Bindings) {
	cur := p.ctx.Bindings()
	if cur == saved {
		return
	}
	for unit := range saved.Textures {
		if cur.Textures[unit] != saved.Textures[unit] {
			p.ctx.ActiveTexture(uint32(unit)) //nolint:gosec // unit < MaxTextureUnits
			p.ctx.BindTexture(saved.Textures[unit])
		}
	}
	p.ctx.ActiveTexture(saved.ActiveUnit)
	p.ctx.BindFramebuffer(saved.Framebuffer)
	p.ctx.UseProgram(saved.Program)
}

// isNilRepresentation reports whether r is nil or a typed nil pointer.
func isNilRepresentation(r Representation) bool {
	switch v := r.(type) {
	case nil:
		return true
	case *PixelBuffer:
		return v == nil
	case *Bitmap:
		return v == nil
	case *Texture:
		return v == nil
	}
	return false
}
