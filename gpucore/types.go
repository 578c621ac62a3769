package gpucore

// Resource IDs
//
// These opaque IDs represent resources owned by a Context. Each backend
// maintains a mapping between IDs and actual backend resources.
// IDs are uint64 to accommodate various backend handle sizes.

// TextureID is an opaque handle to a GPU texture.
type TextureID uint64

// FramebufferID is an opaque handle to a framebuffer object.
type FramebufferID uint64

// ProgramID is an opaque handle to a linked conversion program.
type ProgramID uint64

// BitmapID is an opaque handle to a platform bitmap.
type BitmapID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// DefaultFramebuffer is the framebuffer of the render surface itself.
// Drawing into it changes what TransferToBitmap returns.
const DefaultFramebuffer FramebufferID = 0

// MaxTextureUnits is the number of texture units a Context exposes.
const MaxTextureUnits = 8

// BytesPerPixel is the size of one RGBA8 texel.
const BytesPerPixel = 4

// Bindings is a snapshot of a Context's mutable binding state.
// It is comparable, so callers can check that state was restored.
type Bindings struct {
	// ActiveUnit is the texture unit addressed by BindTexture.
	ActiveUnit uint32

	// Textures holds the texture bound to each unit.
	Textures [MaxTextureUnits]TextureID

	// Framebuffer is the draw and read target.
	Framebuffer FramebufferID

	// Program is the program run by Draw.
	Program ProgramID
}

// ProgramDescriptor describes a conversion program.
//
// A program is a compute kernel over packed RGBA8 texels with the binding
// layout shared by all conversion programs:
//
//	struct Params { width: u32, height: u32, src_stride: u32, dst_stride: u32 }
//
//	@group(0) @binding(0) var<uniform> params: Params;
//	@group(0) @binding(1) var<storage, read> src: array<u32>;
//	@group(0) @binding(2) var<storage, read_write> dst: array<u32>;
//
// Texels are packed with red in the low byte; strides are in texels. The
// workgroup size is 8x8, so a width x height draw dispatches
// ((width+7)/8, (height+7)/8, 1) workgroups.
type ProgramDescriptor struct {
	// Label is an optional debug label.
	Label string

	// WGSL is the program source.
	WGSL string

	// SPIRV is the compiled program as little-endian 32-bit words.
	SPIRV []uint32

	// EntryPoint is the name of the compute entry point.
	EntryPoint string
}

// SPIRVMagic is the first word of every SPIR-V module.
const SPIRVMagic uint32 = 0x07230203

// Entry points of the conversion programs.
const (
	EntryCopy  = "copy_main"
	EntryFlipY = "flip_y_main"
)

// ParamsSize is the size in bytes of the Params uniform.
const ParamsSize = 16

// DecodeResult is delivered by Rasterizer.DecodeBitmapAsync.
type DecodeResult struct {
	// Bitmap is the decoded bitmap, InvalidID on failure.
	Bitmap BitmapID

	// Err is the decode failure, if any.
	Err error
}
