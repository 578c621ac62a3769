package frame

import (
	"log/slog"

	"github.com/gogpu/frame/gpucore"
)

// ownership decides which cached representations a container releases.
//
// Representations handed to New are released only when the matching
// ownership option was given. Representations the container produced
// itself are always released.
type ownership struct {
	ownsBitmap  bool
	ownsTexture bool
	synthesized [kindCount]bool
}

// markSynthesized records that the container produced kind.
func (o *ownership) markSynthesized(kind Kind) {
	o.synthesized[kind] = true
}

// owns reports whether the container must release its kind slot.
func (o *ownership) owns(kind Kind) bool {
	if o.synthesized[kind] {
		return true
	}
	switch kind {
	case KindBitmap:
		return o.ownsBitmap
	case KindTexture:
		return o.ownsTexture
	default:
		return false
	}
}

// release frees the GPU or platform resource behind r. Pixel buffers hold
// only Go memory and need nothing.
func release(surface gpucore.Context, r Representation) {
	switch v := r.(type) {
	case *Texture:
		surface.DestroyTexture(v.id)
		Logger().Debug("frame: released texture", slog.Uint64("texture", uint64(v.id)))
	case *Bitmap:
		surface.ReleaseBitmap(v.handle)
		Logger().Debug("frame: released bitmap", slog.Uint64("bitmap", uint64(v.handle)))
	}
}
