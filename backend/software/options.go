package software

import (
	"log/slog"
	"time"
)

// Default render surface size.
const (
	DefaultSurfaceWidth  = 300
	DefaultSurfaceHeight = 150
)

// Option configures a Context.
type Option func(*options)

type options struct {
	flipBitmapUpload bool
	surfaceWidth     int
	surfaceHeight    int
	decodeLatency    time.Duration
	logger           *slog.Logger
}

func defaultOptions() options {
	return options{
		surfaceWidth:  DefaultSurfaceWidth,
		surfaceHeight: DefaultSurfaceHeight,
	}
}

// WithBitmapUploadFlip makes UploadBitmap store the bottom bitmap row in
// storage row 0, as platforms with a bottom-left texture origin do.
func WithBitmapUploadFlip(flip bool) Option {
	return func(o *options) {
		o.flipBitmapUpload = flip
	}
}

// WithSurfaceSize sets the initial render surface size. Non-positive
// values keep the default.
func WithSurfaceSize(width, height int) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.surfaceWidth = width
			o.surfaceHeight = height
		}
	}
}

// WithDecodeLatency delays every asynchronous bitmap decode by d.
func WithDecodeLatency(d time.Duration) Option {
	return func(o *options) {
		o.decodeLatency = d
	}
}

// WithLogger sets the initial logger. frame.SetLogger replaces it.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
