//go:build !nogpu

package native

import (
	"log/slog"
	"time"
)

// Default settings.
const (
	DefaultSurfaceWidth  = 300
	DefaultSurfaceHeight = 150
	DefaultFenceTimeout  = 5 * time.Second
)

// Option configures a Context.
type Option func(*options)

type options struct {
	flipBitmapUpload bool
	surfaceWidth     int
	surfaceHeight    int
	fenceTimeout     time.Duration
	logger           *slog.Logger
}

func defaultOptions() options {
	return options{
		surfaceWidth:  DefaultSurfaceWidth,
		surfaceHeight: DefaultSurfaceHeight,
		fenceTimeout:  DefaultFenceTimeout,
	}
}

// WithBitmapUploadFlip makes UploadBitmap store the bottom bitmap row in
// storage row 0.
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

// WithFenceTimeout bounds every wait for submitted GPU work.
func WithFenceTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.fenceTimeout = d
		}
	}
}

// WithLogger sets the initial logger. frame.SetLogger replaces it.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
