package frame

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

// pipelines tracks open pipelines so SetLogger can reach their contexts.
var (
	pipelinesMu sync.Mutex
	pipelines   = make(map[*ShaderPipeline]struct{})
)

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for frame and the GPU contexts of all
// open pipelines. By default, frame produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
//
// Log levels used by frame:
//   - [slog.LevelDebug]: conversions (target kind, source kind, checksums)
//   - [slog.LevelInfo]: pipeline lifecycle
//   - [slog.LevelWarn]: non-fatal issues (surface restore, release errors)
//
// Example:
//
//	frame.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	pipelinesMu.Lock()
	targets := make([]any, 0, len(pipelines))
	for p := range pipelines {
		targets = append(targets, p.ctx)
	}
	pipelinesMu.Unlock()
	for _, c := range targets {
		propagateLogger(c, l)
	}
}

// Logger returns the current logger used by frame.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by contexts that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger to c if it implements loggerSetter.
func propagateLogger(c any, l *slog.Logger) {
	if ls, ok := c.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}

// trackPipeline registers p for logger propagation and hands its context
// the current logger.
func trackPipeline(p *ShaderPipeline) {
	pipelinesMu.Lock()
	pipelines[p] = struct{}{}
	pipelinesMu.Unlock()
	propagateLogger(p.ctx, Logger())
}

// untrackPipeline stops logger propagation to p's context.
func untrackPipeline(p *ShaderPipeline) {
	pipelinesMu.Lock()
	delete(pipelines, p)
	pipelinesMu.Unlock()
}
