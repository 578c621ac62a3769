package frame

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/frame/gpucore"
)

func TestNopHandler_Enabled(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
}

func TestNopHandler_Handle(t *testing.T) {
	h := nopHandler{}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("nopHandler.Handle() = %v, want nil", err)
	}
}

func TestNopHandler_WithAttrs(t *testing.T) {
	h := nopHandler{}
	got := h.WithAttrs([]slog.Attr{slog.String("key", "val")})
	if _, ok := got.(nopHandler); !ok {
		t.Errorf("nopHandler.WithAttrs() returned %T, want nopHandler", got)
	}
}

func TestNopHandler_WithGroup(t *testing.T) {
	h := nopHandler{}
	got := h.WithGroup("group")
	if _, ok := got.(nopHandler); !ok {
		t.Errorf("nopHandler.WithGroup() returned %T, want nopHandler", got)
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	// Default logger must be disabled at all levels.
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	SetLogger(custom)

	got := Logger()
	if got != custom {
		t.Error("Logger() did not return the custom logger set via SetLogger")
	}

	// Verify output is captured.
	got.Info("test message", "key", "value")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("expected log output to contain 'test message', got: %s", buf.String())
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	// First set a real logger.
	SetLogger(slog.Default())

	// Then set nil to restore silence.
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("SetLogger(nil) should set nop logger, not nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should produce a disabled logger")
	}
}

// loggingContext is a context that accepts a logger. Only SetLogger is
// ever called on it.
type loggingContext struct {
	gpucore.Context
	logger *slog.Logger
}

func (c *loggingContext) SetLogger(l *slog.Logger) { c.logger = l }

func TestSetLoggerPropagatesToTrackedPipelines(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	ctx := &loggingContext{}
	p := &ShaderPipeline{ctx: ctx}
	trackPipeline(p)
	t.Cleanup(func() { untrackPipeline(p) })

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(custom)

	if ctx.logger != custom {
		t.Error("SetLogger did not propagate to a tracked pipeline's context")
	}
}

func TestTrackPipelinePropagatesCurrentLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(custom)

	ctx := &loggingContext{}
	p := &ShaderPipeline{ctx: ctx}
	trackPipeline(p)
	t.Cleanup(func() { untrackPipeline(p) })

	if ctx.logger != custom {
		t.Error("trackPipeline did not hand over the current logger")
	}
}

func TestSharedContextFollowsOpenPipelines(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	ctx := &loggingContext{}
	first := &ShaderPipeline{ctx: ctx}
	second := &ShaderPipeline{ctx: ctx}
	trackPipeline(first)
	trackPipeline(second)
	untrackPipeline(first)

	l1 := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(l1)
	if ctx.logger != l1 {
		t.Fatal("context dropped while a pipeline on it was still open")
	}

	untrackPipeline(second)
	l2 := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(l2)
	if ctx.logger != l1 {
		t.Error("context still receives loggers after its last pipeline closed")
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	const goroutines = 100

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := Logger()
			if l == nil {
				t.Error("Logger() returned nil during concurrent access")
			}
			l.Debug("concurrent read")
		}()
	}

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}

	wg.Wait()
}

func BenchmarkLoggerDisabledLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("message", "key", "value")
	}
}
