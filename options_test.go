package frame

import (
	"testing"

	"github.com/gogpu/frame/internal/shadercache"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.ownsBitmap || o.ownsTexture {
		t.Error("default options must leave ownership with the caller")
	}
	if o.rasterizer != nil {
		t.Error("default options must not set a rasterizer")
	}
}

func TestContainerOptions(t *testing.T) {
	o := defaultOptions()
	for _, opt := range []Option{WithBitmapOwnership(true), WithTextureOwnership(true)} {
		opt(&o)
	}
	if !o.ownsBitmap || !o.ownsTexture {
		t.Errorf("options not applied: %+v", o)
	}
	WithTextureOwnership(false)(&o)
	if o.ownsTexture {
		t.Error("WithTextureOwnership(false) did not clear ownership")
	}
}

func TestPipelineOptions(t *testing.T) {
	o := defaultPipelineOptions()
	if o.shaders != shadercache.Default() {
		t.Error("default pipeline options must use the shared shader cache")
	}

	WithShaderCompiler(nil)(&o)
	if o.shaders != shadercache.Default() {
		t.Error("WithShaderCompiler(nil) must keep the default cache")
	}

	WithShaderCompiler(func(string) ([]byte, error) { return nil, nil })(&o)
	if o.shaders == shadercache.Default() {
		t.Error("WithShaderCompiler did not install a private cache")
	}
}
