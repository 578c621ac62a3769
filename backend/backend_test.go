package backend

import (
	"errors"
	"testing"

	"github.com/gogpu/frame/gpucore"
)

// fakeContext satisfies gpucore.Context; only its identity matters here.
type fakeContext struct {
	gpucore.Context
	name string
}

// withRegistry runs the test against an empty registry and restores the
// original one afterwards.
func withRegistry(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := factories
	factories = make(map[string]Factory)
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		factories = saved
		registryMu.Unlock()
	})
}

func factoryFor(name string) Factory {
	return func() (gpucore.Context, error) {
		return &fakeContext{name: name}, nil
	}
}

func failingFactory(err error) Factory {
	return func() (gpucore.Context, error) {
		return nil, err
	}
}

func TestRegisterAndGet(t *testing.T) {
	withRegistry(t)

	Register("custom", factoryFor("custom"))
	if !IsRegistered("custom") {
		t.Fatal("IsRegistered(custom) = false after Register")
	}

	ctx, err := Get("custom")
	if err != nil {
		t.Fatalf("Get(custom) error = %v", err)
	}
	if ctx.(*fakeContext).name != "custom" {
		t.Errorf("Get(custom) returned %v", ctx)
	}

	Unregister("custom")
	if IsRegistered("custom") {
		t.Error("IsRegistered(custom) = true after Unregister")
	}
	if _, err := Get("custom"); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Get after Unregister error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestAvailableIsSorted(t *testing.T) {
	withRegistry(t)

	Register("zeta", factoryFor("zeta"))
	Register("alpha", factoryFor("alpha"))
	got := Available()
	if len(got) != 2 || got[0] != "alpha" || got[1] != "zeta" {
		t.Errorf("Available() = %v, want [alpha zeta]", got)
	}
}

func TestDefaultPriority(t *testing.T) {
	withRegistry(t)

	Register(Software, factoryFor(Software))
	Register(Native, factoryFor(Native))
	Register("other", factoryFor("other"))

	ctx, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if got := ctx.(*fakeContext).name; got != Native {
		t.Errorf("Default() = %q, want %q", got, Native)
	}
}

func TestDefaultFallsBackWhenPreferredFails(t *testing.T) {
	withRegistry(t)

	Register(Native, failingFactory(errors.New("no adapter")))
	Register(Software, factoryFor(Software))

	ctx, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if got := ctx.(*fakeContext).name; got != Software {
		t.Errorf("Default() = %q, want %q", got, Software)
	}
}

func TestDefaultNoBackends(t *testing.T) {
	withRegistry(t)

	if _, err := Default(); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Default() error = %v, want ErrBackendNotAvailable", err)
	}

	boom := errors.New("boom")
	Register(Native, failingFactory(boom))
	_, err := Default()
	if !errors.Is(err, boom) || !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Default() error = %v, want wrapped boom", err)
	}
}

func TestMustDefaultPanics(t *testing.T) {
	withRegistry(t)

	defer func() {
		if recover() == nil {
			t.Error("MustDefault() did not panic with no backends")
		}
	}()
	MustDefault()
}

// closingContext counts Close calls.
type closingContext struct {
	gpucore.Context
	closed int
	err    error
}

func (c *closingContext) Close() error {
	c.closed++
	return c.err
}

func TestClose(t *testing.T) {
	if err := Close(&fakeContext{name: "plain"}); err != nil {
		t.Errorf("Close(no closer) = %v, want nil", err)
	}

	ctx := &closingContext{}
	if err := Close(ctx); err != nil {
		t.Errorf("Close = %v", err)
	}
	if ctx.closed != 1 {
		t.Errorf("Close called %d times, want 1", ctx.closed)
	}

	boom := errors.New("boom")
	if err := Close(&closingContext{err: boom}); !errors.Is(err, boom) {
		t.Errorf("Close err = %v, want %v", err, boom)
	}
}

func TestDefaultContextIsReleasable(t *testing.T) {
	withRegistry(t)
	Register(Native, func() (gpucore.Context, error) { return &closingContext{}, nil })

	ctx, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if err := Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if ctx.(*closingContext).closed != 1 {
		t.Error("Close did not reach the context")
	}
}
