package backend

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/postfx/render"
	"github.com/gogpu/postfx/render/rendertest"
)

func fakeFactory(width, height int) render.Backend {
	return rendertest.New(width, height)
}

// emptyRegistry swaps in an empty registry for the duration of the test.
func emptyRegistry(t *testing.T) {
	t.Helper()
	r := defaultRegistry
	r.mu.Lock()
	saved := r.factories
	r.factories = make(map[string]Factory)
	r.mu.Unlock()
	t.Cleanup(func() {
		r.mu.Lock()
		r.factories = saved
		r.mu.Unlock()
	})
}

func TestRegisterGet(t *testing.T) {
	const name = "registry-test"
	Register(name, fakeFactory)
	t.Cleanup(func() { Unregister(name) })

	if !IsRegistered(name) {
		t.Fatalf("IsRegistered(%q) = false", name)
	}
	if !slices.Contains(Available(), name) {
		t.Errorf("Available() = %v, missing %q", Available(), name)
	}

	b, err := Get(name, 32, 16)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if w, h := b.DisplaySize(); w != 32 || h != 16 {
		t.Errorf("DisplaySize() = %dx%d, want 32x16", w, h)
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("does-not-exist", 8, 8)
	if !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Get(unknown) error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestUnregister(t *testing.T) {
	const name = "unregister-test"
	Register(name, fakeFactory)
	Unregister(name)
	if IsRegistered(name) {
		t.Errorf("%q still registered after Unregister", name)
	}
}

func TestDefaultPrefersPriority(t *testing.T) {
	emptyRegistry(t)

	if Default(8, 8) != nil {
		t.Fatal("Default() with an empty registry should be nil")
	}

	var picked string
	Register("other", func(w, h int) render.Backend {
		picked = "other"
		return rendertest.New(w, h)
	})
	if Default(8, 8) == nil || picked != "other" {
		t.Fatalf("Default() should fall back to the only backend, picked %q", picked)
	}

	Register(NameSoftware, func(w, h int) render.Backend {
		picked = NameSoftware
		return rendertest.New(w, h)
	})
	Default(8, 8)
	if picked != NameSoftware {
		t.Errorf("Default() picked %q, want %q", picked, NameSoftware)
	}
}

func TestMustDefaultPanicsWhenEmpty(t *testing.T) {
	emptyRegistry(t)

	defer func() {
		if recover() == nil {
			t.Error("MustDefault() with an empty registry should panic")
		}
	}()
	MustDefault(8, 8)
}

func TestRegistryOrder(t *testing.T) {
	r := &registry{
		factories: map[string]Factory{
			"zeta":       fakeFactory,
			"alpha":      fakeFactory,
			NameSoftware: fakeFactory,
		},
		preferred: []string{"missing", NameSoftware},
	}
	want := []string{NameSoftware, "alpha", "zeta"}
	if got := r.order(); !slices.Equal(got, want) {
		t.Errorf("order() = %v, want %v", got, want)
	}
}
