package render

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formlib/pkg/model"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, model.Schema, RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(stubRenderer{name: "html"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	renderer, err := registry.Get("html")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if renderer.Name() != "html" {
		t.Fatalf("unexpected renderer %q", renderer.Name())
	}

	if err := registry.Register(stubRenderer{name: "html"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestRegistry_MissingRenderer(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.Get("missing"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
	if registry.Has("missing") {
		t.Fatalf("Has should be false for missing renderer")
	}
}

func TestRegistry_List(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "tui"})
	registry.MustRegister(stubRenderer{name: "html"})

	names := registry.List()
	if len(names) != 2 || names[0] != "html" || names[1] != "tui" {
		t.Fatalf("expected sorted names, got %v", names)
	}
}
