// Package formlib layers form conventions over an HTTP handler: declare a
// form once, bind it to the inbound request, validate submitted data, and
// render the complete markup with a single call.
package formlib

import (
	"context"
	"fmt"
	"net/http"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formlib/pkg/forms"
	"github.com/goliatone/go-formlib/pkg/model"
	"github.com/goliatone/go-formlib/pkg/render"
	"github.com/goliatone/go-formlib/pkg/renderers/tui"
	"github.com/goliatone/go-formlib/pkg/renderers/vanilla"
)

// Field aliases the field declaration used across the module.
type Field = model.Field

// FieldType enumerates the value kinds a field accepts.
type FieldType = model.FieldType

// Schema aliases the whole-form declaration.
type Schema = model.Schema

// ValidationRule aliases a single declarative field constraint.
type ValidationRule = model.ValidationRule

// Form aliases the per-request form state. Embed it in declaration structs.
type Form = forms.Form

// Args carries construction-time arguments into Bind.
type Args = forms.Args

// Option configures a Bind call.
type Option = forms.Option

// RenderOptions describes per-request overrides renderers fold into output.
type RenderOptions = render.RenderOptions

// Bind constructs the form state behind a declaration from the request.
func Bind(decl forms.Declaration, r *http.Request, options ...Option) error {
	return forms.Bind(decl, r, options...)
}

// RenderHTML renders a standalone schema with the vanilla renderer, the
// simplest entry point for callers without a declaration type. The caller's
// schema is left untouched; classes are merged into a private clone.
func RenderHTML(ctx context.Context, schema Schema, options RenderOptions) ([]byte, error) {
	renderer, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	schema = schema.Clone()
	schema.ApplyFieldClasses(render.ThemeFieldClasses(options.Theme, forms.DefaultFieldClasses)...)
	return renderer.Render(ctx, schema, options)
}

// Renderers returns a registry holding the built-in renderers under their
// names: "vanilla" for HTML markup and "tui" for the interactive filler.
func Renderers() (*render.Registry, error) {
	registry := render.NewRegistry()

	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	interactive, err := tui.New()
	if err != nil {
		return nil, err
	}

	for _, renderer := range []render.Renderer{html, interactive} {
		if err := registry.Register(renderer); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// ThemeConfig resolves a theme/variant through a go-theme selector and folds
// it into the renderer configuration Bind accepts via forms.WithTheme.
func ThemeConfig(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, fmt.Errorf("formlib: theme selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("formlib: select theme: %w", err)
	}
	return render.BuildThemeConfig(selection), nil
}
