package forms

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formlib/pkg/render"
	"github.com/goliatone/go-formlib/pkg/renderers/vanilla"
	"github.com/goliatone/go-formlib/pkg/validation"
)

// DefaultFieldClasses is merged into every field's class attribute when
// neither WithFieldClasses nor a theme token provides a class set.
var DefaultFieldClasses = []string{"form-control"}

// RenderFull renders the complete form markup: the form element, hidden
// inputs, every field with label, control, help, and errors, and the submit
// control. Extra, when non-empty, is appended verbatim before the closing
// tag. The default class set is merged into each field's class attribute as
// a set union, so repeat renders produce identical markup.
func (f *Form) RenderFull(ctx context.Context, extra string) ([]byte, error) {
	classes := f.fieldClasses
	if len(classes) == 0 {
		classes = render.ThemeFieldClasses(f.themeConfig, DefaultFieldClasses)
	}
	f.schema.ApplyFieldClasses(classes...)

	renderer := f.renderer
	if renderer == nil {
		fallback, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("forms: default renderer: %w", err)
		}
		f.renderer = fallback
		renderer = fallback
	}

	options := render.RenderOptions{
		Prefix:     f.prefix,
		Values:     f.renderValues(),
		Hidden:     f.hidden,
		SubmitText: f.submitText,
		Extra:      extra,
		Theme:      f.themeConfig,
		FormErrors: f.formErrs,
	}
	if f.validated && f.bound {
		options.Errors = f.result.Errors
	}

	out, err := renderer.Render(ctx, f.schema, options)
	if err != nil {
		return nil, fmt.Errorf("forms: render full: %w", err)
	}
	return out, nil
}

// String renders the full markup for template interpolation. Render
// failures become an HTML comment since Stringer cannot return an error;
// use RenderFull directly when the caller needs the error.
func (f *Form) String() string {
	out, err := f.RenderFull(context.Background(), "")
	if err != nil {
		return "<!-- formlib: " + err.Error() + " -->"
	}
	return string(out)
}

// renderValues builds the value map the renderer displays: initial values
// overlaid by raw submitted data when the form is bound.
func (f *Form) renderValues() map[string]any {
	if len(f.initial) == 0 && !f.bound {
		return nil
	}

	values := make(map[string]any, len(f.initial)+len(f.schema.Fields))
	for key, value := range f.initial {
		values[key] = value
	}
	if !f.bound || f.data == nil {
		return values
	}

	for _, field := range f.schema.Fields {
		key := validation.SubmitName(f.prefix, field.Name)
		raw, ok := f.data[key]
		if !ok || len(raw) == 0 {
			continue
		}
		if len(raw) > 1 {
			values[field.Name] = raw
			continue
		}
		values[field.Name] = raw[0]
	}
	return values
}
