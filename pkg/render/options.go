package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carries the per-request state a renderer folds into its
// output without mutating the schema's declared structure.
type RenderOptions struct {
	// Method overrides the method declared by the schema, e.g. when a caller
	// re-renders a bound form on a different route.
	Method string
	// Prefix namespaces submitted parameter names ("<prefix>-<field>") so
	// several forms can share one page.
	Prefix string
	// Values pre-populates controls keyed by field name: raw submitted values
	// on re-render, cleaned values after validation, initial values otherwise.
	Values map[string]any
	// Errors holds field-level validation messages keyed by field name.
	Errors map[string][]string
	// FormErrors holds messages that apply to the whole form.
	FormErrors []string
	// Hidden lists hidden inputs emitted inside the form element, such as the
	// anti-forgery token supplied by the host framework.
	Hidden map[string]string
	// SubmitText overrides the schema's submit control label.
	SubmitText string
	// Extra is a trailing markup fragment appended inside the form, after the
	// submit controls. Callers sanitize it before it reaches the renderer.
	Extra string
	// Theme carries the resolved go-theme configuration; renderers may emit
	// its CSS variables and resolve asset URLs through it.
	Theme *theme.RendererConfig
}
