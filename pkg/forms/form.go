package forms

import (
	"context"
	"mime/multipart"
	"net/http"
	"net/url"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formlib/pkg/model"
	"github.com/goliatone/go-formlib/pkg/render"
	"github.com/goliatone/go-formlib/pkg/validation"
)

// Args carries construction-time arguments into Bind. Keys naming base
// parameters (data, files, initial, prefix) configure the form itself;
// every other key is forwarded untouched to the declaration's Init hook.
type Args map[string]any

// Declaration is satisfied by embedding Form in a struct. The embedded form
// is the per-request state; the outer struct carries the declaration's own
// fields and hooks.
type Declaration interface {
	base() *Form
}

// SchemaProvider lets a declaration carry its field definitions. When a
// declaration implements it, Bind seeds the form schema from it unless
// WithSchema overrides.
type SchemaProvider interface {
	FormSchema() model.Schema
}

// Initializer is the single post-construction extension point. Init runs
// last, after data, files, and every option have been applied.
type Initializer interface {
	Init(args Args) error
}

// ArgNamer declares the argument names a declaration's Init accepts. The
// list is checked under WithStrict: a declared name that collides with a
// base construction parameter, or a forwarded key outside the list, is a
// *ConfigError.
type ArgNamer interface {
	InitArgNames() []string
}

// Committer handles post-validation persistence. Callers invoke Commit only
// after IsValid reports true; the form does not enforce that ordering.
type Committer interface {
	Commit(ctx context.Context, args Args) (any, error)
}

// CleanerFunc post-processes a single field's cleaned value. Returning an
// error records it as a validation message for the field.
type CleanerFunc func(value any) (any, error)

// Form is the per-request state behind a declaration: the inbound request,
// submitted data and files, configuration, and the sticky validation result.
// Embed it in a declaration struct and construct through Bind.
type Form struct {
	decl any

	schema  model.Schema
	request *http.Request
	data    url.Values
	files   map[string][]*multipart.FileHeader
	initial map[string]any
	prefix  string
	hidden  map[string]string
	bound   bool

	renderer     render.Renderer
	themeConfig  *theme.RendererConfig
	fieldClasses []string
	submitText   string

	cleaners map[string]CleanerFunc

	validated bool
	result    validation.Result
	formErrs  []string
}

func (f *Form) base() *Form { return f }

// Request returns the bound request, nil for requestless forms.
func (f *Form) Request() *http.Request { return f.request }

// Data returns the raw submitted values the form was bound with.
func (f *Form) Data() url.Values { return f.data }

// Files returns the submitted multipart file headers.
func (f *Form) Files() map[string][]*multipart.FileHeader { return f.files }

// Initial returns the pre-fill values used when the form is unbound.
func (f *Form) Initial() map[string]any { return f.initial }

// Prefix returns the field-name prefix, empty when none is configured.
func (f *Form) Prefix() string { return f.prefix }

// IsBound reports whether submitted data was attached at construction.
func (f *Form) IsBound() bool { return f.bound }

// Schema returns a copy of the form's current field declaration.
func (f *Form) Schema() model.Schema { return f.schema.Clone() }

// AddField appends a field definition. Typically called from Init when the
// field set depends on construction arguments.
func (f *Form) AddField(field model.Field) {
	f.schema.Fields = append(f.schema.Fields, field)
}

// SetCleaner installs a post-coercion cleaner for one field. The cleaner
// runs only when the field passed its declared checks.
func (f *Form) SetCleaner(name string, fn CleanerFunc) {
	if fn == nil {
		return
	}
	if f.cleaners == nil {
		f.cleaners = make(map[string]CleanerFunc)
	}
	f.cleaners[name] = fn
}

// SetHidden sets a hidden input rendered inside the form element.
func (f *Form) SetHidden(name, value string) {
	if name == "" {
		return
	}
	if f.hidden == nil {
		f.hidden = make(map[string]string)
	}
	f.hidden[name] = value
}

// AddFormError records a form-level (non-field) error message.
func (f *Form) AddFormError(message string) {
	if message == "" {
		return
	}
	f.formErrs = append(f.formErrs, message)
}

// Commit dispatches to the declaration's Committer implementation. Without
// one it is a no-op returning nil, nil.
func (f *Form) Commit(ctx context.Context, args Args) (any, error) {
	if committer, ok := f.decl.(Committer); ok {
		return committer.Commit(ctx, args)
	}
	return nil, nil
}
