package forms

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formlib/pkg/model"
	"github.com/goliatone/go-formlib/pkg/render"
)

// maxMultipartMemory bounds the in-memory portion of multipart parsing.
const maxMultipartMemory = 32 << 20

// Base construction parameter names. Args entries under these keys configure
// the form; anything else is forwarded to Init.
const (
	ArgData    = "data"
	ArgFiles   = "files"
	ArgInitial = "initial"
	ArgPrefix  = "prefix"
)

var reservedArgNames = map[string]struct{}{
	ArgData:    {},
	ArgFiles:   {},
	ArgInitial: {},
	ArgPrefix:  {},
}

type Option func(*bindConfig)

type bindConfig struct {
	schema     *model.Schema
	data       url.Values
	files      map[string][]*multipart.FileHeader
	initial    map[string]any
	prefix     string
	args       Args
	strict     bool
	hidden     map[string]string
	renderer   render.Renderer
	classes    []string
	theme      *theme.RendererConfig
	submitText string
}

// WithSchema replaces the declaration's field definitions for this binding.
func WithSchema(schema model.Schema) Option {
	return func(cfg *bindConfig) {
		clone := schema.Clone()
		cfg.schema = &clone
	}
}

// WithData supplies submitted values explicitly, suppressing the default
// request-data binding.
func WithData(data url.Values) Option {
	return func(cfg *bindConfig) {
		cfg.data = data
	}
}

// WithFiles supplies submitted files explicitly, suppressing the default
// request-files binding.
func WithFiles(files map[string][]*multipart.FileHeader) Option {
	return func(cfg *bindConfig) {
		cfg.files = files
	}
}

// WithInitial sets pre-fill values rendered when the form is unbound.
func WithInitial(initial map[string]any) Option {
	return func(cfg *bindConfig) {
		cfg.initial = initial
	}
}

// WithPrefix namespaces every submitted field name as "<prefix>-<name>",
// letting several forms share one page.
func WithPrefix(prefix string) Option {
	return func(cfg *bindConfig) {
		cfg.prefix = strings.TrimSpace(prefix)
	}
}

// WithArgs passes construction arguments. Reserved keys configure the base
// form; the rest reach the declaration's Init hook.
func WithArgs(args Args) Option {
	return func(cfg *bindConfig) {
		cfg.args = args
	}
}

// WithStrict enables argument-name checking against InitArgNames. Off by
// default; turn it on in development and test builds.
func WithStrict(strict bool) Option {
	return func(cfg *bindConfig) {
		cfg.strict = strict
	}
}

// WithHiddenFields merges hidden inputs rendered inside the form element.
func WithHiddenFields(hidden map[string]string) Option {
	return func(cfg *bindConfig) {
		fields := make([]render.HiddenField, 0, len(hidden))
		for name, value := range hidden {
			fields = append(fields, render.Hidden(name, value))
		}
		cfg.hidden = render.MergeHiddenFields(cfg.hidden, fields...)
	}
}

// WithCSRF sets the anti-forgery token rendered as a hidden input under the
// default field name. Token generation and verification stay with the host
// application.
func WithCSRF(token string) Option {
	return func(cfg *bindConfig) {
		cfg.hidden = render.MergeHiddenFields(cfg.hidden,
			render.CSRFToken(render.DefaultCSRFField, token))
	}
}

// WithRenderer overrides the renderer used by RenderFull.
func WithRenderer(renderer render.Renderer) Option {
	return func(cfg *bindConfig) {
		cfg.renderer = renderer
	}
}

// WithFieldClasses sets the class names merged into every field's class
// attribute during full rendering.
func WithFieldClasses(classes ...string) Option {
	return func(cfg *bindConfig) {
		cfg.classes = append([]string(nil), classes...)
	}
}

// WithTheme attaches a resolved theme configuration. Its tokens supply the
// default field and form classes and its CSS variables reach the renderer.
func WithTheme(config *theme.RendererConfig) Option {
	return func(cfg *bindConfig) {
		cfg.theme = config
	}
}

// WithSubmitText overrides the submit button label.
func WithSubmitText(text string) Option {
	return func(cfg *bindConfig) {
		cfg.submitText = text
	}
}

// Bind constructs the form state behind a declaration. The sequence is
// fixed: resolve the schema, default data and files from a submitting
// request, apply options and base arguments, then run the declaration's
// Init hook last. Declarations extend construction only through Init.
func Bind(decl Declaration, r *http.Request, options ...Option) error {
	if decl == nil {
		return &ConfigError{Reason: "nil declaration"}
	}

	cfg := bindConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	form := decl.base()
	form.decl = decl

	if cfg.schema != nil {
		form.schema = *cfg.schema
	} else if provider, ok := decl.(SchemaProvider); ok {
		form.schema = provider.FormSchema().Clone()
	}

	initArgs, err := applyArgs(&cfg, decl)
	if err != nil {
		return err
	}

	form.request = r
	if cfg.data == nil && isSubmission(r) {
		if err := bindRequestData(&cfg, r); err != nil {
			return err
		}
	}

	form.data = cfg.data
	form.files = cfg.files
	form.initial = cfg.initial
	form.prefix = cfg.prefix
	form.hidden = cfg.hidden
	form.renderer = cfg.renderer
	form.themeConfig = cfg.theme
	form.fieldClasses = cfg.classes
	form.submitText = cfg.submitText
	form.bound = cfg.data != nil || cfg.files != nil

	if initializer, ok := decl.(Initializer); ok {
		if err := initializer.Init(initArgs); err != nil {
			return fmt.Errorf("forms: init: %w", err)
		}
	}
	return nil
}

// applyArgs partitions cfg.args into base parameters and Init arguments,
// enforcing the strict-mode name checks.
func applyArgs(cfg *bindConfig, decl Declaration) (Args, error) {
	declared := declaredArgNames(decl)

	if cfg.strict {
		for name := range declared {
			if _, reserved := reservedArgNames[name]; reserved {
				return nil, &ConfigError{
					Name:   name,
					Reason: "init argument collides with a base construction parameter",
				}
			}
		}
	}

	if len(cfg.args) == 0 {
		return nil, nil
	}

	initArgs := make(Args, len(cfg.args))
	for key, value := range cfg.args {
		if _, reserved := reservedArgNames[key]; reserved {
			if err := applyBaseArg(cfg, key, value); err != nil {
				return nil, err
			}
			continue
		}
		if cfg.strict && declared != nil {
			if _, ok := declared[key]; !ok {
				return nil, &ConfigError{
					Name:   key,
					Reason: "argument is not declared by InitArgNames",
				}
			}
		}
		initArgs[key] = value
	}
	if len(initArgs) == 0 {
		return nil, nil
	}
	return initArgs, nil
}

func declaredArgNames(decl Declaration) map[string]struct{} {
	namer, ok := decl.(ArgNamer)
	if !ok {
		return nil
	}
	names := namer.InitArgNames()
	declared := make(map[string]struct{}, len(names))
	for _, name := range names {
		declared[name] = struct{}{}
	}
	return declared
}

func applyBaseArg(cfg *bindConfig, key string, value any) error {
	switch key {
	case ArgData:
		data, ok := value.(url.Values)
		if !ok {
			return &ConfigError{Name: key, Reason: "expected url.Values"}
		}
		cfg.data = data
	case ArgFiles:
		files, ok := value.(map[string][]*multipart.FileHeader)
		if !ok {
			return &ConfigError{Name: key, Reason: "expected map[string][]*multipart.FileHeader"}
		}
		cfg.files = files
	case ArgInitial:
		initial, ok := value.(map[string]any)
		if !ok {
			return &ConfigError{Name: key, Reason: "expected map[string]any"}
		}
		cfg.initial = initial
	case ArgPrefix:
		prefix, ok := value.(string)
		if !ok {
			return &ConfigError{Name: key, Reason: "expected string"}
		}
		cfg.prefix = strings.TrimSpace(prefix)
	}
	return nil
}

// isSubmission reports whether the request method carries a form body.
func isSubmission(r *http.Request) bool {
	if r == nil {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

func bindRequestData(cfg *bindConfig, r *http.Request) error {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return fmt.Errorf("forms: parse multipart form: %w", err)
		}
		cfg.data = r.PostForm
		if cfg.files == nil && r.MultipartForm != nil {
			cfg.files = r.MultipartForm.File
		}
		return nil
	}

	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("forms: parse form: %w", err)
	}
	cfg.data = r.PostForm
	return nil
}
