package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-formlib/pkg/model"
	"github.com/goliatone/go-formlib/pkg/render"
	rendertemplate "github.com/goliatone/go-formlib/pkg/render/template"
	gotemplate "github.com/goliatone/go-formlib/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formlib/pkg/widgets"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	widgetRegistry   *widgets.Registry
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithWidgetRegistry overrides the registry used to pick a control per field.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgetRegistry = registry
		}
	}
}

// Renderer emits the complete form markup: the form element, hidden inputs,
// every field's control, error lists, and the submit actions.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	registry  *widgets.Registry
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.widgetRegistry == nil {
		cfg.widgetRegistry = widgets.NewRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, registry: cfg.widgetRegistry}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the full form markup for the schema, folding the bound
// values, errors, hidden inputs, and optional trailing fragment from options.
func (r *Renderer) Render(ctx context.Context, schema model.Schema, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	fields := make([]map[string]any, 0, len(schema.Fields))
	for _, field := range schema.Fields {
		html, err := r.renderField(field, options)
		if err != nil {
			return nil, err
		}
		fields = append(fields, map[string]any{"html": html})
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"form": r.formView(schema, options, fields),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderField(field model.Field, options render.RenderOptions) (string, error) {
	widget := r.registry.Resolve(field)
	view := fieldView(field, widget, options)

	templateName := "templates/widgets/" + widget + ".tmpl"
	control, err := r.templates.RenderTemplate(templateName, map[string]any{"field": view})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render widget %q for field %q: %w", widget, field.Name, err)
	}
	view["control"] = strings.TrimSpace(control)

	wrapped, err := r.templates.RenderTemplate("templates/field.tmpl", map[string]any{"field": view})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render field %q: %w", field.Name, err)
	}
	return wrapped, nil
}

func (r *Renderer) formView(schema model.Schema, options render.RenderOptions, fields []map[string]any) map[string]any {
	method := strings.ToUpper(strings.TrimSpace(options.Method))
	if method == "" {
		method = strings.ToUpper(strings.TrimSpace(schema.Method))
	}
	if method == "" {
		method = "POST"
	}

	submit := strings.TrimSpace(options.SubmitText)
	if submit == "" {
		submit = strings.TrimSpace(schema.SubmitText)
	}
	if submit == "" {
		submit = DefaultSubmitText
	}

	hidden := render.SortedHiddenFields(options.Hidden)
	hiddenViews := make([]map[string]any, 0, len(hidden))
	for _, field := range hidden {
		hiddenViews = append(hiddenViews, map[string]any{"name": field.Name, "value": field.Value})
	}

	formClass := string(ClassForm)
	style := ""
	if options.Theme != nil {
		if cls := strings.TrimSpace(options.Theme.Tokens[render.ThemeTokenFormClass]); cls != "" {
			formClass = model.MergeClasses(formClass, cls)
		}
		style = cssVarsStyle(options.Theme.CSSVars)
	}

	return map[string]any{
		"id":            elementID(options.Prefix, schema.Name),
		"action":        schema.Action,
		"method":        method,
		"multipart":     schema.HasFileFields(),
		"class":         formClass,
		"style":         style,
		"hidden":        hiddenViews,
		"errors":        options.FormErrors,
		"errors_class":  string(ClassErrors),
		"actions_class": string(ClassActions),
		"fields":        fields,
		"submit":        submit,
		"extra":         options.Extra,
	}
}

func fieldView(field model.Field, widget string, options render.RenderOptions) map[string]any {
	name := submitName(options.Prefix, field.Name)
	controlID := "fl-" + name

	value := ""
	var listValues []string
	raw, bound := options.Values[field.Name]
	if !bound && field.Default != nil {
		raw = field.Default
	}
	switch v := raw.(type) {
	case nil:
	case []string:
		listValues = v
	case []any:
		for _, entry := range v {
			listValues = append(listValues, fmt.Sprint(entry))
		}
	default:
		value = fmt.Sprint(v)
	}

	view := map[string]any{
		"name":           name,
		"control_id":     controlID,
		"label":          field.Label,
		"required":       field.Required,
		"help":           field.Help,
		"placeholder":    field.Placeholder,
		"value":          value,
		"values":         listValues,
		"checked":        isTruthy(value),
		"input_type":     inputType(field),
		"attrs":          attrString(field.Attrs),
		"errors":         options.Errors[field.Name],
		"widget":         widget,
		"multiple":       field.Type == model.FieldTypeArray,
		"field_class":    string(ClassField),
		"label_class":    string(ClassLabel),
		"help_class":     string(ClassHelp),
		"errors_class":   string(ClassErrors),
		"required_class": string(ClassRequired),
	}

	if len(field.Enum) > 0 {
		choices := make([]map[string]any, 0, len(field.Enum))
		selected := make(map[string]struct{}, len(listValues)+1)
		if value != "" {
			selected[value] = struct{}{}
		}
		for _, entry := range listValues {
			selected[entry] = struct{}{}
		}
		for _, entry := range field.Enum {
			text := fmt.Sprint(entry)
			_, isSelected := selected[text]
			choices = append(choices, map[string]any{
				"value":    text,
				"selected": isSelected,
			})
		}
		view["options"] = choices
	}

	return view
}

func elementID(prefix, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "form"
	}
	return submitName(prefix, name)
}

func submitName(prefix, name string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return name
	}
	return prefix + "-" + name
}

func inputType(field model.Field) string {
	switch field.Type {
	case model.FieldTypeInteger, model.FieldTypeNumber:
		return "number"
	case model.FieldTypeFile:
		return "file"
	case model.FieldTypeBoolean:
		return "checkbox"
	}
	switch strings.ToLower(strings.TrimSpace(field.Format)) {
	case "email":
		return "email"
	case "password":
		return "password"
	case "uri", "url":
		return "url"
	case "date":
		return "date"
	case "time":
		return "time"
	case "date-time", "datetime":
		return "datetime-local"
	case "hidden":
		return "hidden"
	default:
		return "text"
	}
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false", "off", "no":
		return false
	default:
		return true
	}
}
