package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formlib/pkg/model"
)

// Built-in widget identifiers resolved by the registry.
const (
	WidgetInput    = "input"
	WidgetTextarea = "textarea"
	WidgetSelect   = "select"
	WidgetCheckbox = "checkbox"
	WidgetFile     = "file"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit Attrs["widget"]
// hint is honoured before matcher evaluation; the input widget is the final
// fallback.
func (r *Registry) Resolve(field model.Field) string {
	if field.Attrs != nil {
		if explicit := strings.TrimSpace(field.Attrs["widget"]); explicit != "" {
			return explicit
		}
	}
	if r == nil {
		return WidgetInput
	}

	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name
		}
	}
	return WidgetInput
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetCheckbox, 90, func(field model.Field) bool {
		return field.Type == model.FieldTypeBoolean
	})

	r.Register(WidgetFile, 80, func(field model.Field) bool {
		return field.Type == model.FieldTypeFile
	})

	r.Register(WidgetSelect, 70, func(field model.Field) bool {
		return len(field.Enum) > 0
	})

	r.Register(WidgetTextarea, 60, func(field model.Field) bool {
		if field.Type != model.FieldTypeString {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(field.Format)) {
		case "multiline", "text", "markdown":
			return true
		default:
			return false
		}
	})
}
