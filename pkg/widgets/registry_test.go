package widgets

import (
	"testing"

	"github.com/goliatone/go-formlib/pkg/model"
)

func TestRegistry_ResolveBuiltins(t *testing.T) {
	registry := NewRegistry()

	cases := []struct {
		name  string
		field model.Field
		want  string
	}{
		{"boolean", model.Field{Type: model.FieldTypeBoolean}, WidgetCheckbox},
		{"file", model.Field{Type: model.FieldTypeFile}, WidgetFile},
		{"enum", model.Field{Type: model.FieldTypeString, Enum: []any{"a", "b"}}, WidgetSelect},
		{"multiline", model.Field{Type: model.FieldTypeString, Format: "multiline"}, WidgetTextarea},
		{"fallback", model.Field{Type: model.FieldTypeString}, WidgetInput},
		{"integer fallback", model.Field{Type: model.FieldTypeInteger}, WidgetInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := registry.Resolve(tc.field); got != tc.want {
				t.Fatalf("resolve %s: want %q, got %q", tc.name, tc.want, got)
			}
		})
	}
}

func TestRegistry_ExplicitHintWins(t *testing.T) {
	registry := NewRegistry()

	field := model.Field{
		Type:  model.FieldTypeBoolean,
		Attrs: map[string]string{"widget": "toggle"},
	}
	if got := registry.Resolve(field); got != "toggle" {
		t.Fatalf("explicit hint ignored, got %q", got)
	}
}

func TestRegistry_PriorityOrdering(t *testing.T) {
	registry := NewRegistry()
	registry.Register("always", 100, func(model.Field) bool { return true })

	if got := registry.Resolve(model.Field{Type: model.FieldTypeBoolean}); got != "always" {
		t.Fatalf("higher priority matcher should win, got %q", got)
	}
}
