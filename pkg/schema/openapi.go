package schema

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formlib/pkg/model"
)

// OpenAPIOptions controls component-schema loading.
type OpenAPIOptions struct {
	// ResolveReferences validates the document and follows external refs.
	ResolveReferences bool
}

// LoadOpenAPIComponent derives a form declaration from one component schema
// in an OpenAPI document. Properties become fields, the component's required
// list marks them, and numeric/length/pattern constraints become validation
// rules. Fields are ordered by property name so output is deterministic.
func LoadOpenAPIComponent(ctx context.Context, data []byte, component string, options OpenAPIOptions) (model.Schema, error) {
	if len(data) == 0 {
		return model.Schema{}, errors.New("schema: openapi document payload is empty")
	}
	if component == "" {
		return model.Schema{}, errors.New("schema: component name is required")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: options.ResolveReferences,
	}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return model.Schema{}, fmt.Errorf("schema: load openapi document: %w", err)
	}
	if options.ResolveReferences {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return model.Schema{}, fmt.Errorf("schema: validate openapi document: %w", err)
		}
	}

	if doc.Components == nil {
		return model.Schema{}, fmt.Errorf("schema: document has no components")
	}
	ref, ok := doc.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return model.Schema{}, fmt.Errorf("schema: component %q not found", component)
	}

	return componentToSchema(component, ref.Value), nil
}

func componentToSchema(name string, src *openapi3.Schema) model.Schema {
	required := make(map[string]struct{}, len(src.Required))
	for _, field := range src.Required {
		required[field] = struct{}{}
	}

	names := make([]string, 0, len(src.Properties))
	for propName := range src.Properties {
		names = append(names, propName)
	}
	sort.Strings(names)

	out := model.Schema{Name: name}
	for _, propName := range names {
		ref := src.Properties[propName]
		if ref == nil || ref.Value == nil {
			continue
		}
		_, isRequired := required[propName]
		out.Fields = append(out.Fields, propertyToField(propName, ref.Value, isRequired))
	}
	return out
}

func propertyToField(name string, src *openapi3.Schema, required bool) model.Field {
	field := model.Field{
		Name:     name,
		Type:     fieldType(src),
		Format:   src.Format,
		Required: required,
		Label:    src.Title,
		Help:     src.Description,
		Default:  src.Default,
	}
	if len(src.Enum) > 0 {
		field.Enum = append([]any(nil), src.Enum...)
	}
	field.Validations = propertyRules(src)
	return field
}

func fieldType(src *openapi3.Schema) model.FieldType {
	if src.Format == "binary" {
		return model.FieldTypeFile
	}
	switch firstType(src.Type) {
	case "integer":
		return model.FieldTypeInteger
	case "number":
		return model.FieldTypeNumber
	case "boolean":
		return model.FieldTypeBoolean
	case "array":
		return model.FieldTypeArray
	default:
		return model.FieldTypeString
	}
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func propertyRules(src *openapi3.Schema) []model.ValidationRule {
	var rules []model.ValidationRule
	if src.Min != nil {
		rules = append(rules, boundRule(model.ValidationRuleMin, *src.Min, src.ExclusiveMin))
	}
	if src.Max != nil {
		rules = append(rules, boundRule(model.ValidationRuleMax, *src.Max, src.ExclusiveMax))
	}
	if src.MinLength != 0 {
		rules = append(rules, model.ValidationRule{
			Kind:   model.ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.FormatUint(src.MinLength, 10)},
		})
	}
	if src.MaxLength != nil {
		rules = append(rules, model.ValidationRule{
			Kind:   model.ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.FormatUint(*src.MaxLength, 10)},
		})
	}
	if pattern := strings.TrimSpace(src.Pattern); pattern != "" {
		rules = append(rules, model.ValidationRule{
			Kind:   model.ValidationRulePattern,
			Params: map[string]string{"pattern": pattern},
		})
	}
	return rules
}

func boundRule(kind string, value float64, exclusive bool) model.ValidationRule {
	params := map[string]string{
		"value": strconv.FormatFloat(value, 'f', -1, 64),
	}
	if exclusive {
		params["exclusive"] = "true"
	}
	return model.ValidationRule{Kind: kind, Params: params}
}
