// Package schema loads form declarations from external definitions: YAML
// documents written for formlib and component schemas from OpenAPI contracts.
package schema

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formlib/pkg/model"
)

type yamlForm struct {
	Name     string            `yaml:"name"`
	Action   string            `yaml:"action"`
	Method   string            `yaml:"method"`
	Submit   string            `yaml:"submit"`
	Metadata map[string]string `yaml:"metadata"`
	Fields   []yamlField       `yaml:"fields"`
}

type yamlField struct {
	Name        string            `yaml:"name"`
	Type        string            `yaml:"type"`
	Format      string            `yaml:"format"`
	Required    bool              `yaml:"required"`
	Label       string            `yaml:"label"`
	Placeholder string            `yaml:"placeholder"`
	Help        string            `yaml:"help"`
	Default     any               `yaml:"default"`
	Enum        []any             `yaml:"enum"`
	Attrs       map[string]string `yaml:"attrs"`
	Rules       []yamlRule        `yaml:"rules"`
}

type yamlRule struct {
	Kind      string `yaml:"kind"`
	Value     string `yaml:"value"`
	Pattern   string `yaml:"pattern"`
	Exclusive bool   `yaml:"exclusive"`
}

var fieldTypes = map[string]model.FieldType{
	"string":  model.FieldTypeString,
	"integer": model.FieldTypeInteger,
	"number":  model.FieldTypeNumber,
	"boolean": model.FieldTypeBoolean,
	"array":   model.FieldTypeArray,
	"file":    model.FieldTypeFile,
}

// ParseYAML decodes a declarative form definition into a Schema. Field type
// defaults to string; the form method defaults to POST.
func ParseYAML(data []byte) (model.Schema, error) {
	if len(data) == 0 {
		return model.Schema{}, errors.New("schema: yaml payload is empty")
	}

	var doc yamlForm
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return model.Schema{}, fmt.Errorf("schema: parse yaml: %w", err)
	}
	if strings.TrimSpace(doc.Name) == "" {
		return model.Schema{}, errors.New("schema: form name is required")
	}

	out := model.Schema{
		Name:       strings.TrimSpace(doc.Name),
		Action:     doc.Action,
		Method:     strings.ToUpper(strings.TrimSpace(doc.Method)),
		SubmitText: doc.Submit,
		Metadata:   doc.Metadata,
	}
	if out.Method == "" {
		out.Method = "POST"
	}

	for i, field := range doc.Fields {
		converted, err := convertYAMLField(field)
		if err != nil {
			return model.Schema{}, fmt.Errorf("schema: field %d: %w", i, err)
		}
		out.Fields = append(out.Fields, converted)
	}
	return out, nil
}

func convertYAMLField(src yamlField) (model.Field, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		return model.Field{}, errors.New("field name is required")
	}

	typeName := strings.TrimSpace(src.Type)
	if typeName == "" {
		typeName = "string"
	}
	fieldType, ok := fieldTypes[typeName]
	if !ok {
		return model.Field{}, fmt.Errorf("unknown field type %q", typeName)
	}

	field := model.Field{
		Name:        name,
		Type:        fieldType,
		Format:      src.Format,
		Required:    src.Required,
		Label:       src.Label,
		Placeholder: src.Placeholder,
		Help:        src.Help,
		Default:     src.Default,
		Enum:        src.Enum,
		Attrs:       src.Attrs,
	}

	for _, rule := range src.Rules {
		converted, err := convertYAMLRule(rule)
		if err != nil {
			return model.Field{}, fmt.Errorf("field %q: %w", name, err)
		}
		field.Validations = append(field.Validations, converted)
	}
	return field, nil
}

func convertYAMLRule(src yamlRule) (model.ValidationRule, error) {
	kind := strings.TrimSpace(src.Kind)
	params := map[string]string{}

	switch kind {
	case model.ValidationRuleMin, model.ValidationRuleMax:
		if src.Value == "" {
			return model.ValidationRule{}, fmt.Errorf("rule %q needs a value", kind)
		}
		params["value"] = src.Value
		if src.Exclusive {
			params["exclusive"] = "true"
		}
	case model.ValidationRuleMinLength, model.ValidationRuleMaxLength:
		if src.Value == "" {
			return model.ValidationRule{}, fmt.Errorf("rule %q needs a value", kind)
		}
		params["value"] = src.Value
	case model.ValidationRulePattern:
		if src.Pattern == "" {
			return model.ValidationRule{}, fmt.Errorf("rule %q needs a pattern", kind)
		}
		params["pattern"] = src.Pattern
	default:
		return model.ValidationRule{}, fmt.Errorf("unknown rule kind %q", src.Kind)
	}

	return model.ValidationRule{Kind: kind, Params: params}, nil
}
