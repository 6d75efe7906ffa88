package model

// FieldType enumerates the value kinds a form field can accept.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeFile    FieldType = "file"
)

const (
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

// ValidationRule is a single declarative constraint attached to a field.
// Numeric bounds and length limits carry their threshold in Params["value"];
// pattern rules keep the expression in Params["pattern"]. Exclusive numeric
// bounds set Params["exclusive"] to "true". Values stay strings so schema
// snapshots serialise deterministically.
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field describes one declared input: its accepted type, validation rules,
// and mutable presentation attributes. Attrs holds the HTML attributes the
// renderer emits on the control (class, autocomplete, data-*), and is the
// only part of a field that rendering mutates.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Help        string            `json:"help,omitempty"`
	Default     any               `json:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Attrs       map[string]string `json:"attrs,omitempty"`
}

// Schema is the declarative description of a whole form: identity, submit
// target, and the ordered field list. A Schema is owned by the form instance
// that declares it and lives for a single request.
type Schema struct {
	Name       string            `json:"name"`
	Action     string            `json:"action,omitempty"`
	Method     string            `json:"method,omitempty"`
	SubmitText string            `json:"submitText,omitempty"`
	Fields     []Field           `json:"fields"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Field returns a pointer to the named field so callers can mutate its
// presentation attributes in place.
func (s *Schema) Field(name string) (*Field, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// HasFileFields reports whether any declared field accepts an upload, which
// decides the form's enctype.
func (s *Schema) HasFileFields() bool {
	for i := range s.Fields {
		if s.Fields[i].Type == FieldTypeFile {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the schema so callers can derive variants
// without sharing mutable attribute maps.
func (s Schema) Clone() Schema {
	out := s
	out.Metadata = cloneStringMap(s.Metadata)
	if len(s.Fields) > 0 {
		out.Fields = make([]Field, len(s.Fields))
		for i, field := range s.Fields {
			out.Fields[i] = field.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	out.Attrs = cloneStringMap(f.Attrs)
	if len(f.Enum) > 0 {
		out.Enum = append([]any(nil), f.Enum...)
	}
	if len(f.Validations) > 0 {
		out.Validations = make([]ValidationRule, len(f.Validations))
		for i, rule := range f.Validations {
			out.Validations[i] = ValidationRule{Kind: rule.Kind, Params: cloneStringMap(rule.Params)}
		}
	}
	return out
}

func cloneStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
