package validation

import (
	"fmt"
	"mime/multipart"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formlib/pkg/model"
)

// Result carries the outcome of a single validation pass. Values only holds
// entries for fields that passed every check; Errors maps field names to the
// messages produced for them.
type Result struct {
	Values map[string]any
	Errors map[string][]string
}

// Valid reports whether the pass produced no field errors.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// CleanValues coerces submitted data against the declared fields and enforces
// their validation rules. Field names are resolved through the optional
// prefix ("<prefix>-<name>"), matching the names the renderer emits. The pass
// is single-attempt: every field is checked once and all messages are
// collected.
func CleanValues(fields []model.Field, data url.Values, files map[string][]*multipart.FileHeader, prefix string) Result {
	result := Result{
		Values: make(map[string]any, len(fields)),
		Errors: make(map[string][]string),
	}

	for _, field := range fields {
		key := SubmitName(prefix, field.Name)
		value, errs := cleanField(field, key, data, files)
		if len(errs) > 0 {
			result.Errors[field.Name] = errs
			continue
		}
		if value != nil {
			result.Values[field.Name] = value
		}
	}

	if len(result.Errors) == 0 {
		result.Errors = nil
	}
	return result
}

// SubmitName returns the submitted parameter name for a field, applying the
// form prefix when one is configured.
func SubmitName(prefix, name string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return name
	}
	return prefix + "-" + name
}

func cleanField(field model.Field, key string, data url.Values, files map[string][]*multipart.FileHeader) (any, []string) {
	if field.Type == model.FieldTypeFile {
		return cleanFile(field, key, files)
	}

	raw, present := submittedValues(data, key)

	switch field.Type {
	case model.FieldTypeBoolean:
		// Checkbox semantics: absence means false, never a missing value.
		return parseBool(raw, present), nil
	case model.FieldTypeArray:
		return cleanArray(field, raw)
	default:
		return cleanScalar(field, raw, present)
	}
}

func submittedValues(data url.Values, key string) ([]string, bool) {
	if data == nil {
		return nil, false
	}
	raw, ok := data[key]
	return raw, ok && len(raw) > 0
}

func cleanScalar(field model.Field, raw []string, present bool) (any, []string) {
	value := ""
	if present {
		value = strings.TrimSpace(raw[0])
	}
	if value == "" {
		if field.Required {
			return nil, []string{"This field is required."}
		}
		return nil, nil
	}

	switch field.Type {
	case model.FieldTypeInteger:
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, []string{"Enter a whole number."}
		}
		if errs := checkNumericRules(field.Validations, float64(parsed)); len(errs) > 0 {
			return nil, errs
		}
		return parsed, nil
	case model.FieldTypeNumber:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, []string{"Enter a number."}
		}
		if errs := checkNumericRules(field.Validations, parsed); len(errs) > 0 {
			return nil, errs
		}
		return parsed, nil
	default:
		if errs := checkStringRules(field.Validations, value); len(errs) > 0 {
			return nil, errs
		}
		return value, nil
	}
}

func cleanArray(field model.Field, raw []string) (any, []string) {
	values := make([]string, 0, len(raw))
	for _, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			values = append(values, entry)
		}
	}
	if len(values) == 0 {
		if field.Required {
			return nil, []string{"Select at least one value."}
		}
		return nil, nil
	}

	var errs []string
	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleMinLength:
			if min, ok := ruleInt(rule); ok && len(values) < min {
				errs = append(errs, fmt.Sprintf("Select at least %d values.", min))
			}
		case model.ValidationRuleMaxLength:
			if max, ok := ruleInt(rule); ok && len(values) > max {
				errs = append(errs, fmt.Sprintf("Select at most %d values.", max))
			}
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return values, nil
}

func cleanFile(field model.Field, key string, files map[string][]*multipart.FileHeader) (any, []string) {
	var headers []*multipart.FileHeader
	if files != nil {
		headers = files[key]
	}
	if len(headers) == 0 {
		if field.Required {
			return nil, []string{"This field is required."}
		}
		return nil, nil
	}
	return headers[0], nil
}

func parseBool(raw []string, present bool) bool {
	if !present {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(raw[0])) {
	case "", "0", "false", "off", "no":
		return false
	default:
		return true
	}
}

func checkNumericRules(rules []model.ValidationRule, value float64) []string {
	var errs []string
	for _, rule := range rules {
		bound, ok := ruleFloat(rule)
		if !ok {
			continue
		}
		exclusive := rule.Params["exclusive"] == "true"
		switch rule.Kind {
		case model.ValidationRuleMin:
			if value < bound || (exclusive && value == bound) {
				errs = append(errs, fmt.Sprintf("Ensure this value is at least %v.", ruleParam(rule)))
			}
		case model.ValidationRuleMax:
			if value > bound || (exclusive && value == bound) {
				errs = append(errs, fmt.Sprintf("Ensure this value is at most %v.", ruleParam(rule)))
			}
		}
	}
	return errs
}

func checkStringRules(rules []model.ValidationRule, value string) []string {
	var errs []string
	for _, rule := range rules {
		switch rule.Kind {
		case model.ValidationRuleMinLength:
			if min, ok := ruleInt(rule); ok && len([]rune(value)) < min {
				errs = append(errs, fmt.Sprintf("Ensure this value has at least %d characters.", min))
			}
		case model.ValidationRuleMaxLength:
			if max, ok := ruleInt(rule); ok && len([]rune(value)) > max {
				errs = append(errs, fmt.Sprintf("Ensure this value has at most %d characters.", max))
			}
		case model.ValidationRulePattern:
			pattern := rule.Params["pattern"]
			if pattern == "" {
				continue
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				// A broken pattern is a declaration bug; report it against the
				// field rather than silently passing the value.
				errs = append(errs, "Invalid pattern constraint.")
				continue
			}
			if !re.MatchString(value) {
				errs = append(errs, "Enter a valid value.")
			}
		}
	}
	return errs
}

func ruleParam(rule model.ValidationRule) string {
	return rule.Params["value"]
}

func ruleFloat(rule model.ValidationRule) (float64, bool) {
	raw := rule.Params["value"]
	if raw == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func ruleInt(rule model.ValidationRule) (int, bool) {
	raw := rule.Params["value"]
	if raw == "" {
		return 0, false
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
