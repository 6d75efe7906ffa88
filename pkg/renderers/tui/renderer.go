// Package tui fills a form from the terminal: one prompt per declared field,
// re-asking on constraint violations, then serializing the collected values.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formlib/pkg/model"
	"github.com/goliatone/go-formlib/pkg/render"
)

// Renderer implements render.Renderer for terminal-driven sessions. Instead
// of markup it produces the submission payload the prompts collected.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatFormURLEncoded {
		return "application/x-www-form-urlencoded"
	}
	return "application/json"
}

// Render prompts for every field in declaration order. Values supplied in
// options pre-fill the prompts as defaults.
func (r *Renderer) Render(ctx context.Context, schema model.Schema, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	values := make(map[string]any, len(schema.Fields))
	for _, field := range schema.Fields {
		if err := r.promptField(ctx, field, opts.Values, values); err != nil {
			return nil, err
		}
	}

	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, prefill map[string]any, out map[string]any) error {
	switch field.Type {
	case model.FieldTypeBoolean:
		return r.promptBoolean(ctx, field, prefill, out)
	case model.FieldTypeInteger, model.FieldTypeNumber:
		return r.promptNumber(ctx, field, prefill, out)
	case model.FieldTypeArray:
		return r.promptArray(ctx, field, prefill, out)
	case model.FieldTypeFile:
		// Uploads have no terminal equivalent; collect a path instead.
		return r.promptString(ctx, field, prefill, out)
	default:
		if len(field.Enum) > 0 {
			return r.promptEnum(ctx, field, prefill, out)
		}
		return r.promptString(ctx, field, prefill, out)
	}
}

func (r *Renderer) promptString(ctx context.Context, field model.Field, prefill map[string]any, out map[string]any) error {
	rules := collectRules(field)
	defaultVal := stringPrefill(prefill, field)
	secret := field.Format == "password"
	multiline := isMultiline(field.Format)

	for {
		var response string
		var err error
		switch {
		case secret:
			response, err = r.driver.Password(ctx, InputConfig{Message: promptLabel(field), Help: field.Help})
		case multiline:
			response, err = r.driver.TextArea(ctx, TextAreaConfig{Message: promptLabel(field), Default: defaultVal, Help: field.Help})
		default:
			response, err = r.driver.Input(ctx, InputConfig{Message: promptLabel(field), Default: defaultVal, Help: field.Help})
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(response) == "" && !rules.required {
			return nil
		}
		if err := rules.checkString(response); err != nil {
			if infoErr := r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", field.Name, err)); infoErr != nil {
				return infoErr
			}
			continue
		}
		out[field.Name] = response
		return nil
	}
}

func (r *Renderer) promptBoolean(ctx context.Context, field model.Field, prefill map[string]any, out map[string]any) error {
	defaultVal := false
	if v, ok := prefill[field.Name].(bool); ok {
		defaultVal = v
	} else if v, ok := field.Default.(bool); ok {
		defaultVal = v
	}

	response, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: promptLabel(field),
		Default: defaultVal,
		Help:    field.Help,
	})
	if err != nil {
		return err
	}
	out[field.Name] = response
	return nil
}

func (r *Renderer) promptNumber(ctx context.Context, field model.Field, prefill map[string]any, out map[string]any) error {
	rules := collectRules(field)
	defaultVal := stringPrefill(prefill, field)

	for {
		input, err := r.driver.Input(ctx, InputConfig{
			Message: promptLabel(field),
			Default: defaultVal,
			Help:    field.Help,
		})
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			if !rules.required {
				return nil
			}
			if infoErr := r.driver.Info(ctx, fmt.Sprintf("Invalid %s: required", field.Name)); infoErr != nil {
				return infoErr
			}
			continue
		}

		var parsed any
		if field.Type == model.FieldTypeInteger {
			value, err := strconv.ParseInt(input, 10, 64)
			if err != nil {
				if infoErr := r.driver.Info(ctx, fmt.Sprintf("Invalid %s: enter a whole number", field.Name)); infoErr != nil {
					return infoErr
				}
				continue
			}
			parsed = value
		} else {
			value, err := strconv.ParseFloat(input, 64)
			if err != nil {
				if infoErr := r.driver.Info(ctx, fmt.Sprintf("Invalid %s: enter a number", field.Name)); infoErr != nil {
					return infoErr
				}
				continue
			}
			parsed = value
		}

		if err := rules.checkNumber(parsed); err != nil {
			if infoErr := r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", field.Name, err)); infoErr != nil {
				return infoErr
			}
			continue
		}
		out[field.Name] = parsed
		return nil
	}
}

func (r *Renderer) promptEnum(ctx context.Context, field model.Field, prefill map[string]any, out map[string]any) error {
	options := stringifyEnum(field.Enum)
	defaultIdx := indexOf(options, stringPrefill(prefill, field))

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      promptLabel(field),
		Options:      options,
		DefaultIndex: defaultIdx,
		Help:         field.Help,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return fmt.Errorf("tui: invalid selection for %s", field.Name)
	}
	out[field.Name] = options[idx]
	return nil
}

func (r *Renderer) promptArray(ctx context.Context, field model.Field, prefill map[string]any, out map[string]any) error {
	rules := collectRules(field)

	if len(field.Enum) > 0 {
		options := stringifyEnum(field.Enum)
		defaults := indicesOf(options, stringSlicePrefill(prefill, field.Name))

		for {
			indices, err := r.driver.MultiSelect(ctx, SelectConfig{
				Message:  promptLabel(field),
				Options:  options,
				Defaults: defaults,
				Help:     field.Help,
			})
			if err != nil {
				return err
			}
			selected := optionsAt(options, indices)
			if err := rules.checkCount(len(selected)); err != nil {
				if infoErr := r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", field.Name, err)); infoErr != nil {
					return infoErr
				}
				continue
			}
			out[field.Name] = selected
			return nil
		}
	}

	// Free-form arrays: one entry per prompt until the user stops.
	var entries []string
	for {
		value, err := r.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("%s (entry %d)", promptLabel(field), len(entries)+1),
			Help:    field.Help,
		})
		if err != nil {
			return err
		}
		if value = strings.TrimSpace(value); value != "" {
			entries = append(entries, value)
		}

		more, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Add another?", Default: false})
		if err != nil {
			return err
		}
		if more {
			continue
		}
		if err := rules.checkCount(len(entries)); err != nil {
			if infoErr := r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", field.Name, err)); infoErr != nil {
				return infoErr
			}
			continue
		}
		if len(entries) > 0 || rules.required {
			out[field.Name] = entries
		}
		return nil
	}
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	if r.outputFormat == OutputFormatFormURLEncoded {
		flattened := url.Values{}
		for key, value := range values {
			switch v := value.(type) {
			case []string:
				for _, entry := range v {
					flattened.Add(key, entry)
				}
			default:
				flattened.Set(key, fmt.Sprint(v))
			}
		}
		return []byte(flattened.Encode()), nil
	}
	return json.Marshal(values)
}

func promptLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func isMultiline(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "multiline", "text", "markdown":
		return true
	default:
		return false
	}
}

func stringPrefill(prefill map[string]any, field model.Field) string {
	if v, ok := prefill[field.Name]; ok && v != nil {
		return fmt.Sprint(v)
	}
	if field.Default != nil {
		return fmt.Sprint(field.Default)
	}
	return ""
}

func stringSlicePrefill(prefill map[string]any, name string) []string {
	switch v := prefill[name].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, entry := range v {
			out = append(out, fmt.Sprint(entry))
		}
		return out
	default:
		return nil
	}
}

func stringifyEnum(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

type fieldRules struct {
	required bool
	min      *float64
	max      *float64
	minLen   *int
	maxLen   *int
	pattern  *regexp.Regexp
}

func collectRules(field model.Field) fieldRules {
	rules := fieldRules{required: field.Required}
	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleMin:
			if value, err := strconv.ParseFloat(rule.Params["value"], 64); err == nil {
				rules.min = &value
			}
		case model.ValidationRuleMax:
			if value, err := strconv.ParseFloat(rule.Params["value"], 64); err == nil {
				rules.max = &value
			}
		case model.ValidationRuleMinLength:
			if value, err := strconv.Atoi(rule.Params["value"]); err == nil {
				rules.minLen = &value
			}
		case model.ValidationRuleMaxLength:
			if value, err := strconv.Atoi(rule.Params["value"]); err == nil {
				rules.maxLen = &value
			}
		case model.ValidationRulePattern:
			if re, err := regexp.Compile(rule.Params["pattern"]); err == nil {
				rules.pattern = re
			}
		}
	}
	return rules
}

func (r fieldRules) checkString(value string) error {
	if r.required && strings.TrimSpace(value) == "" {
		return errors.New("required")
	}
	length := len([]rune(value))
	if r.minLen != nil && length < *r.minLen {
		return fmt.Errorf("at least %d characters", *r.minLen)
	}
	if r.maxLen != nil && length > *r.maxLen {
		return fmt.Errorf("at most %d characters", *r.maxLen)
	}
	if r.pattern != nil && !r.pattern.MatchString(value) {
		return errors.New("does not match the required pattern")
	}
	return nil
}

func (r fieldRules) checkNumber(value any) error {
	var v float64
	switch n := value.(type) {
	case int64:
		v = float64(n)
	case float64:
		v = n
	default:
		return fmt.Errorf("expected number, got %T", value)
	}
	if r.min != nil && v < *r.min {
		return fmt.Errorf("at least %v", *r.min)
	}
	if r.max != nil && v > *r.max {
		return fmt.Errorf("at most %v", *r.max)
	}
	return nil
}

func (r fieldRules) checkCount(count int) error {
	if r.required && count == 0 {
		return errors.New("select at least one")
	}
	if r.minLen != nil && count < *r.minLen {
		return fmt.Errorf("select at least %d", *r.minLen)
	}
	if r.maxLen != nil && count > *r.maxLen {
		return fmt.Errorf("select at most %d", *r.maxLen)
	}
	return nil
}
