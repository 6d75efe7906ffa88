package validation

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlib/pkg/model"
)

func TestCleanValues_RequiredAndCoercion(t *testing.T) {
	fields := []model.Field{
		{Name: "name", Type: model.FieldTypeString, Required: true},
		{Name: "age", Type: model.FieldTypeInteger},
		{Name: "score", Type: model.FieldTypeNumber},
		{Name: "subscribe", Type: model.FieldTypeBoolean},
	}
	data := url.Values{
		"name":      {"Ada"},
		"age":       {"36"},
		"score":     {"9.5"},
		"subscribe": {"on"},
	}

	result := CleanValues(fields, data, nil, "")
	if !result.Valid() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	want := map[string]any{
		"name":      "Ada",
		"age":       int64(36),
		"score":     9.5,
		"subscribe": true,
	}
	if diff := cmp.Diff(want, result.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestCleanValues_MissingRequired(t *testing.T) {
	fields := []model.Field{{Name: "name", Type: model.FieldTypeString, Required: true}}

	result := CleanValues(fields, url.Values{}, nil, "")
	if result.Valid() {
		t.Fatalf("expected validation failure")
	}
	if len(result.Errors["name"]) != 1 {
		t.Fatalf("expected one message for name, got %v", result.Errors)
	}
	if _, ok := result.Values["name"]; ok {
		t.Fatalf("failed field must not appear in cleaned values")
	}
}

func TestCleanValues_OnlyPassingFieldsCleaned(t *testing.T) {
	fields := []model.Field{
		{Name: "name", Type: model.FieldTypeString, Required: true},
		{Name: "age", Type: model.FieldTypeInteger},
	}
	data := url.Values{
		"name": {"Ada"},
		"age":  {"not-a-number"},
	}

	result := CleanValues(fields, data, nil, "")
	if result.Valid() {
		t.Fatalf("expected age to fail")
	}
	if _, ok := result.Values["age"]; ok {
		t.Fatalf("age must be absent from cleaned values")
	}
	if result.Values["name"] != "Ada" {
		t.Fatalf("name should clean independently, got %v", result.Values)
	}
}

func TestCleanValues_Rules(t *testing.T) {
	fields := []model.Field{
		{
			Name: "nick", Type: model.FieldTypeString,
			Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "3"}},
				{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": "^[a-z]+$"}},
			},
		},
		{
			Name: "age", Type: model.FieldTypeInteger,
			Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleMin, Params: map[string]string{"value": "18"}},
			},
		},
	}
	data := url.Values{
		"nick": {"A1"},
		"age":  {"12"},
	}

	result := CleanValues(fields, data, nil, "")
	if len(result.Errors["nick"]) != 2 {
		t.Fatalf("expected two nick messages, got %v", result.Errors["nick"])
	}
	if len(result.Errors["age"]) != 1 {
		t.Fatalf("expected one age message, got %v", result.Errors["age"])
	}
}

func TestCleanValues_ExclusiveBound(t *testing.T) {
	fields := []model.Field{
		{
			Name: "qty", Type: model.FieldTypeInteger,
			Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleMin, Params: map[string]string{"value": "0", "exclusive": "true"}},
			},
		},
	}

	result := CleanValues(fields, url.Values{"qty": {"0"}}, nil, "")
	if result.Valid() {
		t.Fatalf("exclusive bound should reject the boundary value")
	}
}

func TestCleanValues_ArraysAndPrefix(t *testing.T) {
	fields := []model.Field{
		{Name: "tags", Type: model.FieldTypeArray, Required: true},
	}
	data := url.Values{
		"signup-tags": {"go", " web ", ""},
	}

	result := CleanValues(fields, data, nil, "signup")
	if !result.Valid() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if diff := cmp.Diff([]string{"go", "web"}, result.Values["tags"]); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestCleanValues_BooleanAbsentIsFalse(t *testing.T) {
	fields := []model.Field{{Name: "subscribe", Type: model.FieldTypeBoolean}}

	result := CleanValues(fields, url.Values{}, nil, "")
	if !result.Valid() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Values["subscribe"] != false {
		t.Fatalf("absent checkbox should clean to false, got %v", result.Values["subscribe"])
	}
}
