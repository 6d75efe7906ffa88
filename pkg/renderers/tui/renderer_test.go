package tui_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlib/pkg/model"
	"github.com/goliatone/go-formlib/pkg/render"
	"github.com/goliatone/go-formlib/pkg/renderers/tui"
)

type stubDriver struct {
	inputs    []string
	confirms  []bool
	selects   []int
	multis    [][]int
	textAreas []string
	infos     []string
}

func (d *stubDriver) Input(_ context.Context, _ tui.InputConfig) (string, error) {
	return d.pop(&d.inputs), nil
}

func (d *stubDriver) Password(_ context.Context, _ tui.InputConfig) (string, error) {
	return d.pop(&d.inputs), nil
}

func (d *stubDriver) Confirm(_ context.Context, _ tui.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, nil
	}
	out := d.confirms[0]
	d.confirms = d.confirms[1:]
	return out, nil
}

func (d *stubDriver) Select(_ context.Context, _ tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, nil
	}
	out := d.selects[0]
	d.selects = d.selects[1:]
	return out, nil
}

func (d *stubDriver) MultiSelect(_ context.Context, _ tui.SelectConfig) ([]int, error) {
	if len(d.multis) == 0 {
		return nil, nil
	}
	out := d.multis[0]
	d.multis = d.multis[1:]
	return out, nil
}

func (d *stubDriver) TextArea(_ context.Context, _ tui.TextAreaConfig) (string, error) {
	return d.pop(&d.textAreas), nil
}

func (d *stubDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func (d *stubDriver) pop(queue *[]string) string {
	if len(*queue) == 0 {
		return ""
	}
	out := (*queue)[0]
	*queue = (*queue)[1:]
	return out
}

func TestRender_CollectsTypedValues(t *testing.T) {
	driver := &stubDriver{
		inputs:   []string{"Ada", "36"},
		confirms: []bool{true},
		selects:  []int{1},
	}
	renderer, err := tui.New(tui.WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	schema := model.Schema{
		Name: "profile",
		Fields: []model.Field{
			{Name: "name", Type: model.FieldTypeString, Required: true},
			{Name: "age", Type: model.FieldTypeInteger},
			{Name: "subscribe", Type: model.FieldTypeBoolean},
			{Name: "role", Type: model.FieldTypeString, Enum: []any{"admin", "editor"}},
		},
	}

	payload, err := renderer.Render(context.Background(), schema, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	want := map[string]any{
		"name":      "Ada",
		"age":       float64(36),
		"subscribe": true,
		"role":      "editor",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_ReasksOnInvalidInput(t *testing.T) {
	driver := &stubDriver{inputs: []string{"x", "Ada"}}
	renderer, err := tui.New(tui.WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	schema := model.Schema{
		Name: "profile",
		Fields: []model.Field{
			{
				Name: "name", Type: model.FieldTypeString, Required: true,
				Validations: []model.ValidationRule{
					{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "2"}},
				},
			},
		},
	}

	payload, err := renderer.Render(context.Background(), schema, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(driver.infos) != 1 {
		t.Fatalf("expected one re-ask notice, got %v", driver.infos)
	}
	var got map[string]any
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if got["name"] != "Ada" {
		t.Fatalf("name = %v, want Ada", got["name"])
	}
}

func TestRender_OptionalEmptyFieldSkipped(t *testing.T) {
	driver := &stubDriver{inputs: []string{""}}
	renderer, err := tui.New(tui.WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	schema := model.Schema{
		Name:   "profile",
		Fields: []model.Field{{Name: "nickname", Type: model.FieldTypeString}},
	}
	payload, err := renderer.Render(context.Background(), schema, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if _, present := got["nickname"]; present {
		t.Fatalf("optional empty field must be omitted, got %v", got)
	}
}

func TestRender_EnumArrayMultiSelect(t *testing.T) {
	driver := &stubDriver{multis: [][]int{{0, 2}}}
	renderer, err := tui.New(
		tui.WithPromptDriver(driver),
		tui.WithOutputFormat(tui.OutputFormatFormURLEncoded),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	schema := model.Schema{
		Name: "prefs",
		Fields: []model.Field{
			{Name: "topics", Type: model.FieldTypeArray, Enum: []any{"go", "rust", "zig"}},
		},
	}
	payload, err := renderer.Render(context.Background(), schema, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(payload); got != "topics=go&topics=zig" {
		t.Fatalf("payload = %q", got)
	}
	if renderer.ContentType() != "application/x-www-form-urlencoded" {
		t.Fatalf("content type = %q", renderer.ContentType())
	}
}

func TestRender_SubmitTransformer(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Ada"}}
	renderer, err := tui.New(
		tui.WithPromptDriver(driver),
		tui.WithSubmitTransformer(func(values map[string]any) (map[string]any, error) {
			values["source"] = "cli"
			return values, nil
		}),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	schema := model.Schema{
		Name:   "profile",
		Fields: []model.Field{{Name: "name", Type: model.FieldTypeString, Required: true}},
	}
	payload, err := renderer.Render(context.Background(), schema, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if got["source"] != "cli" {
		t.Fatalf("transformer not applied: %v", got)
	}
}
