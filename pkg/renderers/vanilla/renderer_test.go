package vanilla_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formlib/pkg/model"
	"github.com/goliatone/go-formlib/pkg/render"
	"github.com/goliatone/go-formlib/pkg/renderers/vanilla"
)

func signupSchema() model.Schema {
	return model.Schema{
		Name:       "signup",
		Action:     "/signup",
		Method:     "POST",
		SubmitText: "Sign up",
		Fields: []model.Field{
			{Name: "name", Type: model.FieldTypeString, Required: true, Label: "Name", Attrs: map[string]string{"class": "form-control"}},
			{Name: "bio", Type: model.FieldTypeString, Format: "multiline", Label: "Bio"},
			{Name: "role", Type: model.FieldTypeString, Enum: []any{"admin", "editor"}, Label: "Role"},
			{Name: "subscribe", Type: model.FieldTypeBoolean, Label: "Subscribe"},
		},
	}
}

func TestRenderer_FullFormMarkup(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(context.Background(), signupSchema(), render.RenderOptions{
		Values: map[string]any{
			"name":      "Ada",
			"role":      "admin",
			"subscribe": true,
		},
		Hidden: map[string]string{"csrfmiddlewaretoken": "tok-123"},
		Extra:  `<p class="note">Terms apply.</p>`,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	markup := string(output)

	for _, want := range []string{
		`<form id="signup"`,
		`class="formlib-form"`,
		`method="POST"`,
		`action="/signup"`,
		`<input type="hidden" name="csrfmiddlewaretoken" value="tok-123">`,
		`name="name"`,
		`value="Ada"`,
		`class="form-control"`,
		`<textarea id="fl-bio"`,
		`<select id="fl-role"`,
		`<option value="admin" selected>`,
		`type="checkbox"`,
		`checked`,
		`<button type="submit">Sign up</button>`,
		`<p class="note">Terms apply.</p>`,
	} {
		if !strings.Contains(markup, want) {
			t.Fatalf("markup missing %q:\n%s", want, markup)
		}
	}

	if strings.Contains(markup, "multipart/form-data") {
		t.Fatalf("unexpected enctype without file fields:\n%s", markup)
	}
}

func TestRenderer_EscapesValues(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	schema := model.Schema{
		Name:   "note",
		Fields: []model.Field{{Name: "title", Type: model.FieldTypeString}},
	}
	output, err := renderer.Render(context.Background(), schema, render.RenderOptions{
		Values: map[string]any{"title": `<b>"x"</b>`},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	markup := string(output)

	if strings.Contains(markup, `<b>"x"</b>`) {
		t.Fatalf("value not escaped:\n%s", markup)
	}
	if !strings.Contains(markup, "&lt;b&gt;") {
		t.Fatalf("expected escaped markup:\n%s", markup)
	}
}

func TestRenderer_FileFieldsForceMultipart(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	schema := model.Schema{
		Name: "upload",
		Fields: []model.Field{
			{Name: "avatar", Type: model.FieldTypeFile, Label: "Avatar"},
		},
	}
	output, err := renderer.Render(context.Background(), schema, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	markup := string(output)

	if !strings.Contains(markup, `enctype="multipart/form-data"`) {
		t.Fatalf("expected multipart enctype:\n%s", markup)
	}
	if !strings.Contains(markup, `<input type="file" id="fl-avatar"`) {
		t.Fatalf("expected file input:\n%s", markup)
	}
}

func TestRenderer_PrefixAndErrors(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	schema := model.Schema{
		Name:   "signup",
		Fields: []model.Field{{Name: "name", Type: model.FieldTypeString, Label: "Name"}},
	}
	output, err := renderer.Render(context.Background(), schema, render.RenderOptions{
		Prefix:     "left",
		Errors:     map[string][]string{"name": {"This field is required."}},
		FormErrors: []string{"Fix the errors below."},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	markup := string(output)

	for _, want := range []string{
		`<form id="left-signup"`,
		`name="left-name"`,
		`formlib-field-invalid`,
		`This field is required.`,
		`Fix the errors below.`,
	} {
		if !strings.Contains(markup, want) {
			t.Fatalf("markup missing %q:\n%s", want, markup)
		}
	}
}

func TestRenderer_IdenticalAcrossRenders(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	schema := signupSchema()
	opts := render.RenderOptions{Hidden: map[string]string{"csrfmiddlewaretoken": "tok"}}

	first, err := renderer.Render(context.Background(), schema, opts)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := renderer.Render(context.Background(), schema, opts)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("render is not deterministic")
	}
}
