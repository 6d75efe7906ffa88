package tags_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-formlib/pkg/tags"
)

type stubForm struct {
	lastExtra string
}

func (s *stubForm) RenderFull(_ context.Context, extra string) ([]byte, error) {
	s.lastExtra = extra
	return []byte("<form>" + extra + "</form>"), nil
}

func TestRender_DefaultKeyLookup(t *testing.T) {
	form := &stubForm{}
	out, err := tags.Render(context.Background(), map[string]any{"form": form})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "<form></form>" {
		t.Fatalf("unexpected markup %q", out)
	}
}

func TestRender_CustomKey(t *testing.T) {
	form := &stubForm{}
	viewContext := map[string]any{"signup_form": form}

	out, err := tags.Render(context.Background(), viewContext, tags.WithKey("signup_form"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(string(out), "<form>") {
		t.Fatalf("unexpected markup %q", out)
	}
}

func TestRender_MissingKeyIsLookupError(t *testing.T) {
	_, err := tags.Render(context.Background(), map[string]any{})

	var lookupErr *tags.LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected *tags.LookupError, got %v", err)
	}
	if lookupErr.Key != tags.DefaultKey {
		t.Fatalf("unexpected key %q", lookupErr.Key)
	}
}

func TestRender_WrongTypeIsTypeError(t *testing.T) {
	_, err := tags.Render(context.Background(), map[string]any{"form": "not a form"})

	var typeErr *tags.TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected *tags.TypeError, got %v", err)
	}
}

func TestRender_BodySanitized(t *testing.T) {
	form := &stubForm{}
	viewContext := map[string]any{"form": form}

	_, err := tags.Render(context.Background(), viewContext,
		tags.WithBody(`<p>keep</p><script>alert("xss")</script>`))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if strings.Contains(form.lastExtra, "<script>") {
		t.Fatalf("script survived sanitization: %q", form.lastExtra)
	}
	if !strings.Contains(form.lastExtra, "<p>keep</p>") {
		t.Fatalf("benign markup stripped: %q", form.lastExtra)
	}
}
