package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeHiddenFields(t *testing.T) {
	base := map[string]string{"version": "3"}

	merged := MergeHiddenFields(base,
		CSRFToken("csrfmiddlewaretoken", "tok-1"),
		Hidden("  ", "ignored"),
		Hidden("version", "4"),
	)

	want := map[string]string{
		"csrfmiddlewaretoken": "tok-1",
		"version":             "4",
	}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
	if base["version"] != "3" {
		t.Fatalf("merge must not mutate the base map")
	}
}

func TestMergeHiddenFields_Empty(t *testing.T) {
	if got := MergeHiddenFields(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestSortedHiddenFields(t *testing.T) {
	got := SortedHiddenFields(map[string]string{
		"b": "2",
		"a": "1",
	})
	want := []HiddenField{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sorted mismatch (-want +got):\n%s", diff)
	}
}
