// Package testsupport carries shared test helpers: golden-file plumbing and
// fixture loading. Run tests with UPDATE_GOLDENS=1 to regenerate snapshots.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlib/pkg/model"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// LoadSchema reads a JSON schema fixture from disk.
func LoadSchema(t *testing.T, path string) model.Schema {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read schema fixture: %v", err)
	}
	var out model.Schema
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal schema fixture: %v", err)
	}
	return out
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden fails the test when got does not match the golden file.
// Trailing newlines are ignored so editors cannot break snapshots.
func CompareGolden(t *testing.T, path string, got []byte) {
	t.Helper()
	if WriteMaybeGolden(t, path, got) {
		return
	}
	want := MustReadGolden(t, path)
	if diff := cmp.Diff(
		string(bytes.TrimRight(want, "\n")),
		string(bytes.TrimRight(got, "\n")),
	); diff != "" {
		t.Fatalf("golden mismatch for %s (-want +got):\n%s", path, diff)
	}
}
