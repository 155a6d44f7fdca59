// Package testsupport holds fixtures and golden-file helpers shared by the
// package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-payform/pkg/formspec"
)

// MustLoadStore loads the bundled form specs.
func MustLoadStore(t *testing.T) *formspec.Store {
	t.Helper()

	store, err := formspec.LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded specs: %v", err)
	}
	return store
}

// MustFormSpec returns the bundled spec of paymentMethod.
func MustFormSpec(t *testing.T, paymentMethod string) formspec.FormSpec {
	t.Helper()

	spec, ok := MustLoadStore(t).FormSpec(paymentMethod)
	if !ok {
		t.Fatalf("missing bundled spec %q", paymentMethod)
	}
	return spec
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

// CompareGoldenJSON returns a diff between the JSON golden at path and got.
// Both documents are decoded first so key order and indentation are ignored.
func CompareGoldenJSON(t *testing.T, path string, got []byte) string {
	t.Helper()
	if WriteMaybeGolden(t, path, got) {
		return ""
	}
	var want, have any
	if err := json.Unmarshal(MustReadGolden(t, path), &want); err != nil {
		t.Fatalf("decode golden %s: %v", path, err)
	}
	if err := json.Unmarshal(got, &have); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	return cmp.Diff(want, have)
}
