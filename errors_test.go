package ldgraph_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/reoring/ldgraph"
	"github.com/reoring/ldgraph/i18n"
)

func TestDiagnostics_ErrorSummarizes(t *testing.T) {
	ds := ldgraph.Diagnostics{
		{Message: "root"},
		{Path: "['a']", Message: "one"},
		{Path: "['b']", Message: "two"},
		{Path: "['c']", Message: "three"},
	}
	want := "root; ['a']: one; ['b']: two; ... (total 4)"
	if got := ds.Error(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestError_MalstructuredCarriesDiagnostics(t *testing.T) {
	c := ldgraph.NewCorpus()
	err := c.IngestJSON([]byte(`[1]`))
	if !errors.Is(err, ldgraph.ErrMalstructured) {
		t.Fatalf("expected malstructured, got %v", err)
	}
	wrapped := fmt.Errorf("loading fixture: %w", err)
	ds, ok := ldgraph.AsDiagnostics(wrapped)
	if !ok || len(ds) != 1 {
		t.Fatalf("expected diagnostics through wrapping, got %v", ds)
	}
	want := "malstructured data (1 diagnostics: document root must be an object, got an array)"
	if got := err.Error(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestError_Localized(t *testing.T) {
	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")
	err := &ldgraph.Error{Code: ldgraph.CodeMissingID}
	if got := err.Error(); got != "@id がありません" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestAsDiagnostics_OtherErrors(t *testing.T) {
	if _, ok := ldgraph.AsDiagnostics(nil); ok {
		t.Fatalf("expected no diagnostics for nil")
	}
	if _, ok := ldgraph.AsDiagnostics(&ldgraph.Error{Code: ldgraph.CodeWrongKind}); ok {
		t.Fatalf("expected no diagnostics for a contract error")
	}
}
