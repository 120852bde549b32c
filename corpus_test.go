package ldgraph_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/reoring/ldgraph"
)

func TestCorpus_AddGetHas(t *testing.T) {
	c := ldgraph.NewCorpus()
	a := ldgraph.ObjectOf("@id", "https://e.com/a", "name", "A")
	b := ldgraph.NewReference("https://e.com/b")
	for _, n := range []*ldgraph.Object{a, b} {
		if err := c.Add(n); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if got, ok := c.Get("https://e.com/a"); !ok || got != a {
		t.Fatalf("expected node a back, got %v %v", got, ok)
	}
	if !c.Has("https://e.com/b") || c.Has("https://e.com/c") {
		t.Fatalf("unexpected Has results")
	}
	if ldgraph.KindOf(b) != ldgraph.KindNode {
		t.Fatalf("expected stored reference-shaped node to be pinned as node, got %s", ldgraph.KindOf(b))
	}
	var ids []string
	for id := range c.Entries() {
		ids = append(ids, id)
	}
	if !slices.Equal(ids, []string{"https://e.com/a", "https://e.com/b"}) {
		t.Fatalf("expected insertion order, got %v", ids)
	}
}

func TestCorpus_AddErrors(t *testing.T) {
	c := ldgraph.NewCorpus()
	if err := c.Add(ldgraph.NewReference("x")); err != nil {
		t.Fatalf("add: %v", err)
	}
	cases := []struct {
		name string
		node *ldgraph.Object
		want error
	}{
		{"duplicate", ldgraph.ObjectOf("@id", "x", "name", "again"), ldgraph.ErrDuplicateID},
		{"missing id", ldgraph.ObjectOf("name", "n"), ldgraph.ErrMissingID},
		{"non-string id", ldgraph.ObjectOf("@id", 1.0, "name", "n"), ldgraph.ErrMissingID},
		{"value", ldgraph.ObjectOf("@value", 1.0), ldgraph.ErrWrongKind},
		{"list", ldgraph.ObjectOf("@list", []any{}), ldgraph.ErrWrongKind},
		{"nil", nil, ldgraph.ErrWrongKind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := c.Add(tc.node); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 node, got %d", c.Len())
	}
}

func TestCorpus_DuplicateErrorNamesID(t *testing.T) {
	c := ldgraph.NewCorpus()
	_ = c.Add(ldgraph.NewReference("x"))
	err := c.Add(ldgraph.NewReference("x"))
	var e *ldgraph.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *ldgraph.Error, got %T", err)
	}
	if e.Code != ldgraph.CodeDuplicateID || e.ID != "x" {
		t.Fatalf("unexpected error %+v", e)
	}
	if e.Error() != "duplicate @id x" {
		t.Fatalf("unexpected message %q", e.Error())
	}
}

func TestCorpus_ResolveIdentity(t *testing.T) {
	c := ldgraph.NewCorpus()
	node := ldgraph.ObjectOf("@id", "n", "p", 1.0)
	arr := []any{1.0}
	for _, v := range []any{nil, "s", 1.0, true, node, arr} {
		got := c.Resolve(v)
		switch want := v.(type) {
		case []any:
			if g, ok := got.([]any); !ok || &g[0] != &want[0] {
				t.Fatalf("expected the same slice back, got %#v", got)
			}
		default:
			if got != v {
				t.Fatalf("expected %#v back, got %#v", v, got)
			}
		}
	}
}

func TestCorpus_Resolve(t *testing.T) {
	c := ldgraph.NewCorpus()
	b := ldgraph.ObjectOf("@id", "b", "name", "B")
	if err := c.Add(b); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := c.Resolve(ldgraph.NewReference("b")); got != b {
		t.Fatalf("expected reference to resolve to the stored node, got %#v", got)
	}
	dangling := ldgraph.NewReference("nowhere")
	if got := c.Resolve(dangling); got != dangling {
		t.Fatalf("expected dangling reference back unchanged, got %#v", got)
	}
	wrapped := ldgraph.ObjectOf("@set", ldgraph.ObjectOf("@value", ldgraph.NewReference("b")))
	if got := c.Resolve(wrapped); got != b {
		t.Fatalf("expected nested wrappers to resolve to the node, got %#v", got)
	}
	if got := c.Resolve(ldgraph.ObjectOf("@value", "v", "@language", "en")); got != "v" {
		t.Fatalf("expected value payload, got %#v", got)
	}
}

func TestCorpus_IngestJSON(t *testing.T) {
	c := ldgraph.NewCorpus()
	err := c.IngestJSON([]byte(`{` + schemaContext + `,"@graph":[{"@id":"http://e.com/a","prop":"v"}]}`))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	a, ok := c.Get("http://e.com/a")
	if !ok {
		t.Fatalf("expected node http://e.com/a")
	}
	if v, _ := a.Get("prop"); v != "v" {
		t.Fatalf("expected prop v, got %#v", v)
	}
}

func TestCorpus_IngestRejectsDuplicateAcrossDocuments(t *testing.T) {
	c := ldgraph.NewCorpus()
	if err := c.IngestJSON([]byte(`{` + schemaContext + `,"@id":"http://e.com/a","name":"A"}`)); err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	err := c.IngestJSON([]byte(`{` + schemaContext + `,"@graph":[{"@id":"http://e.com/b"},{"@id":"http://e.com/a","name":"again"}]}`))
	if !errors.Is(err, ldgraph.ErrMalstructured) {
		t.Fatalf("expected malstructured error, got %v", err)
	}
	ds, ok := ldgraph.AsDiagnostics(err)
	if !ok || len(ds) != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", ds)
	}
	if ds[0].Path != "['@graph'][1]['@id']" {
		t.Fatalf("unexpected path %q", ds[0].Path)
	}
	if c.Len() != 1 || c.Has("http://e.com/b") {
		t.Fatalf("failed batch must leave the corpus untouched, got %d nodes", c.Len())
	}
}

func TestCorpus_IngestYAMLIsOneBatch(t *testing.T) {
	c := ldgraph.NewCorpus()
	good := "\"@context\": https://schema.org/\n\"@id\": https://e.com/a\nname: A\n"
	bad := "\"@context\": https://schema.org/\nname: anonymous\n"
	err := c.IngestYAML([]byte(good + "---\n" + bad))
	if !errors.Is(err, ldgraph.ErrMalstructured) {
		t.Fatalf("expected malstructured error, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected no nodes committed, got %d", c.Len())
	}
	if err := c.IngestYAML([]byte(good)); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if !c.Has("https://e.com/a") {
		t.Fatalf("expected node committed")
	}
}

func TestCorpus_IngestJSONDecodeError(t *testing.T) {
	c := ldgraph.NewCorpus()
	err := c.IngestJSON([]byte(`{"@id":`))
	if !errors.Is(err, ldgraph.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}
