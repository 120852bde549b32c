package ldgraph_test

import (
	"testing"

	"github.com/reoring/ldgraph"
)

func mustAdd(t *testing.T, c *ldgraph.Corpus, nodes ...*ldgraph.Object) {
	t.Helper()
	for _, n := range nodes {
		if err := c.Add(n); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
}

func TestLink_InverseProperty(t *testing.T) {
	c := ldgraph.NewCorpus()
	a := ldgraph.ObjectOf("@id", "A", "hasPart", ldgraph.NewReference("B"))
	b := ldgraph.NewReference("B")
	mustAdd(t, c, a, b)

	n, err := c.Link()
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 back-link, got %d", n)
	}
	if got := mustJSON(t, b); got != `{"@id":"B","isPartOf":{"@id":"A"}}` {
		t.Fatalf("unexpected B %s", got)
	}

	n, err = c.Link()
	if err != nil {
		t.Fatalf("second link: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected second run to add nothing, got %d", n)
	}
	if got := mustJSON(t, b); got != `{"@id":"B","isPartOf":{"@id":"A"}}` {
		t.Fatalf("unexpected B after second run %s", got)
	}
	if got := mustJSON(t, a); got != `{"@id":"A","hasPart":{"@id":"B"}}` {
		t.Fatalf("the inverse of the inverse must not duplicate A's link, got %s", got)
	}
}

func TestLink_ReverseBlock(t *testing.T) {
	c := ldgraph.NewCorpus()
	p := ldgraph.ObjectOf("@id", "P", "@reverse", ldgraph.ObjectOf("child", ldgraph.NewReference("X")))
	x := ldgraph.NewReference("X")
	mustAdd(t, c, p, x)

	if _, err := c.Link(); err != nil {
		t.Fatalf("link: %v", err)
	}
	if got := mustJSON(t, x); got != `{"@id":"X","child":{"@id":"P"}}` {
		t.Fatalf("unexpected X %s", got)
	}
	if n, _ := c.Link(); n != 0 {
		t.Fatalf("expected idempotent second run, got %d", n)
	}
}

func TestLink_ReverseBlockWithEmptyKey(t *testing.T) {
	c := ldgraph.NewCorpus()
	doc := `{"@graph":[{"@id":"http://e.com/x"},{"@id":"http://e.com/p","@reverse":{"":{"@id":"http://e.com/x"}}}]}`
	if err := c.IngestJSON([]byte(doc)); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	n, err := c.Link()
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 back-link, got %d", n)
	}
	x, _ := c.Get("http://e.com/x")
	if got := mustJSON(t, x); got != `{"@id":"http://e.com/x","":{"@id":"http://e.com/p"}}` {
		t.Fatalf("unexpected x %s", got)
	}
}

func TestLink_MultiValuedAndExpandedKeys(t *testing.T) {
	c := ldgraph.NewCorpus()
	whole := ldgraph.ObjectOf("@id", "W",
		"hasPart", []any{ldgraph.NewReference("P1"), ldgraph.NewReference("P2"), ldgraph.NewReference("dangling")},
		"https://schema.org/about", ldgraph.ObjectOf("@set", []any{ldgraph.NewReference("T")}),
	)
	mustAdd(t, c, whole,
		ldgraph.NewReference("P1"),
		ldgraph.NewReference("P2"),
		ldgraph.NewReference("T"),
	)
	n, err := c.Link()
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 back-links, got %d", n)
	}
	for _, id := range []string{"P1", "P2"} {
		node, _ := c.Get(id)
		if got := mustJSON(t, node); got != `{"@id":"`+id+`","isPartOf":{"@id":"W"}}` {
			t.Fatalf("unexpected %s %s", id, got)
		}
	}
	topic, _ := c.Get("T")
	if got := mustJSON(t, topic); got != `{"@id":"T","https://schema.org/subjectOf":{"@id":"W"}}` {
		t.Fatalf("unexpected T %s", got)
	}
}

func TestLink_AfterIngest(t *testing.T) {
	c := ldgraph.NewCorpus()
	doc := `{` + schemaContext + `,"@graph":[
		{"@id":"https://e.com/book","hasPart":{"@id":"https://e.com/ch1","name":"One"}},
		{"@id":"https://e.com/author","@reverse":{"author":"https://e.com/book"}}
	]}`
	if err := c.IngestJSON([]byte(doc)); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if _, err := c.Link(); err != nil {
		t.Fatalf("link: %v", err)
	}
	ch, _ := c.Get("https://e.com/ch1")
	if got := mustJSON(t, ch); got != `{"@id":"https://e.com/ch1","name":"One","isPartOf":{"@id":"https://e.com/book"}}` {
		t.Fatalf("unexpected chapter %s", got)
	}
	book, _ := c.Get("https://e.com/book")
	want := `{"@id":"https://e.com/book","hasPart":{"@id":"https://e.com/ch1"},"author":{"@id":"https://e.com/author"}}`
	if got := mustJSON(t, book); got != want {
		t.Fatalf("unexpected book %s", got)
	}
}

func TestInverseOf(t *testing.T) {
	if inv, ok := ldgraph.InverseOf("isPartOf"); !ok || inv != "hasPart" {
		t.Fatalf("expected hasPart, got %q %v", inv, ok)
	}
	if _, ok := ldgraph.InverseOf("name"); ok {
		t.Fatalf("expected no inverse for name")
	}
}
