package ldgraph_test

import (
	"testing"

	json "github.com/goccy/go-json"

	"github.com/reoring/ldgraph"
)

const schemaContext = `"@context":"https://schema.org/"`

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func mustDecode(t *testing.T, s string) any {
	t.Helper()
	v, err := ldgraph.DecodeJSON([]byte(s))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func parse(t *testing.T, c *ldgraph.Corpus, doc string) *ldgraph.Parser {
	t.Helper()
	p := ldgraph.NewParser(c)
	p.Parse(mustDecode(t, doc))
	return p
}

func paths(ds ldgraph.Diagnostics) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Path)
	}
	return out
}
