package ldgraph_test

import (
	"testing"

	"github.com/reoring/ldgraph"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		v    any
		want ldgraph.Kind
	}{
		{"null", nil, ldgraph.KindPrimitive},
		{"bool", true, ldgraph.KindPrimitive},
		{"number", 1.5, ldgraph.KindPrimitive},
		{"int", 3, ldgraph.KindPrimitive},
		{"string", "x", ldgraph.KindPrimitive},
		{"func", func() {}, ldgraph.KindInvalid},
		{"channel", make(chan int), ldgraph.KindInvalid},
		{"nil object", (*ldgraph.Object)(nil), ldgraph.KindInvalid},
		{"array", []any{1}, ldgraph.KindArray},
		{"graph", ldgraph.ObjectOf("@graph", []any{}, "@list", []any{}), ldgraph.KindGraph},
		{"list", ldgraph.ObjectOf("@list", []any{}, "@value", 1), ldgraph.KindList},
		{"set", ldgraph.ObjectOf("@set", []any{}), ldgraph.KindSet},
		{"value", ldgraph.ObjectOf("@value", 1, "@id", "x"), ldgraph.KindValue},
		{"reference", ldgraph.NewReference("x"), ldgraph.KindReference},
		{"node", ldgraph.ObjectOf("@id", "x", "name", "n"), ldgraph.KindNode},
		{"empty", ldgraph.NewObject(), ldgraph.KindNode},
		{"anonymous", ldgraph.ObjectOf("name", "n"), ldgraph.KindNode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ldgraph.KindOf(tc.v); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestKindOf_MemoIsStableUntilReclassify(t *testing.T) {
	o := ldgraph.NewReference("x")
	if k := ldgraph.KindOf(o); k != ldgraph.KindReference {
		t.Fatalf("expected reference, got %s", k)
	}
	o.Set("@list", []any{})
	if k := ldgraph.KindOf(o); k != ldgraph.KindReference {
		t.Fatalf("expected memoized reference, got %s", k)
	}
	if k := ldgraph.Reclassify(o); k != ldgraph.KindList {
		t.Fatalf("expected list after reclassify, got %s", k)
	}
	if k := ldgraph.KindOf(o); k != ldgraph.KindList {
		t.Fatalf("expected memo to follow reclassify, got %s", k)
	}
}

func TestKindOf_MemoNotSerialized(t *testing.T) {
	o := ldgraph.ObjectOf("@id", "x", "name", "n")
	_ = ldgraph.KindOf(o)
	if got := mustJSON(t, o); got != `{"@id":"x","name":"n"}` {
		t.Fatalf("unexpected encoding %s", got)
	}
	if got := o.Keys(); len(got) != 2 {
		t.Fatalf("expected 2 keys, got %v", got)
	}
}
