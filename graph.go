package ldgraph

import (
	"iter"

	json "github.com/goccy/go-json"
)

// GraphView is a read-only, reference-resolving view over a corpus. Every
// value read through it is first resolved against the corpus (references
// become their nodes, wrappers their payloads) and objects and arrays come
// back wrapped as *View and *ListView. Object wrappers are memoized by
// identity and list wrappers by the property or element they were read from,
// so repeated reads yield the same wrapper.
//
// The wrapper cache is not safe for concurrent use.
type GraphView struct {
	corpus  *Corpus
	objects map[*Object]*View
	lists   map[slot]*ListView
}

// slot names where a value was read from: a property of an object, or an
// element of a list view.
type slot struct {
	obj   *Object
	key   string
	list  *ListView
	index int
}

func newGraphView(c *Corpus) *GraphView {
	return &GraphView{
		corpus:  c,
		objects: map[*Object]*View{},
		lists:   map[slot]*ListView{},
	}
}

// Node returns the wrapped node stored under id, or nil when there is none.
func (g *GraphView) Node(id string) *View {
	n, ok := g.corpus.Get(id)
	if !ok {
		return nil
	}
	return g.wrapObject(n)
}

// Nodes iterates wrapped nodes in corpus order.
func (g *GraphView) Nodes() iter.Seq[*View] {
	return func(yield func(*View) bool) {
		for n := range g.corpus.Values() {
			if !yield(g.wrapObject(n)) {
				return
			}
		}
	}
}

// wrap resolves v, read from at, and wraps objects and arrays. Primitives
// pass through; values that are already wrappers are returned unchanged.
func (g *GraphView) wrap(at slot, v any) any {
	switch v.(type) {
	case *View, *ListView:
		return v
	}
	// list, set and value payloads belong to their wrapper's keyword
	for {
		o, ok := v.(*Object)
		if !ok || o == nil {
			break
		}
		kw := payloadKeyword(KindOf(o))
		if kw == "" {
			break
		}
		at = slot{obj: o, key: kw}
		v, _ = o.Get(kw)
	}
	switch x := g.corpus.Resolve(v).(type) {
	case *Object:
		if x == nil {
			return nil
		}
		return g.wrapObject(x)
	case []any:
		return g.wrapList(at, x)
	default:
		return x
	}
}

func (g *GraphView) wrapObject(o *Object) *View {
	if w, ok := g.objects[o]; ok {
		return w
	}
	w := &View{g: g, obj: o}
	g.objects[o] = w
	return w
}

func (g *GraphView) wrapList(at slot, items []any) *ListView {
	if w, ok := g.lists[at]; ok {
		w.items = items
		return w
	}
	w := &ListView{g: g, items: items}
	g.lists[at] = w
	return w
}

func payloadKeyword(k Kind) string {
	switch k {
	case KindList:
		return KeywordList
	case KindSet:
		return KeywordSet
	case KindValue:
		return KeywordValue
	}
	return ""
}

// View is a read-only wrapper around a node (or an unresolved reference, for
// dangling targets).
type View struct {
	g   *GraphView
	obj *Object
}

// ID returns the wrapped object's @id.
func (v *View) ID() string {
	id, _ := v.obj.ID()
	return id
}

// Kind returns the kind of the wrapped object.
func (v *View) Kind() Kind { return KindOf(v.obj) }

// Keys returns the property names in insertion order.
func (v *View) Keys() []string { return v.obj.Keys() }

// Len returns the number of properties.
func (v *View) Len() int { return v.obj.Len() }

// Has reports whether the property is present.
func (v *View) Has(key string) bool { return v.obj.Has(key) }

// Get reads a property, resolved and wrapped.
func (v *View) Get(key string) (any, bool) {
	raw, ok := v.obj.Get(key)
	if !ok {
		return nil, false
	}
	return v.g.wrap(slot{obj: v.obj, key: key}, raw), true
}

// All iterates resolved and wrapped properties in insertion order.
func (v *View) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for k, raw := range v.obj.All() {
			if !yield(k, v.g.wrap(slot{obj: v.obj, key: k}, raw)) {
				return
			}
		}
	}
}

// Set always fails: the view is read-only.
func (v *View) Set(string, any) error { return ErrUnsupportedOperation }

// Delete always fails: the view is read-only.
func (v *View) Delete(string) error { return ErrUnsupportedOperation }

// MarshalJSON encodes the wrapped object without resolving references.
func (v *View) MarshalJSON() ([]byte, error) { return json.Marshal(v.obj) }

// ListView is a read-only wrapper around a multi-valued property or a
// container payload.
type ListView struct {
	g     *GraphView
	items []any
}

// Len returns the number of elements.
func (l *ListView) Len() int { return len(l.items) }

// At returns element i, resolved and wrapped.
func (l *ListView) At(i int) any { return l.g.wrap(slot{list: l, index: i}, l.items[i]) }

// All iterates resolved and wrapped elements.
func (l *ListView) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i := range l.items {
			if !yield(i, l.g.wrap(slot{list: l, index: i}, l.items[i])) {
				return
			}
		}
	}
}

// Set always fails: the view is read-only.
func (l *ListView) Set(int, any) error { return ErrUnsupportedOperation }

// Append always fails: the view is read-only.
func (l *ListView) Append(...any) error { return ErrUnsupportedOperation }

// MarshalJSON encodes the wrapped elements without resolving references.
func (l *ListView) MarshalJSON() ([]byte, error) { return json.Marshal(l.items) }
