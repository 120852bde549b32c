package ldgraph

// Handler is invoked for a value once all of its descendants were walked.
// The value's own frame is on top of the state's trail.
type Handler func(s *State, f *Frame)

// Handlers is a per-pass strategy: one handler per kind. A nil entry falls
// back to Base; a nil Base ignores the kind.
type Handlers struct {
	Primitive Handler
	Invalid   Handler
	Array     Handler
	Graph     Handler
	List      Handler
	Set       Handler
	Value     Handler
	Reference Handler
	Node      Handler
	Reverse   Handler
	Base      Handler
}

func (h *Handlers) forKind(k Kind) Handler {
	var fn Handler
	switch k {
	case KindPrimitive:
		fn = h.Primitive
	case KindInvalid:
		fn = h.Invalid
	case KindArray:
		fn = h.Array
	case KindGraph:
		fn = h.Graph
	case KindList:
		fn = h.List
	case KindSet:
		fn = h.Set
	case KindValue:
		fn = h.Value
	case KindReference:
		fn = h.Reference
	case KindNode:
		fn = h.Node
	case KindReverse:
		fn = h.Reverse
	}
	if fn == nil {
		return h.Base
	}
	return fn
}

// Walker dispatches handlers over a value tree in post-order: every child of
// a value is fully walked before the value's own handler runs, so nested
// nodes are handled innermost-first.
type Walker struct {
	Handlers Handlers
	State    *State
	// Skip lists object member names that are not descended into.
	Skip map[string]bool
}

// Walk walks root as the top of a trail.
func (w *Walker) Walk(root any) { w.visit(root, nil, nil) }

// WalkAt walks v as the top of a trail while recording where v lives, so
// paths start with key and handlers can replace v inside parent.
func (w *Walker) WalkAt(v, key, parent any) { w.visit(v, key, parent) }

func (w *Walker) visit(v, key, parent any) {
	kind := KindOf(v)
	if key == KeywordReverse {
		kind = KindReverse
	}
	w.State.Push(Frame{Kind: kind, Value: v, Key: key, Parent: parent})
	defer w.State.Pop()

	switch kind {
	case KindGraph:
		w.member(v.(*Object), KeywordGraph)
	case KindList:
		w.member(v.(*Object), KeywordList)
	case KindSet:
		w.member(v.(*Object), KeywordSet)
	case KindArray:
		arr := v.([]any)
		for i := range arr {
			w.visit(arr[i], i, arr)
		}
	case KindNode, KindReverse:
		if o, ok := v.(*Object); ok {
			for _, k := range o.Keys() {
				if w.Skip[k] {
					continue
				}
				w.member(o, k)
			}
		}
	case KindPrimitive, KindInvalid, KindValue, KindReference:
	}

	if fn := w.Handlers.forKind(kind); fn != nil {
		fn(w.State, w.State.Top())
	}
}

func (w *Walker) member(o *Object, key string) {
	if child, ok := o.Get(key); ok {
		w.visit(child, key, o)
	}
}
