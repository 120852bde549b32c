package ldgraph

import (
	"strings"

	eng "github.com/reoring/ldgraph/internal/engine"
)

// Frame is one entry of the ancestor trail kept while walking a document.
// Key is a string member name, an int index, or nil for the walk root.
// Parent is the *Object or []any holding Value, nil for the walk root.
type Frame struct {
	Kind   Kind
	Value  any
	Key    any
	Parent any
}

// Replace stores v where the frame's value lives inside its parent and
// updates the frame. It is a no-op for the walk root.
func (f *Frame) Replace(v any) {
	switch p := f.Parent.(type) {
	case *Object:
		if k, ok := f.Key.(string); ok {
			p.Set(k, v)
		}
	case []any:
		if i, ok := f.Key.(int); ok && i >= 0 && i < len(p) {
			p[i] = v
		}
	default:
		return
	}
	f.Value = v
}

// State holds the ancestor trail and the diagnostics of one parse batch.
// It may span several documents.
type State struct {
	stack []Frame
	diags Diagnostics
}

// NewState returns an empty State.
func NewState() *State { return &State{} }

// Push enters a frame.
func (s *State) Push(f Frame) { s.stack = append(s.stack, f) }

// Pop leaves the current frame.
func (s *State) Pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
}

// Depth returns the number of frames on the trail.
func (s *State) Depth() int { return len(s.stack) }

// Top returns the current frame, or nil outside a walk.
func (s *State) Top() *Frame { return s.frame(0) }

// Enclosing returns the frame holding the current one, or nil.
func (s *State) Enclosing() *Frame { return s.frame(1) }

func (s *State) frame(up int) *Frame {
	i := len(s.stack) - 1 - up
	if i < 0 {
		return nil
	}
	return &s.stack[i]
}

// IsRoot reports whether the current frame is a document root: the only frame,
// or the second one when the first is an array of top-level nodes.
func (s *State) IsRoot() bool {
	switch len(s.stack) {
	case 1:
		return true
	case 2:
		return s.stack[0].Kind == KindArray
	}
	return false
}

// Path renders the trail as a property access chain, e.g. ['@graph'][1]['name'].
func (s *State) Path() string {
	b := &strings.Builder{}
	for _, f := range s.stack {
		b.WriteString(renderKey(f.Key))
	}
	return b.String()
}

func renderKey(k any) string {
	switch k := k.(type) {
	case int:
		return eng.FormatIndex(k)
	case string:
		return eng.FormatKey(k)
	}
	return ""
}

// EmitBadDocument records a structural diagnostic without a path.
func (s *State) EmitBadDocument(msg string) {
	s.diags = append(s.diags, Diagnostic{Code: CodeBadDocument, Message: msg})
}

// EmitBadValue records a diagnostic located at the current frame.
func (s *State) EmitBadValue(msg string) {
	s.diags = append(s.diags, Diagnostic{Path: s.Path(), Code: CodeBadValue, Message: msg})
}

// EmitBadValueAt records a diagnostic located at a child of the current frame.
// Keys render like frame keys; several keys descend further.
func (s *State) EmitBadValueAt(msg string, keys ...any) {
	p := s.Path()
	for _, k := range keys {
		p += renderKey(k)
	}
	s.diags = append(s.diags, Diagnostic{Path: p, Code: CodeBadValue, Message: msg})
}

// EmitBadRoot records a document-level diagnostic at the top of the walk and
// a located one anywhere deeper.
func (s *State) EmitBadRoot(msg string) {
	if len(s.stack) <= 1 {
		s.EmitBadDocument(msg)
		return
	}
	s.EmitBadValue(msg)
}

// HasDiagnostics reports whether any diagnostic was recorded.
func (s *State) HasDiagnostics() bool { return len(s.diags) > 0 }

// HasDiagnosticCount reports whether exactly n diagnostics were recorded.
func (s *State) HasDiagnosticCount(n int) bool { return len(s.diags) == n }

// Diagnostics returns a copy of the recorded diagnostics.
func (s *State) Diagnostics() Diagnostics {
	if len(s.diags) == 0 {
		return nil
	}
	return append(Diagnostics(nil), s.diags...)
}
