package ldgraph

import (
	"fmt"
	"iter"
	"net/url"
	"slices"
	"strings"

	"github.com/reoring/ldgraph/internal/text"
)

// Parser validates documents against the supported dialect and normalizes
// them: every node carrying an @id is staged and replaced in place by a
// reference. Defects never stop a parse; they accumulate as diagnostics in
// the parser's State, and the offending construct is replaced by a
// well-formed substitute so walking can continue.
//
// Parse may be called for several documents; they form one batch. Staged
// nodes reach the corpus only through TransferOnSuccess.
type Parser struct {
	corpus *Corpus
	opt    Options
	state  *State
	staged map[string]*Object
	order  []string
	walker Walker

	// reported holds array elements already diagnosed by their own handler.
	reported map[arraySlot]bool
}

// arraySlot names an array element by the trail depth of its array.
type arraySlot struct{ depth, index int }

// NewParser returns a parser staging nodes for c, using c's options.
func NewParser(c *Corpus) *Parser {
	p := &Parser{
		corpus: c,
		opt:    c.opt,
		state:  NewState(),
		staged: map[string]*Object{},

		reported: map[arraySlot]bool{},
	}
	p.walker = Walker{
		State: p.state,
		Skip:  map[string]bool{KeywordContext: true},
		Handlers: Handlers{
			Invalid:   p.handleInvalid,
			Array:     p.handleArray,
			Graph:     p.handleGraph,
			List:      p.handleContainer,
			Set:       p.handleContainer,
			Value:     p.handleValue,
			Reference: p.handleReference,
			Node:      p.handleNode,
			Reverse:   p.handleReverse,
		},
	}
	return p
}

// State exposes the batch state (trail and diagnostics).
func (p *Parser) State() *State { return p.state }

// Diagnostics returns the diagnostics recorded so far in this batch.
func (p *Parser) Diagnostics() Diagnostics { return p.state.Diagnostics() }

// Staged iterates staged nodes in staging order.
func (p *Parser) Staged() iter.Seq2[string, *Object] {
	return func(yield func(string, *Object) bool) {
		for _, id := range p.order {
			if !yield(id, p.staged[id]) {
				return
			}
		}
	}
}

// StagedLen returns the number of staged nodes.
func (p *Parser) StagedLen() int { return len(p.order) }

// Parse validates and normalizes one document into the batch. doc is
// normally an *Object produced by DecodeJSON or DecodeYAML; it is mutated in
// place.
func (p *Parser) Parse(doc any) {
	before := len(p.state.diags)
	stagedBefore := len(p.order)
	clear(p.reported)

	root, ok := doc.(*Object)
	if !ok || root == nil {
		p.state.EmitBadDocument(fmt.Sprintf("document root must be an object, got %s", describe(doc)))
		root = ObjectOf(KeywordGraph, []any{})
	}
	p.checkContext(root)

	if Reclassify(root) == KindGraph {
		p.parseGraphDocument(root)
	} else {
		root.Delete(KeywordContext)
		Reclassify(root)
		p.walker.Walk(root)
	}

	p.opt.Logger.Debug("parsed document",
		"staged", len(p.order)-stagedBefore,
		"diagnostics", len(p.state.diags)-before)
}

func (p *Parser) parseGraphDocument(root *Object) {
	var extras []string
	for _, k := range root.Keys() {
		if k != KeywordContext && k != KeywordGraph {
			extras = append(extras, k)
		}
	}
	if len(extras) > 0 {
		p.state.EmitBadDocument(fmt.Sprintf("a document with %s may not carry other top-level keys: %s",
			KeywordGraph, text.AndList(text.QuoteAll(extras))))
	}
	g, _ := root.Get(KeywordGraph)
	nodes, ok := g.([]any)
	if !ok {
		p.state.EmitBadDocument(fmt.Sprintf("%s must hold an array of nodes, got %s", KeywordGraph, describe(g)))
		if _, isObj := g.(*Object); !isObj {
			return
		}
		nodes = []any{g}
		root.Set(KeywordGraph, nodes)
	}
	p.walker.WalkAt(nodes, KeywordGraph, root)
}

func (p *Parser) checkContext(root *Object) {
	ctx, ok := root.Get(KeywordContext)
	if !ok {
		return
	}
	switch c := ctx.(type) {
	case string:
		if sameVocabulary(c, p.opt.Vocabulary) {
			return
		}
	case *Object:
		if v, _ := c.Get(KeywordVocab); v != nil {
			if s, isStr := v.(string); isStr && sameVocabulary(s, p.opt.Vocabulary) {
				return
			}
		}
	}
	p.state.EmitBadDocument(fmt.Sprintf("%s must be %s or an object whose %s is %s",
		KeywordContext, text.Quote(p.opt.Vocabulary), KeywordVocab, text.Quote(p.opt.Vocabulary)))
}

func sameVocabulary(a, b string) bool {
	return strings.TrimSuffix(a, "/") == strings.TrimSuffix(b, "/")
}

// ---- handlers ----

func (p *Parser) handleInvalid(s *State, f *Frame) {
	s.EmitBadValue(fmt.Sprintf("unsupported value of Go type %T", f.Value))
	f.Replace(nil)
}

func (p *Parser) handleArray(s *State, f *Frame) {
	if enc := s.Enclosing(); enc != nil {
		switch enc.Kind {
		case KindList, KindSet, KindReverse:
			// checked by the enclosing handler
			return
		}
	}
	arr := f.Value.([]any)
	if s.Depth() == 1 {
		for i, e := range arr {
			if p.alreadyReported(s.Depth(), i) {
				continue
			}
			switch KindOf(e) {
			case KindPrimitive, KindArray:
				s.EmitBadValueAt(fmt.Sprintf("top-level %s entries must be node objects, got %s", KeywordGraph, describe(e)), i)
			}
		}
		return
	}
	for i, e := range arr {
		if KindOf(e) == KindArray && !p.alreadyReported(s.Depth(), i) {
			s.EmitBadValueAt("nested arrays are not supported", i)
		}
	}
}

func (p *Parser) handleGraph(s *State, f *Frame) {
	o := f.Value.(*Object)
	p.checkNestedContext(s, o)
	s.EmitBadValue(fmt.Sprintf("%s containers are only supported as the document wrapper", KeywordGraph))
	g, _ := o.Get(KeywordGraph)
	if i, ok := f.Key.(int); ok {
		p.reported[arraySlot{s.Depth() - 1, i}] = true
	}
	f.Replace(g)
}

// alreadyReported reports whether element index of the array at depth was
// diagnosed when it was visited, and forgets it.
func (p *Parser) alreadyReported(depth, index int) bool {
	k := arraySlot{depth, index}
	if !p.reported[k] {
		return false
	}
	delete(p.reported, k)
	return true
}

func (p *Parser) handleContainer(s *State, f *Frame) {
	o := f.Value.(*Object)
	kw := KeywordList
	if f.Kind == KindSet {
		kw = KeywordSet
	}
	p.checkNestedContext(s, o)
	p.checkCompanions(s, o, kw, kw, KeywordIndex)
	if s.IsRoot() {
		s.EmitBadRoot(fmt.Sprintf("%s containers require a parent property", kw))
	}
	items, _ := o.Get(kw)
	check := func(e any, keys ...any) {
		switch k := KindOf(e); k {
		case KindArray, KindList, KindSet:
			s.EmitBadValueAt(fmt.Sprintf("%s containers may not contain a nested %s", kw, k), keys...)
		}
	}
	if arr, ok := items.([]any); ok {
		for i, e := range arr {
			if !p.alreadyReported(s.Depth()+1, i) {
				check(e, kw, i)
			}
		}
		return
	}
	check(items, kw)
}

func (p *Parser) handleValue(s *State, f *Frame) {
	o := f.Value.(*Object)
	p.checkNestedContext(s, o)
	p.checkCompanions(s, o, KeywordValue, KeywordValue, KeywordType, KeywordLanguage, KeywordIndex)
	if s.IsRoot() {
		s.EmitBadRoot(fmt.Sprintf("%s objects require a parent property", KeywordValue))
	}
	payload, _ := o.Get(KeywordValue)
	valid := KindOf(payload) == KindPrimitive
	if !valid {
		s.EmitBadValueAt(fmt.Sprintf("%s must be a primitive, got %s", KeywordValue, describe(payload)), KeywordValue)
	}
	for _, kw := range []string{KeywordType, KeywordLanguage} {
		if v, ok := o.Get(kw); ok {
			if _, isStr := v.(string); !isStr {
				s.EmitBadValueAt(fmt.Sprintf("%s of a value object must be a string", kw), kw)
			}
		}
	}
	if o.Has(KeywordType) && o.Has(KeywordLanguage) {
		s.EmitBadValue(fmt.Sprintf("value objects may not carry both %s and %s", KeywordType, KeywordLanguage))
	}
	if valid && o.Len() == 1 {
		f.Replace(payload)
	}
}

func (p *Parser) handleReference(s *State, f *Frame) {
	o := f.Value.(*Object)
	id, ok := p.checkID(s, o)
	if ok && s.IsRoot() {
		p.stage(s, f, o, id)
	}
}

var nodeKeywords = map[string]bool{
	KeywordID:      true,
	KeywordType:    true,
	KeywordReverse: true,
	KeywordContext: true,
}

func (p *Parser) handleNode(s *State, f *Frame) {
	o := f.Value.(*Object)
	p.checkNestedContext(s, o)

	var unsupported []string
	for _, k := range o.Keys() {
		if strings.HasPrefix(k, "@") && !nodeKeywords[k] {
			unsupported = append(unsupported, k)
		}
	}
	if len(unsupported) > 0 {
		s.EmitBadValue(fmt.Sprintf("unsupported keywords %s", text.AndList(text.QuoteAll(unsupported))))
	}
	if t, ok := o.Get(KeywordType); ok && !isTypeValue(t) {
		s.EmitBadValueAt(fmt.Sprintf("%s must be a string or an array of strings", KeywordType), KeywordType)
	}

	if !o.Has(KeywordID) {
		if s.IsRoot() {
			s.EmitBadRoot(fmt.Sprintf("top-level nodes must have an %s", KeywordID))
		}
		return
	}
	if id, ok := p.checkID(s, o); ok {
		p.stage(s, f, o, id)
	}
}

func (p *Parser) handleReverse(s *State, f *Frame) {
	if enclosing, ok := f.Parent.(*Object); ok {
		id, isStr := enclosing.ID()
		if !isStr || strings.HasPrefix(id, BlankNodePrefix) {
			s.EmitBadValue(fmt.Sprintf("%s requires the enclosing node to have an %s", KeywordReverse, KeywordID))
		}
	}
	block, ok := f.Value.(*Object)
	if !ok {
		s.EmitBadValue(fmt.Sprintf("%s must be an object mapping properties to nodes, got %s", KeywordReverse, describe(f.Value)))
		return
	}
	for _, k := range block.Keys() {
		if strings.HasPrefix(k, "@") {
			s.EmitBadValueAt(fmt.Sprintf("%s keys must be property names", KeywordReverse), k)
			continue
		}
		v, _ := block.Get(k)
		if arr, isArr := v.([]any); isArr {
			for i, e := range arr {
				if !p.alreadyReported(s.Depth()+1, i) {
					arr[i] = p.reverseTarget(s, e, k, i)
				}
			}
			continue
		}
		block.Set(k, p.reverseTarget(s, v, k))
	}
}

// reverseTarget normalizes a bare IRI into a reference and flags anything
// that is not a node or reference.
func (p *Parser) reverseTarget(s *State, e any, keys ...any) any {
	if str, ok := e.(string); ok {
		if isIRI(str) {
			return NewReference(str)
		}
		s.EmitBadValueAt(fmt.Sprintf("%s targets must be nodes, references or IRIs, got %s", KeywordReverse, text.Quote(str)), keys...)
		return e
	}
	if _, ok := isNodeLike(e); !ok {
		s.EmitBadValueAt(fmt.Sprintf("%s targets must be nodes or references, got %s", KeywordReverse, describe(e)), keys...)
	}
	return e
}

// ---- shared checks ----

func (p *Parser) checkNestedContext(s *State, o *Object) {
	if o.Has(KeywordContext) {
		s.EmitBadValueAt(fmt.Sprintf("nested %s is not supported", KeywordContext), KeywordContext)
	}
}

func (p *Parser) checkCompanions(s *State, o *Object, kw string, allowed ...string) {
	var extras []string
	for _, k := range o.Keys() {
		if k == KeywordContext || slices.Contains(allowed, k) {
			continue
		}
		extras = append(extras, k)
	}
	if len(extras) > 0 {
		s.EmitBadValue(fmt.Sprintf("%s objects may not carry %s", kw, text.AndList(text.QuoteAll(extras))))
	}
}

func (p *Parser) checkID(s *State, o *Object) (string, bool) {
	v, _ := o.Get(KeywordID)
	id, ok := v.(string)
	if !ok {
		s.EmitBadValueAt(fmt.Sprintf("%s must be a string, got %s", KeywordID, describe(v)), KeywordID)
		return "", false
	}
	if strings.HasPrefix(id, BlankNodePrefix) {
		s.EmitBadValueAt(fmt.Sprintf("blank node identifiers are not supported: %s", text.Quote(id)), KeywordID)
		return "", false
	}
	return id, true
}

// stage records o under id and replaces it with a reference in its parent.
func (p *Parser) stage(s *State, f *Frame, o *Object, id string) {
	switch {
	case p.staged[id] != nil:
		s.EmitBadValueAt(fmt.Sprintf("node %s is defined more than once", text.Quote(id)), KeywordID)
	case p.corpus.Has(id):
		s.EmitBadValueAt(fmt.Sprintf("node %s already exists in the corpus", text.Quote(id)), KeywordID)
	default:
		pinKind(o, KindNode)
		p.staged[id] = o
		p.order = append(p.order, id)
	}
	f.Replace(NewReference(id))
}

// ---- batch outcome ----

// Err returns an *Error with code CodeMalstructured carrying every diagnostic
// of the batch, or nil when there are none.
func (p *Parser) Err() error {
	if !p.state.HasDiagnostics() {
		return nil
	}
	return &Error{Code: CodeMalstructured, Diagnostics: p.state.Diagnostics()}
}

// TransferOnSuccess adds every staged node to the corpus when the batch has
// no diagnostics and reports how many were added. With diagnostics present it
// does nothing and staged nodes are kept. If any staged @id is already stored
// it returns an ErrDuplicateID error and adds nothing.
func (p *Parser) TransferOnSuccess() (int, error) {
	if p.state.HasDiagnostics() {
		return 0, nil
	}
	for _, id := range p.order {
		if p.corpus.Has(id) {
			return 0, &Error{Code: CodeDuplicateID, ID: id}
		}
	}
	n := 0
	for _, id := range p.order {
		if err := p.corpus.Add(p.staged[id]); err != nil {
			p.order = p.order[n:]
			return n, err
		}
		delete(p.staged, id)
		n++
	}
	p.order = nil
	return n, nil
}

// ---- helpers ----

func isTypeValue(v any) bool {
	switch t := v.(type) {
	case string:
		return true
	case []any:
		for _, e := range t {
			if _, ok := e.(string); !ok {
				return false
			}
		}
		return true
	}
	return false
}

func isIRI(s string) bool {
	if strings.HasPrefix(s, BlankNodePrefix) {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}

func describe(v any) string {
	k := KindOf(v)
	switch k {
	case KindPrimitive:
		if v == nil {
			return "null"
		}
		return fmt.Sprintf("%T", v)
	case KindInvalid:
		return fmt.Sprintf("unsupported %T", v)
	case KindArray:
		return "an array"
	}
	return "a " + k.String()
}
