package ldgraph

import (
	"iter"
	"log/slog"
)

// Corpus is the authoritative, insertion-ordered store of nodes keyed by @id.
// Nodes are only ever added, never removed.
//
// A Corpus is not safe for concurrent use: Add, Ingest and Link are
// check-then-write sequences, so callers must serialize writers.
type Corpus struct {
	opt   Options
	log   *slog.Logger
	nodes map[string]*Object
	order []string
	graph *GraphView
}

// NewCorpus returns an empty corpus. The last Options supplied wins.
func NewCorpus(opts ...Options) *Corpus {
	opt := lastOptions(opts)
	return &Corpus{
		opt:   opt,
		log:   opt.Logger,
		nodes: map[string]*Object{},
	}
}

// Options returns the effective options of the corpus.
func (c *Corpus) Options() Options { return c.opt }

// Add stores node under its @id. The node must be node-shaped (an object
// holding only @id counts as a property-less node) and carry a string @id not
// yet present. On success the node's kind is pinned to KindNode.
func (c *Corpus) Add(node *Object) error {
	if node == nil {
		return &Error{Code: CodeWrongKind, Message: "nil node"}
	}
	if _, ok := isNodeLike(node); !ok {
		return &Error{Code: CodeWrongKind, Message: "expected a node, got " + describe(node)}
	}
	id, ok := node.ID()
	if !ok || id == "" {
		return &Error{Code: CodeMissingID, Message: "nodes must carry a string @id"}
	}
	if _, dup := c.nodes[id]; dup {
		return &Error{Code: CodeDuplicateID, ID: id}
	}
	pinKind(node, KindNode)
	c.nodes[id] = node
	c.order = append(c.order, id)
	return nil
}

// Get returns the node stored under id.
func (c *Corpus) Get(id string) (*Object, bool) {
	n, ok := c.nodes[id]
	return n, ok
}

// Has reports whether a node is stored under id.
func (c *Corpus) Has(id string) bool {
	_, ok := c.nodes[id]
	return ok
}

// Len returns the number of stored nodes.
func (c *Corpus) Len() int { return len(c.order) }

// Entries iterates (id, node) pairs in first-insertion order.
func (c *Corpus) Entries() iter.Seq2[string, *Object] {
	return func(yield func(string, *Object) bool) {
		for _, id := range c.order {
			if !yield(id, c.nodes[id]) {
				return
			}
		}
	}
}

// Values iterates nodes in first-insertion order.
func (c *Corpus) Values() iter.Seq[*Object] {
	return func(yield func(*Object) bool) {
		for _, id := range c.order {
			if !yield(c.nodes[id]) {
				return
			}
		}
	}
}

// Resolve follows indirections: a reference becomes its target node when the
// target is stored (dangling references come back unchanged), and list, set
// and value wrappers become their resolved payload. Anything else is returned
// as is.
func (c *Corpus) Resolve(entity any) any {
	o, ok := entity.(*Object)
	if !ok || o == nil {
		return entity
	}
	switch KindOf(o) {
	case KindReference:
		if id, isStr := o.ID(); isStr {
			if n, found := c.nodes[id]; found {
				return n
			}
		}
		return o
	case KindList:
		v, _ := o.Get(KeywordList)
		return c.Resolve(v)
	case KindSet:
		v, _ := o.Get(KeywordSet)
		return c.Resolve(v)
	case KindValue:
		v, _ := o.Get(KeywordValue)
		return c.Resolve(v)
	}
	return o
}

// Ingest parses doc and commits its nodes only when it is free of
// diagnostics. Otherwise it returns an *Error with code CodeMalstructured
// carrying every diagnostic and leaves the corpus untouched.
func (c *Corpus) Ingest(doc any) error {
	p := NewParser(c)
	p.Parse(doc)
	if err := p.Err(); err != nil {
		c.log.Debug("ingest rejected", "diagnostics", len(p.Diagnostics()))
		return err
	}
	n, err := p.TransferOnSuccess()
	if err != nil {
		return err
	}
	c.log.Debug("ingested document", "nodes", n, "total", c.Len())
	return nil
}

// IngestJSON decodes a JSON document and ingests it.
func (c *Corpus) IngestJSON(data []byte) error {
	doc, err := DecodeJSON(data, c.opt)
	if err != nil {
		return err
	}
	return c.Ingest(doc)
}

// IngestYAML decodes every document of a YAML stream and ingests them as one
// batch: either all of them are committed or none is.
func (c *Corpus) IngestYAML(data []byte) error {
	docs, err := DecodeYAML(data, c.opt)
	if err != nil {
		return err
	}
	p := NewParser(c)
	for _, doc := range docs {
		p.Parse(doc)
	}
	if err := p.Err(); err != nil {
		return err
	}
	_, err = p.TransferOnSuccess()
	return err
}

// Graph returns the read-only view of the corpus. The view and its wrapper
// cache live as long as the corpus.
func (c *Corpus) Graph() *GraphView {
	if c.graph == nil {
		c.graph = newGraphView(c)
	}
	return c.graph
}
