// Package yaml reads YAML-encoded linked-data documents into the same ordered
// value tree the JSON driver produces.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/ldgraph/internal/engine"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// DefaultMaxAliasNodes caps the values produced through alias expansion in one
// document when Limits.MaxAliasNodes is zero.
const DefaultMaxAliasNodes = 100_000

// Limits bounds what a Reader accepts. Zero MaxDepth or MaxBytes disables
// that check.
type Limits struct {
	// MaxDepth limits mapping and sequence nesting; the root collection is
	// depth 1.
	MaxDepth int
	// MaxBytes limits the bytes read from the underlying stream.
	MaxBytes int64
	// MaxAliasNodes limits the values a document may produce through alias
	// expansion. Zero means DefaultMaxAliasNodes.
	MaxAliasNodes int
}

// LimitError reports input that exceeds one of the Reader's Limits. Code is
// "parse_error" for nesting and aliasing and "truncated" for the byte limit.
type LimitError struct {
	Code    string
	Message string
	Line    int
	Col     int
}

func (e *LimitError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at %d:%d", e.Message, e.Line, e.Col)
	}
	return e.Message
}

// Reader decodes a multi-document YAML stream using yaml.Node so that mapping
// order is kept and duplicate keys are detected with positions.
type Reader struct {
	dec       *yaml.Decoder
	in        *countingReader
	newObject eng.NewObjectFunc
	limits    Limits

	depth      int
	inAlias    int
	aliasNodes int
}

// NewReader constructs a Reader building objects through newObject. The last
// Limits supplied applies.
func NewReader(r io.Reader, newObject eng.NewObjectFunc, limits ...Limits) *Reader {
	var l Limits
	if len(limits) > 0 {
		l = limits[len(limits)-1]
	}
	if l.MaxAliasNodes <= 0 {
		l.MaxAliasNodes = DefaultMaxAliasNodes
	}
	in := &countingReader{r: r}
	if l.MaxBytes > 0 {
		// one byte past the limit is enough to tell it was exceeded
		in.r = io.LimitReader(r, l.MaxBytes+1)
	}
	return &Reader{dec: yaml.NewDecoder(in), in: in, newObject: newObject, limits: l}
}

// Next returns the next YAML document converted into a JSON-compatible value.
// It returns (nil, io.EOF) when the stream is exhausted.
func (s *Reader) Next() (any, error) {
	var root yaml.Node
	err := s.dec.Decode(&root)
	if s.limits.MaxBytes > 0 && s.in.n > s.limits.MaxBytes {
		return nil, &LimitError{Code: "truncated", Message: "max bytes exceeded"}
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	s.depth, s.inAlias, s.aliasNodes = 0, 0, 0
	return s.convert(&root)
}

// ReadAll reads all documents from the YAML stream.
func (s *Reader) ReadAll() ([]any, error) {
	var out []any
	for {
		v, err := s.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, v)
	}
}

func (s *Reader) convert(n *yaml.Node) (any, error) {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, nil
		}
		return s.convert(n.Content[0])
	}
	if s.inAlias > 0 {
		s.aliasNodes++
		if s.aliasNodes > s.limits.MaxAliasNodes {
			return nil, &LimitError{
				Code:    "parse_error",
				Message: fmt.Sprintf("alias expansion exceeds %d values", s.limits.MaxAliasNodes),
				Line:    n.Line,
				Col:     n.Column,
			}
		}
	}
	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, nil
		}
		s.inAlias++
		defer func() { s.inAlias-- }()
		return s.convert(n.Alias)
	case yaml.MappingNode, yaml.SequenceNode:
		s.depth++
		defer func() { s.depth-- }()
		if s.limits.MaxDepth > 0 && s.depth > s.limits.MaxDepth {
			return nil, &LimitError{Code: "parse_error", Message: "max depth exceeded", Line: n.Line, Col: n.Column}
		}
		return s.collection(n)
	case yaml.ScalarNode:
		return scalar(n), nil
	default:
		return nil, nil
	}
}

func (s *Reader) collection(n *yaml.Node) (any, error) {
	if n.Kind == yaml.MappingNode {
		obj := s.newObject()
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			key := k.Value
			if pos, dup := first[key]; dup {
				return nil, &DuplicateKeyError{Key: key, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[key] = [2]int{k.Line, k.Column}
			val, err := s.convert(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Put(key, val)
		}
		return obj, nil
	}
	arr := make([]any, 0, len(n.Content))
	for _, c := range n.Content {
		v, err := s.convert(c)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	return arr, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// scalar maps YAML scalars onto JSON primitives; numbers always become float64.
func scalar(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
		return n.Value
	case "!!int":
		if i, err := strconv.ParseInt(strings.ReplaceAll(n.Value, "_", ""), 0, 64); err == nil {
			return float64(i)
		}
		return n.Value
	case "!!float":
		switch strings.ToLower(n.Value) {
		case ".nan":
			return math.NaN()
		case ".inf", "+.inf":
			return math.Inf(1)
		case "-.inf":
			return math.Inf(-1)
		}
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return f
		}
		return n.Value
	default:
		return n.Value
	}
}
