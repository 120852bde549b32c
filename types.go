package ldgraph

import "log/slog"

// DefaultVocabulary is the only vocabulary a document may declare unless
// Options.Vocabulary overrides it.
const DefaultVocabulary = "https://schema.org/"

// Keywords recognized by the supported dialect.
const (
	KeywordContext  = "@context"
	KeywordVocab    = "@vocab"
	KeywordGraph    = "@graph"
	KeywordID       = "@id"
	KeywordType     = "@type"
	KeywordLanguage = "@language"
	KeywordValue    = "@value"
	KeywordList     = "@list"
	KeywordSet      = "@set"
	KeywordIndex    = "@index"
	KeywordReverse  = "@reverse"
)

// BlankNodePrefix marks blank node identifiers, which are not supported.
const BlankNodePrefix = "_:"

// Kind is the semantic kind of a value in a document tree.
type Kind uint8

const (
	KindPrimitive Kind = iota + 1
	KindInvalid
	KindArray
	KindGraph
	KindList
	KindSet
	KindValue
	KindReference
	KindNode
	// KindReverse is assigned by the walker to the value of an @reverse key,
	// whatever its shape.
	KindReverse
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindInvalid:
		return "invalid"
	case KindArray:
		return "array"
	case KindGraph:
		return "graph"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindValue:
		return "value"
	case KindReference:
		return "reference"
	case KindNode:
		return "node"
	case KindReverse:
		return "reverse"
	default:
		return "unknown"
	}
}

// Severity expresses the severity level for decoder issues.
type Severity int

const (
	SeverityIgnore Severity = iota
	SeverityWarn
	SeverityError
)

// Options bundles corpus, parser and decoder settings. Functions taking
// ...Options use the last one supplied.
type Options struct {
	// Vocabulary is the IRI a document's @context must name. Empty means
	// DefaultVocabulary.
	Vocabulary string
	// MaxDepth limits decoder nesting depth (0 disables the check).
	MaxDepth int
	// MaxBytes limits consumed input bytes (0 disables the check). For YAML
	// it also caps the values produced through alias expansion.
	MaxBytes int64
	// OnDuplicateKey controls duplicate JSON object keys: SeverityIgnore keeps
	// the last value, SeverityWarn logs and keeps it, SeverityError fails
	// decoding. YAML input always rejects duplicate keys.
	OnDuplicateKey Severity
	// Logger receives debug and warning records. Nil discards them.
	Logger *slog.Logger
}

func lastOptions(opts []Options) Options {
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.Vocabulary == "" {
		opt.Vocabulary = DefaultVocabulary
	}
	if opt.Logger == nil {
		opt.Logger = slog.New(slog.DiscardHandler)
	}
	return opt
}
