package ldgraph

import (
	"bytes"
	"errors"
	"io"

	eng "github.com/reoring/ldgraph/internal/engine"
	"github.com/reoring/ldgraph/source/gojson"
	yamlsrc "github.com/reoring/ldgraph/source/yaml"
)

// DecodeJSON decodes a single JSON document into the ingest data model:
// objects become *Object with member order preserved, arrays []any and
// numbers float64. Decoder limits and duplicate-key handling come from the
// last Options supplied.
func DecodeJSON(data []byte, opts ...Options) (any, error) {
	opt := lastOptions(opts)
	return decodeTokens(gojson.NewBytes(data), opt)
}

// DecodeJSONReader is DecodeJSON over a stream.
func DecodeJSONReader(r io.Reader, opts ...Options) (any, error) {
	opt := lastOptions(opts)
	return decodeTokens(gojson.NewReader(r), opt)
}

// DecodeYAML decodes every document of a YAML stream. Mapping order is
// preserved and duplicate mapping keys are rejected. MaxDepth and MaxBytes
// apply as for JSON; alias expansion is capped at MaxBytes values when a byte
// limit is set.
func DecodeYAML(data []byte, opts ...Options) ([]any, error) {
	opt := lastOptions(opts)
	limits := yamlsrc.Limits{MaxDepth: opt.MaxDepth, MaxBytes: opt.MaxBytes}
	if opt.MaxBytes > 0 && opt.MaxBytes < yamlsrc.DefaultMaxAliasNodes {
		limits.MaxAliasNodes = int(opt.MaxBytes)
	}
	docs, err := yamlsrc.NewReader(bytes.NewReader(data), newObjectSink, limits).ReadAll()
	if err != nil {
		var dup *yamlsrc.DuplicateKeyError
		if errors.As(err, &dup) {
			return nil, &Error{Code: CodeDuplicateKey, Message: dup.Error(), Err: err}
		}
		var le *yamlsrc.LimitError
		if errors.As(err, &le) {
			return nil, &Error{Code: le.Code, Message: le.Error(), Err: err}
		}
		return nil, &Error{Code: CodeParseError, Message: err.Error(), Err: err}
	}
	opt.Logger.Debug("decoded yaml stream", "documents", len(docs))
	return docs, nil
}

func newObjectSink() eng.ObjectSink { return NewObject() }

func decodeTokens(src eng.TokenSource, opt Options) (any, error) {
	src = eng.WrapWithEnforcement(src, eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink: func(si eng.SimpleIssue) {
			opt.Logger.Warn("decoder issue", "code", si.Code, "path", si.Path, "message", si.Message)
		},
	})
	v, err := eng.Decode(src, newObjectSink)
	if err != nil {
		return nil, decodeError(err)
	}
	return v, nil
}

func decodeError(err error) *Error {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		msg := ie.Message
		if ie.Path != "" {
			msg = ie.Path + ": " + msg
		}
		return &Error{Code: ie.Code, Message: msg, Err: err}
	}
	return &Error{Code: CodeParseError, Message: err.Error(), Err: err}
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case SeverityWarn:
		return eng.DupWarn
	case SeverityError:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}
