package ldgraph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/ldgraph/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeWrongKind            = "wrong_kind"
	CodeMissingID            = "missing_id"
	CodeDuplicateID          = "duplicate_id"
	CodeMalstructured        = "malstructured_data"
	CodeInvalidValue         = "invalid_value"
	CodeUnsupportedOperation = "unsupported_operation"
	CodeParseError           = "parse_error"
	CodeDuplicateKey         = "duplicate_key"
	CodeTruncated            = "truncated"
	// Diagnostic codes
	CodeBadDocument = "bad_document"
	CodeBadValue    = "bad_value"
)

// Sentinel errors for programmatic error checking via errors.Is().
var (
	ErrWrongKind     = errors.New("wrong kind")
	ErrMissingID     = errors.New("missing identifier")
	ErrDuplicateID   = errors.New("duplicate identifier")
	ErrMalstructured = errors.New("malstructured data")
	ErrInvalidValue  = errors.New("invalid value")
	ErrParse         = errors.New("parse error")
	// ErrUnsupportedOperation is returned by every mutating method of the
	// read-only graph view. It matches errors.ErrUnsupported as well.
	ErrUnsupportedOperation = fmt.Errorf("read-only graph: %w", errors.ErrUnsupported)
)

var sentinels = map[string]error{
	CodeWrongKind:            ErrWrongKind,
	CodeMissingID:            ErrMissingID,
	CodeDuplicateID:          ErrDuplicateID,
	CodeMalstructured:        ErrMalstructured,
	CodeInvalidValue:         ErrInvalidValue,
	CodeUnsupportedOperation: ErrUnsupportedOperation,
	CodeParseError:           ErrParse,
	CodeDuplicateKey:         ErrParse,
	CodeTruncated:            ErrParse,
}

// Diagnostic describes one defect found in a document. Path is the property
// access chain from the document root ("" for document-level defects).
type Diagnostic struct {
	Path    string
	Code    string // CodeBadDocument or CodeBadValue.
	Message string
}

func (d Diagnostic) String() string {
	if d.Path == "" {
		return d.Message
	}
	return d.Path + ": " + d.Message
}

// Diagnostics is a collection of diagnostics that implements error.
type Diagnostics []Diagnostic

// Error summarizes the first few diagnostics.
func (ds Diagnostics) Error() string {
	if len(ds) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(ds), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ds[i].String())
	}
	if len(ds) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(ds))
	}
	return b.String()
}

// AsDiagnostics extracts Diagnostics from an error using errors.As internally.
// It sees through *Error values carrying a diagnostics batch.
func AsDiagnostics(err error) (Diagnostics, bool) {
	if err == nil {
		return nil, false
	}
	var ds Diagnostics
	if errors.As(err, &ds) {
		return ds, true
	}
	return nil, false
}

// Error is returned for contract violations (wrong kind, missing or duplicate
// identifiers, invalid property values, mutation of a read-only view) and for
// failed ingests, which carry the full diagnostics batch.
type Error struct {
	Code        string
	Message     string // Optional detail appended to the localized summary.
	ID          string // Offending identifier, when there is one.
	Diagnostics Diagnostics
	Err         error // Optional underlying error.
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var data map[string]string
	if e.ID != "" {
		data = map[string]string{"id": e.ID}
	}
	b := &strings.Builder{}
	b.WriteString(i18n.T(e.Code, data))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Diagnostics) > 0 {
		fmt.Fprintf(b, " (%d diagnostics: %s)", len(e.Diagnostics), e.Diagnostics.Error())
	}
	return b.String()
}

// Unwrap exposes the sentinel for the code, the diagnostics batch and the
// underlying error.
func (e *Error) Unwrap() []error {
	var errs []error
	if s, ok := sentinels[e.Code]; ok {
		errs = append(errs, s)
	}
	if len(e.Diagnostics) > 0 {
		errs = append(errs, e.Diagnostics)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
