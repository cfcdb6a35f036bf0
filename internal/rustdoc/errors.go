package rustdoc

import (
	"errors"
	"fmt"

	"github.com/jcdickinson/ferrisdoc/internal/markup"
)

var (
	// ErrMissingAnchor is returned when one of the literal markers that split a
	// page into regions is absent. It is the only failure that aborts Parse.
	ErrMissingAnchor = errors.New("missing anchor")
	// ErrUnknownSection is recorded when a section heading has no parser.
	ErrUnknownSection = errors.New("unknown section")
)

// Diagnostic is a per-record parse failure. The record is dropped (or degraded)
// and parsing carries on with the rest of the page.
type Diagnostic struct {
	// Section is the heading of the section the record belongs to, or one of
	// "title", "declaration", "sidebar" and "introduction".
	Section string `json:"section" yaml:"section"`
	// Record is the index of the failing record in its section, or -1 when the
	// failure concerns the section as a whole.
	Record  int    `json:"record" yaml:"record"`
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`

	err error
}

func newDiagnostic(record int, err error) Diagnostic {
	return Diagnostic{Record: record, Kind: kindOf(err), Message: err.Error(), err: err}
}

func (d Diagnostic) Error() string {
	if d.Record < 0 {
		return fmt.Sprintf("%s: %s", d.Section, d.Message)
	}
	return fmt.Sprintf("%s[%d]: %s", d.Section, d.Record, d.Message)
}

func (d Diagnostic) Unwrap() error {
	return d.err
}

func kindOf(err error) string {
	switch {
	case errors.Is(err, markup.ErrMalformedTag):
		return "malformed_tag"
	case errors.Is(err, markup.ErrUnexpectedEOF):
		return "unexpected_eof"
	case errors.Is(err, markup.ErrEmptyContent):
		return "empty_content"
	case errors.Is(err, markup.ErrNoElement):
		return "no_element"
	case errors.Is(err, ErrMissingAnchor):
		return "missing_anchor"
	case errors.Is(err, ErrUnknownSection):
		return "unknown_section"
	default:
		return "other"
	}
}

// inSection stamps the section name on every diagnostic.
func inSection(section string, diags []Diagnostic) []Diagnostic {
	for i := range diags {
		diags[i].Section = section
	}
	return diags
}

// atRecord turns plain errors into diagnostics for one record.
func atRecord(record int, errs []error) []Diagnostic {
	if len(errs) == 0 {
		return nil
	}
	diags := make([]Diagnostic, len(errs))
	for i, err := range errs {
		diags[i] = newDiagnostic(record, err)
	}
	return diags
}
