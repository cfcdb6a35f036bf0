package markup

import "errors"

var (
	// ErrMalformedTag is returned when the text between '<' and '>' cannot be read as a tag.
	ErrMalformedTag = errors.New("malformed tag")
	// ErrUnexpectedEOF is returned when a tag is still open when the input runs out.
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	// ErrEmptyContent is returned when an element that must carry text has none.
	ErrEmptyContent = errors.New("expected content is empty")
	// ErrNoElement is returned by Extract when the requested element is absent.
	ErrNoElement = errors.New("element not found")
)

// clip shortens s for use in error messages.
func clip(s string) string {
	const limit = 40
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
