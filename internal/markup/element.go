package markup

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jcdickinson/ferrisdoc/internal/fragment"
)

// Node is one entry of an element body: either a text run or a child element.
type Node struct {
	Text  string   `json:"text,omitempty" yaml:"text,omitempty"`
	Child *Element `json:"child,omitempty" yaml:"child,omitempty"`
}

// Element is a parsed markup node.
//
// Nodes holds the body in document order. Content and Children are views of
// the same body restricted to text runs and to child elements respectively.
type Element struct {
	Kind       string              `json:"kind" yaml:"kind"`
	Attributes Attributes          `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Content    []fragment.Fragment `json:"-" yaml:"-"`
	Children   []*Element          `json:"-" yaml:"-"`
	Nodes      []Node              `json:"nodes,omitempty" yaml:"nodes,omitempty"`
}

func (e *Element) appendText(s string) {
	if s == "" {
		return
	}
	e.Content = append(e.Content, fragment.Raw(s))
	e.Nodes = append(e.Nodes, Node{Text: s})
}

func (e *Element) appendChild(c *Element) {
	e.Children = append(e.Children, c)
	e.Nodes = append(e.Nodes, Node{Child: c})
}

// HasClass reports whether the element's class attribute contains class.
func (e *Element) HasClass(class string) bool {
	return e.Attributes.HasClass(class)
}

// FirstText returns the element's first own text run.
func (e *Element) FirstText() (string, bool) {
	for _, n := range e.Nodes {
		if n.Child == nil {
			return n.Text, true
		}
	}
	return "", false
}

// Text concatenates every text run below e in document order, still escaped.
func (e *Element) Text() string {
	var b strings.Builder
	e.writeText(&b, nil)
	return b.String()
}

func (e *Element) writeText(b *strings.Builder, skip func(*Element) bool) {
	for _, n := range e.Nodes {
		switch {
		case n.Child == nil:
			b.WriteString(n.Text)
		case skip != nil && skip(n.Child):
		case n.Child.Kind == "br":
			b.WriteByte('\n')
		default:
			n.Child.writeText(b, skip)
		}
	}
}

// Find returns the first descendant of the given kind, depth first.
func (e *Element) Find(kind string) *Element {
	for _, c := range e.Children {
		if c.Kind == kind {
			return c
		}
		if found := c.Find(kind); found != nil {
			return found
		}
	}
	return nil
}

// Alternates reports whether the body is text, child, text, child... with at
// most one trailing text run. For such bodies, pairing Content[i] with
// Children[i] reproduces document order.
func (e *Element) Alternates() bool {
	for i, n := range e.Nodes {
		wantText := i%2 == 0
		if (n.Child == nil) != wantText {
			return false
		}
	}
	return true
}

// Parse builds the element whose opening tag starts src, ignoring leading
// whitespace. It returns the element and the input left after it.
//
// Any closing tag ends the element being built. Running out of input closes
// every open element.
func Parse(src string) (*Element, string, error) {
	b := &builder{rest: strings.TrimLeftFunc(src, unicode.IsSpace)}
	if !strings.HasPrefix(b.rest, "<") {
		return nil, src, fmt.Errorf("%w: expected '<' at %q", ErrMalformedTag, clip(b.rest))
	}
	tag, err := b.tag()
	if err != nil {
		return nil, src, err
	}
	if tag.Kind == Closing {
		return nil, src, fmt.Errorf("%w: unexpected </%s>", ErrMalformedTag, tag.Name)
	}
	el, err := b.open(tag)
	if err != nil {
		return nil, src, err
	}
	return el, b.rest, nil
}

type builder struct {
	rest string
}

// tag consumes the tag at the cursor, which must start with '<'.
func (b *builder) tag() (Tag, error) {
	end := strings.IndexByte(b.rest, '>')
	if end < 0 {
		return Tag{}, fmt.Errorf("%w: tag %q is never closed", ErrUnexpectedEOF, clip(b.rest))
	}
	tag, err := ParseTag(b.rest[1:end])
	if err != nil {
		return Tag{}, err
	}
	b.rest = b.rest[end+1:]
	return tag, nil
}

// open builds the body of the element opened by tag.
func (b *builder) open(tag Tag) (*Element, error) {
	el := &Element{Kind: tag.Name, Attributes: tag.Attributes}
	if tag.Kind == SelfTerminating {
		return el, nil
	}

	for b.rest != "" {
		if !strings.HasPrefix(b.rest, "<") {
			next := strings.IndexByte(b.rest, '<')
			if next < 0 {
				next = len(b.rest)
			}
			el.appendText(b.rest[:next])
			b.rest = b.rest[next:]
			continue
		}

		t, err := b.tag()
		if err != nil {
			return nil, fmt.Errorf("inside <%s>: %w", el.Kind, err)
		}
		switch t.Kind {
		case Closing:
			return el, nil
		case SelfTerminating:
			// Comments and doctypes are dropped.
			if strings.HasPrefix(t.Name, "!") || strings.HasPrefix(t.Name, "?") {
				continue
			}
			el.appendChild(&Element{Kind: t.Name, Attributes: t.Attributes})
		case Opening:
			child, err := b.open(t)
			if err != nil {
				return nil, err
			}
			el.appendChild(child)
		}
	}
	return el, nil
}

// Extract builds the first <name> element found in data. The search text is
// cut after the first </name>, so nested elements of the same name are not
// supported.
func Extract(name, data string) (*Element, error) {
	start := indexTag(data, name)
	if start < 0 {
		return nil, fmt.Errorf("%w: <%s>", ErrNoElement, name)
	}
	tail := data[start:]
	closing := "</" + name + ">"
	if end := strings.Index(tail, closing); end >= 0 {
		tail = tail[:end+len(closing)]
	}
	el, _, err := Parse(tail)
	if err != nil {
		return nil, fmt.Errorf("extracting <%s>: %w", name, err)
	}
	return el, nil
}

// indexTag finds the first opening tag named name in s, or -1.
func indexTag(s, name string) int {
	open := "<" + name
	offset := 0
	for {
		i := strings.Index(s[offset:], open)
		if i < 0 {
			return -1
		}
		at := offset + i
		after := at + len(open)
		if after >= len(s) {
			return -1
		}
		if c := s[after]; c == '>' || c == '/' || unicode.IsSpace(rune(c)) {
			return at
		}
		offset = after
	}
}

// NextTag returns the tag at the start of s once leading whitespace is
// skipped. ok is false when s does not start with a readable tag.
func NextTag(s string) (tag Tag, ok bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if !strings.HasPrefix(s, "<") {
		return Tag{}, false
	}
	end := strings.IndexByte(s, '>')
	if end < 0 {
		return Tag{}, false
	}
	tag, err := ParseTag(s[1:end])
	if err != nil {
		return Tag{}, false
	}
	return tag, true
}
