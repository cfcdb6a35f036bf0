package markup

import (
	"fmt"
	"strings"
	"unicode"
)

// TagKind tells whether a tag opens, closes or stands alone.
type TagKind int

const (
	Opening TagKind = iota
	Closing
	SelfTerminating
)

func (k TagKind) String() string {
	switch k {
	case Opening:
		return "opening"
	case Closing:
		return "closing"
	case SelfTerminating:
		return "self-terminating"
	default:
		return fmt.Sprintf("TagKind(%d)", int(k))
	}
}

// Attribute is a single name="value" pair. Boolean attributes have an empty value.
type Attribute struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Attributes keeps attributes in source order with unique names.
type Attributes []Attribute

// Get returns the value of the named attribute.
func (a Attributes) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// HasClass reports whether the class attribute contains class as one of its tokens.
func (a Attributes) HasClass(class string) bool {
	v, ok := a.Get("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// Classes returns the tokens of the class attribute.
func (a Attributes) Classes() []string {
	v, _ := a.Get("class")
	return strings.Fields(v)
}

// set adds name or, when it is already present, overwrites its value in place.
func (a *Attributes) set(name, value string) {
	for i := range *a {
		if (*a)[i].Name == name {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Attribute{Name: name, Value: value})
}

// Tag is the tokenized text of one markup tag.
type Tag struct {
	Name       string
	Kind       TagKind
	Attributes Attributes
}

// selfTerminating holds the element names that never have a closing tag.
var selfTerminating = map[string]struct{}{
	"area":     {},
	"base":     {},
	"br":       {},
	"col":      {},
	"command":  {},
	"embed":    {},
	"hr":       {},
	"img":      {},
	"input":    {},
	"keygen":   {},
	"link":     {},
	"menuitem": {},
	"meta":     {},
	"param":    {},
	"source":   {},
	"track":    {},
	"wbr":      {},
}

// ParseTag tokenizes the text found between '<' and '>' (brackets excluded).
//
// The name runs up to the first whitespace. The remainder is split on double
// quotes: even chunks hold attribute names, odd chunks hold their values. A
// closing tag's leading '/' is removed from Name.
func ParseTag(s string) (Tag, error) {
	s = strings.TrimSpace(s)
	trailingSlash := false
	if strings.HasSuffix(s, "/") && len(s) > 1 {
		trailingSlash = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "/"))
	}

	name, rest := s, ""
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		name, rest = s[:i], s[i+1:]
	}
	if name == "" || name == "/" {
		return Tag{}, fmt.Errorf("%w: missing name in <%s>", ErrMalformedTag, clip(s))
	}

	attrs, err := parseAttributes(rest)
	if err != nil {
		return Tag{}, fmt.Errorf("%w: %v in <%s>", ErrMalformedTag, err, clip(s))
	}

	tag := Tag{Name: name, Attributes: attrs}
	lower := strings.ToLower(name)
	_, void := selfTerminating[lower]
	switch {
	case void || trailingSlash || strings.HasPrefix(name, "!") || strings.HasPrefix(name, "?"):
		tag.Kind = SelfTerminating
	case strings.HasPrefix(name, "/"):
		tag.Kind = Closing
		tag.Name = name[1:]
	default:
		tag.Kind = Opening
	}
	return tag, nil
}

func parseAttributes(s string) (Attributes, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	if strings.Count(s, `"`)%2 != 0 {
		return nil, fmt.Errorf("unterminated attribute value")
	}

	var attrs Attributes
	chunks := strings.Split(s, `"`)
	for i := 0; i < len(chunks); i += 2 {
		names := strings.FieldsFunc(chunks[i], func(r rune) bool {
			return unicode.IsSpace(r) || r == '='
		})
		hasValue := i+1 < len(chunks)
		if hasValue && len(names) == 0 {
			return nil, fmt.Errorf("attribute value %q has no name", chunks[i+1])
		}
		for j, name := range names {
			if hasValue && j == len(names)-1 {
				attrs.set(name, strings.TrimSpace(chunks[i+1]))
				continue
			}
			attrs.set(name, "")
		}
	}
	return attrs, nil
}
