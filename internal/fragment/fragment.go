package fragment

import "strings"

// Kind discriminates the variants of a Fragment.
type Kind string

const (
	KindRaw       Kind = "raw"
	KindBold      Kind = "bold"
	KindCode      Kind = "code"
	KindCodeBlock Kind = "code_block"
	KindColored   Kind = "colored"
)

// Fragment is a unit of semantically tagged text.
//
// It is a tagged union flattened into one struct so that it serializes as-is:
//   - KindRaw carries Text.
//   - KindBold carries any number of Children.
//   - KindCode, KindCodeBlock and KindColored carry exactly one child; KindColored also carries Color.
type Fragment struct {
	Kind     Kind       `json:"kind" yaml:"kind"`
	Text     string     `json:"text,omitempty" yaml:"text,omitempty"`
	Children []Fragment `json:"children,omitempty" yaml:"children,omitempty"`
	Color    ColorTag   `json:"color,omitempty" yaml:"color,omitempty"`
}

func Raw(s string) Fragment {
	return Fragment{Kind: KindRaw, Text: s}
}

func Bold(children ...Fragment) Fragment {
	return Fragment{Kind: KindBold, Children: children}
}

func Code(inner Fragment) Fragment {
	return Fragment{Kind: KindCode, Children: []Fragment{inner}}
}

func CodeBlock(inner Fragment) Fragment {
	return Fragment{Kind: KindCodeBlock, Children: []Fragment{inner}}
}

func Colored(inner Fragment, color ColorTag) Fragment {
	return Fragment{Kind: KindColored, Children: []Fragment{inner}, Color: color}
}

// Inner returns the wrapped fragment of a Code, CodeBlock or Colored fragment.
func (f Fragment) Inner() (Fragment, bool) {
	switch f.Kind {
	case KindCode, KindCodeBlock, KindColored:
		if len(f.Children) == 1 {
			return f.Children[0], true
		}
	}
	return Fragment{}, false
}

// PlainText flattens the fragment into its visible text, dropping all tagging.
func (f Fragment) PlainText() string {
	if f.Kind == KindRaw {
		return f.Text
	}
	var b strings.Builder
	for _, c := range f.Children {
		b.WriteString(c.PlainText())
	}
	return b.String()
}

// Unescape returns a copy of the fragment with every raw leaf unescaped.
func (f Fragment) Unescape() Fragment {
	if f.Kind == KindRaw {
		return Raw(Unescape(f.Text))
	}
	out := f
	out.Children = UnescapeAll(f.Children)
	return out
}

// UnescapeAll unescapes each fragment of fs into a new slice.
func UnescapeAll(fs []Fragment) []Fragment {
	if fs == nil {
		return nil
	}
	out := make([]Fragment, len(fs))
	for i, f := range fs {
		out[i] = f.Unescape()
	}
	return out
}

// PlainText concatenates the plain text of a fragment sequence.
func PlainText(fs []Fragment) string {
	var b strings.Builder
	for _, f := range fs {
		b.WriteString(f.PlainText())
	}
	return b.String()
}

var unescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&#x27;", "'",
	"&#39;", "'",
	"&quot;", `"`,
)

// Unescape turns the HTML entities emitted by rustdoc back into plain characters.
// Replacement is a single pass, so "&amp;lt;" becomes "&lt;" and not "<".
func Unescape(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	return unescaper.Replace(s)
}
