package markup

import (
	"strings"

	"github.com/jcdickinson/ferrisdoc/internal/fragment"
)

// Zip interleaves the text runs of e with the resolved form of its children
// and returns the sequence a reader sees, unescaped.
//
// Text runs and children are emitted in document order, with these rules:
//   - container (div) and button children are skipped;
//   - children carrying the "where" class are zipped on their own and moved
//     to the end, after any trailing text;
//   - text runs made only of layout whitespace (whitespace with a newline)
//     are skipped;
//   - a child with no text produces nothing.
func Zip(e *Element) []fragment.Fragment {
	return fragment.UnescapeAll(zip(e))
}

func zip(e *Element) []fragment.Fragment {
	var out, where []fragment.Fragment
	for _, n := range e.Nodes {
		if n.Child == nil {
			if isLayout(n.Text) {
				continue
			}
			out = append(out, fragment.Raw(n.Text))
			continue
		}

		c := n.Child
		switch {
		case c.HasClass("where"):
			where = append(where, zip(c)...)
		case c.Kind == "div", c.Kind == "button":
		default:
			if f, ok := resolve(c); ok {
				out = append(out, f)
			}
		}
	}
	return append(out, where...)
}

// resolve turns a child element into the single fragment that stands for it.
func resolve(c *Element) (fragment.Fragment, bool) {
	for _, class := range c.Attributes.Classes() {
		if tag, ok := fragment.ColorForClass(class); ok {
			text := c.Text()
			if text == "" {
				return fragment.Fragment{}, false
			}
			return fragment.Colored(fragment.Raw(text), tag), true
		}
	}

	switch c.Kind {
	case "code":
		text := c.Text()
		if text == "" {
			return fragment.Fragment{}, false
		}
		return fragment.Code(fragment.Raw(text)), true
	case "strong", "b":
		inner := zip(c)
		if len(inner) == 0 {
			return fragment.Fragment{}, false
		}
		return fragment.Bold(inner...), true
	}

	// A link around code, as in <a href="..."><code>Vec</code></a>.
	if len(c.Nodes) > 0 && c.Nodes[0].Child != nil && c.Nodes[0].Child.Kind == "code" {
		if text := c.Nodes[0].Child.Text(); text != "" {
			return fragment.Code(fragment.Raw(text)), true
		}
	}

	text := c.Text()
	if text == "" {
		return fragment.Fragment{}, false
	}
	return fragment.Raw(text), true
}

func isLayout(s string) bool {
	return strings.TrimSpace(s) == "" && strings.ContainsRune(s, '\n')
}

// ZipCode flattens a code element into a single raw fragment holding its
// exact text, whitespace included. Lines rustdoc hides from examples
// ("boring" spans) are left out.
func ZipCode(e *Element) fragment.Fragment {
	var b strings.Builder
	e.writeText(&b, func(c *Element) bool { return c.HasClass("boring") })
	return fragment.Raw(fragment.Unescape(b.String()))
}
