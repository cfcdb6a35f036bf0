package rustdoc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jcdickinson/ferrisdoc/internal/fragment"
	"github.com/jcdickinson/ferrisdoc/internal/markup"
)

// Description is a documentation block: a few introductory paragraphs and
// optional named subsections such as "Examples" or "Panics".
//
// Paragraphs and blocks are flattened into one fragment sequence each,
// separated by a Raw("\n") fragment.
type Description struct {
	Introduction []fragment.Fragment  `json:"introduction,omitempty" yaml:"introduction,omitempty"`
	Sections     []DescriptionSection `json:"sections,omitempty" yaml:"sections,omitempty"`
}

// DescriptionSection is a named subsection of a Description.
type DescriptionSection struct {
	Name    fragment.Fragment   `json:"name" yaml:"name"`
	Content []fragment.Fragment `json:"content,omitempty" yaml:"content,omitempty"`
}

var paragraphBreak = fragment.Raw("\n")

// ParseDescription parses the documentation of an associated item, whose
// subsections start at <h5> headings.
func ParseDescription(s string) (Description, []error) {
	return parseDescription(s, "h5")
}

// parseDescription splits s at the first <heading>: what comes before is the
// introduction, every further <heading> starts a subsection.
func parseDescription(s, heading string) (Description, []error) {
	open := "<" + heading
	intro, rest, hasSections := strings.Cut(s, open)

	var d Description
	var errs []error
	d.Introduction, errs = paragraphs(intro)
	if !hasSections {
		return d, errs
	}

	for _, chunk := range strings.Split(rest, open) {
		sec, secErrs := parseDescriptionSection(open+chunk, heading)
		errs = append(errs, secErrs...)
		if sec != nil {
			d.Sections = append(d.Sections, *sec)
		}
	}
	return d, errs
}

// paragraphs collects every <p> of s, in order.
func paragraphs(s string) ([]fragment.Fragment, []error) {
	var out []fragment.Fragment
	var errs []error
	for _, chunk := range strings.SplitAfter(s, "</p>") {
		p, err := markup.Extract("p", chunk)
		if errors.Is(err, markup.ErrNoElement) {
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = appendBlock(out, markup.Zip(p)...)
	}
	return out, errs
}

func appendBlock(out []fragment.Fragment, block ...fragment.Fragment) []fragment.Fragment {
	if len(block) == 0 {
		return out
	}
	if len(out) > 0 {
		out = append(out, paragraphBreak)
	}
	return append(out, block...)
}

func parseDescriptionSection(chunk, heading string) (*DescriptionSection, []error) {
	h, err := markup.Extract(heading, chunk)
	if err != nil {
		return nil, []error{fmt.Errorf("subsection heading: %w", err)}
	}
	name := headingName(h)
	if name == "" {
		return nil, []error{fmt.Errorf("subsection heading: %w", markup.ErrEmptyContent)}
	}

	sec := &DescriptionSection{Name: fragment.Bold(fragment.Raw(name))}
	_, body, _ := strings.Cut(chunk, "</"+heading+">")

	var errs []error
	for {
		tag, ok := markup.NextTag(body)
		if !ok || tag.Kind != markup.Opening {
			break
		}
		var block []fragment.Fragment
		switch tag.Name {
		case "p", "div", "pre", "ul", "ol", "blockquote":
		default:
			return sec, errs
		}

		el, rest, err := markup.Parse(body)
		if err != nil {
			errs = append(errs, fmt.Errorf("subsection %q: %w", name, err))
			break
		}
		body = rest

		switch tag.Name {
		case "p", "blockquote":
			block = markup.Zip(el)
		case "div", "pre":
			code := el.Find("code")
			if code == nil {
				continue
			}
			block = []fragment.Fragment{fragment.CodeBlock(markup.ZipCode(code))}
		case "ul", "ol":
			block = listItems(el)
		}
		sec.Content = appendBlock(sec.Content, block...)
	}
	return sec, errs
}

// listItems renders each <li> as a "- " prefixed line.
func listItems(list *markup.Element) []fragment.Fragment {
	var out []fragment.Fragment
	for _, li := range list.Children {
		if li.Kind != "li" {
			continue
		}
		if len(out) > 0 {
			out = append(out, paragraphBreak)
		}
		out = append(out, fragment.Raw("- "))
		out = append(out, markup.Zip(li)...)
	}
	return out
}

// headingName returns the visible name of a doc heading. Older rustdoc wraps
// the text in a link; newer versions put a "§" link first and the text after.
func headingName(h *markup.Element) string {
	if text, ok := h.FirstText(); ok && strings.TrimSpace(text) != "" {
		return strings.TrimSpace(fragment.Unescape(text))
	}
	if a := h.Find("a"); a != nil {
		return strings.TrimSpace(fragment.Unescape(a.Text()))
	}
	return ""
}
