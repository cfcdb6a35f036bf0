package rustdoc

import (
	"fmt"
	"strings"

	"github.com/jcdickinson/ferrisdoc/internal/fragment"
	"github.com/jcdickinson/ferrisdoc/internal/markup"
)

// SectionKind names the shape of a section's content.
type SectionKind string

const (
	SectionFields                   SectionKind = "fields"
	SectionImplementations          SectionKind = "implementations"
	SectionTraitImplementations     SectionKind = "trait_implementations"
	SectionAutoTraitImplementations SectionKind = "auto_trait_implementations"
	SectionBlanketImplementations   SectionKind = "blanket_implementations"
	SectionVariants                 SectionKind = "variants"
	SectionRequiredAssociatedTypes  SectionKind = "required_associated_types"
	SectionObjectSafety             SectionKind = "object_safety"
	SectionMethods                  SectionKind = "methods"
	SectionUnknown                  SectionKind = "unknown"
)

// MainContent is the ordered list of sections after the top-level docs.
type MainContent []Section

// Section is one <h2> block of the main content.
type Section struct {
	Name    fragment.Fragment `json:"name" yaml:"name"`
	Content SectionContent    `json:"content" yaml:"content"`
}

// Title is the plain heading of the section.
func (s Section) Title() string {
	return s.Name.PlainText()
}

// SectionContent holds the records of a section. Only the field matching
// Kind is set.
type SectionContent struct {
	Kind SectionKind `json:"kind" yaml:"kind"`

	Fields               []Field               `json:"fields,omitempty" yaml:"fields,omitempty"`
	Implementations      []Implementation      `json:"implementations,omitempty" yaml:"implementations,omitempty"`
	TraitImplementations []TraitImplementation `json:"trait_implementations,omitempty" yaml:"trait_implementations,omitempty"`
	Variants             []Variant             `json:"variants,omitempty" yaml:"variants,omitempty"`
	AssociatedTypes      []AssociatedType      `json:"associated_types,omitempty" yaml:"associated_types,omitempty"`
	Methods              []Method              `json:"methods,omitempty" yaml:"methods,omitempty"`
	// Fragments is the body of object safety notes and the best-effort
	// rendering of an unknown section.
	Fragments []fragment.Fragment `json:"fragments,omitempty" yaml:"fragments,omitempty"`
	// Heading is the raw heading of an unknown section.
	Heading string `json:"heading,omitempty" yaml:"heading,omitempty"`
}

// Len is the number of records in the section.
func (c SectionContent) Len() int {
	switch c.Kind {
	case SectionFields:
		return len(c.Fields)
	case SectionImplementations:
		return len(c.Implementations)
	case SectionTraitImplementations, SectionAutoTraitImplementations, SectionBlanketImplementations:
		return len(c.TraitImplementations)
	case SectionVariants:
		return len(c.Variants)
	case SectionRequiredAssociatedTypes:
		return len(c.AssociatedTypes)
	case SectionMethods:
		return len(c.Methods)
	default:
		if len(c.Fragments) > 0 {
			return 1
		}
		return 0
	}
}

// Field is a named or positional field of a struct.
type Field struct {
	Content     []fragment.Fragment `json:"content" yaml:"content"`
	Description []fragment.Fragment `json:"description,omitempty" yaml:"description,omitempty"`
}

// Method is an associated function: its signature and its docs.
type Method struct {
	Signature   []fragment.Fragment `json:"signature" yaml:"signature"`
	Description Description         `json:"description" yaml:"description"`
}

// Implementation is an inherent impl block.
type Implementation struct {
	Type    fragment.Fragment `json:"type" yaml:"type"`
	Methods []Method          `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// TraitImplementation is a trait impl block. Auto trait impls carry no methods.
type TraitImplementation struct {
	Trait   fragment.Fragment `json:"trait" yaml:"trait"`
	Methods []Method          `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// Variant is an enum variant.
type Variant struct {
	Name        fragment.Fragment   `json:"name" yaml:"name"`
	Description []fragment.Fragment `json:"description,omitempty" yaml:"description,omitempty"`
}

// AssociatedType is a required associated type of a trait.
type AssociatedType struct {
	Name        fragment.Fragment   `json:"name" yaml:"name"`
	Description []fragment.Fragment `json:"description,omitempty" yaml:"description,omitempty"`
}

type sectionParser func(body string) (SectionContent, []Diagnostic)

var sectionParsers = map[string]sectionParser{
	"Fields":                     parseFields,
	"Tuple Fields":               parseFields,
	"Implementations":            parseImplementations,
	"Trait Implementations":      parseTraitImplementations,
	"Auto Trait Implementations": parseAutoTraitImplementations,
	"Blanket Implementations":    parseBlanketImplementations,
	"Variants":                   parseVariants,
	"Required Associated Types":  parseRequiredAssociatedTypes,
	"Object Safety":              parseObjectSafety,
	"Dyn Compatibility":          parseObjectSafety,
	"Required Methods":           parseMethodsSection,
	"Provided Methods":           parseMethodsSection,
}

// splitSections cuts the section region at every <h2, dropping whatever
// precedes the first heading.
func splitSections(s string) []string {
	return splitBefore(s, "<h2")
}

// parseSection reads the heading of chunk and hands the rest to the parser
// registered for it. A section always comes back, degraded to
// SectionUnknown when the heading is unknown or unreadable.
func parseSection(chunk string) (Section, []Diagnostic) {
	head, body, ok := strings.Cut(chunk, "</h2>")
	if !ok {
		err := fmt.Errorf("%w: section heading is never closed", markup.ErrUnexpectedEOF)
		return unknownSection("", ""), []Diagnostic{newDiagnostic(-1, err)}
	}

	h2, _, err := markup.Parse(head + "</h2>")
	if err != nil {
		return unknownSection("", body), []Diagnostic{newDiagnostic(-1, fmt.Errorf("section heading: %w", err))}
	}
	name := headingName(h2)
	if name == "" {
		err := fmt.Errorf("section heading: %w", markup.ErrEmptyContent)
		return unknownSection("", body), []Diagnostic{newDiagnostic(-1, err)}
	}

	parse, ok := sectionParsers[name]
	if !ok {
		diag := newDiagnostic(-1, fmt.Errorf("%w: %q", ErrUnknownSection, name))
		return unknownSection(name, body), inSection(name, []Diagnostic{diag})
	}

	content, diags := parse(body)
	return Section{Name: fragment.Bold(fragment.Raw(name)), Content: content}, inSection(name, diags)
}

func unknownSection(heading, body string) Section {
	content := SectionContent{Kind: SectionUnknown, Heading: heading}
	if el, _, err := markup.Parse(body); err == nil {
		content.Fragments = markup.Zip(el)
	}
	return Section{Name: fragment.Bold(fragment.Raw(heading)), Content: content}
}

const fieldAnchor = `<span id="structfield.`

// parseFields cuts before every field anchor. An undocumented field has no
// docblock after it, so the end of a docblock does not bound a field.
func parseFields(body string) (SectionContent, []Diagnostic) {
	content := SectionContent{Kind: SectionFields}
	var diags []Diagnostic
	for i, chunk := range splitBefore(body, fieldAnchor) {
		head, tail, ok := strings.Cut(chunk, "</span>")
		if !ok {
			diags = append(diags, newDiagnostic(i, fmt.Errorf("%w: field is never closed", markup.ErrUnexpectedEOF)))
			continue
		}
		code, err := markup.Extract("code", head)
		if err != nil {
			diags = append(diags, newDiagnostic(i, fmt.Errorf("field: %w", err)))
			continue
		}
		desc, errs := paragraphs(tail)
		diags = append(diags, atRecord(i, errs)...)
		content.Fields = append(content.Fields, Field{Content: markup.Zip(code), Description: desc})
	}
	return content, diags
}

func parseVariants(body string) (SectionContent, []Diagnostic) {
	content := SectionContent{Kind: SectionVariants}
	var diags []Diagnostic
	for i, block := range splitBefore(body, "<h3") {
		h3, err := markup.Extract("h3", block)
		if err != nil {
			diags = append(diags, newDiagnostic(i, fmt.Errorf("variant: %w", err)))
			continue
		}
		name := markup.Zip(h3)
		if len(name) == 0 {
			diags = append(diags, newDiagnostic(i, fmt.Errorf("variant: %w", markup.ErrEmptyContent)))
			continue
		}

		_, rest, _ := strings.Cut(block, "</h3>")
		// Docs of struct-like variant fields follow the variant's own docs.
		rest, _, _ = strings.Cut(rest, `<div class="sub-variant"`)
		desc, errs := paragraphs(rest)
		diags = append(diags, atRecord(i, errs)...)
		content.Variants = append(content.Variants, Variant{Name: fragment.Bold(name...), Description: desc})
	}
	return content, diags
}

// parseRequiredAssociatedTypes cuts before every <h4. Only documented types
// are wrapped in a toggle, so toggles do not bound a type either.
func parseRequiredAssociatedTypes(body string) (SectionContent, []Diagnostic) {
	content := SectionContent{Kind: SectionRequiredAssociatedTypes}
	var diags []Diagnostic
	for i, chunk := range splitBefore(body, "<h4") {
		h4, err := markup.Extract("h4", chunk)
		if err != nil {
			diags = append(diags, newDiagnostic(i, fmt.Errorf("associated type: %w", err)))
			continue
		}
		name := markup.Zip(h4)
		if len(name) == 0 {
			diags = append(diags, newDiagnostic(i, fmt.Errorf("associated type: %w", markup.ErrEmptyContent)))
			continue
		}
		_, rest, _ := strings.Cut(chunk, "</h4>")
		desc, errs := paragraphs(rest)
		diags = append(diags, atRecord(i, errs)...)
		content.AssociatedTypes = append(content.AssociatedTypes, AssociatedType{
			Name:        fragment.Bold(name...),
			Description: desc,
		})
	}
	return content, diags
}

func parseObjectSafety(body string) (SectionContent, []Diagnostic) {
	content := SectionContent{Kind: SectionObjectSafety}
	el, _, err := markup.Parse(body)
	if err != nil {
		return content, []Diagnostic{newDiagnostic(-1, err)}
	}
	content.Fragments = markup.Zip(el)
	if len(content.Fragments) == 0 {
		if p := el.Find("p"); p != nil {
			content.Fragments = markup.Zip(p)
		}
	}
	return content, nil
}

// splitBefore splits s at every occurrence of sep, keeping sep at the start of
// each chunk. Text before the first sep is dropped.
func splitBefore(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		out = append(out, sep+p)
	}
	return out
}

// SectionSummary describes one section of a page.
type SectionSummary struct {
	Name    string      `json:"name" yaml:"name"`
	Kind    SectionKind `json:"kind" yaml:"kind"`
	Records int         `json:"records" yaml:"records"`
}

// Summary lists the sections of the page in order.
func (p *Page) Summary() []SectionSummary {
	out := make([]SectionSummary, len(p.MainContent))
	for i, sec := range p.MainContent {
		out[i] = SectionSummary{Name: sec.Title(), Kind: sec.Content.Kind, Records: sec.Content.Len()}
	}
	return out
}
