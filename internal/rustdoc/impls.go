package rustdoc

import (
	"fmt"
	"strings"

	"github.com/jcdickinson/ferrisdoc/internal/fragment"
	"github.com/jcdickinson/ferrisdoc/internal/markup"
)

const (
	openImplToggle   = `<details class="toggle implementors-toggle" open>`
	closedImplToggle = `<details class="toggle implementors-toggle">`
)

func parseImplementations(body string) (SectionContent, []Diagnostic) {
	content := SectionContent{Kind: SectionImplementations}
	var diags []Diagnostic
	for i, block := range splitAfterFirst(body, openImplToggle) {
		header, methods, errs := parseImplBlock(block)
		diags = append(diags, atRecord(i, errs)...)
		if header == nil {
			continue
		}
		content.Implementations = append(content.Implementations, Implementation{Type: *header, Methods: methods})
	}
	return content, diags
}

func parseBlanketImplementations(body string) (SectionContent, []Diagnostic) {
	content := SectionContent{Kind: SectionBlanketImplementations}
	var diags []Diagnostic
	for i, block := range splitAfterFirst(body, closedImplToggle) {
		header, methods, errs := parseImplBlock(block)
		diags = append(diags, atRecord(i, errs)...)
		if header == nil {
			continue
		}
		content.TraitImplementations = append(content.TraitImplementations, TraitImplementation{Trait: *header, Methods: methods})
	}
	return content, diags
}

// parseTraitImplementations cuts at every impl header rather than at the
// closing of each toggle, since the method toggles nested in an impl close
// with the same tag.
func parseTraitImplementations(body string) (SectionContent, []Diagnostic) {
	content := SectionContent{Kind: SectionTraitImplementations}
	var diags []Diagnostic
	for i, block := range splitBefore(body, "<h3") {
		h3, err := markup.Extract("h3", block)
		if err != nil {
			diags = append(diags, newDiagnostic(i, fmt.Errorf("impl header: %w", err)))
			continue
		}
		_, rest, _ := strings.Cut(block, "</h3>")
		methods, errs := parseMethods(rest)
		diags = append(diags, atRecord(i, errs)...)
		content.TraitImplementations = append(content.TraitImplementations, TraitImplementation{
			Trait:   fragment.Bold(markup.Zip(h3)...),
			Methods: methods,
		})
	}
	return content, diags
}

func parseAutoTraitImplementations(body string) (SectionContent, []Diagnostic) {
	content := SectionContent{Kind: SectionAutoTraitImplementations}
	var diags []Diagnostic
	record := 0
	for _, chunk := range strings.Split(body, "</section>") {
		if !strings.Contains(chunk, "<h3") {
			continue
		}
		h3, err := markup.Extract("h3", chunk)
		if err != nil {
			diags = append(diags, newDiagnostic(record, fmt.Errorf("impl header: %w", err)))
			record++
			continue
		}
		content.TraitImplementations = append(content.TraitImplementations, TraitImplementation{
			Trait: fragment.Bold(markup.Zip(h3)...),
		})
		record++
	}
	return content, diags
}

func parseMethodsSection(body string) (SectionContent, []Diagnostic) {
	methods, errs := parseMethods(body)
	return SectionContent{Kind: SectionMethods, Methods: methods}, atRecord(-1, errs)
}

// parseImplBlock reads one impl toggle: the <summary> holds the header and
// everything after it is the list of methods. header is nil when the block
// cannot be read.
func parseImplBlock(block string) (*fragment.Fragment, []Method, []error) {
	summary, rest, ok := strings.Cut(block, "</summary>")
	if !ok {
		return nil, nil, []error{fmt.Errorf("%w: impl summary is never closed", markup.ErrUnexpectedEOF)}
	}
	h3, err := markup.Extract("h3", summary)
	if err != nil {
		return nil, nil, []error{fmt.Errorf("impl header: %w", err)}
	}
	header := fragment.Bold(markup.Zip(h3)...)
	methods, errs := parseMethods(rest)
	return &header, methods, errs
}

// parseMethods reads every <h4> signature in s along with the docs that
// follow it. Methods that cannot be read are skipped.
func parseMethods(s string) ([]Method, []error) {
	var methods []Method
	var errs []error
	for i, chunk := range splitBefore(s, "<h4") {
		m, methodErrs := parseMethod(chunk)
		for _, err := range methodErrs {
			errs = append(errs, fmt.Errorf("method %d: %w", i, err))
		}
		if m != nil {
			methods = append(methods, *m)
		}
	}
	return methods, errs
}

func parseMethod(chunk string) (*Method, []error) {
	h4, err := markup.Extract("h4", chunk)
	if err != nil {
		return nil, []error{fmt.Errorf("signature: %w", err)}
	}
	sig := markup.Zip(h4)
	if len(sig) == 0 {
		return nil, []error{fmt.Errorf("signature: %w", markup.ErrEmptyContent)}
	}
	_, rest, _ := strings.Cut(chunk, "</h4>")
	desc, errs := ParseDescription(rest)
	return &Method{Signature: sig, Description: desc}, errs
}

// splitAfterFirst splits s at every sep and drops the text before the first.
func splitAfterFirst(s, sep string) []string {
	parts := strings.Split(s, sep)
	return parts[1:]
}
