// Package rustdoc turns a rustdoc item page into a structured Page.
//
// The page is cut into regions at fixed markers of the generator's output.
// A missing marker fails the whole parse. Anything that goes wrong inside a
// region only drops the record involved and is reported as a Diagnostic.
package rustdoc

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jcdickinson/ferrisdoc/internal/fragment"
	"github.com/jcdickinson/ferrisdoc/internal/markup"
)

const (
	anchorSidebarStart = "<section>"
	anchorSidebarEnd   = "</section>"
	anchorMainContent  = `<section id="main-content" class="content">`
	anchorScript       = "<script"
	anchorTopDocEnd    = "</details>"
)

// Page is a parsed rustdoc item page.
type Page struct {
	Title        []fragment.Fragment `json:"title,omitempty" yaml:"title,omitempty"`
	Declaration  *fragment.Fragment  `json:"declaration,omitempty" yaml:"declaration,omitempty"`
	Sidebar      Sidebar             `json:"sidebar" yaml:"sidebar"`
	Introduction Description         `json:"introduction" yaml:"introduction"`
	MainContent  MainContent         `json:"main_content" yaml:"main_content"`
	Diagnostics  []Diagnostic        `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Option configures Parse.
type Option func(*options)

type options struct {
	concurrency int
}

// WithConcurrency bounds how many sections are parsed at once. Values below
// one are treated as one.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = max(n, 1)
	}
}

// Parse builds a Page from the HTML of a rustdoc item page.
func Parse(src string, opts ...Option) (*Page, error) {
	o := options{concurrency: 1}
	for _, opt := range opts {
		opt(&o)
	}

	_, rest, ok := strings.Cut(src, anchorSidebarStart)
	if !ok {
		return nil, missingAnchor(anchorSidebarStart)
	}
	sidebarHTML, rest, ok := strings.Cut(rest, anchorSidebarEnd)
	if !ok {
		return nil, missingAnchor(anchorSidebarEnd)
	}
	_, rest, ok = strings.Cut(rest, anchorMainContent)
	if !ok {
		return nil, missingAnchor(anchorMainContent)
	}
	rest, _, ok = strings.Cut(rest, anchorScript)
	if !ok {
		return nil, missingAnchor(anchorScript)
	}
	topDoc, sectionsHTML, ok := strings.Cut(rest, anchorTopDocEnd)
	if !ok {
		return nil, missingAnchor(anchorTopDocEnd)
	}

	page := &Page{}

	sidebar, errs := ParseSidebar(sidebarHTML)
	page.Sidebar = sidebar
	page.report("sidebar", atRecord(-1, errs))

	title, err := markup.Extract("h1", topDoc)
	if err != nil {
		page.report("title", []Diagnostic{newDiagnostic(-1, err)})
	} else {
		page.Title = markup.Zip(title)
	}

	decl, err := parseDeclaration(topDoc)
	if err != nil {
		page.report("declaration", []Diagnostic{newDiagnostic(-1, err)})
	} else {
		page.Declaration = decl
	}

	intro, errs := parseDescription(topDoc, "h2")
	page.Introduction = intro
	page.report("introduction", atRecord(-1, errs))

	content, diags := parseMainContent(sectionsHTML, o.concurrency)
	page.MainContent = content
	page.report("", diags)
	return page, nil
}

func missingAnchor(anchor string) error {
	return fmt.Errorf("%w: %q", ErrMissingAnchor, anchor)
}

// report appends diags, stamping section on them unless it is empty.
func (p *Page) report(section string, diags []Diagnostic) {
	if section != "" {
		diags = inSection(section, diags)
	}
	p.Diagnostics = append(p.Diagnostics, diags...)
}

// parseDeclaration reads the item declaration block, which rustdoc marks
// with the "item-decl" class on either a <pre> or a wrapping <div>.
func parseDeclaration(topDoc string) (*fragment.Fragment, error) {
	at := strings.Index(topDoc, "item-decl")
	if at < 0 {
		return nil, fmt.Errorf("%w: item declaration", markup.ErrNoElement)
	}
	start := strings.LastIndexByte(topDoc[:at], '<')
	if start < 0 {
		return nil, fmt.Errorf("%w: item declaration", markup.ErrMalformedTag)
	}
	el, _, err := markup.Parse(topDoc[start:])
	if err != nil {
		return nil, fmt.Errorf("item declaration: %w", err)
	}
	code := el
	if el.Kind != "code" {
		code = el.Find("code")
	}
	if code == nil {
		return nil, fmt.Errorf("%w: item declaration <code>", markup.ErrNoElement)
	}
	block := fragment.CodeBlock(markup.ZipCode(code))
	return &block, nil
}

// ParseMainContent parses the region after the top-level docs, one section
// per <h2>, with at most concurrency sections in flight. Sections keep their
// document order.
func ParseMainContent(s string, concurrency int) (MainContent, []Diagnostic) {
	return parseMainContent(s, max(concurrency, 1))
}

func parseMainContent(s string, concurrency int) (MainContent, []Diagnostic) {
	chunks := splitSections(s)
	sections := make(MainContent, len(chunks))
	diags := make([][]Diagnostic, len(chunks))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			sections[i], diags[i] = parseSection(chunk)
			return nil
		})
	}
	_ = g.Wait()

	var all []Diagnostic
	for _, d := range diags {
		all = append(all, d...)
	}
	return sections, all
}

// Section returns the first section whose heading is name.
func (p *Page) Section(name string) (Section, bool) {
	for _, s := range p.MainContent {
		if s.Title() == name {
			return s, true
		}
	}
	return Section{}, false
}
