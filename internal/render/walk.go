package render

import (
	"github.com/jcdickinson/ferrisdoc/internal/fragment"
	"github.com/jcdickinson/ferrisdoc/internal/rustdoc"
)

// writer is a rendering target. walk drives it through a page top to bottom.
type writer interface {
	heading(level int, fs []fragment.Fragment)
	// signature is a heading made of code: an impl header or a method.
	signature(level int, fs []fragment.Fragment)
	codeBlock(code string)
	// flow writes a flattened description: paragraphs separated by a
	// Raw("\n") fragment, with code blocks inline.
	flow(fs []fragment.Fragment)
	list(items []listItem)
}

type listItem struct {
	head []fragment.Fragment
	desc []fragment.Fragment
}

func walk(w writer, p *rustdoc.Page) {
	if len(p.Title) > 0 {
		w.heading(1, p.Title)
	}
	if p.Declaration != nil {
		w.codeBlock(p.Declaration.PlainText())
	}
	walkDescription(w, p.Introduction, 3)
	for _, s := range p.MainContent {
		walkSection(w, s)
	}
}

func walkDescription(w writer, d rustdoc.Description, level int) {
	w.flow(d.Introduction)
	for _, sec := range d.Sections {
		w.heading(level, unwrap(sec.Name))
		w.flow(sec.Content)
	}
}

func walkSection(w writer, s rustdoc.Section) {
	if s.Title() != "" {
		w.heading(2, unwrap(s.Name))
	}

	c := s.Content
	switch c.Kind {
	case rustdoc.SectionFields:
		items := make([]listItem, len(c.Fields))
		for i, f := range c.Fields {
			items[i] = listItem{head: f.Content, desc: f.Description}
		}
		w.list(items)
	case rustdoc.SectionVariants:
		items := make([]listItem, len(c.Variants))
		for i, v := range c.Variants {
			items[i] = listItem{head: unwrap(v.Name), desc: v.Description}
		}
		w.list(items)
	case rustdoc.SectionRequiredAssociatedTypes:
		items := make([]listItem, len(c.AssociatedTypes))
		for i, a := range c.AssociatedTypes {
			items[i] = listItem{head: unwrap(a.Name), desc: a.Description}
		}
		w.list(items)
	case rustdoc.SectionImplementations:
		for _, impl := range c.Implementations {
			w.signature(3, unwrap(impl.Type))
			walkMethods(w, impl.Methods)
		}
	case rustdoc.SectionAutoTraitImplementations:
		items := make([]listItem, len(c.TraitImplementations))
		for i, impl := range c.TraitImplementations {
			items[i] = listItem{head: unwrap(impl.Trait)}
		}
		w.list(items)
	case rustdoc.SectionTraitImplementations, rustdoc.SectionBlanketImplementations:
		for _, impl := range c.TraitImplementations {
			w.signature(3, unwrap(impl.Trait))
			walkMethods(w, impl.Methods)
		}
	case rustdoc.SectionMethods:
		walkMethods(w, c.Methods)
	default:
		w.flow(c.Fragments)
	}
}

func walkMethods(w writer, methods []rustdoc.Method) {
	for _, m := range methods {
		w.signature(4, m.Signature)
		walkDescription(w, m.Description, 5)
	}
}

// unwrap drops the Bold wrapper rustdoc headings come in.
func unwrap(f fragment.Fragment) []fragment.Fragment {
	if f.Kind == fragment.KindBold {
		return f.Children
	}
	return []fragment.Fragment{f}
}

func isBreak(f fragment.Fragment) bool {
	return f.Kind == fragment.KindRaw && f.Text == "\n"
}
