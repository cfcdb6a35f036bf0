package render

import (
	"strings"

	"github.com/jcdickinson/ferrisdoc/internal/fragment"
	"github.com/jcdickinson/ferrisdoc/internal/rustdoc"
)

// Terminal renders the page for a terminal, colouring identifiers with the
// theme. Whether escape codes are emitted depends on the theme's renderer.
func Terminal(p *rustdoc.Page, theme Theme) string {
	w := termWriter{theme: theme}
	walk(&w, p)
	return strings.Join(w.blocks, "\n\n") + "\n"
}

type termWriter struct {
	theme  Theme
	blocks []string
}

func (w *termWriter) add(block string) {
	if strings.TrimSpace(block) != "" {
		w.blocks = append(w.blocks, block)
	}
}

func (w *termWriter) heading(level int, fs []fragment.Fragment) {
	text := strings.TrimSpace(fragment.PlainText(fs))
	if text == "" {
		return
	}
	switch level {
	case 1:
		w.add(w.theme.heading.Render(strings.TrimSpace(w.inline(fs))))
	case 2:
		w.add(w.theme.heading.Render(text))
	default:
		w.add(w.theme.subtle.Render(text))
	}
}

func (w *termWriter) signature(level int, fs []fragment.Fragment) {
	prefix := ""
	if level > 3 {
		prefix = "  "
	}
	w.add(prefix + w.inline(fs))
}

func (w *termWriter) codeBlock(code string) {
	w.add(w.theme.codeBlock.Render(strings.TrimRight(code, "\n")))
}

func (w *termWriter) flow(fs []fragment.Fragment) {
	var cur []fragment.Fragment
	flush := func() {
		if text := strings.TrimSpace(w.inline(cur)); text != "" {
			w.add(text)
		}
		cur = cur[:0]
	}
	for _, f := range fs {
		switch {
		case isBreak(f):
			flush()
		case f.Kind == fragment.KindCodeBlock:
			flush()
			w.codeBlock(f.PlainText())
		default:
			cur = append(cur, f)
		}
	}
	flush()
}

func (w *termWriter) list(items []listItem) {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		line := "• " + w.inline(item.head)
		if desc := strings.TrimSpace(w.inline(withoutBreaks(item.desc))); desc != "" {
			line += "\n    " + desc
		}
		lines = append(lines, line)
	}
	w.add(strings.Join(lines, "\n"))
}

func (w *termWriter) inline(fs []fragment.Fragment) string {
	var b strings.Builder
	for _, f := range fs {
		switch f.Kind {
		case fragment.KindRaw:
			b.WriteString(f.Text)
		case fragment.KindBold:
			b.WriteString(w.theme.bold.Render(fragment.PlainText(f.Children)))
		case fragment.KindCode, fragment.KindCodeBlock:
			b.WriteString(w.theme.code.Render(f.PlainText()))
		case fragment.KindColored:
			b.WriteString(w.theme.colored(f.Color, f.PlainText()))
		}
	}
	return b.String()
}

// withoutBreaks joins paragraphs with a space, for single-line list entries.
func withoutBreaks(fs []fragment.Fragment) []fragment.Fragment {
	out := make([]fragment.Fragment, 0, len(fs))
	for _, f := range fs {
		if isBreak(f) {
			out = append(out, fragment.Raw(" "))
			continue
		}
		out = append(out, f)
	}
	return out
}
