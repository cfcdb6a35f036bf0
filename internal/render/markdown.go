package render

import (
	"strings"

	"github.com/jcdickinson/ferrisdoc/internal/fragment"
	"github.com/jcdickinson/ferrisdoc/internal/rustdoc"
)

// Markdown renders the page as CommonMark. Colours are dropped; signatures
// and impl headers become code spans.
func Markdown(p *rustdoc.Page) string {
	var m markdownWriter
	walk(&m, p)
	return strings.Join(m.blocks, "\n\n") + "\n"
}

type markdownWriter struct {
	blocks []string
}

func (m *markdownWriter) add(block string) {
	if strings.TrimSpace(block) != "" {
		m.blocks = append(m.blocks, block)
	}
}

func (m *markdownWriter) heading(level int, fs []fragment.Fragment) {
	text := strings.TrimSpace(markdownInline(fs))
	if text == "" {
		return
	}
	m.add(strings.Repeat("#", level) + " " + text)
}

func (m *markdownWriter) signature(level int, fs []fragment.Fragment) {
	m.add(strings.Repeat("#", level) + " " + codeSpan(fragment.PlainText(fs)))
}

func (m *markdownWriter) codeBlock(code string) {
	m.add(fence(code))
}

func (m *markdownWriter) flow(fs []fragment.Fragment) {
	for _, b := range markdownBlocks(fs) {
		m.add(b)
	}
}

func (m *markdownWriter) list(items []listItem) {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		line := "- " + codeSpan(fragment.PlainText(item.head))
		blocks := markdownBlocks(item.desc)
		if len(blocks) > 0 {
			line += ": " + blocks[0]
		}
		for _, b := range blocks[1:] {
			line += "\n\n" + indent(b, "  ")
		}
		lines = append(lines, line)
	}
	m.add(strings.Join(lines, "\n"))
}

// markdownBlocks splits a flattened description into paragraphs and fenced
// code blocks.
func markdownBlocks(fs []fragment.Fragment) []string {
	var blocks []string
	var cur []fragment.Fragment
	flush := func() {
		if text := strings.TrimSpace(markdownInline(cur)); text != "" {
			blocks = append(blocks, text)
		}
		cur = cur[:0]
	}
	for _, f := range fs {
		switch {
		case isBreak(f):
			flush()
		case f.Kind == fragment.KindCodeBlock:
			flush()
			blocks = append(blocks, fence(f.PlainText()))
		default:
			cur = append(cur, f)
		}
	}
	flush()
	return blocks
}

func markdownInline(fs []fragment.Fragment) string {
	var b strings.Builder
	for _, f := range fs {
		switch f.Kind {
		case fragment.KindRaw:
			b.WriteString(escapeMarkdown(f.Text))
		case fragment.KindBold:
			inner := markdownInline(f.Children)
			if strings.TrimSpace(inner) == "" {
				b.WriteString(inner)
				continue
			}
			b.WriteString("**" + inner + "**")
		case fragment.KindCode, fragment.KindCodeBlock:
			b.WriteString(codeSpan(f.PlainText()))
		default:
			b.WriteString(escapeMarkdown(f.PlainText()))
		}
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// codeSpan wraps s in enough backticks that none inside can close it.
func codeSpan(s string) string {
	ticks := "`"
	for strings.Contains(s, ticks) {
		ticks += "`"
	}
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		s = " " + s + " "
	}
	return ticks + s + ticks
}

func fence(code string) string {
	ticks := "```"
	for strings.Contains(code, ticks) {
		ticks += "`"
	}
	return ticks + "rust\n" + strings.TrimRight(code, "\n") + "\n" + ticks
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
