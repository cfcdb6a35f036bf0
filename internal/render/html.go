package render

import (
	gm "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	gmparser "github.com/gomarkdown/markdown/parser"

	"github.com/jcdickinson/ferrisdoc/internal/rustdoc"
)

// HTML renders the page as a standalone HTML fragment, by way of Markdown.
func HTML(p *rustdoc.Page) string {
	parser := gmparser.NewWithExtensions(gmparser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(gm.ToHTML([]byte(Markdown(p)), parser, renderer))
}
