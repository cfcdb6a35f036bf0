// Package render turns a parsed page into markdown, HTML, coloured terminal
// text, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jcdickinson/ferrisdoc/internal/config"
	"github.com/jcdickinson/ferrisdoc/internal/rustdoc"
)

// Write renders p to w in the given format. theme is only used by
// config.FormatTerm.
func Write(w io.Writer, p *rustdoc.Page, format config.Format, theme Theme) error {
	switch format {
	case config.FormatMarkdown:
		_, err := io.WriteString(w, Markdown(p))
		return err
	case config.FormatHTML:
		_, err := io.WriteString(w, HTML(p))
		return err
	case config.FormatTerm:
		_, err := io.WriteString(w, Terminal(p, theme))
		return err
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encoding page as json: %w", err)
		}
		return nil
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encoding page as yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// String renders p in the given format.
func String(p *rustdoc.Page, format config.Format, theme Theme) (string, error) {
	var b strings.Builder
	if err := Write(&b, p, format, theme); err != nil {
		return "", err
	}
	return b.String(), nil
}
