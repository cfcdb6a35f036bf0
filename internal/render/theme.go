package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jcdickinson/ferrisdoc/internal/fragment"
)

// Theme holds the terminal styles and the colour of every colour tag.
type Theme struct {
	colors map[fragment.ColorTag]string

	heading   lipgloss.Style
	subtle    lipgloss.Style
	bold      lipgloss.Style
	code      lipgloss.Style
	codeBlock lipgloss.Style
	tagged    map[fragment.ColorTag]lipgloss.Style
}

// NewTheme builds the styles for r. overrides maps colour tag names to hex
// colours and replaces the defaults.
func NewTheme(r *lipgloss.Renderer, overrides map[string]string) (Theme, error) {
	colors := make(map[fragment.ColorTag]string, len(fragment.ColorTags))
	for _, tag := range fragment.ColorTags {
		colors[tag] = tag.Hex()
	}
	for name, hex := range overrides {
		tag, normalised, err := fragment.ParseColor(name, hex)
		if err != nil {
			return Theme{}, err
		}
		colors[tag] = normalised
	}

	t := Theme{
		colors:    colors,
		heading:   r.NewStyle().Bold(true).Underline(true),
		subtle:    r.NewStyle().Bold(true),
		bold:      r.NewStyle().Bold(true),
		code:      r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5f5f5f", Dark: "#c6c6c6"}),
		codeBlock: r.NewStyle().PaddingLeft(4),
		tagged:    make(map[fragment.ColorTag]lipgloss.Style, len(colors)),
	}
	for tag, hex := range colors {
		t.tagged[tag] = r.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return t, nil
}

// Hex returns the colour used for tag.
func (t Theme) Hex(tag fragment.ColorTag) string {
	return t.colors[tag]
}

func (t Theme) colored(tag fragment.ColorTag, s string) string {
	style, ok := t.tagged[tag]
	if !ok {
		return s
	}
	return style.Render(s)
}
