package rustdoc

import (
	"fmt"
	"strings"

	"github.com/jcdickinson/ferrisdoc/internal/fragment"
	"github.com/jcdickinson/ferrisdoc/internal/markup"
)

// Sidebar is the navigation index of a page, one entry per list.
type Sidebar []SidebarSection

// SidebarSection is a heading of the navigation index and the names listed
// under it. An item without a link is kept as an empty string.
type SidebarSection struct {
	Name  string   `json:"name" yaml:"name"`
	Items []string `json:"items" yaml:"items"`
}

// Find returns the section with the given name.
func (s Sidebar) Find(name string) (SidebarSection, bool) {
	for _, sec := range s {
		if sec.Name == name {
			return sec, true
		}
	}
	return SidebarSection{}, false
}

// ParseSidebar reads every <h3> heading followed by a <ul> list from the
// sidebar region. Chunks without a heading are ignored.
func ParseSidebar(content string) (Sidebar, []error) {
	sidebar := Sidebar{}
	var errs []error
	for _, chunk := range strings.SplitAfter(content, "</ul>") {
		head, list, ok := strings.Cut(chunk, "</h3>")
		if !ok {
			continue
		}
		h3, err := markup.Extract("h3", head+"</h3>")
		if err != nil {
			errs = append(errs, fmt.Errorf("sidebar heading: %w", err))
			continue
		}
		name := linkText(h3)
		if name == "" {
			errs = append(errs, fmt.Errorf("sidebar heading: %w", markup.ErrEmptyContent))
			continue
		}

		sec := SidebarSection{Name: name, Items: []string{}}
		ul, err := markup.Extract("ul", list)
		if err != nil {
			sidebar = append(sidebar, sec)
			continue
		}
		for _, li := range ul.Children {
			if li.Kind != "li" {
				continue
			}
			item := ""
			if a := li.Find("a"); a != nil {
				item = strings.TrimSpace(fragment.Unescape(a.Text()))
			}
			sec.Items = append(sec.Items, item)
		}
		sidebar = append(sidebar, sec)
	}
	return sidebar, errs
}

// linkText is the text of the first link in e, or the text of e when it has
// no link.
func linkText(e *markup.Element) string {
	text := e.Text()
	if a := e.Find("a"); a != nil {
		text = a.Text()
	}
	return strings.TrimSpace(fragment.Unescape(text))
}
