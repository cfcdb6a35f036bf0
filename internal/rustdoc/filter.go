package rustdoc

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FilterSections returns the sections whose heading fuzzily matches query,
// ignoring case, in document order. An empty query matches everything.
func (p *Page) FilterSections(query string) MainContent {
	if query == "" {
		return p.MainContent
	}

	titles := make([]string, len(p.MainContent))
	for i, s := range p.MainContent {
		titles[i] = s.Title()
	}
	ranks := fuzzy.RankFindFold(query, titles)
	sort.Slice(ranks, func(i, j int) bool {
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	out := make(MainContent, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, p.MainContent[r.OriginalIndex])
	}
	return out
}
