package rustdoc

import (
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcdickinson/ferrisdoc/internal/fragment"
)

func readFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/widget.html")
	require.NoError(t, err)
	return string(data)
}

func parseFixture(t *testing.T, opts ...Option) *Page {
	t.Helper()
	page, err := Parse(readFixture(t), opts...)
	require.NoError(t, err)
	return page
}

func TestParse_TitleAndDeclaration(t *testing.T) {
	t.Parallel()

	page := parseFixture(t)

	assert.Equal(t, []fragment.Fragment{
		fragment.Raw("Struct "),
		fragment.Raw("demo"),
		fragment.Raw("::"),
		fragment.Colored(fragment.Raw("Widget"), fragment.ColorStruct),
	}, page.Title)

	require.NotNil(t, page.Declaration)
	assert.Equal(t, fragment.CodeBlock(fragment.Raw("pub struct Widget {\n    pub size: usize,\n    pub name: String,\n}")), *page.Declaration)
}

func TestParse_Introduction(t *testing.T) {
	t.Parallel()

	page := parseFixture(t)

	assert.Equal(t, []fragment.Fragment{
		fragment.Raw("A small "),
		fragment.Bold(fragment.Raw("widget")),
		fragment.Raw(" used in "),
		fragment.Code(fragment.Raw("demo")),
		fragment.Raw("."),
		fragment.Raw("\n"),
		fragment.Raw("Widgets are cheap & cloneable."),
	}, page.Introduction.Introduction)

	require.Len(t, page.Introduction.Sections, 1)
	examples := page.Introduction.Sections[0]
	assert.Equal(t, fragment.Bold(fragment.Raw("Examples")), examples.Name)
	assert.Equal(t, []fragment.Fragment{
		fragment.CodeBlock(fragment.Raw("let w = Widget::new(3);\nassert_eq!(w.len(), 3);")),
	}, examples.Content)
}

func TestParse_Sidebar(t *testing.T) {
	t.Parallel()

	page := parseFixture(t)

	assert.Equal(t, Sidebar{
		{Name: "Fields", Items: []string{"size", "name"}},
		{Name: "Methods", Items: []string{"new", "len"}},
		{Name: "Trait Implementations", Items: []string{"Clone", "PartialEq<T>"}},
	}, page.Sidebar)
}

// The sidebar read with a real HTML parser must agree with ours.
func TestParse_SidebarMatchesDOM(t *testing.T) {
	t.Parallel()

	src := readFixture(t)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	require.NoError(t, err)

	var want Sidebar
	doc.Find("nav.sidebar section h3").Each(func(_ int, h *goquery.Selection) {
		sec := SidebarSection{Name: strings.TrimSpace(h.Text()), Items: []string{}}
		h.NextFiltered("ul").Find("li").Each(func(_ int, li *goquery.Selection) {
			sec.Items = append(sec.Items, strings.TrimSpace(li.Find("a").First().Text()))
		})
		want = append(want, sec)
	})
	require.NotEmpty(t, want)

	page, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, want, page.Sidebar)
}

func TestParse_Sections(t *testing.T) {
	t.Parallel()

	page := parseFixture(t)

	titles := make([]string, len(page.MainContent))
	for i, s := range page.MainContent {
		titles[i] = s.Title()
	}
	assert.Equal(t, []string{
		"Fields",
		"Implementations",
		"Trait Implementations",
		"Auto Trait Implementations",
		"Blanket Implementations",
		"Frobnicators",
	}, titles)

	fields := page.MainContent[0].Content
	assert.Equal(t, SectionFields, fields.Kind)
	assert.Equal(t, []Field{
		{
			Content: []fragment.Fragment{
				fragment.Raw("size: "),
				fragment.Colored(fragment.Raw("usize"), fragment.ColorPrimitive),
			},
			Description: []fragment.Fragment{fragment.Raw("Number of parts.")},
		},
		{
			Content: []fragment.Fragment{
				fragment.Raw("name: "),
				fragment.Colored(fragment.Raw("String"), fragment.ColorStruct),
			},
		},
	}, fields.Fields)

	impls := page.MainContent[1].Content
	assert.Equal(t, SectionImplementations, impls.Kind)
	require.Len(t, impls.Implementations, 1)
	impl := impls.Implementations[0]
	assert.Equal(t, "impl Widget", impl.Type.PlainText())
	require.Len(t, impl.Methods, 2)
	assert.Equal(t, []fragment.Fragment{
		fragment.Raw("pub fn "),
		fragment.Colored(fragment.Raw("new"), fragment.ColorMethod),
		fragment.Raw("(size: "),
		fragment.Colored(fragment.Raw("usize"), fragment.ColorPrimitive),
		fragment.Raw(") -> Self"),
	}, impl.Methods[0].Signature)
	assert.Equal(t, []fragment.Fragment{fragment.Raw("Creates a widget.")}, impl.Methods[0].Description.Introduction)
	require.Len(t, impl.Methods[0].Description.Sections, 1)
	assert.Equal(t, DescriptionSection{
		Name: fragment.Bold(fragment.Raw("Panics")),
		Content: []fragment.Fragment{
			fragment.Raw("Panics if "),
			fragment.Code(fragment.Raw("size")),
			fragment.Raw(" is zero."),
		},
	}, impl.Methods[0].Description.Sections[0])
	assert.Equal(t, "pub fn len(&self) -> usize", fragment.PlainText(impl.Methods[1].Signature))
	assert.Empty(t, impl.Methods[1].Description.Introduction)

	traits := page.MainContent[2].Content
	assert.Equal(t, SectionTraitImplementations, traits.Kind)
	require.Len(t, traits.TraitImplementations, 2)
	assert.Equal(t, "impl Clone for Widget", traits.TraitImplementations[0].Trait.PlainText())
	require.Len(t, traits.TraitImplementations[0].Methods, 1)
	assert.Equal(t, []fragment.Fragment{fragment.Raw("Returns a copy of the value.")},
		traits.TraitImplementations[0].Methods[0].Description.Introduction)
	assert.Equal(t, "impl Eq for Widget", traits.TraitImplementations[1].Trait.PlainText())
	assert.Empty(t, traits.TraitImplementations[1].Methods)

	auto := page.MainContent[3].Content
	assert.Equal(t, SectionAutoTraitImplementations, auto.Kind)
	require.Len(t, auto.TraitImplementations, 2)
	assert.Equal(t, "impl Send for Widget", auto.TraitImplementations[0].Trait.PlainText())
	assert.Equal(t, "impl Sync for Widget", auto.TraitImplementations[1].Trait.PlainText())

	blanket := page.MainContent[4].Content
	assert.Equal(t, SectionBlanketImplementations, blanket.Kind)
	require.Len(t, blanket.TraitImplementations, 1)
	assert.Equal(t, fragment.Bold(
		fragment.Raw("impl<T> "),
		fragment.Colored(fragment.Raw("From"), fragment.ColorTrait),
		fragment.Raw("<T> for T"),
	), blanket.TraitImplementations[0].Trait)
	require.Len(t, blanket.TraitImplementations[0].Methods, 1)

	unknown := page.MainContent[5].Content
	assert.Equal(t, SectionUnknown, unknown.Kind)
	assert.Equal(t, "Frobnicators", unknown.Heading)
	assert.Equal(t, []fragment.Fragment{fragment.Raw("Extra.")}, unknown.Fragments)
}

func TestParse_UnknownSectionIsDiagnosed(t *testing.T) {
	t.Parallel()

	page := parseFixture(t)

	require.Len(t, page.Diagnostics, 1)
	d := page.Diagnostics[0]
	assert.Equal(t, "Frobnicators", d.Section)
	assert.Equal(t, -1, d.Record)
	assert.Equal(t, "unknown_section", d.Kind)
	assert.ErrorIs(t, d, ErrUnknownSection)
}

func TestParse_ConcurrencyKeepsOrder(t *testing.T) {
	t.Parallel()

	serial := parseFixture(t)
	parallel := parseFixture(t, WithConcurrency(8))

	assert.Equal(t, serial.MainContent, parallel.MainContent)
	assert.Len(t, parallel.Diagnostics, len(serial.Diagnostics))
}

func TestParse_MissingAnchor(t *testing.T) {
	t.Parallel()

	src := readFixture(t)
	tests := []struct {
		name   string
		remove string
	}{
		{"sidebar_start", "<section>"},
		{"sidebar_end", "</section>"},
		{"main_content", `<section id="main-content" class="content">`},
		{"script", "<script"},
		{"top_doc_end", "</details>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := Parse(strings.ReplaceAll(src, tt.remove, ""))
			assert.ErrorIs(t, err, ErrMissingAnchor)
			assert.Nil(t, page)
		})
	}
}

func TestPage_FilterSections(t *testing.T) {
	t.Parallel()

	page := parseFixture(t)

	got := page.FilterSections("impl")
	titles := make([]string, len(got))
	for i, s := range got {
		titles[i] = s.Title()
	}
	assert.Equal(t, []string{
		"Implementations",
		"Trait Implementations",
		"Auto Trait Implementations",
		"Blanket Implementations",
	}, titles)

	assert.Len(t, page.FilterSections(""), len(page.MainContent))
	assert.Empty(t, page.FilterSections("zzz"))
}

func TestPage_Section(t *testing.T) {
	t.Parallel()

	page := parseFixture(t)

	sec, ok := page.Section("Fields")
	require.True(t, ok)
	assert.Equal(t, 2, sec.Content.Len())

	_, ok = page.Section("Variants")
	assert.False(t, ok)
}

func TestPage_Summary(t *testing.T) {
	t.Parallel()

	page := parseFixture(t)
	got := page.Summary()

	require.Len(t, got, 6)
	assert.Equal(t, SectionSummary{Name: "Implementations", Kind: SectionImplementations, Records: 1}, got[1])
	assert.Equal(t, SectionSummary{Name: "Auto Trait Implementations", Kind: SectionAutoTraitImplementations, Records: 2}, got[3])
}
