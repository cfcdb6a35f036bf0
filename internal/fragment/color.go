package fragment

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorTag is a presentation hint attached to an identifier. The parser only
// carries it; renderers decide what to do with it.
type ColorTag string

const (
	ColorAssociatedType ColorTag = "associated_type"
	ColorEnum           ColorTag = "enum"
	ColorMacro          ColorTag = "macro"
	ColorMethod         ColorTag = "method"
	ColorPrimitive      ColorTag = "primitive"
	ColorStruct         ColorTag = "struct"
	ColorTrait          ColorTag = "trait"
)

// ColorTags lists every known tag in a stable order.
var ColorTags = []ColorTag{
	ColorAssociatedType,
	ColorEnum,
	ColorMacro,
	ColorMethod,
	ColorPrimitive,
	ColorStruct,
	ColorTrait,
}

var colorHex = map[ColorTag]string{
	ColorAssociatedType: "#d2991d",
	ColorEnum:           "#2dbfb8",
	ColorMacro:          "#09bd00",
	ColorMethod:         "#2bab63",
	ColorPrimitive:      "#2dbfb8",
	ColorStruct:         "#2dbfb8",
	ColorTrait:          "#b78cf2",
}

// Hex returns the default display colour of the tag, or "" for an unknown tag.
func (c ColorTag) Hex() string {
	return colorHex[c]
}

// Valid reports whether c is one of the known tags.
func (c ColorTag) Valid() bool {
	_, ok := colorHex[c]
	return ok
}

// classColors maps rustdoc CSS classes on identifier links to colour tags.
var classColors = map[string]ColorTag{
	"trait":          ColorTrait,
	"traitalias":     ColorTrait,
	"struct":         ColorStruct,
	"union":          ColorStruct,
	"enum":           ColorEnum,
	"macro":          ColorMacro,
	"primitive":      ColorPrimitive,
	"fn":             ColorMethod,
	"method":         ColorMethod,
	"tymethod":       ColorMethod,
	"associatedtype": ColorAssociatedType,
}

// ColorForClass returns the colour tag for a rustdoc class name.
func ColorForClass(class string) (ColorTag, bool) {
	c, ok := classColors[class]
	return c, ok
}

// ParseColor checks a colour override for the tag called name and returns the
// tag with the colour normalised to "#rrggbb".
func ParseColor(name, hex string) (ColorTag, string, error) {
	tag := ColorTag(name)
	if !tag.Valid() {
		return "", "", fmt.Errorf("unknown colour tag %q", name)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", "", fmt.Errorf("colour for %s: %w", name, err)
	}
	return tag, c.Hex(), nil
}
