package content

// SectionKind tags how a profile section is laid out.
type SectionKind string

// Known section kinds. Renderers must handle unknown kinds explicitly.
const (
	SectionParagraph SectionKind = "paragraph"
	SectionBullets   SectionKind = "bullets"
	SectionSteps     SectionKind = "steps"
	SectionCallout   SectionKind = "callout"
)

// Section is a block of profile content.
type Section struct {
	Kind  SectionKind `yaml:"kind"`
	Icon  string      `yaml:"icon"`
	Title string      `yaml:"title"`
	Body  string      `yaml:"body"`
	Items []string    `yaml:"items"`
}

const fallbackGlyph = "•"

var glyphs = map[string]string{
	"hand":   "✋",
	"people": "👥",
	"baton":  "🎼",
	"map":    "🗺",
	"list":   "☰",
	"bulb":   "💡",
	"rocket": "🚀",
}

// Glyph returns the symbol for an icon name, or a bullet for unknown names.
func Glyph(icon string) string {
	if g, ok := glyphs[icon]; ok {
		return g
	}
	return fallbackGlyph
}
