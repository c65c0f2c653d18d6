package model

// EntityType classifies a span label into a coarse entity type
type EntityType string

const (
	// TypeCitation marks spans that reference a textual source and get a
	// second-pass reference-part analysis
	TypeCitation EntityType = "citation"
)

// label2Type maps raw model labels to entity types. Labels missing from the
// map have no special handling.
var label2Type = map[string]EntityType{
	"מקור":     TypeCitation,
	"Citation": TypeCitation,
}

// Doc is an analyzed input text. Spans index into its runes so that offsets
// are code-point based regardless of UTF-8 encoding width.
type Doc struct {
	runes []rune
}

// NewDoc creates a Doc from raw text
func NewDoc(text string) *Doc {
	return &Doc{runes: []rune(text)}
}

// Len returns the document length in runes
func (d *Doc) Len() int {
	return len(d.runes)
}

// Text returns the full document text
func (d *Doc) Text() string {
	return string(d.runes)
}

// Slice returns the text between two rune offsets. Out-of-range offsets are
// clamped to the document bounds.
func (d *Doc) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(d.runes) {
		end = len(d.runes)
	}
	if start >= end {
		return ""
	}
	return string(d.runes[start:end])
}

// Span is a labeled region of a Doc. Start is inclusive, End exclusive, both
// in rune offsets.
type Span struct {
	Doc   *Doc
	Start int
	End   int
	Label string
}

// NewSpan creates a Span over the given doc
func NewSpan(doc *Doc, start, end int, label string) Span {
	return Span{Doc: doc, Start: start, End: end, Label: label}
}

// Text returns the surface text covered by the span
func (s Span) Text() string {
	return s.Doc.Slice(s.Start, s.End)
}

// Type returns the coarse entity type for the span's label
func (s Span) Type() EntityType {
	return label2Type[s.Label]
}

// IsCitation reports whether the span should receive reference-part analysis
func (s Span) IsCitation() bool {
	return s.Type() == TypeCitation
}

// Serialize converts the span to its wire representation
func (s Span) Serialize(withText bool) Entity {
	e := Entity{
		Start: s.Start,
		End:   s.End,
		Label: s.Label,
	}
	if withText {
		e.Text = s.Text()
	}
	return e
}
