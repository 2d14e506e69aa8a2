// Package block defines the content blocks a job post body is assembled from.
//
// The set of kinds is closed. Every dispatch over a block goes through
// Block.Accept and the Visitor interface, so a new kind cannot be added
// without extending every visitor in the module.
package block

// Kind is the discriminant of a block.
type Kind string

const (
	KindTitle     Kind = "title"
	KindParagraph Kind = "paragraph"
	KindLink      Kind = "link"
	KindImage     Kind = "image"
	KindTable     Kind = "table"
)

// Kinds lists every block kind in the order the editor offers them.
var Kinds = []Kind{KindTitle, KindParagraph, KindLink, KindImage, KindTable}

// Valid reports whether k is one of the closed set of kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindTitle, KindParagraph, KindLink, KindImage, KindTable:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

// Block is a single content atom of a document.
type Block interface {
	Kind() Kind
	Accept(v Visitor)
	sealed()
}

// Visitor receives a block by its concrete kind.
type Visitor interface {
	VisitTitle(b Title)
	VisitParagraph(b Paragraph)
	VisitLink(b Link)
	VisitImage(b Image)
	VisitTable(b Table)
}

// Title is a heading. IsMainHeading selects the main weight over the sub weight.
type Title struct {
	Text          string
	IsMainHeading bool
}

// Paragraph is free text; embedded line breaks are significant.
type Paragraph struct {
	Text string
}

// Link is an actionable button. An empty URL renders inert.
type Link struct {
	LinkText string
	URL      string
}

// Image is a banner image. A nil AltText falls back to a generic caption.
type Image struct {
	URL     string
	AltText *string
}

// Table is an optional caption followed by a grid of cells.
type Table struct {
	Title *string
	Rows  [][]string
}

func (Title) Kind() Kind     { return KindTitle }
func (Paragraph) Kind() Kind { return KindParagraph }
func (Link) Kind() Kind      { return KindLink }
func (Image) Kind() Kind     { return KindImage }
func (Table) Kind() Kind     { return KindTable }

func (b Title) Accept(v Visitor)     { v.VisitTitle(b) }
func (b Paragraph) Accept(v Visitor) { v.VisitParagraph(b) }
func (b Link) Accept(v Visitor)      { v.VisitLink(b) }
func (b Image) Accept(v Visitor)     { v.VisitImage(b) }
func (b Table) Accept(v Visitor)     { v.VisitTable(b) }

func (Title) sealed()     {}
func (Paragraph) sealed() {}
func (Link) sealed()      {}
func (Image) sealed()     {}
func (Table) sealed()     {}

// Caption returns the alt text or the generic fallback caption.
func (b Image) Caption() string {
	if b.AltText == nil || *b.AltText == "" {
		return DefaultImageCaption
	}
	return *b.AltText
}

// Columns returns the width of the widest row.
func (b Table) Columns() int {
	cols := 0
	for _, row := range b.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// Rectangular reports whether every row has the same number of cells.
func (b Table) Rectangular() bool {
	for _, row := range b.Rows {
		if len(row) != len(b.Rows[0]) {
			return false
		}
	}
	return true
}

// Clone returns a table whose rows do not alias b.
func (b Table) Clone() Table {
	rows := make([][]string, len(b.Rows))
	for i, row := range b.Rows {
		rows[i] = append([]string(nil), row...)
	}
	out := Table{Rows: rows}
	if b.Title != nil {
		out.Title = String(*b.Title)
	}
	return out
}

// DefaultImageCaption is used when an image has no alt text.
const DefaultImageCaption = "Job post image"

// String returns a pointer to s.
func String(s string) *string {
	return &s
}
