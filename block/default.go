package block

// CreateDefault returns the empty payload a new block of kind k starts with.
// It returns nil for a kind outside the closed set.
func CreateDefault(k Kind) Block {
	switch k {
	case KindTitle:
		return Title{Text: "", IsMainHeading: true}
	case KindParagraph:
		return Paragraph{Text: ""}
	case KindLink:
		return Link{LinkText: "", URL: ""}
	case KindImage:
		return Image{URL: ""}
	case KindTable:
		return Table{Rows: [][]string{{"", ""}, {"", ""}}}
	}
	return nil
}

// Label returns the name the editor shows for a block.
func Label(b Block) string {
	l := &labeler{}
	b.Accept(l)
	return l.label
}

type labeler struct {
	label string
}

func (l *labeler) VisitTitle(Title)         { l.label = "Title" }
func (l *labeler) VisitParagraph(Paragraph) { l.label = "Paragraph" }
func (l *labeler) VisitLink(Link)           { l.label = "Link Button" }
func (l *labeler) VisitImage(Image)         { l.label = "Image/Banner" }
func (l *labeler) VisitTable(Table)         { l.label = "Table" }
