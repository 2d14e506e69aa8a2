package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/emrgen/jobpost/block"
)

// Markdown renders the document as GitHub flavoured markdown. Blocks are
// separated by a blank line. The first table row is used as the header row.
func Markdown(doc block.Document) string {
	if len(doc) == 0 {
		return ""
	}

	parts := make([]string, 0, len(doc))
	for _, b := range doc {
		r := &markdownRenderer{}
		b.Accept(r)
		parts = append(parts, r.sb.String())
	}

	return strings.Join(parts, "\n\n")
}

type markdownRenderer struct {
	sb strings.Builder
}

func (r *markdownRenderer) VisitTitle(b block.Title) {
	if b.IsMainHeading {
		r.sb.WriteString("## ")
	} else {
		r.sb.WriteString("### ")
	}
	r.sb.WriteString(escapeText(oneLine(b.Text)))
}

func (r *markdownRenderer) VisitParagraph(b block.Paragraph) {
	lines := strings.Split(strings.ReplaceAll(b.Text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = escapeLine(line)
	}
	// trailing double space keeps the line break
	r.sb.WriteString(strings.Join(lines, "  \n"))
}

func (r *markdownRenderer) VisitLink(b block.Link) {
	if !block.SafeURL(b.URL) {
		r.sb.WriteString(escapeText(oneLine(b.LinkText)) + " (" + InactiveLinkLabel + ")")
		return
	}
	r.sb.WriteString("[" + escapeText(oneLine(b.LinkText)) + "](" + destination(b.URL) + ")")
}

func (r *markdownRenderer) VisitImage(b block.Image) {
	if !block.SafeURL(b.URL) {
		r.sb.WriteString("*" + escapeText(oneLine(b.Caption())) + "*")
		return
	}
	r.sb.WriteString("![" + escapeText(oneLine(b.Caption())) + "](" + destination(b.URL) + ")")
}

func (r *markdownRenderer) VisitTable(b block.Table) {
	if b.Title != nil && *b.Title != "" {
		r.sb.WriteString("#### " + escapeText(oneLine(*b.Title)) + "\n\n")
	}
	cols := b.Columns()
	for i, row := range b.Rows {
		if i > 0 {
			r.sb.WriteByte('\n')
		}
		r.sb.WriteString("|")
		for _, cell := range row {
			r.sb.WriteString(" " + escapeCell(cell) + " |")
		}
		if i == 0 {
			r.sb.WriteString("\n|")
			for c := 0; c < cols; c++ {
				r.sb.WriteString(" --- |")
			}
		}
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func escapeCell(s string) string {
	return escapeText(oneLine(s))
}

// markdownPunct is escaped wherever it appears in block text so stored text
// never turns into emphasis, links, headings, quotes or lists.
const markdownPunct = "\\`*_[]()#+-!<>|&~"

// escapeText escapes text that starts a line of output.
func escapeText(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + len(s)/4)

	digits := true
	for i, c := range s {
		switch {
		case strings.ContainsRune(markdownPunct, c):
			sb.WriteByte('\\')
		case c == '=' && i == 0:
			// setext underline
			sb.WriteByte('\\')
		case c == '.' && digits && i > 0:
			// ordered list marker such as "1."
			sb.WriteByte('\\')
		}
		digits = digits && c >= '0' && c <= '9'
		sb.WriteRune(c)
	}
	return sb.String()
}

// escapeLine escapes one paragraph line. Leading blanks become non breaking
// spaces so an indented line is not read as a code block.
func escapeLine(line string) string {
	rest := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(rest)]
	indent = strings.ReplaceAll(indent, "\t", "    ")
	return strings.Repeat("&nbsp;", len(indent)) + escapeText(rest)
}

// destination writes a link target in angle brackets so spaces and
// parentheses in the url do not end the link.
func destination(url string) string {
	url = strings.TrimSpace(url)
	url = strings.ReplaceAll(url, "\\", "\\\\")
	url = strings.ReplaceAll(url, "<", "\\<")
	url = strings.ReplaceAll(url, ">", "\\>")
	return "<" + url + ">"
}

// Terminal renders the document for a terminal using the named glamour style
// ("dark", "light", "notty", ...) wrapped at width columns.
func Terminal(doc block.Document, style string, width int) (string, error) {
	if len(doc) == 0 {
		return "", nil
	}
	if style == "" {
		style = "dark"
	}
	if width <= 0 {
		width = 80
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	return renderer.Render(Markdown(doc))
}
