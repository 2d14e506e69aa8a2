package render

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/emrgen/jobpost/block"
	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()

	// markup matches a closing tag or an opening tag whose attributes are all
	// name=value pairs, so comparisons like "a<b and c>d" stay text.
	markup = regexp.MustCompile(`</[a-zA-Z][a-zA-Z0-9]*\s*>|<[a-zA-Z][a-zA-Z0-9]*(\s+[a-zA-Z-]+\s*=\s*("[^"]*"|'[^']*'|[^\s"'>]+))*\s*/?>`)
)

// Snippet returns up to limit runes of plain text taken from the titles and
// paragraphs of the document, for listing cards. Markup pasted into block
// text is stripped; other text is kept as written.
func Snippet(doc block.Document, limit int) string {
	s := &snippetCollector{}
	for _, b := range doc {
		b.Accept(s)
	}

	parts := make([]string, len(s.parts))
	for i, part := range s.parts {
		parts[i] = plainText(part)
	}

	text := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

func plainText(s string) string {
	if !markup.MatchString(s) {
		return s
	}
	return html.UnescapeString(strict.Sanitize(s))
}

type snippetCollector struct {
	parts []string
}

func (s *snippetCollector) VisitTitle(b block.Title)         { s.parts = append(s.parts, b.Text) }
func (s *snippetCollector) VisitParagraph(b block.Paragraph) { s.parts = append(s.parts, b.Text) }
func (s *snippetCollector) VisitLink(block.Link)             {}
func (s *snippetCollector) VisitImage(block.Image)           {}
func (s *snippetCollector) VisitTable(block.Table)           {}
