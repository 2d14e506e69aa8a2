// Package render projects a block document into display output.
//
// Every renderer is a pure function of its input: the same document always
// produces the same output, and an empty document produces empty output.
package render

import (
	"html"
	"strings"

	"github.com/emrgen/jobpost/block"
)

// InactiveLinkLabel is shown on links that have no target yet.
const InactiveLinkLabel = "Link Activate Soon"

// HTML renders the document as an HTML fragment, one element per block.
// Links and images without a navigable url are rendered inert.
func HTML(doc block.Document) string {
	if len(doc) == 0 {
		return ""
	}

	r := &htmlRenderer{}
	for i, b := range doc {
		if i > 0 {
			r.sb.WriteByte('\n')
		}
		r.sb.WriteString(`<div class="block block-`)
		r.sb.WriteString(string(b.Kind()))
		r.sb.WriteString(`">`)
		b.Accept(r)
		r.sb.WriteString(`</div>`)
	}

	return r.sb.String()
}

type htmlRenderer struct {
	sb strings.Builder
}

func (r *htmlRenderer) VisitTitle(b block.Title) {
	if b.IsMainHeading {
		r.sb.WriteString(`<h2 class="block-title">` + html.EscapeString(b.Text) + `</h2>`)
		return
	}
	r.sb.WriteString(`<h3 class="block-subtitle">` + html.EscapeString(b.Text) + `</h3>`)
}

func (r *htmlRenderer) VisitParagraph(b block.Paragraph) {
	r.sb.WriteString(`<p class="block-paragraph">`)
	lines := strings.Split(strings.ReplaceAll(b.Text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if i > 0 {
			r.sb.WriteString("<br>")
		}
		r.sb.WriteString(html.EscapeString(line))
	}
	r.sb.WriteString(`</p>`)
}

func (r *htmlRenderer) VisitLink(b block.Link) {
	text := html.EscapeString(b.LinkText)
	if !block.SafeURL(b.URL) {
		r.sb.WriteString(`<span class="link-button link-inactive" aria-disabled="true" title="` + InactiveLinkLabel + `">` + text + `</span>`)
		return
	}
	r.sb.WriteString(`<a class="link-button" href="` + html.EscapeString(strings.TrimSpace(b.URL)) +
		`" target="_blank" rel="noopener noreferrer">` + text + `</a>`)
}

func (r *htmlRenderer) VisitImage(b block.Image) {
	caption := html.EscapeString(b.Caption())
	if !block.SafeURL(b.URL) {
		r.sb.WriteString(`<div class="image-placeholder">` + caption + `</div>`)
		return
	}
	r.sb.WriteString(`<img class="block-image" src="` + html.EscapeString(strings.TrimSpace(b.URL)) +
		`" alt="` + caption + `" loading="lazy">`)
}

func (r *htmlRenderer) VisitTable(b block.Table) {
	if b.Title != nil && *b.Title != "" {
		r.sb.WriteString(`<h4 class="block-table-title">` + html.EscapeString(*b.Title) + `</h4>`)
	}
	r.sb.WriteString(`<table><tbody>`)
	for _, row := range b.Rows {
		r.sb.WriteString(`<tr>`)
		for _, cell := range row {
			r.sb.WriteString(`<td>` + html.EscapeString(cell) + `</td>`)
		}
		r.sb.WriteString(`</tr>`)
	}
	r.sb.WriteString(`</tbody></table>`)
}
