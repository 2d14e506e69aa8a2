package render

import (
	"encoding/json"
	"testing"

	"github.com/emrgen/jobpost/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func everyKind() block.Document {
	return block.Document{
		block.Title{Text: "Clerk Recruitment 2026", IsMainHeading: true},
		block.Paragraph{Text: "Applications open.\nRead the notification."},
		block.Link{LinkText: "Apply Online", URL: "https://example.org/apply"},
		block.Image{URL: "https://example.org/banner.png", AltText: block.String("Banner")},
		block.Table{Title: block.String("Fees"), Rows: [][]string{{"Category", "Fee"}, {"General", "600"}}},
	}
}

func TestHTML_Empty(t *testing.T) {
	assert.Equal(t, "", HTML(nil))
	assert.Equal(t, "", HTML(block.Document{}))
}

func TestHTML_DefaultBlocks(t *testing.T) {
	tests := []struct {
		kind block.Kind
		want string
	}{
		{block.KindTitle, `<div class="block block-title"><h2 class="block-title"></h2></div>`},
		{block.KindParagraph, `<div class="block block-paragraph"><p class="block-paragraph"></p></div>`},
		{block.KindLink, `<div class="block block-link"><span class="link-button link-inactive" aria-disabled="true" title="Link Activate Soon"></span></div>`},
		{block.KindImage, `<div class="block block-image"><div class="image-placeholder">Job post image</div></div>`},
		{block.KindTable, `<div class="block block-table"><table><tbody><tr><td></td><td></td></tr><tr><td></td><td></td></tr></tbody></table></div>`},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, HTML(block.Document{block.CreateDefault(tt.kind)}))
		})
	}
}

func TestHTML_Blocks(t *testing.T) {
	out := HTML(everyKind())

	assert.Contains(t, out, `<h2 class="block-title">Clerk Recruitment 2026</h2>`)
	assert.Contains(t, out, `<p class="block-paragraph">Applications open.<br>Read the notification.</p>`)
	assert.Contains(t, out, `<a class="link-button" href="https://example.org/apply" target="_blank" rel="noopener noreferrer">Apply Online</a>`)
	assert.Contains(t, out, `<img class="block-image" src="https://example.org/banner.png" alt="Banner" loading="lazy">`)
	assert.Contains(t, out, `<h4 class="block-table-title">Fees</h4><table><tbody><tr><td>Category</td><td>Fee</td></tr><tr><td>General</td><td>600</td></tr></tbody></table>`)
}

func TestHTML_SubHeadingAndEscaping(t *testing.T) {
	out := HTML(block.Document{
		block.Title{Text: "<script>x</script>", IsMainHeading: false},
		block.Image{URL: "https://example.org/a.png"},
	})
	assert.Contains(t, out, `<h3 class="block-subtitle">&lt;script&gt;x&lt;/script&gt;</h3>`)
	assert.Contains(t, out, `alt="Job post image"`)
}

func TestHTML_EmptyURLLinkIsInert(t *testing.T) {
	out := HTML(block.Document{block.Link{LinkText: "Apply", URL: ""}})
	assert.Equal(t,
		`<div class="block block-link"><span class="link-button link-inactive" aria-disabled="true" title="Link Activate Soon">Apply</span></div>`,
		out)
	assert.NotContains(t, out, "href")

	unsafe := HTML(block.Document{block.Link{LinkText: "Apply", URL: "javascript:alert(1)"}})
	assert.NotContains(t, unsafe, "href")
	assert.NotContains(t, unsafe, "javascript")
}

func TestHTML_RaggedTable(t *testing.T) {
	out := HTML(block.Document{block.Table{Rows: [][]string{{"a", "b", "c"}, {"d"}}}})
	assert.Contains(t, out, `<tr><td>a</td><td>b</td><td>c</td></tr><tr><td>d</td></tr>`)
}

func TestHTML_Pure(t *testing.T) {
	doc := everyKind()
	assert.Equal(t, HTML(doc), HTML(doc))
	assert.Equal(t, Markdown(doc), Markdown(doc))
}

func TestRender_SerializationRoundTrip(t *testing.T) {
	doc := everyKind()
	doc = append(doc, block.Image{URL: "https://example.org/x.png"}, block.Table{Rows: [][]string{{"x"}}})

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded block.Document
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, HTML(doc), HTML(decoded))
	assert.Equal(t, Markdown(doc), Markdown(decoded))
}

func TestMarkdown(t *testing.T) {
	assert.Equal(t, "", Markdown(nil))

	out := Markdown(block.Document{
		block.Title{Text: "Main", IsMainHeading: true},
		block.Title{Text: "Sub"},
		block.Paragraph{Text: "one\ntwo"},
		block.Link{LinkText: "Apply", URL: "https://x.org"},
		block.Link{LinkText: "Result", URL: ""},
		block.Image{URL: ""},
		block.Table{Title: block.String("Seats"), Rows: [][]string{{"Post", "Seats"}, {"Clerk|II", "120"}}},
	})

	want := "## Main\n\n" +
		"### Sub\n\n" +
		"one  \ntwo\n\n" +
		"[Apply](<https://x.org>)\n\n" +
		"Result (Link Activate Soon)\n\n" +
		"*Job post image*\n\n" +
		"#### Seats\n\n| Post | Seats |\n| --- | --- |\n| Clerk\\|II | 120 |"
	assert.Equal(t, want, out)
}

func TestMarkdown_StoredTextStaysText(t *testing.T) {
	tests := []struct {
		name string
		doc  block.Document
		want string
	}{
		{
			name: "paragraph with heading and script link",
			doc:  block.Document{block.Paragraph{Text: "# not a heading\n[click](javascript:alert(1))"}},
			want: `\# not a heading  ` + "\n" + `\[click\]\(javascript:alert\(1\)\)`,
		},
		{
			name: "url with space and parenthesis",
			doc:  block.Document{block.Link{LinkText: "Apply", URL: "https://x.org/a b(1)"}},
			want: "[Apply](<https://x.org/a b(1)>)",
		},
		{
			name: "emphasis in title",
			doc:  block.Document{block.Title{Text: "*Bold* _claim_", IsMainHeading: true}},
			want: `## \*Bold\* \_claim\_`,
		},
		{
			name: "list and quote markers",
			doc:  block.Document{block.Paragraph{Text: "- item\n1. first\n> quote\n==="}},
			want: `\- item  ` + "\n" + `1\. first  ` + "\n" + `\> quote  ` + "\n" + `\===`,
		},
		{
			name: "indented line",
			doc:  block.Document{block.Paragraph{Text: "    code?"}},
			want: "&nbsp;&nbsp;&nbsp;&nbsp;code?",
		},
		{
			name: "markup in link text and cells",
			doc: block.Document{
				block.Link{LinkText: "[x](y)", URL: "https://x.org"},
				block.Table{Rows: [][]string{{"<b>", "a|b"}}},
			},
			want: `[\[x\]\(y\)](<https://x.org>)` + "\n\n" + `| \<b\> | a\|b |` + "\n| --- | --- |",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Markdown(tt.doc))
		})
	}
}

func TestSnippet(t *testing.T) {
	doc := block.Document{
		block.Title{Text: "Clerk <b>Recruitment</b> & more", IsMainHeading: true},
		block.Link{LinkText: "ignored", URL: "https://x"},
		block.Paragraph{Text: "Apply\nnow"},
	}
	assert.Equal(t, "Clerk Recruitment & more Apply now", Snippet(doc, 0))
	assert.Equal(t, "Clerk Recr…", Snippet(doc, 10))
	assert.Equal(t, "", Snippet(nil, 10))
}

func TestSnippet_PlainTextKept(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "comparison", text: "age a<b and c>d", want: "age a<b and c>d"},
		{name: "arrows", text: "10 < 20 > 5", want: "10 < 20 > 5"},
		{name: "entity text", text: "Fees &amp; dates", want: "Fees &amp; dates"},
		{name: "tag", text: "<p>Apply</p> now", want: "Apply now"},
		{name: "attributes", text: `<a href="https://x" target=_blank>Apply</a>`, want: "Apply"},
		{name: "self closing", text: "line<br/>break", want: "linebreak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Snippet(block.Document{block.Paragraph{Text: tt.text}}, 0))
		})
	}
}

func TestTerminal(t *testing.T) {
	out, err := Terminal(nil, "notty", 60)
	require.NoError(t, err)
	assert.Equal(t, "", out)

	out, err = Terminal(everyKind(), "notty", 60)
	require.NoError(t, err)
	assert.Contains(t, out, "Clerk Recruitment 2026")
	assert.Contains(t, out, "General")
}
