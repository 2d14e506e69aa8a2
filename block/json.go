package block

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is the ordered sequence of blocks owned by a content record.
type Document []Block

type titleJSON struct {
	Kind          Kind   `json:"kind"`
	Text          string `json:"text"`
	IsMainHeading bool   `json:"isMainHeading"`
}

type paragraphJSON struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

type linkJSON struct {
	Kind     Kind   `json:"kind"`
	LinkText string `json:"linkText"`
	URL      string `json:"url"`
}

type imageJSON struct {
	Kind    Kind    `json:"kind"`
	URL     string  `json:"url"`
	AltText *string `json:"altText,omitempty"`
}

type tableJSON struct {
	Kind  Kind       `json:"kind"`
	Title *string    `json:"title,omitempty"`
	Rows  [][]string `json:"rows"`
}

// kindProbe reads the discriminant of both the flat and the legacy nested shape.
type kindProbe struct {
	Kind   Kind `json:"kind"`
	Legacy Kind `json:"__kind__"`
}

type encoder struct {
	value any
}

func (e *encoder) VisitTitle(b Title) {
	e.value = titleJSON{Kind: KindTitle, Text: b.Text, IsMainHeading: b.IsMainHeading}
}

func (e *encoder) VisitParagraph(b Paragraph) {
	e.value = paragraphJSON{Kind: KindParagraph, Text: b.Text}
}

func (e *encoder) VisitLink(b Link) {
	e.value = linkJSON{Kind: KindLink, LinkText: b.LinkText, URL: b.URL}
}

func (e *encoder) VisitImage(b Image) {
	e.value = imageJSON{Kind: KindImage, URL: b.URL, AltText: b.AltText}
}

func (e *encoder) VisitTable(b Table) {
	rows := make([][]string, len(b.Rows))
	for i, row := range b.Rows {
		if row == nil {
			row = []string{}
		}
		rows[i] = row
	}
	e.value = tableJSON{Kind: KindTable, Title: b.Title, Rows: rows}
}

// Marshal encodes a single block in its flat wire shape.
func Marshal(b Block) ([]byte, error) {
	if b == nil {
		return nil, ErrMissingKind
	}
	e := &encoder{}
	b.Accept(e)
	return json.Marshal(e.value)
}

// Unmarshal decodes a single block. Both the flat shape
// {"kind":"title","text":...} and the nested shape
// {"__kind__":"title","title":{...}} are accepted.
func Unmarshal(data []byte) (Block, error) {
	var probe kindProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	kind := probe.Kind
	payload := data
	if kind == "" && probe.Legacy != "" {
		kind = probe.Legacy
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(data, &nested); err != nil {
			return nil, err
		}
		raw, ok := nested[string(kind)]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q payload", ErrMissingKind, kind)
		}
		payload = raw
	}

	switch kind {
	case "":
		return nil, ErrMissingKind
	case KindTitle:
		var v titleJSON
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return Title{Text: v.Text, IsMainHeading: v.IsMainHeading}, nil
	case KindParagraph:
		var v paragraphJSON
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return Paragraph{Text: v.Text}, nil
	case KindLink:
		var v linkJSON
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return Link{LinkText: v.LinkText, URL: v.URL}, nil
	case KindImage:
		var v imageJSON
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return Image{URL: v.URL, AltText: v.AltText}, nil
	case KindTable:
		var v tableJSON
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		if v.Rows == nil {
			v.Rows = [][]string{}
		}
		return Table{Title: v.Title, Rows: v.Rows}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// MarshalJSON encodes the document as a JSON array; an empty document is [].
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, b := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON array of blocks, rejecting unknown kinds.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	doc := make(Document, 0, len(raws))
	for i, raw := range raws {
		b, err := Unmarshal(raw)
		if err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		doc = append(doc, b)
	}
	*d = doc

	return nil
}

// Clone returns a new top-level array holding the same blocks.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	copy(out, d)
	return out
}
