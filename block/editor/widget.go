package editor

import (
	"github.com/emrgen/jobpost/block"
)

// Widget edits the payload of a single block. Each concrete widget hands a
// complete replacement payload of its own kind to its change callback.
type Widget interface {
	Kind() block.Kind
}

// Edit returns the widget for block i, bound so that its changes replace
// block i in the editor. Once any block is inserted, moved or deleted the
// widget fails with ErrStaleWidget and a new one must be opened.
func (e *Editor) Edit(i int) (Widget, error) {
	if err := e.check(i); err != nil {
		return nil, err
	}
	f := &widgetFactory{editor: e, index: i, layout: e.layout}
	e.blocks[i].Accept(f)
	return f.widget, nil
}

type widgetFactory struct {
	editor *Editor
	index  int
	layout uint64
	widget Widget
}

func (f *widgetFactory) update(b block.Block) error {
	if f.editor.layout != f.layout {
		return ErrStaleWidget
	}
	return f.editor.Update(f.index, b)
}

func (f *widgetFactory) VisitTitle(b block.Title) {
	f.widget = NewTitleWidget(b, func(v block.Title) error { return f.update(v) })
}

func (f *widgetFactory) VisitParagraph(b block.Paragraph) {
	f.widget = NewParagraphWidget(b, func(v block.Paragraph) error { return f.update(v) })
}

func (f *widgetFactory) VisitLink(b block.Link) {
	f.widget = NewLinkWidget(b, func(v block.Link) error { return f.update(v) })
}

func (f *widgetFactory) VisitImage(b block.Image) {
	f.widget = NewImageWidget(b, func(v block.Image) error { return f.update(v) })
}

func (f *widgetFactory) VisitTable(b block.Table) {
	f.widget = NewTableWidget(b, func(v block.Table) error { return f.update(v) })
}

// TitleWidget edits a title block.
type TitleWidget struct {
	value    block.Title
	onChange func(block.Title) error
}

func NewTitleWidget(v block.Title, onChange func(block.Title) error) *TitleWidget {
	return &TitleWidget{value: v, onChange: onChange}
}

func (w *TitleWidget) Kind() block.Kind   { return block.KindTitle }
func (w *TitleWidget) Value() block.Title { return w.value }

func (w *TitleWidget) SetText(text string) error {
	return w.emit(block.Title{Text: text, IsMainHeading: w.value.IsMainHeading})
}

func (w *TitleWidget) SetMainHeading(main bool) error {
	return w.emit(block.Title{Text: w.value.Text, IsMainHeading: main})
}

func (w *TitleWidget) emit(v block.Title) error {
	if w.onChange != nil {
		if err := w.onChange(v); err != nil {
			return err
		}
	}
	w.value = v
	return nil
}

// ParagraphWidget edits a paragraph block.
type ParagraphWidget struct {
	value    block.Paragraph
	onChange func(block.Paragraph) error
}

func NewParagraphWidget(v block.Paragraph, onChange func(block.Paragraph) error) *ParagraphWidget {
	return &ParagraphWidget{value: v, onChange: onChange}
}

func (w *ParagraphWidget) Kind() block.Kind       { return block.KindParagraph }
func (w *ParagraphWidget) Value() block.Paragraph { return w.value }

func (w *ParagraphWidget) SetText(text string) error {
	v := block.Paragraph{Text: text}
	if w.onChange != nil {
		if err := w.onChange(v); err != nil {
			return err
		}
	}
	w.value = v
	return nil
}

// LinkWidget edits a link button block.
type LinkWidget struct {
	value    block.Link
	onChange func(block.Link) error
}

func NewLinkWidget(v block.Link, onChange func(block.Link) error) *LinkWidget {
	return &LinkWidget{value: v, onChange: onChange}
}

func (w *LinkWidget) Kind() block.Kind  { return block.KindLink }
func (w *LinkWidget) Value() block.Link { return w.value }

func (w *LinkWidget) SetLinkText(text string) error {
	return w.emit(block.Link{LinkText: text, URL: w.value.URL})
}

func (w *LinkWidget) SetURL(url string) error {
	return w.emit(block.Link{LinkText: w.value.LinkText, URL: url})
}

func (w *LinkWidget) emit(v block.Link) error {
	if w.onChange != nil {
		if err := w.onChange(v); err != nil {
			return err
		}
	}
	w.value = v
	return nil
}

// ImageWidget edits an image banner block. An empty alt text is stored as absent.
type ImageWidget struct {
	value    block.Image
	onChange func(block.Image) error
}

func NewImageWidget(v block.Image, onChange func(block.Image) error) *ImageWidget {
	return &ImageWidget{value: v, onChange: onChange}
}

func (w *ImageWidget) Kind() block.Kind   { return block.KindImage }
func (w *ImageWidget) Value() block.Image { return w.value }

func (w *ImageWidget) SetURL(url string) error {
	return w.emit(block.Image{URL: url, AltText: w.value.AltText})
}

func (w *ImageWidget) SetAltText(alt string) error {
	return w.emit(block.Image{URL: w.value.URL, AltText: optional(alt)})
}

func (w *ImageWidget) emit(v block.Image) error {
	if w.onChange != nil {
		if err := w.onChange(v); err != nil {
			return err
		}
	}
	w.value = v
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return block.String(s)
}
