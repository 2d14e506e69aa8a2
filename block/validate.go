package block

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks every block of the document. Ragged table rows are accepted;
// renderers print each row with whatever cells it has.
func Validate(doc Document) error {
	for i, b := range doc {
		if b == nil {
			return fmt.Errorf("block %d: %w", i, ErrMissingKind)
		}
		v := &validator{}
		b.Accept(v)
		if v.err != nil {
			return fmt.Errorf("block %d (%s): %w", i, b.Kind(), v.err)
		}
	}
	return nil
}

type validator struct {
	err error
}

func (v *validator) VisitTitle(Title)         {}
func (v *validator) VisitParagraph(Paragraph) {}

func (v *validator) VisitLink(b Link) {
	v.err = checkURL(b.URL)
}

func (v *validator) VisitImage(b Image) {
	v.err = checkURL(b.URL)
}

func (v *validator) VisitTable(b Table) {
	if len(b.Rows) == 0 {
		v.err = ErrEmptyTable
	}
}

func checkURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if _, err := url.Parse(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	return nil
}

// SafeURL reports whether raw may be used as a navigable target:
// http, https, mailto and tel urls and relative references.
func SafeURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto", "tel":
		return true
	}
	return false
}
