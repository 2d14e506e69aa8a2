package block

import "errors"

var (
	// ErrUnknownKind is returned when a payload names a kind outside the closed set.
	ErrUnknownKind = errors.New("unknown block kind")
	// ErrMissingKind is returned when a payload carries no kind tag at all.
	ErrMissingKind = errors.New("block kind is missing")
	// ErrEmptyTable is returned when a table has no rows.
	ErrEmptyTable = errors.New("table must have at least one row")
	// ErrInvalidURL is returned when a link or image url cannot be parsed.
	ErrInvalidURL = errors.New("invalid url")
)
