package compress

import (
	"errors"
	"fmt"
)

// ErrUnknownCompression is returned for a codec name New does not know.
var ErrUnknownCompression = errors.New("unknown compression")

// Compress encodes and decodes stored payloads.
type Compress interface {
	Name() string
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

// New returns the codec registered under name. An empty name is nop.
func New(name string) (Compress, error) {
	switch name {
	case "", "nop", "none":
		return NewNop(), nil
	case "gzip":
		return NewGZip(), nil
	case "brotli":
		return NewBrotli(), nil
	case "lz4":
		return NewLZ4(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
}

// Nop stores payloads as they are.
type Nop struct{}

func NewNop() Nop { return Nop{} }

func (Nop) Name() string                       { return "nop" }
func (Nop) Encode(data []byte) ([]byte, error) { return data, nil }
func (Nop) Decode(data []byte) ([]byte, error) { return data, nil }
