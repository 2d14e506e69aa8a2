// Package editor mutates a block document under user direction.
//
// The editor never mutates an array it has handed out. Every successful
// operation builds a new top-level array and passes it to the owner's
// change callback, so owners can detect changes by comparing slices.
package editor

import (
	"errors"
	"fmt"

	"github.com/emrgen/jobpost/block"
)

var (
	// ErrIndexOutOfRange is returned for an index outside the document.
	ErrIndexOutOfRange = errors.New("block index out of range")
	// ErrKindMismatch is returned when an update would change a block's kind.
	ErrKindMismatch = errors.New("block kind cannot change on update")
	// ErrLastRow is returned when removing the only row of a table.
	ErrLastRow = errors.New("a table must keep at least one row")
	// ErrLastColumn is returned when removing the only column of a table.
	ErrLastColumn = errors.New("a table must keep at least one column")
	// ErrStaleWidget is returned by a widget whose block was moved, or shifted
	// by an insert or delete, after the widget was created.
	ErrStaleWidget = errors.New("block moved since the widget was opened")
)

// ChangeFunc receives the complete replacement document after an edit.
type ChangeFunc func(block.Document)

// Editor holds the working copy of a document while its owner's form is open.
type Editor struct {
	blocks   block.Document
	onChange ChangeFunc
	// layout changes whenever block positions change; payload updates keep it.
	layout uint64
}

// New creates an editor over initial. The initial array is never modified.
func New(initial block.Document, onChange ChangeFunc) *Editor {
	if initial == nil {
		initial = block.Document{}
	}
	return &Editor{blocks: initial, onChange: onChange}
}

// Blocks returns the current document. Callers must treat it as read only.
func (e *Editor) Blocks() block.Document {
	return e.blocks
}

// Len returns the number of blocks.
func (e *Editor) Len() int {
	return len(e.blocks)
}

// CanMoveUp reports whether MoveUp(i) would change the order.
func (e *Editor) CanMoveUp(i int) bool {
	return i > 0 && i < len(e.blocks)
}

// CanMoveDown reports whether MoveDown(i) would change the order.
func (e *Editor) CanMoveDown(i int) bool {
	return i >= 0 && i < len(e.blocks)-1
}

// Insert appends the default block of kind k.
func (e *Editor) Insert(k block.Kind) error {
	b := block.CreateDefault(k)
	if b == nil {
		return fmt.Errorf("%w: %q", block.ErrUnknownKind, k)
	}

	next := make(block.Document, len(e.blocks), len(e.blocks)+1)
	copy(next, e.blocks)
	e.layout++
	e.commit(append(next, b))

	return nil
}

// MoveUp swaps block i with its predecessor. At index 0 it does nothing.
func (e *Editor) MoveUp(i int) error {
	if err := e.check(i); err != nil {
		return err
	}
	if i == 0 {
		return nil
	}
	e.swap(i, i-1)
	return nil
}

// MoveDown swaps block i with its successor. At the last index it does nothing.
func (e *Editor) MoveDown(i int) error {
	if err := e.check(i); err != nil {
		return err
	}
	if i == len(e.blocks)-1 {
		return nil
	}
	e.swap(i, i+1)
	return nil
}

// Delete removes block i, preserving the order of the rest.
func (e *Editor) Delete(i int) error {
	if err := e.check(i); err != nil {
		return err
	}

	next := make(block.Document, 0, len(e.blocks)-1)
	next = append(next, e.blocks[:i]...)
	next = append(next, e.blocks[i+1:]...)
	e.layout++
	e.commit(next)

	return nil
}

// Update replaces block i with b, which must have the same kind.
func (e *Editor) Update(i int, b block.Block) error {
	if err := e.check(i); err != nil {
		return err
	}
	if b == nil || b.Kind() != e.blocks[i].Kind() {
		return fmt.Errorf("%w: block %d is %s", ErrKindMismatch, i, e.blocks[i].Kind())
	}

	next := e.blocks.Clone()
	next[i] = b
	e.commit(next)

	return nil
}

func (e *Editor) swap(i, j int) {
	next := e.blocks.Clone()
	next[i], next[j] = next[j], next[i]
	e.layout++
	e.commit(next)
}

func (e *Editor) check(i int) error {
	if i < 0 || i >= len(e.blocks) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(e.blocks))
	}
	return nil
}

func (e *Editor) commit(next block.Document) {
	e.blocks = next
	if e.onChange != nil {
		e.onChange(next)
	}
}
