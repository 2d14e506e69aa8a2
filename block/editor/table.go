package editor

import (
	"fmt"

	"github.com/emrgen/jobpost/block"
)

// TableWidget edits a table block. Every operation first pads short rows to
// the width of the widest row, so any table written by the widget is
// rectangular even when the stored one was not.
type TableWidget struct {
	value    block.Table
	onChange func(block.Table) error
}

func NewTableWidget(v block.Table, onChange func(block.Table) error) *TableWidget {
	return &TableWidget{value: v, onChange: onChange}
}

func (w *TableWidget) Kind() block.Kind   { return block.KindTable }
func (w *TableWidget) Value() block.Table { return w.value }

// SetTitle sets the caption; an empty caption is stored as absent.
func (w *TableWidget) SetTitle(title string) error {
	next := w.grid()
	next.Title = optional(title)
	return w.emit(next)
}

// AddRow appends an empty row. A table with no columns gets two.
func (w *TableWidget) AddRow() error {
	cols := w.value.Columns()
	if cols == 0 {
		cols = 2
	}
	next := w.grid()
	next.Rows = append(next.Rows, make([]string, cols))
	return w.emit(next)
}

// RemoveRow removes row i. The last remaining row cannot be removed.
func (w *TableWidget) RemoveRow(i int) error {
	if i < 0 || i >= len(w.value.Rows) {
		return fmt.Errorf("%w: row %d", ErrIndexOutOfRange, i)
	}
	if len(w.value.Rows) <= 1 {
		return ErrLastRow
	}
	next := w.grid()
	next.Rows = append(next.Rows[:i], next.Rows[i+1:]...)
	return w.emit(next)
}

// AddColumn appends an empty cell to every row.
func (w *TableWidget) AddColumn() error {
	next := w.grid()
	for i, row := range next.Rows {
		next.Rows[i] = append(row, "")
	}
	return w.emit(next)
}

// RemoveColumn removes column i from every row. The last remaining column
// cannot be removed.
func (w *TableWidget) RemoveColumn(i int) error {
	cols := w.value.Columns()
	if i < 0 || i >= cols {
		return fmt.Errorf("%w: column %d", ErrIndexOutOfRange, i)
	}
	if cols <= 1 {
		return ErrLastColumn
	}
	next := w.grid()
	for r, row := range next.Rows {
		next.Rows[r] = append(row[:i], row[i+1:]...)
	}
	return w.emit(next)
}

// SetCell replaces the value of one cell.
func (w *TableWidget) SetCell(row, col int, value string) error {
	if row < 0 || row >= len(w.value.Rows) {
		return fmt.Errorf("%w: row %d", ErrIndexOutOfRange, row)
	}
	if col < 0 || col >= w.value.Columns() {
		return fmt.Errorf("%w: column %d", ErrIndexOutOfRange, col)
	}
	next := w.grid()
	next.Rows[row][col] = value
	return w.emit(next)
}

// grid returns a copy of the table with every row padded to the same width.
func (w *TableWidget) grid() block.Table {
	cols := w.value.Columns()
	next := w.value.Clone()
	for i, row := range next.Rows {
		for len(row) < cols {
			row = append(row, "")
		}
		next.Rows[i] = row
	}
	return next
}

func (w *TableWidget) emit(v block.Table) error {
	if w.onChange != nil {
		if err := w.onChange(v); err != nil {
			return err
		}
	}
	w.value = v
	return nil
}
