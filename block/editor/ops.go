package editor

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/emrgen/jobpost/block"
)

// ErrUnknownOp is returned for an operation name Apply does not know.
var ErrUnknownOp = errors.New("unknown editor operation")

// OpName names an editor operation in its serialized form.
type OpName string

const (
	OpInsert        OpName = "insert"
	OpMoveUp        OpName = "moveUp"
	OpMoveDown      OpName = "moveDown"
	OpDelete        OpName = "delete"
	OpUpdate        OpName = "update"
	OpAddRow        OpName = "addRow"
	OpRemoveRow     OpName = "removeRow"
	OpAddColumn     OpName = "addColumn"
	OpRemoveColumn  OpName = "removeColumn"
	OpSetCell       OpName = "setCell"
	OpSetTableTitle OpName = "setTableTitle"
)

// Op is one serialized editor action, used by clients that cannot hold an
// Editor themselves.
type Op struct {
	Op    OpName          `json:"op"`
	Kind  block.Kind      `json:"kind,omitempty"`
	Index int             `json:"index"`
	Block json.RawMessage `json:"block,omitempty"`
	Row   int             `json:"row,omitempty"`
	Col   int             `json:"col,omitempty"`
	Value string          `json:"value,omitempty"`
}

// Apply runs ops in order against doc and returns the resulting document.
// doc itself is never modified. The first failing op aborts the run.
func Apply(doc block.Document, ops []Op) (block.Document, error) {
	e := New(doc, nil)
	for i, op := range ops {
		if err := e.apply(op); err != nil {
			return nil, fmt.Errorf("op %d (%s): %w", i, op.Op, err)
		}
	}
	return e.Blocks(), nil
}

func (e *Editor) apply(op Op) error {
	switch op.Op {
	case OpInsert:
		return e.Insert(op.Kind)
	case OpMoveUp:
		return e.MoveUp(op.Index)
	case OpMoveDown:
		return e.MoveDown(op.Index)
	case OpDelete:
		return e.Delete(op.Index)
	case OpUpdate:
		b, err := block.Unmarshal(op.Block)
		if err != nil {
			return err
		}
		return e.Update(op.Index, b)
	case OpAddRow, OpRemoveRow, OpAddColumn, OpRemoveColumn, OpSetCell, OpSetTableTitle:
		w, err := e.Edit(op.Index)
		if err != nil {
			return err
		}
		table, ok := w.(*TableWidget)
		if !ok {
			return fmt.Errorf("%w: block %d is %s", ErrKindMismatch, op.Index, w.Kind())
		}
		return table.apply(op)
	}
	return fmt.Errorf("%w: %q", ErrUnknownOp, op.Op)
}

func (w *TableWidget) apply(op Op) error {
	switch op.Op {
	case OpAddRow:
		return w.AddRow()
	case OpRemoveRow:
		return w.RemoveRow(op.Row)
	case OpAddColumn:
		return w.AddColumn()
	case OpRemoveColumn:
		return w.RemoveColumn(op.Col)
	case OpSetCell:
		return w.SetCell(op.Row, op.Col, op.Value)
	case OpSetTableTitle:
		return w.SetTitle(op.Value)
	}
	return fmt.Errorf("%w: %q", ErrUnknownOp, op.Op)
}
