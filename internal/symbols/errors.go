package symbols

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicate      = errors.New("duplicate declaration")
	ErrNoType         = errors.New("declaration without type")
	ErrMemberMismatch = errors.New("declaration does not match class member")
)

// StructuralError reports misuse of the tree by a compiler pass: a foreign
// parent, a cursor moved past its bounds, an operation on a released tree.
// These are bugs in the caller and are raised with panic.
type StructuralError struct {
	Op    string
	Layer LayerID
	Msg   string
}

func (e *StructuralError) Error() string {
	if e.Layer.IsValid() {
		return fmt.Sprintf("symbols: %s: layer %d: %s", e.Op, e.Layer, e.Msg)
	}
	return fmt.Sprintf("symbols: %s: %s", e.Op, e.Msg)
}

func structural(op string, layer LayerID, msg string) {
	panic(&StructuralError{Op: op, Layer: layer, Msg: msg})
}
