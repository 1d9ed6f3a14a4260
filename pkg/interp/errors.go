package interp

import "fmt"

// PointerUnderflowError reports a '<' that would move the data pointer below
// cell 0. Underflow never wraps, it aborts the run.
type PointerUnderflowError struct {
	Instruction int // instruction index within the program
	Offset      int // byte offset within the source
}

func (e *PointerUnderflowError) Error() string {
	return fmt.Sprintf("data pointer underflow at instruction %d (source offset %d)", e.Instruction, e.Offset)
}

// TapeOverflowError reports a '>' past the last cell of a bounded tape.
type TapeOverflowError struct {
	Instruction int
	Offset      int
	Limit       int
}

func (e *TapeOverflowError) Error() string {
	return fmt.Sprintf("data pointer past cell %d at instruction %d (source offset %d)", e.Limit-1, e.Instruction, e.Offset)
}
