package program

import "fmt"

// MismatchedBracketError reports a '[' or ']' with no partner. Offset is the
// byte offset into the source; Line and Column are 1-based.
type MismatchedBracketError struct {
	Offset int
	Line   int
	Column int
}

func (e *MismatchedBracketError) Error() string {
	return fmt.Sprintf("mismatched bracket at offset %d (line %d, column %d)", e.Offset, e.Line, e.Column)
}
