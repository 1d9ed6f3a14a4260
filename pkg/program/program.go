// Package program turns Brainfuck source text into an executable instruction
// sequence with a precomputed jump table.
//
// Scanning keeps only the eight instruction characters; everything else in the
// source is a comment. Bracket matching happens here, once, with a single
// forward pass and an explicit stack of pending open brackets, so the
// interpreter never has to search for a matching bracket at run time.
package program

// The eight instruction characters.
const (
	OpRight = '>'
	OpLeft  = '<'
	OpInc   = '+'
	OpDec   = '-'
	OpWrite = '.'
	OpRead  = ','
	OpOpen  = '['
	OpClose = ']'
)

// Program is a scanned, bracket-validated Brainfuck program.
type Program struct {
	// Instructions holds only instruction characters, comments stripped.
	Instructions []byte
	// Offsets maps each instruction index to its byte offset in the source.
	Offsets []int
	// Jumps maps each '[' or ']' to the index of its matching bracket.
	// Entries for the other six instructions are -1.
	Jumps []int
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.Instructions)
}

// Scan strips comments from source, validates bracket nesting, and builds the
// jump table. Unbalanced brackets fail with a *MismatchedBracketError carrying
// the source position of the offending bracket; no other input is rejected.
func Scan(source []byte) (*Program, error) {
	prog := &Program{}
	var open []int // instruction indexes of pending '['

	for offset, ch := range source {
		switch ch {
		case OpRight, OpLeft, OpInc, OpDec, OpWrite, OpRead:
			prog.push(ch, offset, -1)
		case OpOpen:
			open = append(open, len(prog.Instructions))
			prog.push(ch, offset, -1)
		case OpClose:
			if len(open) == 0 {
				return nil, mismatchAt(source, offset)
			}
			openIdx := open[len(open)-1]
			open = open[:len(open)-1]
			closeIdx := len(prog.Instructions)
			prog.Jumps[openIdx] = closeIdx
			prog.push(ch, offset, openIdx)
		}
	}

	if len(open) > 0 {
		// Report the innermost unmatched '[': the scan already proved
		// everything before it is balanced.
		return nil, mismatchAt(source, prog.Offsets[open[len(open)-1]])
	}
	return prog, nil
}

func (p *Program) push(ch byte, offset, jump int) {
	p.Instructions = append(p.Instructions, ch)
	p.Offsets = append(p.Offsets, offset)
	p.Jumps = append(p.Jumps, jump)
}

func mismatchAt(source []byte, offset int) *MismatchedBracketError {
	line, column := 1, 1
	for _, ch := range source[:offset] {
		if ch == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return &MismatchedBracketError{Offset: offset, Line: line, Column: column}
}
