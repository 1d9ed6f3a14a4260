package interp

// Tape is the linear byte memory a program operates on. The pointer starts at
// cell 0. An unbounded tape (limit 0) grows rightward on demand by doubling;
// a bounded tape refuses moves past its last cell. Moving left of cell 0 is
// always refused.
type Tape struct {
	cells []byte
	ptr   int
	limit int
}

const initialTapeCells = 4096

// NewTape returns a zeroed tape. limit <= 0 means unbounded.
func NewTape(limit int) *Tape {
	size := initialTapeCells
	if limit > 0 && limit < size {
		size = limit
	}
	return &Tape{cells: make([]byte, size), limit: limit}
}

// Right moves the pointer one cell right, growing the tape if unbounded.
// It reports false when a bounded tape's limit would be exceeded.
func (t *Tape) Right() bool {
	if t.limit > 0 && t.ptr+1 >= t.limit {
		return false
	}
	t.ptr++
	if t.ptr >= len(t.cells) {
		grown := make([]byte, len(t.cells)*2)
		copy(grown, t.cells)
		t.cells = grown
	}
	return true
}

// Left moves the pointer one cell left, reporting false on underflow.
func (t *Tape) Left() bool {
	if t.ptr == 0 {
		return false
	}
	t.ptr--
	return true
}

// Inc increments the current cell, wrapping 255 to 0.
func (t *Tape) Inc() {
	t.cells[t.ptr]++
}

// Dec decrements the current cell, wrapping 0 to 255.
func (t *Tape) Dec() {
	t.cells[t.ptr]--
}

// Cur returns the current cell's value.
func (t *Tape) Cur() byte {
	return t.cells[t.ptr]
}

// Set stores value into the current cell.
func (t *Tape) Set(value byte) {
	t.cells[t.ptr] = value
}

// Pointer returns the current cell index.
func (t *Tape) Pointer() int {
	return t.ptr
}

// Cell returns the value at index, or 0 for cells never touched.
func (t *Tape) Cell(index int) byte {
	if index < 0 || index >= len(t.cells) {
		return 0
	}
	return t.cells[index]
}

// Limit returns the configured cell limit, 0 when unbounded.
func (t *Tape) Limit() int {
	return t.limit
}
