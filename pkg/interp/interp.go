// Package interp executes scanned Brainfuck programs against a byte tape.
//
// The engine is a single synchronous dispatch loop. Input and output are
// injected byte streams, so runs are deterministic under test; '.' and ','
// are the only operations that can block. Every error is fatal: the run stops
// at the offending instruction and output already written stays written.
package interp

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tliron/commonlog"

	"bf/interpreter-go/pkg/program"
)

// State describes where a run ended up.
type State int

const (
	// StateRunning means the instruction pointer is still inside the program.
	StateRunning State = iota
	// StateHalted means the program ran off its end normally.
	StateHalted
	// StateFailed means the run aborted on an error.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateHalted:
		return "halted"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var log = commonlog.GetLogger("bf.interp")

// Interpreter owns the tape and instruction pointer for one run of one
// program. Instances are single-use: after Run returns, State reports how the
// run ended and the tape stays inspectable.
type Interpreter struct {
	prog  *program.Program
	tape  *Tape
	pc    int
	in    io.ByteReader
	out   io.Writer
	opts  Options
	state State
}

// New wires a program to its input and output byte streams. Either stream may
// be nil: a nil input is at end-of-input from the start, a nil output
// discards writes.
func New(prog *program.Program, in io.Reader, out io.Writer, opts Options) *Interpreter {
	opts = opts.normalized()
	return &Interpreter{
		prog:  prog,
		tape:  NewTape(opts.TapeSize),
		in:    byteReader(in),
		out:   out,
		opts:  opts,
		state: StateRunning,
	}
}

func byteReader(r io.Reader) io.ByteReader {
	if r == nil {
		return nil
	}
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return bufio.NewReader(r)
}

// Tape exposes the tape, mainly so callers and tests can inspect cells after
// a run.
func (it *Interpreter) Tape() *Tape {
	return it.tape
}

// State reports the run state.
func (it *Interpreter) State() State {
	return it.state
}

// Pos returns the instruction pointer.
func (it *Interpreter) Pos() int {
	return it.pc
}

// Run dispatches instructions until the program halts or fails. The returned
// error is nil exactly when the final state is StateHalted.
func (it *Interpreter) Run() error {
	for it.pc < it.prog.Len() {
		if err := it.step(); err != nil {
			it.state = StateFailed
			return err
		}
		it.pc++
	}
	it.state = StateHalted
	return nil
}

// step executes the instruction under pc. Jumps set pc to the matching
// bracket's index; the pc advance in Run then lands execution just past it.
func (it *Interpreter) step() error {
	op := it.prog.Instructions[it.pc]
	if it.opts.Trace {
		log.Debugf("pc=%d op=%c ptr=%d cell=%d", it.pc, op, it.tape.Pointer(), it.tape.Cur())
	}
	switch op {
	case program.OpRight:
		if !it.tape.Right() {
			return &TapeOverflowError{
				Instruction: it.pc,
				Offset:      it.prog.Offsets[it.pc],
				Limit:       it.tape.Limit(),
			}
		}
	case program.OpLeft:
		if !it.tape.Left() {
			return &PointerUnderflowError{
				Instruction: it.pc,
				Offset:      it.prog.Offsets[it.pc],
			}
		}
	case program.OpInc:
		it.tape.Inc()
	case program.OpDec:
		it.tape.Dec()
	case program.OpWrite:
		if err := it.writeByte(it.tape.Cur()); err != nil {
			return fmt.Errorf("write output at instruction %d: %w", it.pc, err)
		}
	case program.OpRead:
		if err := it.readByte(); err != nil {
			return fmt.Errorf("read input at instruction %d: %w", it.pc, err)
		}
	case program.OpOpen:
		if it.tape.Cur() == 0 {
			it.pc = it.prog.Jumps[it.pc]
		}
	case program.OpClose:
		if it.tape.Cur() != 0 {
			it.pc = it.prog.Jumps[it.pc]
		}
	}
	return nil
}

func (it *Interpreter) writeByte(value byte) error {
	if it.out == nil {
		return nil
	}
	_, err := it.out.Write([]byte{value})
	return err
}

// readByte applies the configured end-of-input policy when the stream is
// exhausted; any other read failure is fatal.
func (it *Interpreter) readByte() error {
	if it.in == nil {
		it.applyEOF()
		return nil
	}
	value, err := it.in.ReadByte()
	if err == io.EOF {
		it.applyEOF()
		return nil
	}
	if err != nil {
		return err
	}
	it.tape.Set(value)
	return nil
}

func (it *Interpreter) applyEOF() {
	switch it.opts.EOF {
	case EOFZero:
		it.tape.Set(0)
	case EOFValue:
		it.tape.Set(255)
	}
	// EOFUnchanged: nothing to do.
}

// Run scans source and executes it in one call, a convenience for embedders
// and the fixture harness.
func Run(source []byte, in io.Reader, out io.Writer, opts Options) error {
	prog, err := program.Scan(source)
	if err != nil {
		return err
	}
	return New(prog, in, out, opts).Run()
}
