// Package trace formats and parses per-instruction CPU execution
// traces in the format emitted by Nintendulator, the reference NES
// emulator used to validate this core's CPU against nestest.nes.
package trace

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Entry is a single retired-instruction trace record, captured before
// the instruction's register/memory mutations take effect.
type Entry struct {
	PC         uint16
	Opcode     uint8
	Operand1   uint8
	Operand2   uint8
	OperandLen int // 0, 1 or 2 meaningful operand bytes
	Mnemonic   string
	A, X, Y    uint8
	P          uint8
	SP         uint8
	Cycle      uint64
}

// Sink receives trace entries as they're produced. Implementations
// are expected to be cheap and side-effect free on failure.
type Sink interface {
	Emit(e Entry) error
}

// WriterSink formats and writes one line per Entry, flushing after
// every write so a crash or invalid-opcode halt doesn't lose the most
// recent lines.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink wraps w as a trace Sink.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Emit(e Entry) error {
	if _, err := fmt.Fprintln(s.w, Format(e)); err != nil {
		return err
	}
	if f, ok := s.w.(*os.File); ok {
		return f.Sync()
	}
	return nil
}

// Format renders e in the reduced column layout this package writes
// (ParseNintendulatorLine reads the reference log's richer layout, not
// this one):
//
//	PPPP OPC AA BB      A:aa X:xx Y:yy P:pp SP:ss
//
// AA/BB are blank-padded when the instruction has fewer than two
// operand bytes.
func Format(e Entry) string {
	var ops [2]string
	for i := range ops {
		if i < e.OperandLen {
			ops[i] = fmt.Sprintf("%02X", []uint8{e.Operand1, e.Operand2}[i])
		} else {
			ops[i] = "  "
		}
	}

	return fmt.Sprintf("%04X %02X %s %s      A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		e.PC, e.Opcode, ops[0], ops[1], e.A, e.X, e.Y, e.P, e.SP)
}

// ParseNintendulatorLine parses one line of a reference nestest.log,
// which carries the richer format
//
//	C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD PPU:  0,  0 CYC:0
//
// at fixed column offsets. Only the fields this package compares
// (PC, A, X, Y, P, SP) are extracted; PPU/CYC are ignored.
func ParseNintendulatorLine(line string) (Entry, error) {
	if len(line) < 73 {
		return Entry{}, fmt.Errorf("trace: line too short to parse: %q", line)
	}

	var e Entry
	pc, err := strconv.ParseUint(strings.TrimSpace(line[0:4]), 16, 16)
	if err != nil {
		return Entry{}, fmt.Errorf("trace: bad PC field: %w", err)
	}
	e.PC = uint16(pc)

	a, err := strconv.ParseUint(strings.TrimSpace(line[50:52]), 16, 8)
	if err != nil {
		return Entry{}, fmt.Errorf("trace: bad A field: %w", err)
	}
	e.A = uint8(a)

	x, err := strconv.ParseUint(strings.TrimSpace(line[55:57]), 16, 8)
	if err != nil {
		return Entry{}, fmt.Errorf("trace: bad X field: %w", err)
	}
	e.X = uint8(x)

	y, err := strconv.ParseUint(strings.TrimSpace(line[60:62]), 16, 8)
	if err != nil {
		return Entry{}, fmt.Errorf("trace: bad Y field: %w", err)
	}
	e.Y = uint8(y)

	p, err := strconv.ParseUint(strings.TrimSpace(line[65:67]), 16, 8)
	if err != nil {
		return Entry{}, fmt.Errorf("trace: bad P field: %w", err)
	}
	e.P = uint8(p)

	sp, err := strconv.ParseUint(strings.TrimSpace(line[71:73]), 16, 8)
	if err != nil {
		return Entry{}, fmt.Errorf("trace: bad SP field: %w", err)
	}
	e.SP = uint8(sp)

	return e, nil
}

// Equal compares the 6-field projection (PC, A, X, Y, P, SP) that the
// nestest regression checks, ignoring opcode/operand bytes, mnemonic
// and cycle count.
func (e Entry) Equal(o Entry) bool {
	return e.PC == o.PC && e.A == o.A && e.X == o.X && e.Y == o.Y && e.P == o.P && e.SP == o.SP
}

// Diff returns a human-readable description of the first field that
// differs between e and o, or "" if Equal(o).
func (e Entry) Diff(o Entry) string {
	switch {
	case e.PC != o.PC:
		return fmt.Sprintf("PC: got %04X, want %04X", e.PC, o.PC)
	case e.A != o.A:
		return fmt.Sprintf("A: got %02X, want %02X", e.A, o.A)
	case e.X != o.X:
		return fmt.Sprintf("X: got %02X, want %02X", e.X, o.X)
	case e.Y != o.Y:
		return fmt.Sprintf("Y: got %02X, want %02X", e.Y, o.Y)
	case e.P != o.P:
		return fmt.Sprintf("P: got %02X, want %02X", e.P, o.P)
	case e.SP != o.SP:
		return fmt.Sprintf("SP: got %02X, want %02X", e.SP, o.SP)
	default:
		return ""
	}
}
