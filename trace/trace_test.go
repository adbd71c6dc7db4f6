package trace

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPadsMissingOperands(t *testing.T) {
	e := Entry{PC: 0xC000, Opcode: 0x4C, OperandLen: 0, A: 0, X: 0, Y: 0, P: 0x24, SP: 0xFD}
	got := Format(e)
	assert.Equal(t, "C000 4C            A:00 X:00 Y:00 P:24 SP:FD", got)
}

func TestFormatTwoOperands(t *testing.T) {
	e := Entry{PC: 0xC000, Opcode: 0x4C, Operand1: 0xF5, Operand2: 0xC5, OperandLen: 2, A: 1, X: 2, Y: 3, P: 0x24, SP: 0xFD}
	got := Format(e)
	assert.Equal(t, "C000 4C F5 C5      A:01 X:02 Y:03 P:24 SP:FD", got)
}

func TestParseNintendulatorLine(t *testing.T) {
	line := "C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD PPU:  0,  0 CYC:0"
	e, err := ParseNintendulatorLine(line)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xC000), e.PC)
	assert.Equal(t, uint8(0x00), e.A)
	assert.Equal(t, uint8(0x24), e.P)
	assert.Equal(t, uint8(0xFD), e.SP)
}

func TestEntryEqualAndDiff(t *testing.T) {
	a := Entry{PC: 0xC000, A: 1, X: 2, Y: 3, P: 0x24, SP: 0xFD}
	b := a
	assert.True(t, a.Equal(b))
	assert.Empty(t, a.Diff(b))

	b.X = 5
	assert.False(t, a.Equal(b))
	assert.Contains(t, a.Diff(b), "X:")
}

func TestWriterSinkEmitsOneLinePerEntry(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	require.NoError(t, sink.Emit(Entry{PC: 0xC000, Opcode: 0xEA, Mnemonic: "NOP", P: 0x24, SP: 0xFD}))
	require.NoError(t, sink.Emit(Entry{PC: 0xC001, Opcode: 0xEA, Mnemonic: "NOP", P: 0x24, SP: 0xFD}))

	lines := bytes.Count(buf.Bytes(), []byte("\n"))
	assert.Equal(t, 2, lines)
}
