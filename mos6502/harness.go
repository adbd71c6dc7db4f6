package mos6502

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

// LoadProgram writes data into memory starting at baseAddr, points
// the reset vector at baseAddr, and resets the CPU so its first Clock
// fetches data[0]. This mirrors the test-harness entry point of the
// same name used to drive the multiply-loop and decrement-loop
// regression scenarios.
func (c *CPU) LoadProgram(data []byte, baseAddr uint16) {
	for i, b := range data {
		c.write(baseAddr+uint16(i), b)
	}
	c.write(resetVector, uint8(baseAddr))
	c.write(resetVector+1, uint8(baseAddr>>8))
	c.Reset()
}

// RunProgram steps the CPU instruction by instruction until a BRK
// retires. This is a debug convenience, not hardware behavior (real
// BRK is a software interrupt, not a halt): it exists so a short test
// program can fall off its end into zeroed memory -- which reads back
// as opcode 0x00, BRK -- and have the harness recognize that as
// completion.
func (c *CPU) RunProgram() error {
	for {
		c.StepInstruction()
		if c.err != nil {
			return c.err
		}
		if c.haveOpcode && c.opcode == 0x00 {
			return nil
		}
	}
}

// RunAutomation prepares the CPU for headless regression runs (as
// used by the nestest trace comparison): it resets normally, then
// overrides PC to 0xC000 rather than loading it from the reset
// vector, and makes the very first Clock call fetch immediately
// rather than spending the simulated reset cycles.
func (c *CPU) RunAutomation() {
	c.Reset()
	c.PC = 0xC000
	c.cyclesRemaining = 0
}

// Disassemble produces a static, address-ordered disassembly of the
// byte range [lo, hi] by walking the dispatch table the same way
// Clock does, without executing anything. Addresses that fall in the
// middle of a multi-byte instruction (because disassembly started mid
// stream) are not realigned; callers should pass an address that
// begins an instruction.
func (c *CPU) Disassemble(lo, hi uint16) map[uint16]string {
	out := make(map[uint16]string)
	addr := lo
	for addr <= hi {
		start := addr
		op := c.read(addr)
		inst := opcodeTable[op]
		addr++

		var operandStr string
		switch inst.Length {
		case 2:
			operandStr = fmt.Sprintf("$%02X", c.read(addr))
			addr++
		case 3:
			lo8, hi8 := c.read(addr), c.read(addr+1)
			operandStr = fmt.Sprintf("$%04X", uint16(hi8)<<8|uint16(lo8))
			addr += 2
		}

		if operandStr == "" {
			out[start] = fmt.Sprintf("$%04X: %s", start, inst.Mnemonic)
		} else {
			out[start] = fmt.Sprintf("$%04X: %s %s", start, inst.Mnemonic, operandStr)
		}

		if addr < start { // wrapped past 0xFFFF
			break
		}
	}
	return out
}

// DebugDump renders the CPU's architectural state with go-spew, for
// use in test failure output and the interactive debug REPL.
func (c *CPU) DebugDump() string {
	return spew.Sdump(struct {
		PC             uint16
		A, X, Y, P, SP uint8
		Cycle          uint64
		Halted         bool
	}{c.PC, c.A, c.X, c.Y, c.P, c.SP, c.cycleCount, c.Halted()})
}
