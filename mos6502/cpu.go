// Package mos6502 implements an interpreter for the MOS 6502
// processor as found in the NES (the NTSC variant, without decimal
// mode). It fetches, decodes and executes against a Bus the caller
// supplies; it owns no memory of its own beyond its six registers.
package mos6502

import (
	"errors"
	"fmt"

	"github.com/bdwalton/gonest/trace"
)

// ErrInvalidOpcode is returned (via Err) when the CPU fetches a byte
// with no documented-opcode entry in the dispatch table.
var ErrInvalidOpcode = errors.New("invalid opcode")

// Bus is the 16-bit address space the CPU executes against.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// Flag identifies a single bit of the status register P.
type Flag uint8

const (
	FlagC Flag = 1 << iota // Carry
	FlagZ                  // Zero
	FlagI                  // Interrupt disable
	FlagD                  // Decimal mode (unused on NES)
	FlagB                  // Break
	FlagU                  // Unused, architecturally always 1
	FlagV                  // Overflow
	FlagN                  // Negative
)

const (
	stackBase   uint16 = 0x0100
	nmiVector   uint16 = 0xFFFA
	resetVector uint16 = 0xFFFC
	irqVector   uint16 = 0xFFFE
)

// CPU holds the six architectural registers plus the per-instruction
// scratch state the addressing-mode and opcode functions communicate
// through.
type CPU struct {
	A, X, Y, SP uint8
	PC          uint16
	P           uint8

	opcode     uint8
	haveOpcode bool // false until the first real fetch, so a BRK-by-default opcode 0 can't be mistaken for a retired BRK
	addrAbs    uint16
	addrRel    uint16
	fetched    uint8
	accMode    bool // true while the current instruction's addressing mode is ACC

	cyclesRemaining uint8
	cycleCount      uint64

	bus  Bus
	sink trace.Sink
	err  error
}

// New returns a CPU wired to bus. Call Reset before the first Clock.
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// SetTraceSink attaches a sink that receives one Entry per retired
// instruction, emitted before that instruction mutates any register
// or memory. A nil sink (the default) disables tracing.
func (c *CPU) SetTraceSink(s trace.Sink) {
	c.sink = s
}

// Err returns the error that halted the CPU, if any. Once non-nil,
// Clock stops advancing state.
func (c *CPU) Err() error {
	return c.err
}

// Halted reports whether the CPU has stopped due to an invalid
// opcode.
func (c *CPU) Halted() bool {
	return c.err != nil
}

func (c *CPU) read(addr uint16) uint8 {
	return c.bus.Read(addr)
}

func (c *CPU) write(addr uint16, val uint8) {
	c.bus.Write(addr, val)
}

func (c *CPU) readWord(addr uint16) uint16 {
	lo := c.read(addr)
	hi := c.read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) getFlag(f Flag) bool {
	return c.P&uint8(f) != 0
}

func (c *CPU) setFlag(f Flag, on bool) {
	if on {
		c.P |= uint8(f)
	} else {
		c.P &^= uint8(f)
	}
}

func (c *CPU) setZN(v uint8) {
	c.setFlag(FlagZ, v == 0)
	c.setFlag(FlagN, v&0x80 != 0)
}

func (c *CPU) push(v uint8) {
	c.write(stackBase|uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.read(stackBase | uint16(c.SP))
}

func (c *CPU) pushWord(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) popWord() uint16 {
	lo := c.pop()
	hi := c.pop()
	return uint16(hi)<<8 | uint16(lo)
}

// fetch loads the operand byte addressed by the current instruction's
// addressing mode, unless that mode is ACC (which operates on A
// directly) or IMP (which has no operand).
func (c *CPU) fetch() uint8 {
	if !c.accMode {
		c.fetched = c.read(c.addrAbs)
	} else {
		c.fetched = c.A
	}
	return c.fetched
}

// Reset brings the CPU to its post-power-on state: registers zeroed,
// SP at 0xFD, interrupts disabled, PC loaded from the reset vector.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = uint8(FlagI) | uint8(FlagU)
	c.PC = c.readWord(resetVector)
	c.addrAbs, c.addrRel, c.fetched = 0, 0, 0
	c.cyclesRemaining = 8
	c.cycleCount = 0
	c.haveOpcode = false
	c.err = nil
}

// IRQ requests a maskable interrupt. No effect if interrupts are
// disabled (FlagI set).
func (c *CPU) IRQ() {
	if c.getFlag(FlagI) {
		return
	}
	c.interrupt(irqVector, false)
	c.cyclesRemaining = 7
}

// NMI requests a non-maskable interrupt; always honored.
func (c *CPU) NMI() {
	c.interrupt(nmiVector, false)
	c.cyclesRemaining = 8
}

// interrupt pushes PC and P (with B and U set per brk) and vectors PC
// to addr. brk distinguishes a software BRK (B=1) from a hardware
// IRQ/NMI (B=0); U is always pushed set.
func (c *CPU) interrupt(addr uint16, brk bool) {
	c.pushWord(c.PC)

	p := c.P | uint8(FlagU)
	if brk {
		p |= uint8(FlagB)
	} else {
		p &^= uint8(FlagB)
	}
	c.push(p)

	c.setFlag(FlagI, true)
	c.PC = c.readWord(addr)
}

// Clock advances the CPU by one cycle. When cyclesRemaining reaches
// zero, it fetches and fully executes the next instruction (this core
// does not model sub-instruction cycle timing beyond counting down),
// logging a trace entry before any state mutation.
func (c *CPU) Clock() {
	if c.err != nil {
		return
	}

	if c.cyclesRemaining == 0 {
		pc := c.PC
		c.opcode = c.read(c.PC)
		c.haveOpcode = true
		inst := opcodeTable[c.opcode]

		if inst.Mnemonic == "???" {
			c.err = fmt.Errorf("%w: opcode %#02x at pc %#04x", ErrInvalidOpcode, c.opcode, pc)
			return
		}

		op1, op2 := c.peekOperands(pc, inst.Length)
		if c.sink != nil {
			c.sink.Emit(trace.Entry{
				PC:         pc,
				Opcode:     c.opcode,
				Operand1:   op1,
				Operand2:   op2,
				OperandLen: int(inst.Length) - 1,
				Mnemonic:   inst.Mnemonic,
				A:          c.A,
				X:          c.X,
				Y:          c.Y,
				P:          c.P,
				SP:         c.SP,
				Cycle:      c.cycleCount,
			})
		}

		c.PC++
		c.cyclesRemaining = inst.Cycles
		c.accMode = false // amACC sets this back to true for ACC-mode instructions

		extraAddr := inst.AddrMode(c)
		extraOp := inst.Operate(c)
		c.cyclesRemaining += extraAddr & extraOp
	}

	c.cycleCount++
	c.cyclesRemaining--
}

// peekOperands reads the 0, 1, or 2 operand bytes following an
// opcode at pc without disturbing PC, purely for trace formatting.
func (c *CPU) peekOperands(pc uint16, length uint8) (uint8, uint8) {
	var op1, op2 uint8
	if length >= 2 {
		op1 = c.read(pc + 1)
	}
	if length >= 3 {
		op2 = c.read(pc + 2)
	}
	return op1, op2
}

// Complete reports whether the current instruction has fully retired,
// i.e. the next Clock call will begin fetching a new one.
func (c *CPU) Complete() bool {
	return c.cyclesRemaining == 0
}

// StepInstruction runs Clock until the in-flight instruction
// completes. Used by tests and the debug harness that want
// instruction-granularity stepping.
func (c *CPU) StepInstruction() {
	c.Clock()
	for !c.Complete() && c.err == nil {
		c.Clock()
	}
}

// CycleCount returns the total number of cycles executed since the
// last Reset.
func (c *CPU) CycleCount() uint64 {
	return c.cycleCount
}

// PCSet forcibly overrides PC, for test harnesses (e.g. nestest's
// "start at 0xC000") that bypass Reset's vector load.
func (c *CPU) PCSet(pc uint16) {
	c.PC = pc
}
