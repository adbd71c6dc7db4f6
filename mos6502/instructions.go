package mos6502

// Opcode functions implement instruction semantics. Each returns 1 if
// it is sensitive to a page-crossing addressing mode (eligible for
// the extra cycle Clock ANDs against the addressing mode's own
// return) and 0 otherwise.

func opADC(c *CPU) uint8 {
	m := c.fetch()
	sum := uint16(c.A) + uint16(m)
	if c.getFlag(FlagC) {
		sum++
	}

	c.setFlag(FlagC, sum > 0xFF)
	c.setFlag(FlagV, (^(c.A^m))&(c.A^uint8(sum))&0x80 != 0)

	c.A = uint8(sum)
	c.setZN(c.A)
	return 1
}

func opSBC(c *CPU) uint8 {
	m := c.fetch() ^ 0xFF
	sum := uint16(c.A) + uint16(m)
	if c.getFlag(FlagC) {
		sum++
	}

	c.setFlag(FlagC, sum > 0xFF)
	c.setFlag(FlagV, (^(c.A^m))&(c.A^uint8(sum))&0x80 != 0)

	c.A = uint8(sum)
	c.setZN(c.A)
	return 1
}

func opAND(c *CPU) uint8 {
	c.A &= c.fetch()
	c.setZN(c.A)
	return 1
}

func opEOR(c *CPU) uint8 {
	c.A ^= c.fetch()
	c.setZN(c.A)
	return 1
}

func opORA(c *CPU) uint8 {
	c.A |= c.fetch()
	c.setZN(c.A)
	return 1
}

func shiftWriteBack(c *CPU, result uint8) {
	if c.accMode {
		c.A = result
	} else {
		c.write(c.addrAbs, result)
	}
}

func opASL(c *CPU) uint8 {
	m := c.fetch()
	c.setFlag(FlagC, m&0x80 != 0)
	result := m << 1
	shiftWriteBack(c, result)
	c.setZN(result)
	return 0
}

func opLSR(c *CPU) uint8 {
	m := c.fetch()
	c.setFlag(FlagC, m&0x01 != 0)
	result := m >> 1
	shiftWriteBack(c, result)
	c.setZN(result)
	return 0
}

func opROL(c *CPU) uint8 {
	m := c.fetch()
	carryIn := uint8(0)
	if c.getFlag(FlagC) {
		carryIn = 1
	}
	c.setFlag(FlagC, m&0x80 != 0)
	result := (m << 1) | carryIn
	shiftWriteBack(c, result)
	c.setZN(result)
	return 0
}

func opROR(c *CPU) uint8 {
	m := c.fetch()
	carryIn := uint8(0)
	if c.getFlag(FlagC) {
		carryIn = 0x80
	}
	c.setFlag(FlagC, m&0x01 != 0)
	result := (m >> 1) | carryIn
	shiftWriteBack(c, result)
	c.setZN(result)
	return 0
}

func compare(c *CPU, reg uint8) uint8 {
	m := c.fetch()
	c.setFlag(FlagC, reg >= m)
	c.setFlag(FlagZ, reg == m)
	c.setFlag(FlagN, (reg-m)&0x80 != 0)
	return 1
}

func opCMP(c *CPU) uint8 { return compare(c, c.A) }
func opCPX(c *CPU) uint8 { return compare(c, c.X) }
func opCPY(c *CPU) uint8 { return compare(c, c.Y) }

func opBIT(c *CPU) uint8 {
	m := c.fetch()
	c.setFlag(FlagZ, c.A&m == 0)
	c.setFlag(FlagV, m&0x40 != 0)
	c.setFlag(FlagN, m&0x80 != 0)
	return 0
}

func opINC(c *CPU) uint8 {
	v := c.fetch() + 1
	c.write(c.addrAbs, v)
	c.setZN(v)
	return 0
}

func opDEC(c *CPU) uint8 {
	v := c.fetch() - 1
	c.write(c.addrAbs, v)
	c.setZN(v)
	return 0
}

func opINX(c *CPU) uint8 { c.X++; c.setZN(c.X); return 0 }
func opINY(c *CPU) uint8 { c.Y++; c.setZN(c.Y); return 0 }
func opDEX(c *CPU) uint8 { c.X--; c.setZN(c.X); return 0 }
func opDEY(c *CPU) uint8 { c.Y--; c.setZN(c.Y); return 0 }

func opLDA(c *CPU) uint8 { c.A = c.fetch(); c.setZN(c.A); return 1 }
func opLDX(c *CPU) uint8 { c.X = c.fetch(); c.setZN(c.X); return 1 }
func opLDY(c *CPU) uint8 { c.Y = c.fetch(); c.setZN(c.Y); return 1 }

func opSTA(c *CPU) uint8 { c.write(c.addrAbs, c.A); return 0 }
func opSTX(c *CPU) uint8 { c.write(c.addrAbs, c.X); return 0 }
func opSTY(c *CPU) uint8 { c.write(c.addrAbs, c.Y); return 0 }

func opTAX(c *CPU) uint8 { c.X = c.A; c.setZN(c.X); return 0 }
func opTAY(c *CPU) uint8 { c.Y = c.A; c.setZN(c.Y); return 0 }
func opTXA(c *CPU) uint8 { c.A = c.X; c.setZN(c.A); return 0 }
func opTYA(c *CPU) uint8 { c.A = c.Y; c.setZN(c.A); return 0 }
func opTSX(c *CPU) uint8 { c.X = c.SP; c.setZN(c.X); return 0 }
func opTXS(c *CPU) uint8 { c.SP = c.X; return 0 } // does not touch flags

func opPHA(c *CPU) uint8 { c.push(c.A); return 0 }
func opPLA(c *CPU) uint8 { c.A = c.pop(); c.setZN(c.A); return 0 }

// PHP forces B and U set in the pushed byte, per the documented
// push/pull convention; neither bit is otherwise stored anywhere.
func opPHP(c *CPU) uint8 {
	c.push(c.P | uint8(FlagB) | uint8(FlagU))
	return 0
}

// PLP restores bits 0-3 and 6-7 from the stack; bits 4 (B) and 5 (U)
// keep their current values rather than being overwritten.
func opPLP(c *CPU) uint8 {
	b, u := c.getFlag(FlagB), c.getFlag(FlagU)
	c.P = c.pop()
	c.setFlag(FlagB, b)
	c.setFlag(FlagU, u)
	return 0
}

func opCLC(c *CPU) uint8 { c.setFlag(FlagC, false); return 0 }
func opCLD(c *CPU) uint8 { c.setFlag(FlagD, false); return 0 }
func opCLI(c *CPU) uint8 { c.setFlag(FlagI, false); return 0 }
func opCLV(c *CPU) uint8 { c.setFlag(FlagV, false); return 0 }
func opSEC(c *CPU) uint8 { c.setFlag(FlagC, true); return 0 }
func opSED(c *CPU) uint8 { c.setFlag(FlagD, true); return 0 }
func opSEI(c *CPU) uint8 { c.setFlag(FlagI, true); return 0 }

func opNOP(c *CPU) uint8 { return 0 }

func opJMP(c *CPU) uint8 { c.PC = c.addrAbs; return 0 }

func opJSR(c *CPU) uint8 {
	c.pushWord(c.PC - 1)
	c.PC = c.addrAbs
	return 0
}

func opRTS(c *CPU) uint8 {
	c.PC = c.popWord() + 1
	return 0
}

// BRK pushes PC+1 (the byte after the padding byte that follows the
// opcode), the status register with B=1, U=1, disables further IRQs
// and vectors through the IRQ/BRK vector. It is not distinguished
// from RTI's expectations: the pushed P always carries B=1 here,
// versus B=0 for a hardware IRQ/NMI.
func opBRK(c *CPU) uint8 {
	c.PC++
	c.interrupt(irqVector, true)
	return 0
}

// RTI pulls P wholesale, then forces B=0, U=1 per the push/pull
// convention (RTI is never itself a source of B=1).
func opRTI(c *CPU) uint8 {
	c.P = c.pop()
	c.setFlag(FlagB, false)
	c.setFlag(FlagU, true)
	c.PC = c.popWord()
	return 0
}

func branch(c *CPU, taken bool) uint8 {
	if !taken {
		return 0
	}
	c.cyclesRemaining++
	target := c.PC + c.addrRel
	if target&0xFF00 != c.PC&0xFF00 {
		c.cyclesRemaining++
	}
	c.PC = target
	return 0
}

func opBCC(c *CPU) uint8 { return branch(c, !c.getFlag(FlagC)) }
func opBCS(c *CPU) uint8 { return branch(c, c.getFlag(FlagC)) }
func opBEQ(c *CPU) uint8 { return branch(c, c.getFlag(FlagZ)) }
func opBNE(c *CPU) uint8 { return branch(c, !c.getFlag(FlagZ)) }
func opBMI(c *CPU) uint8 { return branch(c, c.getFlag(FlagN)) }
func opBPL(c *CPU) uint8 { return branch(c, !c.getFlag(FlagN)) }
func opBVC(c *CPU) uint8 { return branch(c, !c.getFlag(FlagV)) }
func opBVS(c *CPU) uint8 { return branch(c, c.getFlag(FlagV)) }

// opXXX backs every undocumented-opcode table slot. Clock never
// actually calls it: it halts with ErrInvalidOpcode before dispatch.
// It exists so opcodeTable can be built as a flat array literal
// without a nil-function special case.
func opXXX(c *CPU) uint8 { return 0 }
