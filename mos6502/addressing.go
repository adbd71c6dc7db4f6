package mos6502

// Addressing-mode functions compute the effective address (addrAbs)
// or relative displacement (addrRel) for the instruction about to
// execute. Each returns 1 if it might contribute a page-cross extra
// cycle and 0 otherwise; the opcode function's own return value is
// ANDed with this one, since some opcodes (stores, RMW) never take
// the extra cycle even when the addressing mode crossed a page.

// amIMP: Implied. No operand.
func amIMP(c *CPU) uint8 {
	return 0
}

// amACC: Accumulator. The instruction reads and writes A directly.
func amACC(c *CPU) uint8 {
	c.accMode = true
	c.fetched = c.A
	return 0
}

// amIMM: Immediate. The operand is the byte following the opcode.
func amIMM(c *CPU) uint8 {
	c.addrAbs = c.PC
	c.PC++
	return 0
}

// amZP0: Zero page.
func amZP0(c *CPU) uint8 {
	c.addrAbs = uint16(c.read(c.PC))
	c.PC++
	return 0
}

// amZPX: Zero page, X-indexed. Wraps within page zero.
func amZPX(c *CPU) uint8 {
	c.addrAbs = uint16(c.read(c.PC)+c.X) & 0x00FF
	c.PC++
	return 0
}

// amZPY: Zero page, Y-indexed. Wraps within page zero.
func amZPY(c *CPU) uint8 {
	c.addrAbs = uint16(c.read(c.PC)+c.Y) & 0x00FF
	c.PC++
	return 0
}

// amABS: Absolute, little-endian 16-bit operand.
func amABS(c *CPU) uint8 {
	c.addrAbs = c.readWord(c.PC)
	c.PC += 2
	return 0
}

// amABX: Absolute, X-indexed. Extra cycle if indexing crosses a page.
func amABX(c *CPU) uint8 {
	base := c.readWord(c.PC)
	c.PC += 2
	c.addrAbs = base + uint16(c.X)
	if c.addrAbs&0xFF00 != base&0xFF00 {
		return 1
	}
	return 0
}

// amABY: Absolute, Y-indexed. Extra cycle if indexing crosses a page.
func amABY(c *CPU) uint8 {
	base := c.readWord(c.PC)
	c.PC += 2
	c.addrAbs = base + uint16(c.Y)
	if c.addrAbs&0xFF00 != base&0xFF00 {
		return 1
	}
	return 0
}

// amIND: Indirect, used only by JMP. Reproduces the documented
// hardware bug: if the pointer's low byte is 0xFF, the high byte of
// the effective address is read from the start of the same page
// rather than the start of the next one.
func amIND(c *CPU) uint8 {
	ptr := c.readWord(c.PC)
	c.PC += 2

	var lo, hi uint8
	lo = c.read(ptr)
	if ptr&0x00FF == 0x00FF {
		hi = c.read(ptr & 0xFF00)
	} else {
		hi = c.read(ptr + 1)
	}
	c.addrAbs = uint16(hi)<<8 | uint16(lo)
	return 0
}

// amIZX: Indexed indirect, (zp,X). The zero-page pointer is formed
// before indexing, and both pointer bytes wrap within page zero.
func amIZX(c *CPU) uint8 {
	p := (c.read(c.PC) + c.X) & 0xFF
	c.PC++
	lo := c.read(uint16(p))
	hi := c.read(uint16(p+1) & 0x00FF)
	c.addrAbs = uint16(hi)<<8 | uint16(lo)
	return 0
}

// amIZY: Indirect indexed, (zp),Y. The zero-page pointer is read
// first, then Y is added to the 16-bit result. Extra cycle if that
// addition crosses a page.
func amIZY(c *CPU) uint8 {
	p := c.read(c.PC)
	c.PC++
	lo := c.read(uint16(p))
	hi := c.read(uint16(p+1) & 0x00FF)
	base := uint16(hi)<<8 | uint16(lo)
	c.addrAbs = base + uint16(c.Y)
	if c.addrAbs&0xFF00 != base&0xFF00 {
		return 1
	}
	return 0
}

// amREL: Relative, used only by branches. Sign-extends the signed
// 8-bit displacement into addrRel; the branch opcode itself computes
// the target and any page-cross extra cycle.
func amREL(c *CPU) uint8 {
	off := uint16(c.read(c.PC))
	c.PC++
	if off&0x80 != 0 {
		off |= 0xFF00
	}
	c.addrRel = off
	return 0
}
