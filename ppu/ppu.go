// Package ppu implements a timing skeleton for the NES 2C02: the
// scanline/dot counters, the vblank flag and NMI assertion PPUCTRL's
// bit 7 gates, and the register read/write surface a CPU bus needs to
// drive that timing. It does not decode pattern tables or nametables
// into pixels -- that rendering pipeline is out of scope here -- but
// it does own VRAM and palette RAM faithfully enough that PPUADDR/
// PPUDATA round-trip the way software expects.
package ppu

import (
	"image/color"
)

const (
	VRAM_SIZE    = 2048
	PALETTE_SIZE = 32
)

// Display constants
const (
	NES_RES_WIDTH  = 256
	NES_RES_HEIGHT = 240
)

// Special Registers
const (
	PPUCTRL   = 0x2000
	PPUMASK   = 0x2001
	PPUSTATUS = 0x2002
	OAMADDR   = 0x2003
	OAMDATA   = 0x2004
	PPUSCROLL = 0x2005
	PPUADDR   = 0x2006
	PPUDATA   = 0x2007
	OAMDMA    = 0x4014
)

// PPUCTRL bit flags
// 7  bit  0
// ---- ----
// VPHB SINN
// |||| ||||
// |||| ||++- Base nametable address
// |||| |+--- VRAM address increment per CPU read/write of PPUDATA
// |||| +---- Sprite pattern table address for 8x8 sprites
// |||+------ Background pattern table address
// ||+------- Sprite size
// |+-------- PPU master/slave select
// +--------- Generate an NMI at the start of vertical blank
const (
	CTRL_NAMETABLE1              = 1
	CTRL_NAMETABLE2              = 1 << 1
	CTRL_VRAM_ADD_INCREMENT      = 1 << 2
	CTRL_SPRITE_PATTERN_ADDR     = 1 << 3
	CTRL_BACKGROUND_PATTERN_ADDR = 1 << 4
	CTRL_SPRITE_SIZE             = 1 << 5
	CTRL_MASTER_SLAVE_SELECT     = 1 << 6
	CTRL_GENERATE_NMI            = 1 << 7
)

// VRAM increment options
const (
	CTRL_INCR_ACROSS = 1
	CTRL_INCR_DOWN   = 32
)

// PPUSTATUS bit flags
const (
	STATUS_SPRITE_OVERFLOW = 1 << 5
	STATUS_SPRITE_0_HIT    = 1 << 6
	STATUS_VERTICAL_BLANK  = 1 << 7
)

// Mirroring mode, shared with the mapper's own MirroringMode().
const (
	MIRROR_HORIZONTAL = iota
	MIRROR_VERTICAL
	MIRROR_FOUR_SCREEN
)

const (
	NAMETABLE_0      = 0x2000
	NAMETABLE_MIRROR = 0x3EFF
	PALETTE_RAM      = 0x3F00
	PALETTE_MIRROR   = 0x3F20
)

// Bus is the collaborator the PPU asserts interrupts against. Pattern
// table access belongs to the mapper, not the PPU, and isn't needed
// here since no pixel pipeline reads it.
type Bus interface {
	TriggerNMI()
}

// Renderer is the opaque video sink spec.md treats the surrounding
// renderer as: SetPixel is driven once per dot (per tick) and
// PresentFrame once per completed frame. The pixel pipeline itself
// (pattern-table decode, sprite evaluation) is out of scope for this
// core; a host implements Renderer to receive the timing this package
// produces without depending on any concrete framebuffer type.
type Renderer interface {
	SetPixel(x, y int, c color.RGBA)
	PresentFrame()
}

// PPU models scanline/dot timing and the register window a CPU bus
// maps at $2000-$2007 (mirrored every 8 bytes up through $3FFF). OAM
// DMA ($4014) is not handled here.
type PPU struct {
	bus      Bus
	renderer Renderer

	vram         [VRAM_SIZE]uint8
	paletteTable [PALETTE_SIZE]uint8
	mirrorMode   uint8

	registers map[uint16]uint8

	// internal registers, named per nesdev's PPU scrolling doc
	v, t   uint16 // current/temp VRAM address; 15 bits used
	x      uint8  // fine X scroll; 3 bits used
	wLatch uint8  // PPUSCROLL/PPUADDR first-or-second-write toggle

	scanline int16 // -1 (pre-render) through 260
	scandot  int16 // 0 through 340

	frameComplete bool

	bufferData uint8
}

// New returns a PPU wired to bus, positioned at dot 0 of the
// pre-render line (scanline -1).
func New(bus Bus) *PPU {
	return &PPU{
		bus:       bus,
		scanline:  -1,
		registers: make(map[uint16]uint8),
	}
}

// Resolution reports the NES's fixed display dimensions.
func (p *PPU) Resolution() (int, int) {
	return NES_RES_WIDTH, NES_RES_HEIGHT
}

// SetMirrorMode configures nametable mirroring, as reported by the
// cartridge's mapper.
func (p *PPU) SetMirrorMode(m uint8) {
	p.mirrorMode = m
}

// SetRenderer attaches the host sink Tick drives: SetPixel once per
// dot, PresentFrame once per completed frame. A nil renderer (the
// default) leaves Tick a pure timing/register stub with nowhere to
// send pixels.
func (p *PPU) SetRenderer(r Renderer) {
	p.renderer = r
}

// backdropColor is the color every pixel carries: this PPU owns no
// pattern-table decode or sprite evaluation, so it stands in for the
// pixel pipeline with palette RAM entry 0.
func (p *PPU) backdropColor() color.RGBA {
	return SYSTEM_PALETTE[p.paletteTable[0]&0x3F]
}

func (p *PPU) WriteRegister(r uint16, val uint8) {
	switch r {
	case PPUCTRL:
		p.t = (p.t & 0xF3FF) | (uint16(val&0x03) << 10)
	case PPUSCROLL:
		if p.wLatch == 0 {
			p.t = (p.t & 0xFFE0) | (uint16(val&0xF8) >> 3)
			p.x = val & 0x07
			p.wLatch = 1
		} else {
			p.t = (uint16(val)&0x0007)<<12 | (p.t & 0x0C00) | (uint16(val)&0x00F8)<<2 | (p.t & 0x001F)
			p.wLatch = 0
		}
	case PPUADDR:
		if p.wLatch == 0 {
			p.t = (p.t & 0x00FF) | (uint16(val&0x3F) << 8)
			p.wLatch = 1
		} else {
			p.t = (p.t & 0xFF00) | uint16(val)
			p.v = p.t
			p.wLatch = 0
		}
	case PPUDATA:
		p.write(p.v, val)
		p.vramIncrement()
	}

	// For PPUADDR/PPUSCROLL this is meaningless (they have no
	// readable latch of their own) but harmless to record.
	p.registers[r] = val
}

// ReadRegister returns the current value of a CPU-visible register.
func (p *PPU) ReadRegister(r uint16) uint8 {
	switch r {
	case PPUSTATUS:
		status := p.registers[PPUSTATUS]
		p.registers[PPUSTATUS] &^= STATUS_VERTICAL_BLANK
		p.wLatch = 0
		return status
	case PPUDATA:
		data := p.read(p.v)
		p.vramIncrement()
		return data
	}

	return p.registers[r]
}

func (p *PPU) vramIncrement() {
	x := uint16(CTRL_INCR_ACROSS)
	if p.registers[PPUCTRL]&CTRL_VRAM_ADD_INCREMENT > 0 {
		x = CTRL_INCR_DOWN
	}
	p.v += x
}

func (p *PPU) tileMapAddr(addr uint16) uint16 {
	a := addr - NAMETABLE_0
	switch p.mirrorMode {
	case MIRROR_HORIZONTAL:
		if a >= 0x800 {
			return 0x0400 + ((a - 0x800) % 0x400)
		}
		return a % 0x0400
	case MIRROR_VERTICAL:
		return a % 0x800
	default:
		// Four-screen needs cartridge-provided VRAM this PPU
		// doesn't model; fall back to vertical mirroring rather
		// than panicking on an unsupported board.
		return a % 0x800
	}
}

func (p *PPU) read(addr uint16) uint8 {
	a := addr % 0x4000
	switch {
	case a < NAMETABLE_0:
		// Pattern table space: no CHR access from the PPU itself.
		return 0
	case a < PALETTE_RAM:
		return p.vram[p.tileMapAddr(a)]
	case a < NAMETABLE_MIRROR:
		return p.vram[p.tileMapAddr(a-NAMETABLE_0)]
	case a < PALETTE_MIRROR:
		return p.paletteTable[a-PALETTE_RAM]
	default:
		return p.paletteTable[(a-PALETTE_RAM)%0x0020]
	}
}

func (p *PPU) write(addr uint16, val uint8) {
	a := addr % 0x4000
	switch {
	case a < NAMETABLE_0:
		// Pattern table space is CHR ROM/RAM, owned by the
		// mapper; the PPU's register window can't reach it here.
	case a < PALETTE_RAM:
		p.vram[p.tileMapAddr(a)] = val
	case a < NAMETABLE_MIRROR:
		p.vram[p.tileMapAddr(a-NAMETABLE_0)] = val
	case a < PALETTE_MIRROR:
		p.paletteTable[a-PALETTE_RAM] = val
	default:
		p.paletteTable[(a-PALETTE_RAM)%0x0020] = val
	}
}

func (p *PPU) generateNMI() bool {
	return p.registers[PPUCTRL]&CTRL_GENERATE_NMI > 0
}

// Scanline reports the current scanline, -1 (pre-render) through 260.
func (p *PPU) Scanline() int16 { return p.scanline }

// Dot reports the current dot within the scanline, 0 through 340.
func (p *PPU) Dot() int16 { return p.scandot }

// FrameComplete reports whether a frame just finished, consuming the
// latch: it returns true exactly once per frame, on the Tick call
// that wraps the pre-render line (scanline 260 back to -1).
func (p *PPU) FrameComplete() bool {
	fc := p.frameComplete
	p.frameComplete = false
	return fc
}

// Tick advances the PPU by one dot (pixel clock cycle; three PPU dots
// per CPU cycle on NTSC hardware). It owns no per-pixel rendering
// pipeline, but it does drive the renderer's opaque SetPixel/
// PresentFrame sink with the timing and backdrop color this core can
// produce, plus the scanline/dot bookkeeping, the vblank flag's
// set/clear edges, and the NMI it gates.
//
// frameComplete only latches on the pre-render wrap (scanline 260 ->
// -1), once every 262 scanlines: vblank starting at scanline 241 is a
// distinct edge (it sets STATUS_VERTICAL_BLANK and fires NMI) from a
// frame actually completing.
func (p *PPU) Tick() {
	if p.renderer != nil {
		p.renderer.SetPixel(int(p.scandot), int(p.scanline)+1, p.backdropColor())
	}

	p.scandot++
	if p.scandot > 340 {
		p.scandot = 0
		p.scanline++
		if p.scanline > 260 {
			p.scanline = -1
			p.frameComplete = true
			if p.renderer != nil {
				p.renderer.PresentFrame()
			}
		}
	}

	switch {
	case p.scanline == 241 && p.scandot == 1:
		p.registers[PPUSTATUS] |= STATUS_VERTICAL_BLANK
		if p.generateNMI() {
			p.bus.TriggerNMI()
		}
	case p.scanline == -1 && p.scandot == 1:
		p.registers[PPUSTATUS] &^= STATUS_VERTICAL_BLANK | STATUS_SPRITE_0_HIT | STATUS_SPRITE_OVERFLOW
	}
}

// SYSTEM_PALETTE is the NES's fixed 64-entry NTSC palette, indexed by
// the 6-bit values palette RAM stores.
var SYSTEM_PALETTE = [64]color.RGBA{
	rgb(0x80, 0x80, 0x80), rgb(0x00, 0x3D, 0xA6), rgb(0x00, 0x12, 0xB0), rgb(0x44, 0x00, 0x96), rgb(0xA1, 0x00, 0x5E),
	rgb(0xC7, 0x00, 0x28), rgb(0xBA, 0x06, 0x00), rgb(0x8C, 0x17, 0x00), rgb(0x5C, 0x2F, 0x00), rgb(0x10, 0x45, 0x00),
	rgb(0x05, 0x4A, 0x00), rgb(0x00, 0x47, 0x2E), rgb(0x00, 0x41, 0x66), rgb(0x00, 0x00, 0x00), rgb(0x05, 0x05, 0x05),
	rgb(0x05, 0x05, 0x05), rgb(0xC7, 0xC7, 0xC7), rgb(0x00, 0x77, 0xFF), rgb(0x21, 0x55, 0xFF), rgb(0x82, 0x37, 0xFA),
	rgb(0xEB, 0x2F, 0xB5), rgb(0xFF, 0x29, 0x50), rgb(0xFF, 0x22, 0x00), rgb(0xD6, 0x32, 0x00), rgb(0xC4, 0x62, 0x00),
	rgb(0x35, 0x80, 0x00), rgb(0x05, 0x8F, 0x00), rgb(0x00, 0x8A, 0x55), rgb(0x00, 0x99, 0xCC), rgb(0x21, 0x21, 0x21),
	rgb(0x09, 0x09, 0x09), rgb(0x09, 0x09, 0x09), rgb(0xFF, 0xFF, 0xFF), rgb(0x0F, 0xD7, 0xFF), rgb(0x69, 0xA2, 0xFF),
	rgb(0xD4, 0x80, 0xFF), rgb(0xFF, 0x45, 0xF3), rgb(0xFF, 0x61, 0x8B), rgb(0xFF, 0x88, 0x33), rgb(0xFF, 0x9C, 0x12),
	rgb(0xFA, 0xBC, 0x20), rgb(0x9F, 0xE3, 0x0E), rgb(0x2B, 0xF0, 0x35), rgb(0x0C, 0xF0, 0xA4), rgb(0x05, 0xFB, 0xFF),
	rgb(0x5E, 0x5E, 0x5E), rgb(0x0D, 0x0D, 0x0D), rgb(0x0D, 0x0D, 0x0D), rgb(0xFF, 0xFF, 0xFF), rgb(0xA6, 0xFC, 0xFF),
	rgb(0xB3, 0xEC, 0xFF), rgb(0xDA, 0xAB, 0xEB), rgb(0xFF, 0xA8, 0xF9), rgb(0xFF, 0xAB, 0xB3), rgb(0xFF, 0xD2, 0xB0),
	rgb(0xFF, 0xEF, 0xA6), rgb(0xFF, 0xF7, 0x9C), rgb(0xD7, 0xE8, 0x95), rgb(0xA6, 0xED, 0xAF), rgb(0xA2, 0xF2, 0xDA),
	rgb(0x99, 0xFF, 0xFC), rgb(0xDD, 0xDD, 0xDD), rgb(0x11, 0x11, 0x11), rgb(0x11, 0x11, 0x11),
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 0xff}
}
