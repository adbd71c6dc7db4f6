package console

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/bdwalton/gonest/mappers"
	"github.com/bdwalton/gonest/mos6502"
	"github.com/bdwalton/gonest/ppu"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	NES_BASE_MEMORY = 0x800 // 2KB built in RAM

	MAX_ADDRESS          = math.MaxUint16
	MEM_SIZE             = MAX_ADDRESS + 1
	MAX_NES_BASE_RAM     = 0x1FFF
	MAX_PPU_REG_MIRRORED = 0x3FFF
	MAX_IO_REG           = 0x4020
	MAX_SRAM             = 0x6000
)

// Bus is the CPU's 16-bit address space: internal RAM, the PPU
// register window, an APU/IO stub, and cartridge space delegated to a
// mapper. It also plays host to the 1:3 PPU:CPU clock driver (Run) and
// an ebiten.Game front end for the renderer this core treats as an
// opaque collaborator.
type Bus struct {
	cpu    *mos6502.CPU
	ppu    *ppu.PPU
	mapper mappers.Mapper
	ram    []uint8
	ticks  uint64

	frame *image.RGBA
}

// New wires a Bus to cartridge m: it constructs the CPU and PPU around
// itself (each holds a reference back to the Bus to read/write through),
// attaches itself as the PPU's renderer sink, and sizes an ebiten window
// to the PPU's fixed NES resolution.
func New(m mappers.Mapper) *Bus {
	bus := &Bus{mapper: m, ram: make([]uint8, NES_BASE_MEMORY)}

	bus.cpu = mos6502.New(bus)
	bus.ppu = ppu.New(bus)
	bus.ppu.SetMirrorMode(m.MirroringMode())

	w, h := bus.ppu.Resolution()
	bus.frame = image.NewRGBA(image.Rect(0, 0, w, h))
	bus.ppu.SetRenderer(bus)

	ebiten.SetWindowSize(w*2, h*2) // Start with 2x the screen size
	ebiten.SetWindowTitle("gonest")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return bus
}

// CPU returns the Bus's CPU, for callers (cmd/gonest, test harnesses)
// that need to attach a trace sink or drive Reset/RunAutomation
// directly.
func (b *Bus) CPU() *mos6502.CPU {
	return b.cpu
}

// Layout returns the constant resolution of the NES and is part of
// the ebiten.Game interface. By returning constants here, we force
// ebiten to scale the display when the window size changes.
func (b *Bus) Layout(w, h int) (int, int) {
	return b.ppu.Resolution()
}

// Draw updates the displayed ebiten window with the current state of
// the framebuffer the PPU fills via SetPixel.
func (b *Bus) Draw(screen *ebiten.Image) {
	rect := b.frame.Bounds()
	dx, dy := rect.Dx(), rect.Dy()

	for x := 0; x < dx; x++ {
		for y := 0; y < dy; y++ {
			screen.Set(x, y, b.frame.At(x, y))
		}
	}
}

// SetPixel implements ppu.Renderer: the PPU drives this once per dot
// with the timing and backdrop color this core produces. Coordinates
// outside the visible frame (the PPU ticks through the full 341x262
// dot/scanline grid, which overhangs the 256x240 visible area) are
// dropped rather than written out of bounds.
func (b *Bus) SetPixel(x, y int, c color.RGBA) {
	rect := b.frame.Bounds()
	if x < 0 || y < 0 || x >= rect.Dx() || y >= rect.Dy() {
		return
	}
	b.frame.Set(x, y, c)
}

// PresentFrame implements ppu.Renderer: ebiten's own Draw call, driven
// by its game loop, consumes b.frame on its own schedule, so there is
// nothing further to flush here.
func (b *Bus) PresentFrame() {}

// Update is called by ebiten roughly every 1/60s and will be our
// driver for the emulation.
func (b *Bus) Update() error {
	// We do work in a different goroutine and don't need ebiten
	// to drive this. We have to be implemented and called though
	// as it's part of the required interface.
	return nil
}

// TriggerNMI is called by the PPU (via its Bus interface) when it
// latches vblank with NMI generation enabled in PPUCTRL.
func (b *Bus) TriggerNMI() {
	b.cpu.NMI()
}

func (b *Bus) Read(addr uint16) uint8 {
	// https://www.nesdev.org/wiki/CPU_memory_map
	switch {
	case addr <= MAX_NES_BASE_RAM:
		// 0x0000-0x1FFF mirrors the 2KB internal RAM 4x
		return b.ram[addr&0x07FF]
	case addr <= MAX_PPU_REG_MIRRORED:
		// PPU registers are mirrored every 8 bytes through 0x3FFF
		return b.ppu.ReadRegister(0x2000 | (addr & 0x0007))
	case addr < MAX_IO_REG:
		// APU/IO stub: reads return 0
		return 0
	case addr <= MAX_ADDRESS:
		return b.mapper.PrgRead(addr)
	}

	panic("should never happen") // hah, prod crashes await!
}

func (b *Bus) ClearMem() {
	b.ram = make([]uint8, len(b.ram))
}

func (b *Bus) Write(addr uint16, val uint8) {
	// https://www.nesdev.org/wiki/CPU_memory_map
	switch {
	case addr <= MAX_NES_BASE_RAM:
		b.ram[addr&0x07FF] = val
	case addr <= MAX_PPU_REG_MIRRORED:
		b.ppu.WriteRegister(0x2000|(addr&0x0007), val)
	case addr < MAX_IO_REG:
		// APU/IO stub: writes ignored
	case addr <= MAX_ADDRESS:
		b.mapper.PrgWrite(addr, val)
	}
}

func readAddress(prompt string) uint16 {
	var a uint16
	fmt.Printf(prompt)
	fmt.Scanf("%04x\n", &a)
	return a
}

// Run drives the emulation at the NES's 1:3 PPU:CPU clock ratio until
// ctx is cancelled: the PPU ticks every cycle, the CPU clocks on every
// third one, matching spec's "PPU tick before CPU tick within the
// triple" ordering.
func (b *Bus) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			b.ppu.Tick()
			if b.ticks%3 == 0 {
				b.cpu.Clock()
			}
			b.ticks++
		}
	}
}

// BIOS is an interactive debug REPL: breakpoints, single-stepping,
// memory/stack/PPU inspection. It is a development convenience, not
// part of the emulator's normal run path.
func (b *Bus) BIOS(ctx context.Context) {
	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)

	breaks := make(map[uint16]struct{})

	for {
		fmt.Printf("%s\n\n", b.cpu.DebugDump())
		fmt.Println("(B)reak - add breakpoint")
		fmt.Println("(C)lear - clear breakpoints")
		fmt.Println("(R)un - run to completion")
		fmt.Println("(S)tep - step the cpu one instruction")
		fmt.Println("R(e)set - hit the reset button")
		fmt.Println("(M)emory - select a memory range to display")
		fmt.Println("S(t)ack - show last 3 items on the stack")
		fmt.Println("(I)nstruction - disassemble from PC")
		fmt.Println("(P)C - set program counter")
		fmt.Println("PP(U) - show PPU status")
		fmt.Println("(Q)uit - shutdown gonest")
		fmt.Printf("Choice: ")

		var in rune
		fmt.Scanf("%c\n", &in)

		switch in {
		case 'b', 'B':
			breaks[readAddress("Breakpoint (eg: ff15): ")] = struct{}{}
		case 'c', 'C':
			breaks = make(map[uint16]struct{})
		case 'p', 'P':
			b.cpu.PCSet(readAddress("Set PC to what address (eg: 0400)?: "))
		case 'q', 'Q':
			return
		case 'r', 'R':
			cctx, cancel := context.WithCancel(ctx)
			go func(ctx context.Context) {
				for {
					select {
					case <-sigQuit:
						cancel()
					case <-ctx.Done():
						return
					}
				}
			}(cctx)

			b.runUntilBreak(cctx, breaks)
		case 's', 'S':
			b.cpu.StepInstruction()
		case 't', 'T':
			fmt.Println()
			base := (uint16(0x0100) | uint16(b.cpu.SP)) + 1 // SP points at the next free slot
			for i := uint16(0); i <= 2 && base+i <= 0x01FF; i++ {
				m := base + i
				fmt.Printf("0x%04x: 0x%02x ", m, b.Read(m))
			}
			fmt.Printf("\n\n")
		case 'i', 'I':
			lo := b.cpu.PC
			hi := lo + 16
			if hi < lo {
				hi = math.MaxUint16
			}
			for addr, line := range b.cpu.Disassemble(lo, hi) {
				fmt.Printf("%04x: %s\n", addr, line)
			}
			fmt.Println()
		case 'u', 'U':
			fmt.Printf("scanline=%d dot=%d\n", b.ppu.Scanline(), b.ppu.Dot())
		case 'e', 'E':
			b.cpu.Reset()
		case 'm', 'M':
			fmt.Println()
			low := readAddress("Low address (eg f00d): ")
			high := readAddress("High address (eg beef): ")
			fmt.Println()

			x := 1
			i := low
			for {
				fmt.Printf("0x%04x: 0x%02x ", i, b.Read(i))
				if x%5 == 0 {
					fmt.Println()
				}
				if i == high || i == math.MaxUint16 {
					break
				}
				x++
				i++
			}
			fmt.Printf("\n\n")
		}
	}
}

// runUntilBreak behaves like Run but halts early when PC lands on a
// configured breakpoint or the CPU halts on an invalid opcode.
func (b *Bus) runUntilBreak(ctx context.Context, breaks map[uint16]struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			b.ppu.Tick()
			if b.ticks%3 == 0 {
				b.cpu.Clock()
				if b.cpu.Halted() {
					return
				}
				if b.cpu.Complete() {
					if _, ok := breaks[b.cpu.PC]; ok {
						return
					}
				}
			}
			b.ticks++
		}
	}
}
