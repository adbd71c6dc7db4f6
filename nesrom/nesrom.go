// package nesrom implements support for the NES (iNES, NES2) ROM
// format. https://www.nesdev.org/wiki/INES
package nesrom

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrBadHeader is returned when a ROM file does not begin with the
// iNES magic bytes.
var ErrBadHeader = errors.New("bad iNES header")

// ErrShortROM is returned when a ROM file is truncated relative to
// what its header declares.
var ErrShortROM = errors.New("short ROM read")

type PlayChoicePROM struct {
	Data       [16]byte
	CounterOut [16]byte
}

// ROM holds the parsed contents of an iNES cartridge image: the
// header plus the PRG and CHR banks a mapper indexes into.
type ROM struct {
	path      string
	h         *header
	trainer   []byte          // if present
	prg       []byte          // 16384 * x bytes; x from header
	chr       []byte          // 8192 * y bytes; y from header
	pcInstRom []byte          // if present
	pcPROM    *PlayChoicePROM // if present; often missing - see PC10 ROM-Images
}

const (
	TRAINER_SIZE   = 512
	PRG_BLOCK_SIZE = 16384
	CHR_BLOCK_SIZE = 8192
	PC_INST_SIZE   = 8192
	PC_PROM_SIZE   = 32
)

// New reads and parses the iNES image at path, returning the decoded
// PRG/CHR banks ready for a mapper to index into.
func New(path string) (*ROM, error) {
	rf, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open ROM file %q: %w", path, err)
	}
	defer rf.Close()

	hbytes := make([]byte, 16)
	if n, err := rf.Read(hbytes); n != 16 || err != nil {
		return nil, fmt.Errorf("%w: couldn't read header: %v", ErrShortROM, err)
	}

	h, err := parseHeader(hbytes)
	if err != nil {
		return nil, fmt.Errorf("error parsing header: %w", err)
	}

	r := &ROM{path: path, h: h}

	if r.h.hasTrainer() {
		r.trainer = make([]byte, TRAINER_SIZE)
		if n, err := rf.Read(r.trainer); n != TRAINER_SIZE || err != nil {
			return nil, fmt.Errorf("%w: error reading trainer data: %v", ErrShortROM, err)
		}
	}

	s := PRG_BLOCK_SIZE * int(r.h.prgSize)
	r.prg = make([]byte, s)
	if n, err := rf.Read(r.prg); n != s || err != nil {
		return nil, fmt.Errorf("%w: error reading PRG ROM (read %d, wanted %d): %v", ErrShortROM, n, s, err)
	}

	s = CHR_BLOCK_SIZE * int(r.h.chrSize)
	if s == 0 {
		// chrSize == 0 means the board provides CHR RAM rather
		// than CHR ROM; give it one 8 KiB bank to write into.
		r.chr = make([]byte, CHR_BLOCK_SIZE)
	} else {
		r.chr = make([]byte, s)
		if n, err := rf.Read(r.chr); n != s || err != nil {
			return nil, fmt.Errorf("%w: error reading CHR ROM (read %d, wanted %d): %v", ErrShortROM, n, s, err)
		}
	}

	if r.h.hasPlayChoice() {
		r.pcInstRom = make([]byte, PC_INST_SIZE)
		if n, err := rf.Read(r.pcInstRom); n != PC_INST_SIZE || err != nil {
			return nil, fmt.Errorf("%w: error reading PlayChoice INST ROM (n=%d; wanted %d): %v", ErrShortROM, n, PC_INST_SIZE, err)
		}

		// Some old ROMs may not have this, so bailing might
		// be bad. But these should be rare, so we'll do the
		// technically correct thing for now.
		pcprom := make([]byte, PC_PROM_SIZE)
		if n, err := rf.Read(pcprom); n != PC_PROM_SIZE || err != nil {
			return nil, fmt.Errorf("%w: error reading PlayChoice PROM (n=%d, wanted %d): %v", ErrShortROM, n, PC_PROM_SIZE, err)
		}
		r.pcPROM = &PlayChoicePROM{}
		copy(r.pcPROM.Data[:], pcprom[:16])
		copy(r.pcPROM.CounterOut[:], pcprom[16:])
	}

	return r, nil
}

func (r *ROM) NumPrgBlocks() uint8 {
	return r.h.prgSize
}

func (r *ROM) NumChrBlocks() uint8 {
	return r.h.chrSize
}

func (r *ROM) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", r.h))
	if r.h.hasTrainer() {
		sb.WriteString(fmt.Sprintf("Trainer: %d bytes\n", len(r.trainer)))
	}

	sb.WriteString(fmt.Sprintf("PRG: %d bytes\n", len(r.prg)))
	sb.WriteString(fmt.Sprintf("CHR: %d bytes\n", len(r.chr)))

	return sb.String()
}

// PrgRead returns the byte at the given mapper-translated offset into
// the PRG ROM bank data. Mappers compute this offset from a CPU
// address via MapCPUAddress; ROM itself knows nothing about the CPU's
// address space.
func (r *ROM) PrgRead(offset uint32) uint8 {
	return r.prg[offset]
}

func (r *ROM) PrgWrite(offset uint32, val uint8) {
	r.prg[offset] = val
}

// ChrRead returns the byte at the given offset into CHR ROM, or, for
// boards with no CHR ROM (chrSize == 0), into the 8 KiB CHR RAM bank
// New allocates in its place.
func (r *ROM) ChrRead(offset uint32) uint8 {
	return r.chr[offset]
}

func (r *ROM) ChrWrite(offset uint32, val uint8) {
	r.chr[offset] = val
}

func (r *ROM) MapperNum() uint16 {
	return r.h.mapperNum()
}

func (r *ROM) MirroringMode() uint8 {
	return r.h.mirroringMode()
}

func (r *ROM) HasSaveRAM() bool {
	return r.h.hasPrgRAM()
}
