package mappers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdwalton/gonest/nesrom"
)

func makeROM(t *testing.T, prgBlocks, chrBlocks uint8) *nesrom.ROM {
	t.Helper()

	h := []byte{'N', 'E', 'S', 0x1A, prgBlocks, chrBlocks, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	buf := append([]byte{}, h...)
	buf = append(buf, make([]byte, nesrom.PRG_BLOCK_SIZE*int(prgBlocks))...)
	buf = append(buf, make([]byte, nesrom.CHR_BLOCK_SIZE*int(chrBlocks))...)

	path := filepath.Join(t.TempDir(), "test.nes")
	require.NoError(t, os.WriteFile(path, buf, 0644))

	r, err := nesrom.New(path)
	require.NoError(t, err)
	return r
}

func TestNROMMapCPUAddressSingleBank(t *testing.T) {
	rom := makeROM(t, 1, 1)
	m, err := Get(rom)
	require.NoError(t, err)

	// 16 KiB PRG: 0xC000 mirrors 0x8000.
	assert.Equal(t, uint32(0x0000), m.MapCPUAddress(0x8000))
	assert.Equal(t, uint32(0x0000), m.MapCPUAddress(0xC000))
	assert.Equal(t, uint32(0x3FFF), m.MapCPUAddress(0xFFFF))
}

func TestNROMMapCPUAddressTwoBanks(t *testing.T) {
	rom := makeROM(t, 2, 1)
	m, err := Get(rom)
	require.NoError(t, err)

	assert.Equal(t, uint32(0x0000), m.MapCPUAddress(0x8000))
	assert.Equal(t, uint32(0x7FFF), m.MapCPUAddress(0xFFFF))
}

func TestGetUnknownMapper(t *testing.T) {
	rom := makeROM(t, 1, 1)
	// Mutate the mapper id indirectly isn't possible without a
	// real unsupported ROM; build one with a mapper-1 header byte.
	h := []byte{'N', 'E', 'S', 0x1A, 1, 1, 0x10, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	buf := append([]byte{}, h...)
	buf = append(buf, make([]byte, nesrom.PRG_BLOCK_SIZE)...)
	buf = append(buf, make([]byte, nesrom.CHR_BLOCK_SIZE)...)
	path := filepath.Join(t.TempDir(), "mapper1.nes")
	require.NoError(t, os.WriteFile(path, buf, 0644))

	r, err := nesrom.New(path)
	require.NoError(t, err)

	_, err = Get(r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedMapper)

	_ = rom
}

func TestNROMPrgReadWrite(t *testing.T) {
	rom := makeROM(t, 1, 1)
	m, err := Get(rom)
	require.NoError(t, err)

	assert.Equal(t, uint8(0), m.PrgRead(0x8000))
	m.PrgWrite(0x8000, 0xFF) // no-op: ROM is not writable
	assert.Equal(t, uint8(0), m.PrgRead(0x8000))
}

func TestNROMChrRAMWrite(t *testing.T) {
	rom := makeROM(t, 1, 0) // chrBlocks == 0 -> CHR RAM
	m, err := Get(rom)
	require.NoError(t, err)

	m.ChrWrite(0x0005, 0x42)
	assert.Equal(t, uint8(0x42), m.ChrRead(0x0005))
}
