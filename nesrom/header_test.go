package nesrom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validHeaderBytes(flags6, flags7 uint8) []byte {
	return []byte{'N', 'E', 'S', 0x1A, 1, 1, flags6, flags7, 0, 0, 0, 0, 0, 0, 0, 0}
}

func TestParseHeaderBadMagic(t *testing.T) {
	_, err := parseHeader([]byte{'X', 'X', 'X', 0x00, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadHeader)
}

func TestHeaderMirroringMode(t *testing.T) {
	cases := []struct {
		name    string
		flags6  uint8
		wantMir uint8
	}{
		{"horizontal", 0x00, MirrorHorizontal},
		{"vertical", flagMirroring, MirrorVertical},
		{"four screen overrides", flagMirroring | flagIgnoreMirroring, MirrorFourScreen},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h, err := parseHeader(validHeaderBytes(c.flags6, 0))
			require.NoError(t, err)
			assert.Equal(t, c.wantMir, h.mirroringMode())
		})
	}
}

func TestHeaderMapperNum(t *testing.T) {
	h, err := parseHeader(validHeaderBytes(0x10, 0x20))
	require.NoError(t, err)
	assert.Equal(t, uint16(0x21), h.mapperNum())
}

func TestHeaderHasTrainer(t *testing.T) {
	h, err := parseHeader(validHeaderBytes(flagTrainer, 0))
	require.NoError(t, err)
	assert.True(t, h.hasTrainer())

	h, err = parseHeader(validHeaderBytes(0, 0))
	require.NoError(t, err)
	assert.False(t, h.hasTrainer())
}

func TestHeaderIsNES2Format(t *testing.T) {
	h, err := parseHeader(validHeaderBytes(0, 0x08))
	require.NoError(t, err)
	assert.True(t, h.isNES2Format())

	h, err = parseHeader(validHeaderBytes(0, 0))
	require.NoError(t, err)
	assert.False(t, h.isNES2Format())
}
