package co2mini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frame builds a valid 8 byte frame for op and value.
func frame(op byte, value uint16) []byte {
	b := []byte{op, byte(value >> 8), byte(value), 0, 0x0D, 0, 0, 0}
	b[3] = b[0] + b[1] + b[2]
	return b
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		frame []byte
		want  Sample
		err   error
	}{
		{
			name:  "co2 frame",
			frame: []byte{0x50, 0x01, 0x94, 0xE5, 0x0D, 0, 0, 0},
			want:  Sample{Op: OpCO2, Value: 0x0194},
		},
		{
			name:  "temperature frame",
			frame: frame(OpTemperature, 4720),
			want:  Sample{Op: OpTemperature, Value: 4720},
		},
		{
			name:  "unknown op is decoded verbatim",
			frame: frame(0x41, 0x1234),
			want:  Sample{Op: 0x41, Value: 0x1234},
		},
		{
			name: "checksum overflow keeps low byte only",
			// 0xC0+0xFF+0xFF = 0x2BE, checksum byte is 0xBE
			frame: []byte{0xC0, 0xFF, 0xFF, 0xBE, 0x0D, 0, 0, 0},
			want:  Sample{Op: 0xC0, Value: 0xFFFF},
		},
		{
			name:  "bad checksum",
			frame: []byte{0x50, 0x01, 0x94, 0x95, 0x0D, 0, 0, 0},
			err:   ErrChecksum,
		},
		{
			name:  "missing terminator",
			frame: []byte{0x50, 0x01, 0x94, 0xE5, 0x00, 0, 0, 0},
			err:   ErrChecksum,
		},
		{
			name:  "short frame",
			frame: []byte{0x50, 0x01, 0x94, 0xE5, 0x0D},
			err:   ErrInvalidSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode(tt.frame)

			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestDecodeIgnoresReservedBytes(t *testing.T) {
	b := frame(OpCO2, 404)
	b[5], b[6], b[7] = 0xDE, 0xAD, 0xBE

	s, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, Sample{Op: OpCO2, Value: 404}, s)
}
