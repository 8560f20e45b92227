package co2mini

import (
	"encoding/binary"
	"errors"
)

var (
	ErrInvalidSize = errors.New("invalid frame size")
	ErrChecksum    = errors.New("checksum error")
)

// operation codes reported by the sensor
const (
	OpCO2         = 0x50
	OpTemperature = 0x42
	OpHumidity    = 0x44
)

// FrameSize is the fixed report length of the sensor.
const FrameSize = 8

const (
	// checksum byte, low byte of the sum of the first three bytes
	checksumIndex = 3
	// every valid frame carries the fixed terminator at this position
	terminatorIndex = 4
	terminator      = 0x0D
)

// Sample is a single decoded measurement.
type Sample struct {
	Op    byte
	Value uint16
}

// Decode checks an 8 byte frame and extracts operation code and value.
// A frame is valid if byte 4 equals the fixed terminator and byte 3 equals
// the low byte of the sum of bytes 0..2. Invalid frames are rejected with
// ErrChecksum, the bytes 5..7 are reserved and ignored.
func Decode(b []byte) (Sample, error) {
	var s Sample

	if len(b) != FrameSize {
		return s, ErrInvalidSize
	}

	if b[terminatorIndex] != terminator || b[0]+b[1]+b[2] != b[checksumIndex] {
		return s, ErrChecksum
	}

	s.Op = b[0]
	s.Value = binary.BigEndian.Uint16(b[1:3])
	return s, nil
}
