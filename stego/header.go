package stego

import (
	"encoding/binary"
	"fmt"
)

// AlgorithmID selects one of the four embedding algorithms. The set is
// closed: the value travels in the header and both sides must agree on it.
type AlgorithmID uint8

const (
	AlgorithmLSB   AlgorithmID = 1
	AlgorithmEcho  AlgorithmID = 2
	AlgorithmPhase AlgorithmID = 3
	AlgorithmDSSS  AlgorithmID = 4
)

func (a AlgorithmID) String() string {
	switch a {
	case AlgorithmLSB:
		return "LSB"
	case AlgorithmEcho:
		return "Echo Hiding"
	case AlgorithmPhase:
		return "Phase Coding"
	case AlgorithmDSSS:
		return "Spread Spectrum"
	}
	return fmt.Sprintf("unknown(%d)", uint8(a))
}

func (a AlgorithmID) valid() bool {
	return a >= AlgorithmLSB && a <= AlgorithmDSSS
}

const (
	// HeaderBytes is the serialized header size.
	HeaderBytes = 15
	// HeaderSamples is the number of leading samples whose LSBs hold the header.
	HeaderSamples = HeaderBytes * 8
	// PayloadOffset is the sample index where payload embedding begins,
	// leaving a safety margin after the header region.
	PayloadOffset = 1000
)

var headerMagic = [2]byte{0x73, 0x74} // "st"

// Header is the 15-byte record written into the LSBs of samples 0..119.
// Layout (little-endian): magic(2) algo(1) param1(2) param2(2) param3(2)
// payloadLength(4) checksum(2), checksum = sum(bytes 0..12) & 0xFFFF.
type Header struct {
	Algorithm     AlgorithmID
	Param1        uint16
	Param2        uint16
	Param3        uint16
	PayloadLength uint32
}

func (h *Header) marshal() [HeaderBytes]byte {
	var buf [HeaderBytes]byte
	buf[0] = headerMagic[0]
	buf[1] = headerMagic[1]
	buf[2] = byte(h.Algorithm)
	binary.LittleEndian.PutUint16(buf[3:5], h.Param1)
	binary.LittleEndian.PutUint16(buf[5:7], h.Param2)
	binary.LittleEndian.PutUint16(buf[7:9], h.Param3)
	binary.LittleEndian.PutUint32(buf[9:13], h.PayloadLength)
	binary.LittleEndian.PutUint16(buf[13:15], headerChecksum(buf[:13]))
	return buf
}

func headerChecksum(data []byte) uint16 {
	var sum uint32
	for _, b := range data {
		sum += uint32(b)
	}
	return uint16(sum & 0xFFFF)
}

// EmbedHeader writes the header into the LSBs of samples[0:120). Only bit 0
// of each touched sample changes; samples beyond the header region are left
// alone.
func EmbedHeader(samples []int16, h *Header) error {
	if len(samples) < HeaderSamples {
		return fmt.Errorf("%w: %d samples, header needs %d", ErrInsufficientCapacity, len(samples), HeaderSamples)
	}
	buf := h.marshal()
	bits := BytesToBits(buf[:])
	for i, bit := range bits {
		samples[i] = (samples[i] &^ 1) | int16(bit)
	}
	return nil
}

// ExtractHeader reads and validates the header from samples[0:120).
func ExtractHeader(samples []int16) (*Header, error) {
	if len(samples) < HeaderSamples {
		return nil, fmt.Errorf("%w: %d samples, header needs %d", ErrInsufficientCapacity, len(samples), HeaderSamples)
	}
	bits := make([]byte, HeaderSamples)
	for i := range bits {
		bits[i] = byte(samples[i] & 1)
	}
	buf, err := BitsToBytes(bits)
	if err != nil {
		return nil, err
	}
	if buf[0] != headerMagic[0] || buf[1] != headerMagic[1] {
		return nil, ErrBadMagic
	}
	stored := binary.LittleEndian.Uint16(buf[13:15])
	if calc := headerChecksum(buf[:13]); calc != stored {
		return nil, fmt.Errorf("%w: stored 0x%04X, computed 0x%04X", ErrHeaderCorrupt, stored, calc)
	}
	h := &Header{
		Algorithm:     AlgorithmID(buf[2]),
		Param1:        binary.LittleEndian.Uint16(buf[3:5]),
		Param2:        binary.LittleEndian.Uint16(buf[5:7]),
		Param3:        binary.LittleEndian.Uint16(buf[7:9]),
		PayloadLength: binary.LittleEndian.Uint32(buf[9:13]),
	}
	if !h.Algorithm.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, buf[2])
	}
	return h, nil
}
