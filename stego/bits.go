// Package stego implements the steganographic codec engine: a self-describing
// binary header plus four embed/extract algorithms over mono 16-bit PCM.
package stego

import "fmt"

// BytesToBits expands each byte into 8 bits, most-significant bit first.
func BytesToBits(data []byte) []byte {
	bits := make([]byte, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>i)&1)
		}
	}
	return bits
}

// BitsToBytes packs bits (MSB first) back into bytes. The bit count must be
// a multiple of 8.
func BitsToBytes(bits []byte) ([]byte, error) {
	if len(bits)%8 != 0 {
		return nil, fmt.Errorf("%w: %d bits", ErrIncompleteBits, len(bits))
	}
	out := make([]byte, 0, len(bits)/8)
	for i := 0; i < len(bits); i += 8 {
		var b byte
		for j := 0; j < 8; j++ {
			b = (b << 1) | (bits[i+j] & 1)
		}
		out = append(out, b)
	}
	return out, nil
}
