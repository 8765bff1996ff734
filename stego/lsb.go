package stego

import "fmt"

// LSBCodec hides one bit in the least-significant bit of each sample,
// starting at PayloadOffset. Maximum capacity, zero robustness: any edit to
// the samples destroys the payload.
type LSBCodec struct{}

func NewLSBCodec() *LSBCodec {
	return &LSBCodec{}
}

// Capacity returns the payload capacity in bits for a carrier of the given
// sample count.
func (c *LSBCodec) Capacity(sampleCount int) int {
	if sampleCount <= PayloadOffset {
		return 0
	}
	return sampleCount - PayloadOffset
}

// Embed writes bits into the sample LSBs in place.
func (c *LSBCodec) Embed(samples []int16, bits []byte) error {
	if PayloadOffset+len(bits) > len(samples) {
		return fmt.Errorf("%w: need %d samples, have %d", ErrInsufficientCapacity, PayloadOffset+len(bits), len(samples))
	}
	for i, bit := range bits {
		samples[PayloadOffset+i] = (samples[PayloadOffset+i] &^ 1) | int16(bit&1)
	}
	return nil
}

// Extract reads bitCount LSBs starting at PayloadOffset.
func (c *LSBCodec) Extract(samples []int16, bitCount int) ([]byte, error) {
	if PayloadOffset+bitCount > len(samples) {
		return nil, fmt.Errorf("%w: need %d samples, have %d", ErrInsufficientCapacity, PayloadOffset+bitCount, len(samples))
	}
	bits := make([]byte, bitCount)
	for i := range bits {
		bits[i] = byte(samples[PayloadOffset+i] & 1)
	}
	return bits, nil
}
