package stego

import (
	"fmt"
	"math/rand"
)

const (
	// DSSSFrameSize is the number of samples spreading a single bit.
	DSSSFrameSize = 8192
	// DSSSSeed seeds the pseudo-noise sequence; encoder and decoder must
	// derive the identical sequence from it.
	DSSSSeed = 12345
	// dsssAlpha is the embedding strength in sample units.
	dsssAlpha = 500.0
)

// DSSSCodec spreads each payload bit over a whole frame using a fixed-seed
// pseudo-noise sequence of +/-1 values: the frame is nudged along the
// sequence for 1 and against it for 0, and the decoder correlates the frame
// with the regenerated sequence.
type DSSSCodec struct {
	frameSize int
	sequence  []float64
}

func NewDSSSCodec() *DSSSCodec {
	return newDSSSCodecSeeded(DSSSFrameSize, DSSSSeed)
}

// newDSSSCodec builds a codec from header-carried geometry.
func newDSSSCodec(frameSize, seed int) (*DSSSCodec, error) {
	if frameSize < 256 || frameSize > 65535 {
		return nil, fmt.Errorf("%w: frame size %d out of range [256, 65535]", ErrInvalidParameters, frameSize)
	}
	return newDSSSCodecSeeded(frameSize, seed), nil
}

func newDSSSCodecSeeded(frameSize, seed int) *DSSSCodec {
	return &DSSSCodec{
		frameSize: frameSize,
		sequence:  pnSequence(int64(seed), frameSize),
	}
}

// pnSequence generates the +/-1 spreading sequence. math/rand's generator is
// stable across Go releases for a fixed seed, so both sides regenerate the
// same sequence independently.
func pnSequence(seed int64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	seq := make([]float64, length)
	for i := range seq {
		if rng.Intn(2) == 0 {
			seq[i] = -1
		} else {
			seq[i] = 1
		}
	}
	return seq
}

// Capacity returns the payload capacity in bits (one per full frame).
func (c *DSSSCodec) Capacity(sampleCount int) int {
	if sampleCount <= PayloadOffset {
		return 0
	}
	return (sampleCount - PayloadOffset) / c.frameSize
}

// Embed adds or subtracts the scaled sequence frame by frame.
func (c *DSSSCodec) Embed(samples []int16, bits []byte) error {
	if PayloadOffset+len(bits)*c.frameSize > len(samples) {
		return fmt.Errorf("%w: %d bits need %d full frames of %d samples", ErrInsufficientCapacity, len(bits), len(bits), c.frameSize)
	}
	for i, bit := range bits {
		start := PayloadOffset + i*c.frameSize
		region := samples[start : start+c.frameSize]
		sign := -1.0
		if bit&1 == 1 {
			sign = 1.0
		}
		for j := range region {
			region[j] = clampSample(float64(region[j]) + sign*dsssAlpha*c.sequence[j])
		}
	}
	return nil
}

// Extract correlates each frame with the spreading sequence; a positive
// normalized dot product decodes to 1.
func (c *DSSSCodec) Extract(samples []int16, bitCount int) ([]byte, error) {
	if PayloadOffset+bitCount*c.frameSize > len(samples) {
		return nil, fmt.Errorf("%w: %d bits need %d full frames of %d samples", ErrInsufficientCapacity, bitCount, bitCount, c.frameSize)
	}
	bits := make([]byte, bitCount)
	for i := range bits {
		start := PayloadOffset + i*c.frameSize
		var corr float64
		for j, s := range samples[start : start+c.frameSize] {
			corr += float64(s) * c.sequence[j]
		}
		corr /= float64(c.frameSize)
		if corr > 0 {
			bits[i] = 1
		}
	}
	return bits, nil
}
