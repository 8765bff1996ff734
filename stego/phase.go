package stego

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

const (
	// PhaseSegmentSize is the number of samples transformed per segment.
	PhaseSegmentSize = 256
	// PhaseStartBin is the first frequency bin carrying a bit.
	PhaseStartBin = 20
	// PhaseBitsPerSegment is the number of consecutive bins used per segment.
	PhaseBitsPerSegment = 8
	// phaseMinMagnitude floors the magnitude of a carrier bin so the encoded
	// phase survives 16-bit requantization.
	phaseMinMagnitude = 500.0
)

// PhaseCodec hides bits in the phase of selected frequency bins: -90 degrees
// for 0, +90 degrees for 1, eight bits per 256-sample segment. Segments are
// processed block by block with no overlap so absolute phase is preserved.
type PhaseCodec struct {
	segmentSize int
	startBin    int
}

func NewPhaseCodec() *PhaseCodec {
	return &PhaseCodec{segmentSize: PhaseSegmentSize, startBin: PhaseStartBin}
}

// newPhaseCodec builds a codec from header-carried geometry, rejecting
// values the bin layout cannot satisfy.
func newPhaseCodec(segmentSize, startBin int) (*PhaseCodec, error) {
	if segmentSize < 64 || segmentSize > 8192 {
		return nil, fmt.Errorf("%w: segment size %d out of range [64, 8192]", ErrInvalidParameters, segmentSize)
	}
	if startBin < 1 || startBin+PhaseBitsPerSegment > segmentSize/2 {
		return nil, fmt.Errorf("%w: start bin %d does not fit %d bins below Nyquist", ErrInvalidParameters, startBin, PhaseBitsPerSegment)
	}
	return &PhaseCodec{segmentSize: segmentSize, startBin: startBin}, nil
}

// Capacity returns the payload capacity in bits.
func (c *PhaseCodec) Capacity(sampleCount int) int {
	if sampleCount <= PayloadOffset {
		return 0
	}
	return (sampleCount - PayloadOffset) / c.segmentSize * PhaseBitsPerSegment
}

// Embed rewrites the phase of the target bins segment by segment. Bins
// outside the target range and segments beyond the needed count are left
// untouched.
func (c *PhaseCodec) Embed(samples []int16, bits []byte) error {
	segments := (len(bits) + PhaseBitsPerSegment - 1) / PhaseBitsPerSegment
	if PayloadOffset+segments*c.segmentSize > len(samples) {
		return fmt.Errorf("%w: %d bits need %d full segments of %d samples", ErrInsufficientCapacity, len(bits), segments, c.segmentSize)
	}
	buf := make([]float64, c.segmentSize)
	bitIndex := 0
	for seg := 0; seg < segments; seg++ {
		start := PayloadOffset + seg*c.segmentSize
		region := samples[start : start+c.segmentSize]
		for j, s := range region {
			buf[j] = float64(s)
		}
		spectrum := fft.FFTReal(buf)
		for binOffset := 0; binOffset < PhaseBitsPerSegment && bitIndex < len(bits); binOffset++ {
			bin := c.startBin + binOffset
			mag := cmplx.Abs(spectrum[bin])
			if mag < phaseMinMagnitude {
				mag = phaseMinMagnitude
			}
			phase := -math.Pi / 2
			if bits[bitIndex]&1 == 1 {
				phase = math.Pi / 2
			}
			spectrum[bin] = cmplx.Rect(mag, phase)
			// Mirror bin keeps the spectrum conjugate-symmetric, so the
			// inverse transform stays real.
			spectrum[c.segmentSize-bin] = cmplx.Conj(spectrum[bin])
			bitIndex++
		}
		inv := fft.IFFT(spectrum)
		for j, v := range inv {
			region[j] = clampSample(real(v))
		}
	}
	return nil
}

// Extract reads the sign of the phase angle of each target bin: positive
// decodes to 1, zero or negative to 0.
func (c *PhaseCodec) Extract(samples []int16, bitCount int) ([]byte, error) {
	segments := (bitCount + PhaseBitsPerSegment - 1) / PhaseBitsPerSegment
	if PayloadOffset+segments*c.segmentSize > len(samples) {
		return nil, fmt.Errorf("%w: %d bits need %d full segments of %d samples", ErrInsufficientCapacity, bitCount, segments, c.segmentSize)
	}
	bits := make([]byte, 0, bitCount)
	buf := make([]float64, c.segmentSize)
	for seg := 0; seg < segments && len(bits) < bitCount; seg++ {
		start := PayloadOffset + seg*c.segmentSize
		for j, s := range samples[start : start+c.segmentSize] {
			buf[j] = float64(s)
		}
		spectrum := fft.FFTReal(buf)
		for binOffset := 0; binOffset < PhaseBitsPerSegment && len(bits) < bitCount; binOffset++ {
			angle := cmplx.Phase(spectrum[c.startBin+binOffset])
			if angle > 0 {
				bits = append(bits, 1)
			} else {
				bits = append(bits, 0)
			}
		}
	}
	return bits, nil
}
