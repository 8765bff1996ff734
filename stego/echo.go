package stego

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// EchoParams tunes echo hiding. The chunk size and both delays travel in the
// header so a decoder can recover them; alpha only matters at embed time.
type EchoParams struct {
	ChunkSize int
	Delay0    int
	Delay1    int
	Alpha     float64
}

// DefaultEchoParams returns the standard tuning: one bit per 2048 samples,
// echoes at lags 50 and 200.
func DefaultEchoParams() EchoParams {
	return EchoParams{
		ChunkSize: 2048,
		Delay0:    50,
		Delay1:    200,
		Alpha:     0.5,
	}
}

func (p EchoParams) Validate() error {
	if p.ChunkSize < 256 || p.ChunkSize > 8192 {
		return fmt.Errorf("%w: chunk size %d out of range [256, 8192]", ErrInvalidParameters, p.ChunkSize)
	}
	if p.Delay0 < 10 || p.Delay0 > 500 {
		return fmt.Errorf("%w: delay0 %d out of range [10, 500]", ErrInvalidParameters, p.Delay0)
	}
	if p.Delay1 < 50 || p.Delay1 > 1000 {
		return fmt.Errorf("%w: delay1 %d out of range [50, 1000]", ErrInvalidParameters, p.Delay1)
	}
	if p.Delay0 == p.Delay1 {
		return fmt.Errorf("%w: delay0 and delay1 must differ", ErrInvalidParameters)
	}
	if p.Delay0 >= p.ChunkSize || p.Delay1 >= p.ChunkSize {
		return fmt.Errorf("%w: delays must be smaller than the chunk size", ErrInvalidParameters)
	}
	if p.Alpha < 0.1 || p.Alpha > 1.0 {
		return fmt.Errorf("%w: alpha %.2f out of range [0.1, 1.0]", ErrInvalidParameters, p.Alpha)
	}
	return nil
}

// EchoCodec hides one bit per chunk by adding a faint delayed copy of the
// chunk to itself: an echo at Delay0 encodes 0, at Delay1 encodes 1. The
// decoder finds the echo lag again in the chunk's real cepstrum.
type EchoCodec struct {
	params EchoParams
}

func NewEchoCodec(params EchoParams) (*EchoCodec, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &EchoCodec{params: params}, nil
}

// Capacity returns the payload capacity in bits (one per full chunk).
func (c *EchoCodec) Capacity(sampleCount int) int {
	if sampleCount <= PayloadOffset {
		return 0
	}
	return (sampleCount - PayloadOffset) / c.params.ChunkSize
}

// Embed adds one echo per chunk, clamping the sum to the 16-bit range.
func (c *EchoCodec) Embed(samples []int16, bits []byte) error {
	chunk := c.params.ChunkSize
	if PayloadOffset+len(bits)*chunk > len(samples) {
		return fmt.Errorf("%w: %d bits need %d full chunks of %d samples", ErrInsufficientCapacity, len(bits), len(bits), chunk)
	}
	orig := make([]float64, chunk)
	for i, bit := range bits {
		start := PayloadOffset + i*chunk
		region := samples[start : start+chunk]
		for j, s := range region {
			orig[j] = float64(s)
		}
		delay := c.params.Delay0
		if bit&1 == 1 {
			delay = c.params.Delay1
		}
		for j := delay; j < chunk; j++ {
			region[j] = clampSample(orig[j] + c.params.Alpha*orig[j-delay])
		}
	}
	return nil
}

// Extract recovers one bit per chunk by comparing the cepstrum magnitude at
// the two candidate lags. A larger (or equal) value at Delay0 reads as 0;
// the non-strict comparison is part of the protocol, ties always decode to 0.
func (c *EchoCodec) Extract(samples []int16, bitCount int) ([]byte, error) {
	chunk := c.params.ChunkSize
	if PayloadOffset+bitCount*chunk > len(samples) {
		return nil, fmt.Errorf("%w: %d bits need %d full chunks of %d samples", ErrInsufficientCapacity, bitCount, bitCount, chunk)
	}
	bits := make([]byte, bitCount)
	buf := make([]float64, chunk)
	for i := range bits {
		start := PayloadOffset + i*chunk
		for j, s := range samples[start : start+chunk] {
			buf[j] = float64(s)
		}
		ceps := realCepstrum(buf)
		if ceps[c.params.Delay0] >= ceps[c.params.Delay1] {
			bits[i] = 0
		} else {
			bits[i] = 1
		}
	}
	return bits, nil
}

// realCepstrum computes |IFFT(log|FFT(x)|)|. Echoes in x show up as peaks at
// their lag. The epsilon keeps log away from zero-magnitude bins.
func realCepstrum(x []float64) []float64 {
	spectrum := fft.FFTReal(x)
	logMag := make([]complex128, len(spectrum))
	for i, v := range spectrum {
		logMag[i] = complex(math.Log(cmplx.Abs(v)+1e-8), 0)
	}
	inv := fft.IFFT(logMag)
	ceps := make([]float64, len(inv))
	for i, v := range inv {
		ceps[i] = cmplx.Abs(v)
	}
	return ceps
}

func clampSample(v float64) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
