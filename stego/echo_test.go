package stego

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// impulseCarrier puts a single spike at the start of every chunk. Each chunk
// has a flat magnitude spectrum, so the only cepstrum peak after embedding is
// the echo's own lag — the cleanest possible carrier for echo detection.
func impulseCarrier(chunks, chunkSize int) []int16 {
	carrier := make([]int16, PayloadOffset+chunks*chunkSize)
	for k := 0; k < chunks; k++ {
		carrier[PayloadOffset+k*chunkSize] = 8000
	}
	return carrier
}

func testEchoParams() EchoParams {
	return EchoParams{ChunkSize: 512, Delay0: 50, Delay1: 200, Alpha: 0.6}
}

func TestEchoRoundTrip(t *testing.T) {
	params := testEchoParams()
	payload := []byte{0xC3, 0x5A, 0x0F}
	carrier := impulseCarrier(len(payload)*8, params.ChunkSize)

	codec, err := NewCodecWithEcho(params)
	require.NoError(t, err)

	stego, err := codec.Encode(carrier, payload, AlgorithmEcho)
	require.NoError(t, err)

	algorithm, out, err := codec.Decode(stego)
	require.NoError(t, err)
	assert.Equal(t, AlgorithmEcho, algorithm)
	assert.Equal(t, payload, out)
}

// A chunk with identical cepstrum values at both lags must decode to 0: the
// comparison is non-strict on the Delay0 side.
func TestEchoTieBreakFavorsZero(t *testing.T) {
	params := testEchoParams()
	codec, err := NewEchoCodec(params)
	require.NoError(t, err)

	// All-zero chunks give a flat log spectrum, so both lags read 0.
	samples := make([]int16, PayloadOffset+4*params.ChunkSize)
	bits, err := codec.Extract(samples, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, bits)
}

func TestEchoInvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EchoParams)
	}{
		{"equal delays", func(p *EchoParams) { p.Delay1 = p.Delay0 }},
		{"chunk too small", func(p *EchoParams) { p.ChunkSize = 128 }},
		{"chunk too large", func(p *EchoParams) { p.ChunkSize = 16384 }},
		{"delay0 too small", func(p *EchoParams) { p.Delay0 = 5 }},
		{"delay0 too large", func(p *EchoParams) { p.Delay0 = 501 }},
		{"delay1 too large", func(p *EchoParams) { p.Delay1 = 1500 }},
		{"delay beyond chunk", func(p *EchoParams) { p.ChunkSize = 256; p.Delay1 = 300 }},
		{"alpha too low", func(p *EchoParams) { p.Alpha = 0.05 }},
		{"alpha too high", func(p *EchoParams) { p.Alpha = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := testEchoParams()
			tt.mutate(&params)
			_, err := NewEchoCodec(params)
			assert.ErrorIs(t, err, ErrInvalidParameters)
		})
	}
}

func TestEchoCapacityBoundary(t *testing.T) {
	params := testEchoParams()
	codec, err := NewCodecWithEcho(params)
	require.NoError(t, err)

	// Exactly 8 chunks: one byte fits, two don't.
	carrier := impulseCarrier(8, params.ChunkSize)

	_, err = codec.Encode(carrier, []byte{0xFF}, AlgorithmEcho)
	require.NoError(t, err)

	_, err = codec.Encode(carrier, []byte{0xFF, 0x00}, AlgorithmEcho)
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
}

func TestEchoDefaultsAreValid(t *testing.T) {
	assert.NoError(t, DefaultEchoParams().Validate())
}
