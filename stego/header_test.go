package stego

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	samples := make([]int16, 2000)
	in := &Header{
		Algorithm:     AlgorithmEcho,
		Param1:        2048,
		Param2:        50,
		Param3:        200,
		PayloadLength: 123456,
	}

	require.NoError(t, EmbedHeader(samples, in))

	out, err := ExtractHeader(samples)
	require.NoError(t, err)
	assert.Equal(t, in.Algorithm, out.Algorithm)
	assert.Equal(t, in.Param1, out.Param1)
	assert.Equal(t, in.Param2, out.Param2)
	assert.Equal(t, in.Param3, out.Param3)
	assert.Equal(t, in.PayloadLength, out.PayloadLength)
}

func TestHeaderOnlyTouchesLSBs(t *testing.T) {
	samples := make([]int16, 2000)
	for i := range samples {
		samples[i] = int16(i * 31)
	}
	original := make([]int16, len(samples))
	copy(original, samples)

	require.NoError(t, EmbedHeader(samples, &Header{Algorithm: AlgorithmLSB}))

	for i := range samples {
		if i < HeaderSamples {
			assert.Equal(t, original[i]&^1, samples[i]&^1, "sample %d changed above bit 0", i)
		} else {
			assert.Equal(t, original[i], samples[i], "sample %d beyond header region changed", i)
		}
	}
}

func TestHeaderBadMagic(t *testing.T) {
	_, err := ExtractHeader(make([]int16, 2000))
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestHeaderUnknownAlgorithm(t *testing.T) {
	samples := make([]int16, 2000)
	require.NoError(t, EmbedHeader(samples, &Header{Algorithm: 7, PayloadLength: 1}))

	_, err := ExtractHeader(samples)
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestHeaderTooShort(t *testing.T) {
	_, err := ExtractHeader(make([]int16, HeaderSamples-1))
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
}

// Any single flipped header bit must surface as a typed error, never as a
// silently wrong header.
func TestHeaderSingleBitFlip(t *testing.T) {
	base := make([]int16, 2000)
	require.NoError(t, EmbedHeader(base, &Header{
		Algorithm:     AlgorithmPhase,
		Param1:        256,
		Param2:        20,
		PayloadLength: 4096,
	}))

	for i := 0; i < HeaderSamples; i++ {
		samples := make([]int16, len(base))
		copy(samples, base)
		samples[i] ^= 1

		_, err := ExtractHeader(samples)
		require.Error(t, err, "flip at sample %d went undetected", i)
		assert.True(t, errors.Is(err, ErrBadMagic) || errors.Is(err, ErrHeaderCorrupt),
			"flip at sample %d: unexpected error %v", i, err)
	}
}
