package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWAVRoundTrip(t *testing.T) {
	decoder := NewAudioDecoder()

	samples := make([]int16, 4410)
	for i := range samples {
		samples[i] = int16(i%2001 - 1000)
	}

	wavData, err := decoder.EncodeWAV(samples, 44100)
	require.NoError(t, err)
	require.NotEmpty(t, wavData)

	out, metadata, err := decoder.DecodeWAV(wavData)
	require.NoError(t, err)
	assert.Equal(t, samples, out)
	assert.Equal(t, 44100, metadata.SampleRate)
	assert.Equal(t, 1, metadata.Channels)
	assert.Equal(t, 16, metadata.BitDepth)
	assert.Equal(t, len(samples), metadata.TotalSamples)
	assert.InDelta(t, 0.1, metadata.Duration, 1e-6)
}

func TestDecodeWAVGarbage(t *testing.T) {
	_, _, err := NewAudioDecoder().DecodeWAV([]byte("not a wav file at all"))
	assert.Error(t, err)
}

func TestReadMP3TagsGarbage(t *testing.T) {
	assert.Nil(t, NewAudioDecoder().ReadMP3Tags([]byte("no id3 here")))
}
