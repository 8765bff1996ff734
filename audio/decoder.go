// Package audio converts carrier files to and from the mono 16-bit sample
// buffers the stego codec works on.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/bogem/id3v2"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tosone/minimp3"

	"stego-studio-backend/models"
)

const stegoBitDepth = 16

type AudioDecoder struct{}

func NewAudioDecoder() *AudioDecoder {
	return &AudioDecoder{}
}

// DecodeWAV parses a WAV file into mono 16-bit samples. Stereo carriers are
// reduced to mono by keeping the first channel.
func (ad *AudioDecoder) DecodeWAV(wavData []byte) ([]int16, *models.AudioMetadata, error) {
	decoder := wav.NewDecoder(bytes.NewReader(wavData))
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode WAV: %v", err)
	}
	if decoder.BitDepth != stegoBitDepth {
		return nil, nil, fmt.Errorf("unsupported bit depth %d, only 16-bit PCM carriers are supported", decoder.BitDepth)
	}
	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, nil, fmt.Errorf("invalid channel count %d", channels)
	}

	sampleCount := len(buf.Data) / channels
	samples := make([]int16, sampleCount)
	for i := 0; i < sampleCount; i++ {
		samples[i] = int16(buf.Data[i*channels])
	}

	metadata := &models.AudioMetadata{
		SampleRate:   buf.Format.SampleRate,
		Channels:     channels,
		BitDepth:     stegoBitDepth,
		Duration:     float64(sampleCount) / float64(buf.Format.SampleRate),
		TotalSamples: sampleCount,
	}
	return samples, metadata, nil
}

// DecodeMP3 decodes an MP3 carrier to mono 16-bit samples.
func (ad *AudioDecoder) DecodeMP3(mp3Data []byte) ([]int16, *models.AudioMetadata, error) {
	decoder, data, err := minimp3.DecodeFull(mp3Data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode MP3: %v", err)
	}
	defer decoder.Close()

	// minimp3 emits little-endian 16-bit PCM, interleaved per channel
	sampleCount := len(data) / 2 / decoder.Channels
	samples := make([]int16, sampleCount)
	for i := 0; i < sampleCount; i++ {
		offset := i * decoder.Channels * 2
		samples[i] = int16(data[offset]) | int16(data[offset+1])<<8
	}

	metadata := &models.AudioMetadata{
		SampleRate:   decoder.SampleRate,
		Channels:     decoder.Channels,
		BitDepth:     stegoBitDepth,
		Duration:     float64(sampleCount) / float64(decoder.SampleRate),
		TotalSamples: sampleCount,
	}
	return samples, metadata, nil
}

// EncodeWAV writes mono 16-bit samples as a WAV file.
func (ad *AudioDecoder) EncodeWAV(samples []int16, sampleRate int) ([]byte, error) {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: stegoBitDepth,
	}

	// wav.NewEncoder needs a WriteSeeker, so go through a temp file
	tempFile, err := os.CreateTemp("", "stego_*.wav")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %v", err)
	}
	defer tempFile.Close()
	defer os.Remove(tempFile.Name())

	encoder := wav.NewEncoder(tempFile, sampleRate, stegoBitDepth, 1, 1)
	if err := encoder.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to encode WAV: %v", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to close WAV encoder: %v", err)
	}

	if _, err := tempFile.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind temp file: %v", err)
	}
	wavData, err := io.ReadAll(tempFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV data: %v", err)
	}
	return wavData, nil
}

// ReadMP3Tags reads ID3v2 metadata from an MP3 carrier so it can be echoed
// back to the caller. Missing or unparsable tags are not an error.
func (ad *AudioDecoder) ReadMP3Tags(mp3Data []byte) *models.CarrierTags {
	tag, err := id3v2.ParseReader(bytes.NewReader(mp3Data), id3v2.Options{Parse: true})
	if err != nil || tag == nil {
		return nil
	}
	tags := &models.CarrierTags{
		Title:  tag.Title(),
		Artist: tag.Artist(),
		Album:  tag.Album(),
	}
	if tags.Title == "" && tags.Artist == "" && tags.Album == "" {
		return nil
	}
	return tags
}
