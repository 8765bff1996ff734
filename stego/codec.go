package stego

import "fmt"

// algorithm is the embed/extract pair every codec exposes. Bit capacities
// are reported for a given carrier length so callers can validate up front.
type algorithm interface {
	Capacity(sampleCount int) int
	Embed(samples []int16, bits []byte) error
	Extract(samples []int16, bitCount int) ([]byte, error)
}

// Codec orchestrates encode and decode: it builds and embeds the header,
// routes payload bits to the selected algorithm, and on decode recovers the
// algorithm and its parameters from the header alone.
type Codec struct {
	echo EchoParams
}

// NewCodec returns a codec with default echo tuning.
func NewCodec() *Codec {
	return &Codec{echo: DefaultEchoParams()}
}

// NewCodecWithEcho returns a codec with custom echo hiding parameters.
func NewCodecWithEcho(params EchoParams) (*Codec, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Codec{echo: params}, nil
}

// Capacity returns the maximum payload size in bytes for the given
// algorithm and carrier length.
func (c *Codec) Capacity(id AlgorithmID, sampleCount int) (int, error) {
	algo, _, err := c.encoderFor(id)
	if err != nil {
		return 0, err
	}
	return algo.Capacity(sampleCount) / 8, nil
}

// Encode embeds payload into a copy of carrier using the selected algorithm
// and returns the stego samples. The carrier itself is never modified.
func (c *Codec) Encode(carrier []int16, payload []byte, id AlgorithmID) ([]int16, error) {
	algo, header, err := c.encoderFor(id)
	if err != nil {
		return nil, err
	}
	if len(payload)*8 > algo.Capacity(len(carrier)) {
		return nil, fmt.Errorf("%w: payload %d bytes, carrier fits %d", ErrInsufficientCapacity, len(payload), algo.Capacity(len(carrier))/8)
	}
	header.PayloadLength = uint32(len(payload))

	stego := make([]int16, len(carrier))
	copy(stego, carrier)
	if err := EmbedHeader(stego, header); err != nil {
		return nil, err
	}
	if err := algo.Embed(stego, BytesToBits(payload)); err != nil {
		return nil, err
	}
	return stego, nil
}

// Decode reads the header from stego samples, routes to the matching
// algorithm and returns the recovered payload. Errors from the header codec
// and the algorithms pass through unmodified.
func (c *Codec) Decode(stego []int16) (AlgorithmID, []byte, error) {
	header, err := ExtractHeader(stego)
	if err != nil {
		return 0, nil, err
	}
	algo, err := decoderFor(header)
	if err != nil {
		return 0, nil, err
	}
	bits, err := algo.Extract(stego, int(header.PayloadLength)*8)
	if err != nil {
		return 0, nil, err
	}
	payload, err := BitsToBytes(bits)
	if err != nil {
		return 0, nil, err
	}
	return header.Algorithm, payload, nil
}

// encoderFor maps an algorithm id to its codec and the header parameter
// slots the decoder will need.
func (c *Codec) encoderFor(id AlgorithmID) (algorithm, *Header, error) {
	switch id {
	case AlgorithmLSB:
		return NewLSBCodec(), &Header{Algorithm: id}, nil
	case AlgorithmEcho:
		codec, err := NewEchoCodec(c.echo)
		if err != nil {
			return nil, nil, err
		}
		return codec, &Header{
			Algorithm: id,
			Param1:    uint16(c.echo.ChunkSize),
			Param2:    uint16(c.echo.Delay0),
			Param3:    uint16(c.echo.Delay1),
		}, nil
	case AlgorithmPhase:
		return NewPhaseCodec(), &Header{
			Algorithm: id,
			Param1:    PhaseSegmentSize,
			Param2:    PhaseStartBin,
		}, nil
	case AlgorithmDSSS:
		return NewDSSSCodec(), &Header{
			Algorithm: id,
			Param1:    DSSSFrameSize,
			Param2:    DSSSSeed,
		}, nil
	}
	return nil, nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, id)
}

// decoderFor rebuilds the codec a header describes, using only
// header-carried parameters.
func decoderFor(h *Header) (algorithm, error) {
	switch h.Algorithm {
	case AlgorithmLSB:
		return NewLSBCodec(), nil
	case AlgorithmEcho:
		params := DefaultEchoParams()
		params.ChunkSize = int(h.Param1)
		params.Delay0 = int(h.Param2)
		params.Delay1 = int(h.Param3)
		return NewEchoCodec(params)
	case AlgorithmPhase:
		return newPhaseCodec(int(h.Param1), int(h.Param2))
	case AlgorithmDSSS:
		return newDSSSCodec(int(h.Param1), int(h.Param2))
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, h.Algorithm)
}
