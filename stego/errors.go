package stego

import "errors"

var (
	// ErrBadMagic indicates the header magic bytes don't match; the buffer
	// is not a stego carrier or was read at the wrong offset.
	ErrBadMagic = errors.New("header magic mismatch")
	// ErrHeaderCorrupt indicates the header checksum doesn't match
	ErrHeaderCorrupt = errors.New("header checksum mismatch")
	// ErrUnknownAlgorithm indicates an algorithm id outside 1..4
	ErrUnknownAlgorithm = errors.New("unknown algorithm id")
	// ErrInvalidParameters indicates an out-of-range or inconsistent parameter set
	ErrInvalidParameters = errors.New("invalid algorithm parameters")
	// ErrInsufficientCapacity indicates the carrier is too short for the payload
	ErrInsufficientCapacity = errors.New("insufficient carrier capacity")
	// ErrIncompleteBits indicates a bit count that is not a multiple of 8
	ErrIncompleteBits = errors.New("bit count not byte-aligned")
)
