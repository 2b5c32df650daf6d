// Package framelink implements a data link layer for unreliable byte
// channels: payloads are chunked, protected by a selectable error-control
// codec and byte-stuffed into delimited frames; received frames are
// reassembled, unwrapped and decoded.
package framelink

import (
	"errors"
	"fmt"
)

const (
	CodecHamming = "hamming"
	CodecCRC     = "crc"
)

var (
	// ErrMissingStartTag reports a frame whose first byte is not the start
	// tag. The frame is dropped.
	ErrMissingStartTag = errors.New("missing start tag")
	// ErrChecksumMismatch reports a frame whose CRC remainder is not zero.
	// The frame is dropped; no retry happens at this layer.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrUnknownCodec     = errors.New("unknown codec")
)

// Codec protects a chunk of payload bytes against channel corruption.
// Encode produces the byte sequence that goes inside a frame; Decode
// recovers the payload from a received frame body or reports the frame as
// unusable. Implementations are pure per call and keep no state shared
// between frames beyond counters.
type Codec interface {
	Name() string
	Encode(payload []byte) ([]byte, error)
	Decode(body []byte) ([]byte, error)
}

// NewCodec selects a codec strategy by name.
func NewCodec(name string) (Codec, error) {
	switch name {
	case CodecHamming:
		return NewHammingCodec(), nil
	case CodecCRC:
		return NewCRCCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}
