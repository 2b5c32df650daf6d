// Package protocol fixes the wire-level constants of the link layer. Every
// value here is process-wide and immutable; both ends of a channel must
// agree on all of them.
package protocol

const (
	// StartTag marks the beginning of a frame.
	StartTag byte = 0x7B // '{'
	// StopTag marks the end of a frame.
	StopTag byte = 0x7D // '}'
	// EscapeTag marks the following byte as literal data, even if it equals
	// a tag value.
	EscapeTag byte = 0x5C // '\'

	// MaxPayloadSize is the largest number of data bytes a single frame
	// carries. Senders chunk before encoding.
	MaxPayloadSize = 8

	// GeneratorLength is the bit length of the CRC generator polynomial.
	GeneratorLength = 16
)

// Generator is the fixed modulo-2 divisor of the CRC codec, MSB first.
var Generator = [2]byte{0xA6, 0xBC}

// IsTag reports whether b collides with a framing delimiter and must be
// escaped inside a frame body.
func IsTag(b byte) bool {
	return b == StartTag || b == StopTag || b == EscapeTag
}
