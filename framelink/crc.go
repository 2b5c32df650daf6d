package framelink

import (
	"bytes"

	"github.com/mkuran/framelink/internal/bitvec"
	"github.com/mkuran/framelink/log"
	"github.com/mkuran/framelink/protocol"
)

// CRCCodec appends the modulo-2 polynomial-division remainder of the payload
// against the fixed 16-bit generator. Detection only: a frame whose
// recomputed remainder is not all zero is dropped, never repaired.
type CRCCodec struct {
	generator *bitvec.Vector
	logger    *log.Logger
}

func NewCRCCodec() *CRCCodec {
	return &CRCCodec{
		generator: bitvec.FromBytes(protocol.Generator[:]),
		logger:    log.NewLogger("crc"),
	}
}

func (c *CRCCodec) Name() string {
	return CodecCRC
}

// divide runs modulo-2 long division of buf by the generator in place and
// returns it. While the generator window fits inside the buffer, the
// generator is XORed in wherever the bit at the window's leading index is
// set, and the index advances past zero bits. Every bit before the final
// index is zero when the loop terminates.
func (c *CRCCodec) divide(buf *bitvec.Vector) *bitvec.Vector {
	genLen := c.generator.Len()
	index := 0
	for buf.Len()-index >= genLen {
		if buf.Get(index) {
			for i := 0; i < genLen; i++ {
				buf.Set(index+i, buf.Get(index+i) != c.generator.Get(i))
			}
		}
		for index < buf.Len() && !buf.Get(index) {
			index++
		}
	}
	return buf
}

// checksum computes the trimmed remainder bytes appended to a payload. The
// dividend is the payload followed by GeneratorLength-1 zero bits; after
// division, leading all-zero bytes of the working buffer are dropped,
// keeping at least one byte. An all-zero remainder degenerates to a single
// zero byte, never to zero bytes.
func (c *CRCCodec) checksum(payload []byte) []byte {
	buf := bitvec.FromBytes(payload)
	size := buf.Len()
	for i := size; i < size+c.generator.Len()-1; i++ {
		buf.Set(i, false)
	}
	rem := c.divide(buf).Bytes()
	if len(rem) == 0 {
		return []byte{0}
	}
	start := 0
	for start < len(rem)-1 && rem[start] == 0 {
		start++
	}
	return rem[start:]
}

func (c *CRCCodec) Encode(payload []byte) ([]byte, error) {
	body := make([]byte, 0, len(payload)+2)
	body = append(body, payload...)
	return append(body, c.checksum(payload)...), nil
}

// Decode accepts a body when dividing the received bit sequence as-is leaves
// an all-zero remainder, then strips the checksum. A checksum trimmed to a
// single byte lost a leading zero byte on the wire, which shifts the
// remaining checksum bits and defeats the plain zero-remainder identity;
// that layout is accepted by re-deriving the checksum over the candidate
// payload instead. The checksum width for stripping is re-derived the same
// way, never read from the content.
func (c *CRCCodec) Decode(body []byte) ([]byte, error) {
	if c.zeroRemainder(body) {
		if payload, ok := c.split(body); ok {
			return payload, nil
		}
	} else if len(body) >= 1 {
		payload := body[:len(body)-1]
		if bytes.Equal(c.checksum(payload), body[len(body)-1:]) {
			return payload, nil
		}
	}
	c.logger.WithField("len", len(body)).Warn("remainder not zero")
	return nil, ErrChecksumMismatch
}

// zeroRemainder divides the received payload+checksum bit sequence and
// reports whether the remainder is entirely zero.
func (c *CRCCodec) zeroRemainder(body []byte) bool {
	rem := c.divide(bitvec.FromBytes(body))
	for i := 0; i < rem.Len(); i++ {
		if rem.Get(i) {
			return false
		}
	}
	return true
}

// split strips the checksum off a verified body, widest layout first.
func (c *CRCCodec) split(body []byte) ([]byte, bool) {
	for _, n := range []int{2, 1} {
		if len(body) < n {
			continue
		}
		payload := body[:len(body)-n]
		if bytes.Equal(c.checksum(payload), body[len(body)-n:]) {
			return payload, true
		}
	}
	return nil, false
}
