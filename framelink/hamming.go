package framelink

import (
	"sync/atomic"

	"github.com/mkuran/framelink/internal/bitvec"
	"github.com/mkuran/framelink/log"
)

// HammingCodec expands payload bits into a codeword with a parity bit at
// every power-of-two position (1-indexed) and data bits everywhere else.
// On decode, the sum of the failing parity positions locates a single
// flipped bit, which is corrected in place. Two or more flips per codeword
// are outside the code's guarantee: the sum may then point at an innocent
// bit and the corruption goes undetected.
type HammingCodec struct {
	logger      *log.Logger
	corrections uint64
}

func NewHammingCodec() *HammingCodec {
	return &HammingCodec{logger: log.NewLogger("hamming")}
}

func (c *HammingCodec) Name() string {
	return CodecHamming
}

// Corrections counts the frames this codec repaired since creation.
func (c *HammingCodec) Corrections() uint64 {
	return atomic.LoadUint64(&c.corrections)
}

// PowerOfTwo reports whether the 1-indexed position p holds a parity bit.
func PowerOfTwo(p int) bool {
	return p > 0 && p&(p-1) == 0
}

// parity computes the check value of parity position p over a codeword: the
// XOR of every bit at a position i > p with i AND p != 0. The stored bit at
// p cancels itself out of the check and is excluded.
func parity(p int, code *bitvec.Vector) bool {
	par := false
	for i := p + 1; i <= code.Len(); i++ {
		if i&p != 0 {
			par = par != code.Get(i-1)
		}
	}
	return par
}

// Interleave builds the codeword for data: walking 1-indexed positions
// upward, power-of-two positions get parity placeholders and every other
// position takes the next data bit, until all data bits are consumed. The
// parity values are then computed and written into their positions.
func Interleave(data *bitvec.Vector) *bitvec.Vector {
	code := bitvec.New()
	dataIndex := 0
	for pos := 1; dataIndex < data.Len(); pos++ {
		if PowerOfTwo(pos) {
			code.Set(pos-1, false)
			continue
		}
		code.Set(pos-1, data.Get(dataIndex))
		dataIndex++
	}
	for pos := 1; pos <= code.Len(); pos++ {
		if PowerOfTwo(pos) {
			code.Set(pos-1, parity(pos, code))
		}
	}
	return code
}

// Verify recomputes every parity over a received codeword and returns the
// mismatch set: the 1-indexed parity positions whose stored bit disagrees.
func Verify(code *bitvec.Vector) []int {
	var mismatched []int
	for pos := 1; pos <= code.Len(); pos++ {
		if PowerOfTwo(pos) && parity(pos, code) != code.Get(pos-1) {
			mismatched = append(mismatched, pos)
		}
	}
	return mismatched
}

// Correct flips the bit the mismatch set points at: the sum of the failing
// parity positions is the 1-indexed position of a single flipped bit. A
// zero sum leaves the codeword untouched.
func Correct(code *bitvec.Vector, mismatched []int) {
	sum := 0
	for _, pos := range mismatched {
		sum += pos
	}
	if sum != 0 {
		code.Flip(sum - 1)
	}
}

// StripParity removes the power-of-two positions from a codeword, returning
// the data bits in order.
func StripParity(code *bitvec.Vector) *bitvec.Vector {
	data := bitvec.New()
	dataIndex := 0
	for pos := 1; pos <= code.Len(); pos++ {
		if PowerOfTwo(pos) {
			continue
		}
		data.Set(dataIndex, code.Get(pos-1))
		dataIndex++
	}
	return data
}

func (c *HammingCodec) Encode(payload []byte) ([]byte, error) {
	code := Interleave(bitvec.FromBytes(payload))
	return code.Bytes(), nil
}

// Decode verifies the received codeword, repairs a single flipped bit, and
// strips the parity bits back out. A non-empty mismatch set is recoverable:
// it is reported as a warning and the corrected payload is still returned.
// Codewords travel byte-padded, so the recovered bit sequence is truncated
// to a whole number of bytes; the padding plus the parity positions it
// covers always amount to fewer than eight extra bits.
func (c *HammingCodec) Decode(body []byte) ([]byte, error) {
	code := bitvec.FromBytes(body)
	mismatched := Verify(code)
	if len(mismatched) > 0 {
		Correct(code, mismatched)
		atomic.AddUint64(&c.corrections, 1)
		c.logger.WithField("positions", mismatched).Warn("parity mismatch, corrected")
	}
	data := StripParity(code)
	return data.Bytes()[:data.Len()/8], nil
}
