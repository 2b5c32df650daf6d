// Package bitvec implements the growable, 0-indexed bit vector the codecs
// operate on. Bits are packed MSB-first within each byte in both conversion
// directions; both ends of a link must use the same convention.
package bitvec

// Vector is an ordered sequence of bits. The zero value is an empty vector.
// A Vector is owned by a single encode or decode call and is not safe for
// concurrent use.
type Vector struct {
	bits []bool
}

func New() *Vector {
	return &Vector{}
}

// FromBytes builds a vector holding every bit of data, MSB first.
func FromBytes(data []byte) *Vector {
	v := &Vector{bits: make([]bool, len(data)*8)}
	for i, b := range data {
		for j := 0; j < 8; j++ {
			v.bits[i*8+j] = (b>>uint(7-j))&1 == 1
		}
	}
	return v
}

// Len is one past the highest index ever written.
func (v *Vector) Len() int {
	return len(v.bits)
}

// Get returns the bit at index i. Indices that were never written read false.
func (v *Vector) Get(i int) bool {
	if i < 0 || i >= len(v.bits) {
		return false
	}
	return v.bits[i]
}

// Set writes the bit at index i, growing the vector if i is past the end.
func (v *Vector) Set(i int, b bool) {
	for i >= len(v.bits) {
		v.bits = append(v.bits, false)
	}
	v.bits[i] = b
}

func (v *Vector) Flip(i int) {
	v.Set(i, !v.Get(i))
}

// Bytes packs the vector into the smallest byte slice holding every written
// bit, MSB first, zero-padded in the final byte.
func (v *Vector) Bytes() []byte {
	if len(v.bits) == 0 {
		return nil
	}
	out := make([]byte, (len(v.bits)+7)/8)
	for i, bit := range v.bits {
		if bit {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}
