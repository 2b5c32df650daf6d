package bitvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrittenReadsFalse(t *testing.T) {
	v := New()
	assert.Equal(t, 0, v.Len())
	assert.False(t, v.Get(0))
	assert.False(t, v.Get(1000))
	assert.False(t, v.Get(-1))
}

func TestSetGrows(t *testing.T) {
	v := New()
	v.Set(9, true)
	assert.Equal(t, 10, v.Len())
	assert.True(t, v.Get(9))
	assert.False(t, v.Get(8))

	v.Set(3, true)
	assert.Equal(t, 10, v.Len())
	assert.True(t, v.Get(3))
}

func TestFlip(t *testing.T) {
	v := New()
	v.Flip(2)
	assert.True(t, v.Get(2))
	assert.Equal(t, 3, v.Len())
	v.Flip(2)
	assert.False(t, v.Get(2))
}

func TestFromBytesMSBFirst(t *testing.T) {
	v := FromBytes([]byte{0xA6})
	require.Equal(t, 8, v.Len())
	expected := []bool{true, false, true, false, false, true, true, false}
	for i, bit := range expected {
		assert.Equal(t, bit, v.Get(i), "bit %d", i)
	}
}

func TestBytesPadsFinalByte(t *testing.T) {
	v := New()
	v.Set(0, true)
	v.Set(9, true)
	assert.Equal(t, []byte{0x80, 0x40}, v.Bytes())
}

func TestBytesEmpty(t *testing.T) {
	assert.Nil(t, New().Bytes())
}

func TestRoundTrip(t *testing.T) {
	data := []byte{0x00, 0xFF, 0xA6, 0xBC, 0x41}
	assert.Equal(t, data, FromBytes(data).Bytes())
}
